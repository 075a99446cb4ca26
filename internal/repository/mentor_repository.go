package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/cache"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
	apperrors "github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/errors"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/logger"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/metrics"
)

const mentorColumns = `id, slug, name, title, company, field, location,
	years_of_experience, bio, expertise, availability, conversation_starters,
	is_visible, created_at, updated_at`

// MentorRepository provides access to the mentor directory backed by
// Postgres, with the visible directory cached in memory
type MentorRepository struct {
	pool  *pgxpool.Pool
	cache *cache.MentorDirectoryCache
}

var _ MentorRepositoryInterface = (*MentorRepository)(nil)

// NewMentorRepository creates a new mentor repository
func NewMentorRepository(pool *pgxpool.Pool, directoryCache *cache.MentorDirectoryCache) *MentorRepository {
	return &MentorRepository{pool: pool, cache: directoryCache}
}

// GetAll returns mentors from the directory. Visible-only reads are served
// from cache unless ForceRefresh is set.
func (r *MentorRepository) GetAll(ctx context.Context, opts models.FilterOptions) ([]*models.Mentor, error) {
	if opts.OnlyVisible && !opts.ForceRefresh {
		if cached := r.cache.GetDirectory(); cached != nil {
			return cached, nil
		}
	}

	start := time.Now()

	query := fmt.Sprintf("SELECT %s FROM mentors ORDER BY id", mentorColumns)
	if opts.OnlyVisible {
		query = fmt.Sprintf("SELECT %s FROM mentors WHERE is_visible ORDER BY id", mentorColumns)
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		recordMetrics("mentors_get_all", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to query mentors: %w", err)
	}

	mentors, err := models.ScanMentors(rows)
	if err != nil {
		recordMetrics("mentors_get_all", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to scan mentors: %w", err)
	}

	recordMetrics("mentors_get_all", "success", metrics.MeasureDuration(start))
	logger.LogAPICall("postgres", "mentors_get_all", "success", metrics.MeasureDuration(start),
		zap.Int("count", len(mentors)))

	if opts.OnlyVisible {
		r.cache.SetDirectory(mentors)
	}

	return mentors, nil
}

// GetByID returns a single mentor by numeric ID
func (r *MentorRepository) GetByID(ctx context.Context, id int, opts models.FilterOptions) (*models.Mentor, error) {
	start := time.Now()

	query := fmt.Sprintf("SELECT %s FROM mentors WHERE id = $1", mentorColumns)
	mentor, err := models.ScanMentor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics("mentors_get_by_id", "not_found", metrics.MeasureDuration(start))
			return nil, apperrors.NotFoundError("mentor")
		}
		recordMetrics("mentors_get_by_id", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to get mentor %d: %w", id, err)
	}

	if opts.OnlyVisible && !mentor.IsVisible {
		recordMetrics("mentors_get_by_id", "not_found", metrics.MeasureDuration(start))
		return nil, apperrors.NotFoundError("mentor")
	}

	recordMetrics("mentors_get_by_id", "success", metrics.MeasureDuration(start))
	return mentor, nil
}

// GetBySlug returns a single mentor by URL slug
func (r *MentorRepository) GetBySlug(ctx context.Context, slug string, opts models.FilterOptions) (*models.Mentor, error) {
	start := time.Now()

	query := fmt.Sprintf("SELECT %s FROM mentors WHERE slug = $1", mentorColumns)
	mentor, err := models.ScanMentor(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics("mentors_get_by_slug", "not_found", metrics.MeasureDuration(start))
			return nil, apperrors.NotFoundError("mentor")
		}
		recordMetrics("mentors_get_by_slug", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to get mentor %s: %w", slug, err)
	}

	if opts.OnlyVisible && !mentor.IsVisible {
		recordMetrics("mentors_get_by_slug", "not_found", metrics.MeasureDuration(start))
		return nil, apperrors.NotFoundError("mentor")
	}

	recordMetrics("mentors_get_by_slug", "success", metrics.MeasureDuration(start))
	return mentor, nil
}

// Create inserts a new mentor profile. New mentors start hidden until an
// admin flips visibility.
func (r *MentorRepository) Create(ctx context.Context, req *models.SaveMentorRequest) (*models.Mentor, error) {
	start := time.Now()

	query := fmt.Sprintf(`
		INSERT INTO mentors (slug, name, title, company, field, location,
			years_of_experience, bio, expertise, availability,
			conversation_starters, is_visible)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, false)
		RETURNING %s`, mentorColumns)

	mentor, err := models.ScanMentor(r.pool.QueryRow(ctx, query,
		req.Slug, req.Name, req.Title, nilIfEmpty(req.Company), req.Field,
		nilIfEmpty(req.Location), req.YearsOfExperience, nilIfEmpty(req.Bio),
		req.Expertise, req.Availability, req.ConversationStarters,
	))
	if err != nil {
		if isUniqueViolation(err) {
			recordMetrics("mentors_create", "conflict", metrics.MeasureDuration(start))
			return nil, apperrors.ConflictError("mentor slug already taken")
		}
		recordMetrics("mentors_create", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to create mentor: %w", err)
	}

	recordMetrics("mentors_create", "success", metrics.MeasureDuration(start))
	logger.Info("Mentor created", zap.Int("mentor_id", mentor.ID), zap.String("slug", mentor.Slug))

	r.cache.Invalidate()
	return mentor, nil
}

// Update replaces an existing mentor profile
func (r *MentorRepository) Update(ctx context.Context, id int, req *models.SaveMentorRequest) (*models.Mentor, error) {
	start := time.Now()

	query := fmt.Sprintf(`
		UPDATE mentors
		SET slug = $2, name = $3, title = $4, company = $5, field = $6,
			location = $7, years_of_experience = $8, bio = $9, expertise = $10,
			availability = $11, conversation_starters = $12, updated_at = now()
		WHERE id = $1
		RETURNING %s`, mentorColumns)

	mentor, err := models.ScanMentor(r.pool.QueryRow(ctx, query,
		id, req.Slug, req.Name, req.Title, nilIfEmpty(req.Company), req.Field,
		nilIfEmpty(req.Location), req.YearsOfExperience, nilIfEmpty(req.Bio),
		req.Expertise, req.Availability, req.ConversationStarters,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics("mentors_update", "not_found", metrics.MeasureDuration(start))
			return nil, apperrors.NotFoundError("mentor")
		}
		if isUniqueViolation(err) {
			recordMetrics("mentors_update", "conflict", metrics.MeasureDuration(start))
			return nil, apperrors.ConflictError("mentor slug already taken")
		}
		recordMetrics("mentors_update", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to update mentor %d: %w", id, err)
	}

	recordMetrics("mentors_update", "success", metrics.MeasureDuration(start))
	r.cache.Invalidate()
	return mentor, nil
}

// SetVisibility shows or hides a mentor in the public directory
func (r *MentorRepository) SetVisibility(ctx context.Context, id int, visible bool) error {
	start := time.Now()

	tag, err := r.pool.Exec(ctx,
		"UPDATE mentors SET is_visible = $2, updated_at = now() WHERE id = $1",
		id, visible,
	)
	if err != nil {
		recordMetrics("mentors_set_visibility", "error", metrics.MeasureDuration(start))
		return fmt.Errorf("failed to set mentor %d visibility: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		recordMetrics("mentors_set_visibility", "not_found", metrics.MeasureDuration(start))
		return apperrors.NotFoundError("mentor")
	}

	recordMetrics("mentors_set_visibility", "success", metrics.MeasureDuration(start))
	r.cache.Invalidate()
	return nil
}

// InvalidateCache drops the directory cache entry
func (r *MentorRepository) InvalidateCache() {
	r.cache.Invalidate()
}
