package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
	apperrors "github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/errors"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/metrics"
)

const menteeColumns = `id, name, email, career_field, goals, experience_level,
	interests, location, created_at`

// MenteeRepository provides access to mentee profiles
type MenteeRepository struct {
	pool *pgxpool.Pool
}

var _ MenteeRepositoryInterface = (*MenteeRepository)(nil)

// NewMenteeRepository creates a new mentee repository
func NewMenteeRepository(pool *pgxpool.Pool) *MenteeRepository {
	return &MenteeRepository{pool: pool}
}

// Create inserts a new mentee profile
func (r *MenteeRepository) Create(ctx context.Context, mentee *models.Mentee) (*models.Mentee, error) {
	start := time.Now()

	query := fmt.Sprintf(`
		INSERT INTO mentees (id, name, email, career_field, goals,
			experience_level, interests, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s`, menteeColumns)

	created, err := models.ScanMentee(r.pool.QueryRow(ctx, query,
		mentee.ID, mentee.Name, mentee.Email, mentee.CareerField,
		nilIfEmpty(mentee.Goals), nilIfEmpty(mentee.ExperienceLevel),
		mentee.Interests, nilIfEmpty(mentee.Location),
	))
	if err != nil {
		if isUniqueViolation(err) {
			recordMetrics("mentees_create", "conflict", metrics.MeasureDuration(start))
			return nil, apperrors.ConflictError("mentee email already registered")
		}
		recordMetrics("mentees_create", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to create mentee: %w", err)
	}

	recordMetrics("mentees_create", "success", metrics.MeasureDuration(start))
	return created, nil
}

// GetByID returns a mentee profile by ID
func (r *MenteeRepository) GetByID(ctx context.Context, id string) (*models.Mentee, error) {
	start := time.Now()

	query := fmt.Sprintf("SELECT %s FROM mentees WHERE id = $1", menteeColumns)
	mentee, err := models.ScanMentee(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics("mentees_get_by_id", "not_found", metrics.MeasureDuration(start))
			return nil, apperrors.NotFoundError("mentee")
		}
		recordMetrics("mentees_get_by_id", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to get mentee %s: %w", id, err)
	}

	recordMetrics("mentees_get_by_id", "success", metrics.MeasureDuration(start))
	return mentee, nil
}

// GetByEmail returns a mentee profile by email
func (r *MenteeRepository) GetByEmail(ctx context.Context, email string) (*models.Mentee, error) {
	start := time.Now()

	query := fmt.Sprintf("SELECT %s FROM mentees WHERE email = $1", menteeColumns)
	mentee, err := models.ScanMentee(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics("mentees_get_by_email", "not_found", metrics.MeasureDuration(start))
			return nil, apperrors.NotFoundError("mentee")
		}
		recordMetrics("mentees_get_by_email", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to get mentee by email: %w", err)
	}

	recordMetrics("mentees_get_by_email", "success", metrics.MeasureDuration(start))
	return mentee, nil
}
