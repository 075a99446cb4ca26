package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/matching"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/repository"
	apperrors "github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/errors"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/logger"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/metrics"
)

// MatchingService runs the match scorer over the visible mentor directory
// for a mentee profile. The directory read goes through the cache, so match
// queries do not hit Postgres on every call.
type MatchingService struct {
	mentees repository.MenteeRepositoryInterface
	mentors repository.MentorRepositoryInterface
}

var _ MatchingServiceInterface = (*MatchingService)(nil)

// NewMatchingService creates a new matching service
func NewMatchingService(
	mentees repository.MenteeRepositoryInterface,
	mentors repository.MentorRepositoryInterface,
) *MatchingService {
	return &MatchingService{mentees: mentees, mentors: mentors}
}

// FindMatches scores every visible mentor against the mentee and returns the
// ranked shortlist. An empty shortlist is a valid outcome.
func (s *MatchingService) FindMatches(ctx context.Context, menteeID string) ([]matching.RankedMentor, error) {
	mentee, err := s.mentees.GetByID(ctx, menteeID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			metrics.MatchQueries.WithLabelValues("mentee_not_found").Inc()
			return nil, ErrMenteeNotFound
		}
		metrics.MatchQueries.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to load mentee: %w", err)
	}

	pool, err := s.mentors.GetAll(ctx, models.FilterOptions{OnlyVisible: true})
	if err != nil {
		metrics.MatchQueries.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to load mentor directory: %w", err)
	}

	matches := matching.FindMatches(mentee, pool)

	outcome := "matched"
	if len(matches) == 0 {
		outcome = "no_matches"
	}
	metrics.MatchQueries.WithLabelValues(outcome).Inc()
	metrics.MatchResultCount.Observe(float64(len(matches)))

	logger.Info("Match query served",
		zap.String("mentee_id", menteeID),
		zap.String("career_field", mentee.CareerField),
		zap.Int("matches", len(matches)))

	return matches, nil
}
