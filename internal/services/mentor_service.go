package services

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/repository"
	apperrors "github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/errors"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/logger"
)

// MentorService serves the public mentor directory and its admin operations.
// Public reads only ever see visible mentors; removal hides a profile instead
// of deleting it so past conversations keep their mentor reference.
type MentorService struct {
	mentors  repository.MentorRepositoryInterface
	accounts repository.AccountRepositoryInterface
	baseURL  string
}

var _ MentorServiceInterface = (*MentorService)(nil)

// NewMentorService creates a new mentor directory service
func NewMentorService(
	mentors repository.MentorRepositoryInterface,
	accounts repository.AccountRepositoryInterface,
	baseURL string,
) *MentorService {
	return &MentorService{mentors: mentors, accounts: accounts, baseURL: baseURL}
}

// ListMentors returns all visible mentors in public directory format
func (s *MentorService) ListMentors(ctx context.Context, forceRefresh bool) ([]models.PublicMentorResponse, error) {
	mentors, err := s.mentors.GetAll(ctx, models.FilterOptions{
		OnlyVisible:  true,
		ForceRefresh: forceRefresh,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list mentors: %w", err)
	}

	responses := make([]models.PublicMentorResponse, 0, len(mentors))
	for _, mentor := range mentors {
		responses = append(responses, mentor.ToPublicResponse(s.baseURL))
	}
	return responses, nil
}

// GetMentor returns one visible mentor by ID
func (s *MentorService) GetMentor(ctx context.Context, id int) (*models.PublicMentorResponse, error) {
	mentor, err := s.mentors.GetByID(ctx, id, models.FilterOptions{OnlyVisible: true})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrMentorNotFound
		}
		return nil, fmt.Errorf("failed to get mentor: %w", err)
	}

	response := mentor.ToPublicResponse(s.baseURL)
	return &response, nil
}

// GetMentorBySlug returns one visible mentor by URL slug
func (s *MentorService) GetMentorBySlug(ctx context.Context, slug string) (*models.PublicMentorResponse, error) {
	mentor, err := s.mentors.GetBySlug(ctx, slug, models.FilterOptions{OnlyVisible: true})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrMentorNotFound
		}
		return nil, fmt.Errorf("failed to get mentor: %w", err)
	}

	response := mentor.ToPublicResponse(s.baseURL)
	return &response, nil
}

// CreateMentor adds a new mentor profile. The profile starts hidden.
func (s *MentorService) CreateMentor(ctx context.Context, req *models.SaveMentorRequest) (*models.Mentor, error) {
	if !models.IsValidCareerField(req.Field) {
		return nil, fmt.Errorf("%w: unknown career field %q", ErrInvalidInput, req.Field)
	}

	mentor, err := s.mentors.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	logger.Info("Mentor profile created",
		zap.Int("mentor_id", mentor.ID),
		zap.String("field", mentor.Field))
	return mentor, nil
}

// UpdateMentor replaces a mentor profile
func (s *MentorService) UpdateMentor(ctx context.Context, id int, req *models.SaveMentorRequest) (*models.Mentor, error) {
	if !models.IsValidCareerField(req.Field) {
		return nil, fmt.Errorf("%w: unknown career field %q", ErrInvalidInput, req.Field)
	}

	mentor, err := s.mentors.Update(ctx, id, req)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrMentorNotFound
		}
		return nil, err
	}
	return mentor, nil
}

// SetMentorVisibility shows or hides a mentor in the directory
func (s *MentorService) SetMentorVisibility(ctx context.Context, id int, visible bool) error {
	if err := s.mentors.SetVisibility(ctx, id, visible); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return ErrMentorNotFound
		}
		return err
	}

	logger.Info("Mentor visibility changed",
		zap.Int("mentor_id", id),
		zap.Bool("visible", visible))
	return nil
}

// LinkMentorAccount attaches a mentor directory profile to a signed-up
// mentor account, granting it access to the mentor dashboard
func (s *MentorService) LinkMentorAccount(ctx context.Context, email string, mentorID int) (*models.Account, error) {
	if _, err := s.mentors.GetByID(ctx, mentorID, models.FilterOptions{}); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrMentorNotFound
		}
		return nil, fmt.Errorf("failed to load mentor: %w", err)
	}

	account, err := s.accounts.LinkProfile(ctx, email, strconv.Itoa(mentorID))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no account for %s", ErrInvalidInput, email)
		}
		return nil, fmt.Errorf("failed to link mentor account: %w", err)
	}

	logger.Info("Mentor account linked",
		zap.Int("mentor_id", mentorID),
		zap.String("account_id", account.ID))
	return account, nil
}
