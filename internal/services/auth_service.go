package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/repository"
	apperrors "github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/errors"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/jwt"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/logger"
)

// AuthService handles signup, login and session issuance. Passwords are
// stored as bcrypt hashes only.
type AuthService struct {
	accounts repository.AccountRepositoryInterface
	mentees  repository.MenteeRepositoryInterface
	tokens   *jwt.TokenManager
}

var _ AuthServiceInterface = (*AuthService)(nil)

// NewAuthService creates a new auth service
func NewAuthService(
	accounts repository.AccountRepositoryInterface,
	mentees repository.MenteeRepositoryInterface,
	tokens *jwt.TokenManager,
) *AuthService {
	return &AuthService{accounts: accounts, mentees: mentees, tokens: tokens}
}

// Signup registers a new account. Mentee signups also create the mentee
// profile; mentor accounts start unlinked until an admin attaches a directory
// profile.
func (s *AuthService) Signup(ctx context.Context, req *models.SignupRequest) (*models.SessionResponse, string, error) {
	if _, err := s.accounts.GetByEmail(ctx, req.Email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to check existing account: %w", err)
	}

	profileID := ""
	if req.Role == models.RoleMentee {
		if !models.IsValidCareerField(req.CareerField) {
			return nil, "", fmt.Errorf("%w: unknown career field %q", ErrInvalidInput, req.CareerField)
		}

		mentee, err := s.mentees.Create(ctx, &models.Mentee{
			ID:              uuid.NewString(),
			Name:            req.Name,
			Email:           req.Email,
			CareerField:     req.CareerField,
			Goals:           req.Goals,
			ExperienceLevel: req.ExperienceLevel,
			Interests:       req.Interests,
			Location:        req.Location,
		})
		if err != nil {
			if apperrors.Is(err, apperrors.ErrConflict) {
				return nil, "", ErrEmailTaken
			}
			return nil, "", fmt.Errorf("failed to create mentee profile: %w", err)
		}
		profileID = mentee.ID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	account, err := s.accounts.Create(ctx, &models.Account{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Name:         req.Name,
		ProfileID:    profileID,
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to create account: %w", err)
	}

	logger.Info("Account created",
		zap.String("account_id", account.ID),
		zap.String("role", account.Role))

	return s.issueSession(account)
}

// Login verifies credentials and issues a session token
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.SessionResponse, string, error) {
	account, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to load account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	return s.issueSession(account)
}

func (s *AuthService) issueSession(account *models.Account) (*models.SessionResponse, string, error) {
	token, err := s.tokens.GenerateToken(account.ID, account.ProfileID, account.Email, account.Name, account.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	session := &models.SessionResponse{
		AccountID: account.ID,
		ProfileID: account.ProfileID,
		Email:     account.Email,
		Name:      account.Name,
		Role:      account.Role,
	}
	return session, token, nil
}
