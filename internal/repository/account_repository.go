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

const accountColumns = `id, email, password_hash, role, name, profile_id, created_at`

// AccountRepository provides access to login credentials
type AccountRepository struct {
	pool *pgxpool.Pool
}

var _ AccountRepositoryInterface = (*AccountRepository)(nil)

// NewAccountRepository creates a new account repository
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts a new account
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	start := time.Now()

	query := fmt.Sprintf(`
		INSERT INTO accounts (id, email, password_hash, role, name, profile_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`, accountColumns)

	created, err := models.ScanAccount(r.pool.QueryRow(ctx, query,
		account.ID, account.Email, account.PasswordHash, account.Role,
		account.Name, nilIfEmpty(account.ProfileID),
	))
	if err != nil {
		if isUniqueViolation(err) {
			recordMetrics("accounts_create", "conflict", metrics.MeasureDuration(start))
			return nil, apperrors.ConflictError("email already registered")
		}
		recordMetrics("accounts_create", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	recordMetrics("accounts_create", "success", metrics.MeasureDuration(start))
	return created, nil
}

// GetByEmail returns an account by email
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	start := time.Now()

	query := fmt.Sprintf("SELECT %s FROM accounts WHERE email = $1", accountColumns)
	account, err := models.ScanAccount(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics("accounts_get_by_email", "not_found", metrics.MeasureDuration(start))
			return nil, apperrors.NotFoundError("account")
		}
		recordMetrics("accounts_get_by_email", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}

	recordMetrics("accounts_get_by_email", "success", metrics.MeasureDuration(start))
	return account, nil
}

// GetByProfileID returns the account backing a mentor or mentee profile
func (r *AccountRepository) GetByProfileID(ctx context.Context, role, profileID string) (*models.Account, error) {
	start := time.Now()

	query := fmt.Sprintf("SELECT %s FROM accounts WHERE role = $1 AND profile_id = $2", accountColumns)
	account, err := models.ScanAccount(r.pool.QueryRow(ctx, query, role, profileID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics("accounts_get_by_profile", "not_found", metrics.MeasureDuration(start))
			return nil, apperrors.NotFoundError("account")
		}
		recordMetrics("accounts_get_by_profile", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to get account for profile %s: %w", profileID, err)
	}

	recordMetrics("accounts_get_by_profile", "success", metrics.MeasureDuration(start))
	return account, nil
}

// LinkProfile attaches a directory profile to an existing account
func (r *AccountRepository) LinkProfile(ctx context.Context, email, profileID string) (*models.Account, error) {
	start := time.Now()

	query := fmt.Sprintf(`
		UPDATE accounts SET profile_id = $2 WHERE email = $1
		RETURNING %s`, accountColumns)

	account, err := models.ScanAccount(r.pool.QueryRow(ctx, query, email, profileID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics("accounts_link_profile", "not_found", metrics.MeasureDuration(start))
			return nil, apperrors.NotFoundError("account")
		}
		recordMetrics("accounts_link_profile", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to link profile to account: %w", err)
	}

	recordMetrics("accounts_link_profile", "success", metrics.MeasureDuration(start))
	return account, nil
}

// GetByID returns an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	start := time.Now()

	query := fmt.Sprintf("SELECT %s FROM accounts WHERE id = $1", accountColumns)
	account, err := models.ScanAccount(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics("accounts_get_by_id", "not_found", metrics.MeasureDuration(start))
			return nil, apperrors.NotFoundError("account")
		}
		recordMetrics("accounts_get_by_id", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to get account %s: %w", id, err)
	}

	recordMetrics("accounts_get_by_id", "success", metrics.MeasureDuration(start))
	return account, nil
}
