package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// Role values for platform accounts
const (
	RoleMentee = "mentee"
	RoleMentor = "mentor"
	RoleAdmin  = "admin"
)

// Account holds login credentials for a platform user. PasswordHash is a
// bcrypt hash and is never serialized.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Name         string    `json:"name"`
	ProfileID    string    `json:"profileId"` // mentee uuid or mentor id, depending on role
	CreatedAt    time.Time `json:"createdAt"`
}

// SignupRequest is the body for POST /api/v1/auth/signup
type SignupRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Role     string `json:"role" binding:"required,oneof=mentee mentor"`

	// Mentee profile fields (required when role is mentee)
	CareerField     string   `json:"careerField"`
	Goals           string   `json:"goals"`
	ExperienceLevel string   `json:"experienceLevel"`
	Interests       []string `json:"interests"`
	Location        string   `json:"location"`
}

// LoginRequest is the body for POST /api/v1/auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse describes the authenticated session returned to clients
type SessionResponse struct {
	AccountID string `json:"accountId"`
	ProfileID string `json:"profileId,omitempty"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
}

// ScanAccount scans a single PostgreSQL row into an Account struct
// Expected columns: id, email, password_hash, role, name, profile_id, created_at
func ScanAccount(row pgx.Row) (*Account, error) {
	var a Account
	var profileID *string

	err := row.Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.Role,
		&a.Name,
		&profileID,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if profileID != nil {
		a.ProfileID = *profileID
	}

	return &a, nil
}
