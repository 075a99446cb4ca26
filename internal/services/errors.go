package services

import "errors"

// Service-level sentinel errors. Handlers map these to HTTP statuses with
// errors.Is; anything unrecognized becomes a generic 500.
var (
	ErrMentorNotFound       = errors.New("mentor not found")
	ErrMenteeNotFound       = errors.New("mentee not found")
	ErrRequestNotFound      = errors.New("request not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrMeetingNotFound      = errors.New("meeting not found")

	ErrAccessDenied = errors.New("access denied")

	// ErrRequestResolved is returned when a lifecycle action targets a
	// request that already left pending
	ErrRequestResolved = errors.New("request already resolved")

	// ErrDuplicateRequest is returned when a mentee already has a pending
	// request to the same mentor
	ErrDuplicateRequest = errors.New("pending request already exists")

	// ErrCooldownActive is returned when a mentee was declined within the
	// cooldown window and may not submit a new request yet
	ErrCooldownActive = errors.New("request cooldown active")

	// ErrConversationNotActive is returned when messaging or scheduling
	// targets a conversation that is not active
	ErrConversationNotActive = errors.New("conversation is not active")

	ErrInvalidTransition = errors.New("invalid status transition")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("invalid input")
)
