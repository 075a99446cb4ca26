package models_test

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
)

// mockRow implements pgx.Row for scan tests
type mockRow struct {
	values []any
	err    error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}

	for i, v := range m.values {
		if i >= len(dest) {
			continue
		}

		switch d := dest[i].(type) {
		case *string:
			if s, ok := v.(string); ok {
				*d = s
			}
		case **string:
			// Handle nullable string columns
			if v == nil {
				*d = nil
			} else if s, ok := v.(string); ok {
				tmp := s
				*d = &tmp
			}
		case *int:
			if n, ok := v.(int); ok {
				*d = n
			}
		case *models.RequestStatus:
			if s, ok := v.(string); ok {
				*d = models.RequestStatus(s)
			}
		case *time.Time:
			if ts, ok := v.(time.Time); ok {
				*d = ts
			}
		case **time.Time:
			// Handle nullable timestamp columns
			if v == nil {
				*d = nil
			} else if ts, ok := v.(time.Time); ok {
				tmp := ts
				*d = &tmp
			}
		}
	}

	return nil
}

// mockRows implements pgx.Rows over a fixed set of row values
type mockRows struct {
	rows [][]any
	idx  int
	err  error
}

func (m *mockRows) Next() bool {
	if m.idx >= len(m.rows) {
		return false
	}
	m.idx++
	return true
}

func (m *mockRows) Scan(dest ...any) error {
	row := mockRow{values: m.rows[m.idx-1]}
	return row.Scan(dest...)
}

func (m *mockRows) Close()                                       {}
func (m *mockRows) Err() error                                   { return m.err }
func (m *mockRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (m *mockRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (m *mockRows) Values() ([]any, error)                       { return nil, nil }
func (m *mockRows) RawValues() [][]byte                          { return nil }
func (m *mockRows) Conn() *pgx.Conn                              { return nil }

func TestRequestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name     string
		from     models.RequestStatus
		to       models.RequestStatus
		expected bool
	}{
		{"pending to approved", models.RequestStatusPending, models.RequestStatusApproved, true},
		{"pending to declined", models.RequestStatusPending, models.RequestStatusDeclined, true},
		{"pending to expired", models.RequestStatusPending, models.RequestStatusExpired, true},
		{"approved is terminal", models.RequestStatusApproved, models.RequestStatusDeclined, false},
		{"declined is terminal", models.RequestStatusDeclined, models.RequestStatusApproved, false},
		{"expired is terminal", models.RequestStatusExpired, models.RequestStatusApproved, false},
		{"pending to pending", models.RequestStatusPending, models.RequestStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestRequestStatus_IsTerminalStatus(t *testing.T) {
	assert.False(t, models.RequestStatusPending.IsTerminalStatus())
	assert.True(t, models.RequestStatusApproved.IsTerminalStatus())
	assert.True(t, models.RequestStatusDeclined.IsTerminalStatus())
	assert.True(t, models.RequestStatusExpired.IsTerminalStatus())
}

func TestRequestGroup_GetStatuses(t *testing.T) {
	assert.Equal(t, []models.RequestStatus{models.RequestStatusPending},
		models.RequestGroupActive.GetStatuses())
	assert.Equal(t, []models.RequestStatus{
		models.RequestStatusApproved,
		models.RequestStatusDeclined,
		models.RequestStatusExpired,
	}, models.RequestGroupPast.GetStatuses())
	assert.Nil(t, models.RequestGroup("archived").GetStatuses())
}

func TestMeetingStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name     string
		from     models.MeetingStatus
		to       models.MeetingStatus
		expected bool
	}{
		{"scheduled to completed", models.MeetingStatusScheduled, models.MeetingStatusCompleted, true},
		{"scheduled to cancelled", models.MeetingStatusScheduled, models.MeetingStatusCancelled, true},
		{"scheduled to rescheduled", models.MeetingStatusScheduled, models.MeetingStatusRescheduled, true},
		{"rescheduled to completed", models.MeetingStatusRescheduled, models.MeetingStatusCompleted, true},
		{"rescheduled to rescheduled", models.MeetingStatusRescheduled, models.MeetingStatusRescheduled, false},
		{"completed is terminal", models.MeetingStatusCompleted, models.MeetingStatusCancelled, false},
		{"cancelled is terminal", models.MeetingStatusCancelled, models.MeetingStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestScanRequest_ApprovedRow(t *testing.T) {
	createdAt := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	expiresAt := createdAt.Add(48 * time.Hour)
	approvedAt := createdAt.Add(3 * time.Hour)

	row := &mockRow{values: []any{
		"req-1",
		"mentee-1",
		"Kofi Annan",
		"kofi@example.com",
		7,
		"How do I break into backend engineering?",
		"2 hours per week",
		"weekly",
		"approved",
		createdAt,
		expiresAt,
		approvedAt,
		nil, // declined_at
		"conv-1",
	}}

	request, err := models.ScanRequest(row)
	assert.NoError(t, err)
	assert.Equal(t, "req-1", request.ID)
	assert.Equal(t, "mentee-1", request.MenteeID)
	assert.Equal(t, "Kofi Annan", request.MenteeName)
	assert.Equal(t, "kofi@example.com", request.MenteeEmail)
	assert.Equal(t, 7, request.MentorID)
	assert.Equal(t, models.RequestStatusApproved, request.Status)
	assert.Equal(t, "How do I break into backend engineering?", request.Message)
	assert.Equal(t, "2 hours per week", request.TimeCommitment)
	assert.Equal(t, "weekly", request.PreferredFrequency)
	assert.True(t, request.CreatedAt.Equal(createdAt))
	assert.True(t, request.ExpiresAt.Equal(expiresAt))
	assert.Equal(t, 48*time.Hour, request.ExpiresAt.Sub(request.CreatedAt))
	if assert.NotNil(t, request.ApprovedAt) {
		assert.True(t, request.ApprovedAt.Equal(approvedAt))
	}
	assert.Nil(t, request.DeclinedAt)
	if assert.NotNil(t, request.ConversationID) {
		assert.Equal(t, "conv-1", *request.ConversationID)
	}
}

func TestScanRequest_PendingRowNullables(t *testing.T) {
	createdAt := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)

	row := &mockRow{values: []any{
		"req-2",
		"mentee-2",
		"Ama Serwaa",
		"ama@example.com",
		8,
		nil, // message
		nil, // time_commitment
		nil, // preferred_frequency
		"pending",
		createdAt,
		createdAt.Add(48 * time.Hour),
		nil, // approved_at
		nil, // declined_at
		nil, // conversation_id
	}}

	request, err := models.ScanRequest(row)
	assert.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, request.Status)
	assert.Empty(t, request.Message)
	assert.Empty(t, request.TimeCommitment)
	assert.Empty(t, request.PreferredFrequency)
	assert.Nil(t, request.ApprovedAt)
	assert.Nil(t, request.DeclinedAt)
	assert.Nil(t, request.ConversationID)
}

func TestScanRequest_Error(t *testing.T) {
	row := &mockRow{err: pgx.ErrNoRows}

	request, err := models.ScanRequest(row)
	assert.Nil(t, request)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestScanRequests(t *testing.T) {
	createdAt := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)

	rows := &mockRows{rows: [][]any{
		{"req-1", "mentee-1", "Kofi Annan", "kofi@example.com", 7,
			nil, nil, nil, "pending", createdAt, createdAt.Add(48 * time.Hour), nil, nil, nil},
		{"req-2", "mentee-2", "Ama Serwaa", "ama@example.com", 8,
			nil, nil, nil, "expired", createdAt, createdAt.Add(48 * time.Hour), nil, nil, nil},
	}}

	requests, err := models.ScanRequests(rows)
	assert.NoError(t, err)
	assert.Len(t, requests, 2)
	assert.Equal(t, "req-1", requests[0].ID)
	assert.Equal(t, models.RequestStatusPending, requests[0].Status)
	assert.Equal(t, "req-2", requests[1].ID)
	assert.Equal(t, models.RequestStatusExpired, requests[1].Status)
}

func TestScanRequests_RowsError(t *testing.T) {
	rows := &mockRows{err: pgx.ErrTxClosed}

	requests, err := models.ScanRequests(rows)
	assert.Nil(t, requests)
	assert.ErrorIs(t, err, pgx.ErrTxClosed)
}

func TestIsValidCareerField(t *testing.T) {
	assert.True(t, models.IsValidCareerField("Technology & Software"))
	assert.True(t, models.IsValidCareerField("Finance & Banking"))
	assert.False(t, models.IsValidCareerField("Astrology"))
	assert.False(t, models.IsValidCareerField(""))
}

func TestMentor_ToPublicResponse(t *testing.T) {
	mentor := &models.Mentor{
		ID:           1,
		Slug:         "amara-okafor",
		Name:         "Amara Okafor",
		Title:        "Senior Software Engineer",
		Field:        "Technology & Software",
		Expertise:    []string{"software engineering", "distributed systems"},
		Availability: models.AvailabilityAvailable,
	}

	response := mentor.ToPublicResponse("https://diasporabridge.test")

	assert.Equal(t, 1, response.ID)
	assert.Equal(t, "software engineering,distributed systems", response.Expertise)
	assert.Equal(t, "available", response.Availability)
	assert.Equal(t, "https://diasporabridge.test/mentor/amara-okafor", response.Link)
}
