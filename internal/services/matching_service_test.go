package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/services"
	apperrors "github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/errors"
)

func TestMatchingService_FindMatches(t *testing.T) {
	mockMentees := new(MockMenteeRepository)
	mockMentors := new(MockMentorRepository)
	service := services.NewMatchingService(mockMentees, mockMentors)
	ctx := context.Background()

	mentee := &models.Mentee{
		ID:          "mentee-1",
		CareerField: "Technology & Software",
		Interests:   []string{"software engineering"},
	}
	pool := []*models.Mentor{
		{
			ID:           1,
			Field:        "Technology & Software",
			Expertise:    []string{"software engineering"},
			Availability: models.AvailabilityAvailable,
			IsVisible:    true,
		},
		{
			ID:           2,
			Field:        "Creative & Media",
			Expertise:    []string{"photography"},
			Availability: models.AvailabilityUnavailable,
			IsVisible:    true,
		},
	}

	mockMentees.On("GetByID", ctx, "mentee-1").Return(mentee, nil).Once()
	mockMentors.On("GetAll", ctx, models.FilterOptions{OnlyVisible: true}).Return(pool, nil).Once()

	matches, err := service.FindMatches(ctx, "mentee-1")
	assert.NoError(t, err)
	assert.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].Mentor.ID)
	mockMentees.AssertExpectations(t)
	mockMentors.AssertExpectations(t)
}

func TestMatchingService_FindMatches_EmptyShortlist(t *testing.T) {
	mockMentees := new(MockMenteeRepository)
	mockMentors := new(MockMentorRepository)
	service := services.NewMatchingService(mockMentees, mockMentors)
	ctx := context.Background()

	mentee := &models.Mentee{ID: "mentee-1", CareerField: "Education"}
	mockMentees.On("GetByID", ctx, "mentee-1").Return(mentee, nil).Once()
	mockMentors.On("GetAll", ctx, models.FilterOptions{OnlyVisible: true}).
		Return([]*models.Mentor{}, nil).Once()

	matches, err := service.FindMatches(ctx, "mentee-1")
	assert.NoError(t, err)
	assert.Empty(t, matches)
}

func TestMatchingService_FindMatches_MenteeNotFound(t *testing.T) {
	mockMentees := new(MockMenteeRepository)
	mockMentors := new(MockMentorRepository)
	service := services.NewMatchingService(mockMentees, mockMentors)
	ctx := context.Background()

	mockMentees.On("GetByID", ctx, "missing").
		Return(nil, apperrors.NotFoundError("mentee")).Once()

	matches, err := service.FindMatches(ctx, "missing")
	assert.Nil(t, matches)
	assert.ErrorIs(t, err, services.ErrMenteeNotFound)
}
