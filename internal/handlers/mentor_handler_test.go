package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/handlers"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/matching"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/services"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/jwt"
)

func TestMentorHandler_GetMentors(t *testing.T) {
	mockService := new(MockMentorService)
	handler := handlers.NewMentorHandler(mockService)
	router := gin.New()
	router.GET("/mentors", handler.GetMentors)

	mentors := []models.PublicMentorResponse{
		{ID: 1, Name: "Amara Okafor"},
		{ID: 2, Name: "Daniel Mensah"},
	}
	mockService.On("ListMentors", mock.Anything, false).Return(mentors, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/mentors", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":2`)
	mockService.AssertExpectations(t)
}

func TestMentorHandler_GetMentors_ForceRefresh(t *testing.T) {
	mockService := new(MockMentorService)
	handler := handlers.NewMentorHandler(mockService)
	router := gin.New()
	router.GET("/mentors", handler.GetMentors)

	mockService.On("ListMentors", mock.Anything, true).
		Return([]models.PublicMentorResponse{}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/mentors?refresh=true", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestMentorHandler_GetMentor_NumericID(t *testing.T) {
	mockService := new(MockMentorService)
	handler := handlers.NewMentorHandler(mockService)
	router := gin.New()
	router.GET("/mentors/:id", handler.GetMentor)

	mockService.On("GetMentor", mock.Anything, 7).
		Return(&models.PublicMentorResponse{ID: 7, Name: "Amara Okafor"}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/mentors/7", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Amara Okafor")
	mockService.AssertNotCalled(t, "GetMentorBySlug", mock.Anything, mock.Anything)
}

func TestMentorHandler_GetMentor_SlugFallback(t *testing.T) {
	mockService := new(MockMentorService)
	handler := handlers.NewMentorHandler(mockService)
	router := gin.New()
	router.GET("/mentors/:id", handler.GetMentor)

	mockService.On("GetMentorBySlug", mock.Anything, "amara-okafor").
		Return(&models.PublicMentorResponse{ID: 7, Name: "Amara Okafor"}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/mentors/amara-okafor", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestMentorHandler_GetMentor_NotFound(t *testing.T) {
	mockService := new(MockMentorService)
	handler := handlers.NewMentorHandler(mockService)
	router := gin.New()
	router.GET("/mentors/:id", handler.GetMentor)

	mockService.On("GetMentor", mock.Anything, 999).
		Return(nil, services.ErrMentorNotFound).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/mentors/999", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Mentor not found")
}

func TestMatchHandler_GetMatches(t *testing.T) {
	mockService := new(MockMatchingService)
	handler := handlers.NewMatchHandler(mockService)
	router := gin.New()

	session := &jwt.SessionClaims{
		AccountID: "acct-1",
		ProfileID: "mentee-1",
		Role:      models.RoleMentee,
	}
	router.GET("/matches", withSession(session), handler.GetMatches)

	matches := []matching.RankedMentor{
		{Mentor: &models.Mentor{ID: 1, Name: "Amara Okafor"}, Score: 26},
	}
	mockService.On("FindMatches", mock.Anything, "mentee-1").Return(matches, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/matches", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
	assert.Contains(t, w.Body.String(), `"score":26`)
	mockService.AssertExpectations(t)
}

func TestMatchHandler_GetMatches_MentorSessionRejected(t *testing.T) {
	mockService := new(MockMatchingService)
	handler := handlers.NewMatchHandler(mockService)
	router := gin.New()
	router.GET("/matches", withSession(mentorSession("7")), handler.GetMatches)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/matches", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockService.AssertNotCalled(t, "FindMatches", mock.Anything, mock.Anything)
}

func TestMatchHandler_GetMatches_NoSession(t *testing.T) {
	mockService := new(MockMatchingService)
	handler := handlers.NewMatchHandler(mockService)
	router := gin.New()
	router.GET("/matches", handler.GetMatches)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/matches", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
