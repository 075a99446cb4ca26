package services_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/services"
)

// stubRequestService counts sweep calls; the other operations are unused by
// the sweeper
type stubRequestService struct {
	sweeps atomic.Int32
}

func (s *stubRequestService) Submit(ctx context.Context, payload *models.SubmitRequestPayload) (*models.MentorshipRequest, error) {
	return nil, nil
}

func (s *stubRequestService) GetRequests(ctx context.Context, mentorID int, group models.RequestGroup) (*models.RequestsResponse, error) {
	return nil, nil
}

func (s *stubRequestService) GetRequest(ctx context.Context, mentorID int, requestID string) (*models.MentorshipRequest, error) {
	return nil, nil
}

func (s *stubRequestService) Approve(ctx context.Context, mentorID int, requestID string) (*models.MentorshipRequest, *models.Conversation, error) {
	return nil, nil, nil
}

func (s *stubRequestService) Decline(ctx context.Context, mentorID int, requestID string) (*models.MentorshipRequest, error) {
	return nil, nil
}

func (s *stubRequestService) CanRequestAgain(ctx context.Context, menteeEmail string) (bool, error) {
	return true, nil
}

func (s *stubRequestService) SweepExpired(ctx context.Context) (int, error) {
	s.sweeps.Add(1)
	return 0, nil
}

func TestExpirySweeper_SweepsImmediatelyAndOnTick(t *testing.T) {
	stub := &stubRequestService{}
	sweeper := services.NewExpirySweeper(stub, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return stub.sweeps.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after context cancellation")
	}
}
