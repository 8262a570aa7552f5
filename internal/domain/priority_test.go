package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pustaka-market/internal/domain"
)

func pendingRequestAged(now time.Time, age time.Duration) *domain.PurchaseRequest {
	return &domain.PurchaseRequest{
		Status:    domain.StatusPending,
		CreatedAt: now.Add(-age),
	}
}

func TestPriorityFor_Thresholds(t *testing.T) {
	now := time.Now()

	day := 24 * time.Hour
	cases := []struct {
		name string
		age  time.Duration
		want domain.Priority
	}{
		{"exactly 7 days", 7 * day, domain.PriorityHigh},
		{"just under 7 days", 7*day - time.Minute, domain.PriorityMedium},
		{"exactly 3 days", 3 * day, domain.PriorityMedium},
		{"just under 3 days", 3*day - time.Minute, domain.PriorityLow},
		{"brand new", 0, domain.PriorityLow},
		{"ancient", 30 * day, domain.PriorityHigh},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.PriorityFor(pendingRequestAged(now, tc.age), now)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPriorityFor_OnlyPending(t *testing.T) {
	now := time.Now()

	for _, status := range []domain.RequestStatus{
		domain.StatusContacted,
		domain.StatusApproved,
		domain.StatusRejected,
		domain.StatusCompleted,
	} {
		req := pendingRequestAged(now, 10*24*time.Hour)
		req.Status = status
		assert.Equal(t, domain.PriorityNone, domain.PriorityFor(req, now), "status %s", status)
	}

	assert.Equal(t, domain.PriorityNone, domain.PriorityFor(nil, now))
}
