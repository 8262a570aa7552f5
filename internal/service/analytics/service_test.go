package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pustaka-market/internal/domain"
	"pustaka-market/internal/mocks"
)

func TestGetStats_Computation(t *testing.T) {
	repo := new(mocks.PurchaseRequestRepository)
	svc := NewService(repo, nil)

	repo.On("CountByStatus", mock.Anything).Return(map[domain.RequestStatus]int64{
		domain.StatusPending:   4,
		domain.StatusContacted: 2,
		domain.StatusApproved:  1,
		domain.StatusRejected:  1,
		domain.StatusCompleted: 2,
	}, nil).Once()
	repo.On("SumAmountByStatus", mock.Anything, domain.StatusCompleted).Return(120.5, nil).Once()
	repo.On("SumAmountByStatus", mock.Anything, domain.StatusPending).Return(80.0, nil).Once()
	avg := 3600.0
	repo.On("AvgDecisionSeconds", mock.Anything).Return(&avg, nil).Once()

	stats, err := svc.GetStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.TotalRequests)
	assert.Equal(t, int64(4), stats.PendingRequests)
	assert.Equal(t, int64(2), stats.CompletedRequests)
	assert.InDelta(t, 0.2, stats.ConversionRate, 1e-9)
	assert.Equal(t, 120.5, stats.CompletedRevenue)
	assert.Equal(t, 80.0, stats.PendingValue)
	require.NotNil(t, stats.AvgDecisionSeconds)
	assert.Equal(t, 3600.0, *stats.AvgDecisionSeconds)
	repo.AssertExpectations(t)
}

func TestGetStats_EmptyStore(t *testing.T) {
	repo := new(mocks.PurchaseRequestRepository)
	svc := NewService(repo, nil)

	repo.On("CountByStatus", mock.Anything).Return(map[domain.RequestStatus]int64{}, nil).Once()
	repo.On("SumAmountByStatus", mock.Anything, domain.StatusCompleted).Return(0.0, nil).Once()
	repo.On("SumAmountByStatus", mock.Anything, domain.StatusPending).Return(0.0, nil).Once()
	repo.On("AvgDecisionSeconds", mock.Anything).Return(nil, nil).Once()

	stats, err := svc.GetStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalRequests)
	assert.Equal(t, 0.0, stats.ConversionRate)
	assert.Nil(t, stats.AvgDecisionSeconds)
}

func TestInvalidate_NilRedisIsNoop(t *testing.T) {
	svc := NewService(new(mocks.PurchaseRequestRepository), nil)
	svc.Invalidate(context.Background())
}
