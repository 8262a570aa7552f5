package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pustaka-market/internal/domain"
)

type PurchaseRequestRepository struct {
	mock.Mock
}

func (m *PurchaseRequestRepository) Create(ctx context.Context, req *domain.PurchaseRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *PurchaseRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseRequest), args.Error(1)
}

func (m *PurchaseRequestRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.PurchaseRequest, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseRequest), args.Error(1)
}

func (m *PurchaseRequestRepository) List(ctx context.Context, filter domain.RequestFilter) ([]domain.PurchaseRequest, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.PurchaseRequest), args.Get(1).(int64), args.Error(2)
}

func (m *PurchaseRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus, notes *string, expectedVersion int64) (*domain.PurchaseRequest, error) {
	args := m.Called(ctx, id, status, notes, expectedVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseRequest), args.Error(1)
}

func (m *PurchaseRequestRepository) CountByStatus(ctx context.Context) (map[domain.RequestStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.RequestStatus]int64), args.Error(1)
}

func (m *PurchaseRequestRepository) SumAmountByStatus(ctx context.Context, status domain.RequestStatus) (float64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(float64), args.Error(1)
}

func (m *PurchaseRequestRepository) AvgDecisionSeconds(ctx context.Context) (*float64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*float64), args.Error(1)
}

func (m *PurchaseRequestRepository) ListByStatuses(ctx context.Context, statuses []domain.RequestStatus) ([]domain.PurchaseRequest, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseRequest), args.Error(1)
}
