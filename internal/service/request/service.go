package request

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"pustaka-market/internal/domain"
	"pustaka-market/internal/events"
	"pustaka-market/internal/repository"
)

// Service covers intake and the read side. Requests always enter at pending;
// everything after creation goes through the approval service.
type Service interface {
	Create(ctx context.Context, input domain.CreatePurchaseRequestInput) (*domain.PurchaseRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseRequest, error)
	List(ctx context.Context, filter domain.RequestFilter) (domain.PaginatedResponse[domain.PurchaseRequest], error)
}

type service struct {
	repo repository.PurchaseRequestRepository
	bus  *events.EventBus
}

func NewService(repo repository.PurchaseRequestRepository, bus *events.EventBus) Service {
	return &service{repo: repo, bus: bus}
}

func (s *service) Create(ctx context.Context, input domain.CreatePurchaseRequestInput) (*domain.PurchaseRequest, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	req := &domain.PurchaseRequest{
		ID:                     uuid.New(),
		UserID:                 input.UserID,
		ItemType:               input.ItemType,
		ItemID:                 input.ItemID,
		ItemTitle:              strings.TrimSpace(input.ItemTitle),
		Amount:                 input.Amount,
		Status:                 domain.StatusPending,
		PreferredContactMethod: input.PreferredContactMethod,
		ContactDetail:          input.ContactDetail,
		UserMessage:            input.UserMessage,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	_ = s.bus.PublishJSON(events.EventRequestCreated, events.RequestEventPayload{
		RequestID: req.ID,
		UserID:    req.UserID,
		ItemType:  req.ItemType,
		ItemTitle: req.ItemTitle,
		Amount:    req.Amount,
		Status:    req.Status,
	})

	return req, nil
}

func validateInput(input domain.CreatePurchaseRequestInput) error {
	if input.UserID == uuid.Nil {
		return errors.New("user_id is required")
	}
	if !input.ItemType.Valid() {
		return errors.New("item_type must be book or bundle")
	}
	if input.ItemID == uuid.Nil {
		return errors.New("item_id is required")
	}
	if strings.TrimSpace(input.ItemTitle) == "" {
		return errors.New("item_title is required")
	}
	if input.Amount < 0 {
		return errors.New("amount must not be negative")
	}
	if input.PreferredContactMethod != nil && !input.PreferredContactMethod.Valid() {
		return errors.New("preferred_contact_method must be email, telegram or whatsapp")
	}
	return nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseRequest, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Priority = domain.PriorityFor(req, time.Now())
	return req, nil
}

func (s *service) List(ctx context.Context, filter domain.RequestFilter) (domain.PaginatedResponse[domain.PurchaseRequest], error) {
	requests, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return domain.PaginatedResponse[domain.PurchaseRequest]{}, err
	}

	now := time.Now()
	for i := range requests {
		requests[i].Priority = domain.PriorityFor(&requests[i], now)
	}

	return domain.NewPaginatedResponse(requests, filter.Page, filter.PageSize, total), nil
}
