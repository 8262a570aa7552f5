package approval

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pustaka-market/internal/domain"
	"pustaka-market/internal/events"
	"pustaka-market/internal/metrics"
	"pustaka-market/internal/repository"
)

// Service executes single and bulk status transitions. Serialization across
// concurrent admins happens entirely through the per-row version check in
// the store; there is no client-side locking.
type Service interface {
	Transition(ctx context.Context, id uuid.UUID, target domain.RequestStatus, notes *string, expectedVersion int64) (*domain.PurchaseRequest, error)
	Bulk(ctx context.Context, input domain.BulkInput) (*domain.BulkResult, error)
}

type service struct {
	repo         repository.PurchaseRequestRepository
	bus          *events.EventBus
	logger       zerolog.Logger
	concurrency  int
	storeTimeout time.Duration
}

func NewService(repo repository.PurchaseRequestRepository, bus *events.EventBus, logger zerolog.Logger, concurrency int, storeTimeout time.Duration) Service {
	if concurrency < 1 {
		concurrency = 1
	}
	if storeTimeout <= 0 {
		storeTimeout = 5 * time.Second
	}
	return &service{
		repo:         repo,
		bus:          bus,
		logger:       logger.With().Str("component", "approval").Logger(),
		concurrency:  concurrency,
		storeTimeout: storeTimeout,
	}
}

func (s *service) Transition(ctx context.Context, id uuid.UUID, target domain.RequestStatus, notes *string, expectedVersion int64) (*domain.PurchaseRequest, error) {
	if !target.Valid() {
		return nil, &domain.InvalidTransitionError{To: target}
	}

	// Both store calls below carry their own deadline. Bulk dispatch runs
	// transitions on a detached context, so an unbounded read could wedge a
	// worker goroutine forever.
	readCtx, cancelRead := context.WithTimeout(ctx, s.storeTimeout)
	current, err := s.repo.GetByID(readCtx, id)
	cancelRead()
	if err != nil {
		metrics.IncTransitionFailure(failureReason(err))
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("transition read timed out, safe to retry: %w", err)
		}
		return nil, err
	}

	// A stale version always loses, even when the requested edge would be
	// legal from the current status.
	if current.Version != expectedVersion {
		metrics.IncTransitionFailure("conflict")
		return nil, domain.ErrConflict
	}

	if !current.Status.CanTransitionTo(target) {
		metrics.IncTransitionFailure("invalid_transition")
		return nil, &domain.InvalidTransitionError{From: current.Status, To: target}
	}

	if target == domain.StatusRejected && (notes == nil || strings.TrimSpace(*notes) == "") {
		metrics.IncTransitionFailure("missing_notes")
		return nil, domain.ErrMissingRejectionNotes
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	updated, err := s.repo.UpdateStatus(storeCtx, id, target, notes, expectedVersion)
	if err != nil {
		metrics.IncTransitionFailure(failureReason(err))
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("transition write timed out, safe to retry: %w", err)
		}
		return nil, err
	}

	metrics.IncTransition(string(target))
	s.publish(updated)

	return updated, nil
}

// Bulk validates the batch, then dispatches one transition per request on a
// bounded worker pool. Each request uses the version fetched just before
// dispatch, so a concurrent admin still produces a per-id conflict. Partial
// failure is reported as data, never as an error, and succeeded requests
// are never rolled back.
func (s *service) Bulk(ctx context.Context, input domain.BulkInput) (*domain.BulkResult, error) {
	if !input.Action.Valid() {
		return nil, fmt.Errorf("unknown bulk action %q", input.Action)
	}
	if len(input.IDs) == 0 {
		return nil, errors.New("bulk action requires at least one request id")
	}
	if input.Action == domain.ActionReject && (input.Notes == nil || strings.TrimSpace(*input.Notes) == "") {
		return nil, domain.ErrMissingRejectionNotes
	}

	requests, err := s.repo.GetByIDs(ctx, input.IDs)
	if err != nil {
		return nil, fmt.Errorf("fetch bulk requests: %w", err)
	}

	byID := make(map[uuid.UUID]domain.PurchaseRequest, len(requests))
	for _, req := range requests {
		byID[req.ID] = req
	}

	result := &domain.BulkResult{
		Warnings:     ValidateBulk(requests, time.Now()),
		SucceededIDs: []uuid.UUID{},
		FailedIDs:    []domain.BulkFailure{},
	}

	target := input.Action.TargetStatus()

	// In-flight transitions survive the caller walking away; the dashboard
	// converges on the next refetch.
	dispatchCtx := context.WithoutCancel(ctx)

	outcomes := make([]error, len(input.IDs))
	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup

	for i, id := range input.IDs {
		req, ok := byID[id]
		if !ok {
			outcomes[i] = domain.ErrNotFound
			continue
		}

		wg.Add(1)
		go func(i int, req domain.PurchaseRequest) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			_, err := s.Transition(dispatchCtx, req.ID, target, input.Notes, req.Version)
			outcomes[i] = err
		}(i, req)
	}
	wg.Wait()

	for i, id := range input.IDs {
		if outcomes[i] == nil {
			result.SucceededIDs = append(result.SucceededIDs, id)
			continue
		}
		result.FailedIDs = append(result.FailedIDs, domain.BulkFailure{
			ID:     id,
			Reason: failureReason(outcomes[i]),
		})
		s.logger.Warn().
			Str("request_id", id.String()).
			Str("action", string(input.Action)).
			Err(outcomes[i]).
			Msg("bulk transition failed")
	}

	metrics.IncBulkBatch(string(input.Action))
	s.logger.Info().
		Str("action", string(input.Action)).
		Int("requested", len(input.IDs)).
		Int("succeeded", len(result.SucceededIDs)).
		Int("failed", len(result.FailedIDs)).
		Msg("bulk action finished")

	return result, nil
}

func (s *service) publish(req *domain.PurchaseRequest) {
	eventType, ok := events.EventForStatus(req.Status)
	if !ok {
		return
	}

	payload := events.RequestEventPayload{
		RequestID:     req.ID,
		UserID:        req.UserID,
		ItemType:      req.ItemType,
		ItemTitle:     req.ItemTitle,
		Amount:        req.Amount,
		Status:        req.Status,
		ContactMethod: req.PreferredContactMethod,
		ContactDetail: req.ContactDetail,
	}
	if req.AdminNotes != nil {
		payload.AdminNotes = *req.AdminNotes
	}

	if err := s.bus.PublishJSON(eventType, payload); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Msg("publish lifecycle event")
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrMissingRejectionNotes):
		return "missing_notes"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	}

	var invalid *domain.InvalidTransitionError
	if errors.As(err, &invalid) {
		return "invalid_transition"
	}
	return "store_error"
}
