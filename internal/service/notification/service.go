package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pustaka-market/internal/domain"
	"pustaka-market/internal/events"
	"pustaka-market/internal/repository"
)

// Service turns lifecycle events into buyer-facing notification rows and
// serves them back. It learns about transitions only through the event bus;
// the approval service has no reference to it.
type Service interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	RegisterSubscribers(bus *events.EventBus)
}

// EmailSender delivers a composed status update. Satisfied by the contact
// service; nil disables email delivery.
type EmailSender interface {
	SendNotificationEmail(ctx context.Context, to, subject, text string) error
}

type service struct {
	notifRepo repository.NotificationRepository
	emails    EmailSender
	logger    zerolog.Logger
}

func NewService(notifRepo repository.NotificationRepository, emails EmailSender, logger zerolog.Logger) Service {
	return &service{
		notifRepo: notifRepo,
		emails:    emails,
		logger:    logger.With().Str("component", "notification").Logger(),
	}
}

// RegisterSubscribers wires the service to every lifecycle event that a
// buyer should hear about. Intake events stay internal.
func (s *service) RegisterSubscribers(bus *events.EventBus) {
	for _, eventType := range []string{
		events.EventRequestContacted,
		events.EventRequestApproved,
		events.EventRequestRejected,
		events.EventRequestCompleted,
	} {
		bus.Subscribe(eventType, s.handleLifecycleEvent)
	}
}

func (s *service) handleLifecycleEvent(event *events.Event) error {
	var payload events.RequestEventPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		s.logger.Warn().Err(err).Str("event", event.Type).Msg("decode lifecycle event")
		return err
	}

	notifType, title, message := describe(event.Type, payload)
	if notifType == "" {
		return nil
	}

	data, _ := json.Marshal(map[string]string{
		"request_id": payload.RequestID.String(),
		"item_type":  string(payload.ItemType),
	})

	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  payload.UserID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    data,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		s.logger.Warn().Err(err).Str("request_id", payload.RequestID.String()).Msg("persist notification")
		return err
	}

	s.sendEmail(ctx, payload, title, message)
	return nil
}

// sendEmail mirrors the notification by email when the buyer's contact
// snapshot is an email address. Delivery failures are logged, not returned:
// the persisted row is the source of truth.
func (s *service) sendEmail(ctx context.Context, payload events.RequestEventPayload, subject, text string) {
	if s.emails == nil || payload.ContactMethod == nil || payload.ContactDetail == nil {
		return
	}
	if *payload.ContactMethod != domain.ChannelEmail || *payload.ContactDetail == "" {
		return
	}

	if err := s.emails.SendNotificationEmail(ctx, *payload.ContactDetail, subject, text); err != nil {
		s.logger.Warn().Err(err).Str("request_id", payload.RequestID.String()).Msg("send notification email")
	}
}

func describe(eventType string, payload events.RequestEventPayload) (domain.NotificationType, string, string) {
	switch eventType {
	case events.EventRequestContacted:
		return domain.NotifRequestContacted,
			"We are reaching out",
			fmt.Sprintf("An admin is contacting you about %q.", payload.ItemTitle)
	case events.EventRequestApproved:
		return domain.NotifRequestApproved,
			"Purchase request approved",
			fmt.Sprintf("Your request for %q ($%.2f) was approved.", payload.ItemTitle, payload.Amount)
	case events.EventRequestRejected:
		message := fmt.Sprintf("Your request for %q was rejected.", payload.ItemTitle)
		if payload.AdminNotes != "" {
			message = fmt.Sprintf("Your request for %q was rejected: %s", payload.ItemTitle, payload.AdminNotes)
		}
		return domain.NotifRequestRejected, "Purchase request rejected", message
	case events.EventRequestCompleted:
		return domain.NotifRequestCompleted,
			"Purchase complete",
			fmt.Sprintf("Your purchase of %q is complete. Enjoy!", payload.ItemTitle)
	}
	return "", "", ""
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *service) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.notifRepo.MarkAsRead(ctx, id, userID)
}
