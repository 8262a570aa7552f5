package notification

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pustaka-market/internal/domain"
	"pustaka-market/internal/events"
	"pustaka-market/internal/mocks"
)

func TestLifecycleEventCreatesNotification(t *testing.T) {
	repo := new(mocks.NotificationRepository)
	bus := events.NewEventBus()
	svc := NewService(repo, nil, zerolog.Nop())
	svc.RegisterSubscribers(bus)

	payload := events.RequestEventPayload{
		RequestID: uuid.New(),
		UserID:    uuid.New(),
		ItemType:  domain.ItemBook,
		ItemTitle: "The Pragmatic Programmer",
		Amount:    30,
		Status:    domain.StatusApproved,
	}

	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == payload.UserID &&
			n.Type == domain.NotifRequestApproved &&
			n.Title == "Purchase request approved"
	})).Return(nil).Once()

	_ = bus.PublishJSON(events.EventRequestApproved, payload)

	repo.AssertExpectations(t)
}

func TestRejectionNotificationCarriesNotes(t *testing.T) {
	repo := new(mocks.NotificationRepository)
	bus := events.NewEventBus()
	svc := NewService(repo, nil, zerolog.Nop())
	svc.RegisterSubscribers(bus)

	payload := events.RequestEventPayload{
		RequestID:  uuid.New(),
		UserID:     uuid.New(),
		ItemTitle:  "Refactoring",
		Status:     domain.StatusRejected,
		AdminNotes: "Out of stock until next month",
	}

	var captured *domain.Notification
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*domain.Notification)
		}).Return(nil).Once()

	_ = bus.PublishJSON(events.EventRequestRejected, payload)

	require.NotNil(t, captured)
	assert.Equal(t, domain.NotifRequestRejected, captured.Type)
	assert.Contains(t, captured.Message, "Out of stock until next month")
}

type senderStub struct {
	to      string
	subject string
	text    string
	calls   int
}

func (s *senderStub) SendNotificationEmail(_ context.Context, to, subject, text string) error {
	s.to, s.subject, s.text = to, subject, text
	s.calls++
	return nil
}

func TestEmailContactSnapshotGetsStatusEmail(t *testing.T) {
	repo := new(mocks.NotificationRepository)
	sender := &senderStub{}
	bus := events.NewEventBus()
	svc := NewService(repo, sender, zerolog.Nop())
	svc.RegisterSubscribers(bus)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	channel := domain.ChannelEmail
	detail := "buyer@example.com"
	_ = bus.PublishJSON(events.EventRequestCompleted, events.RequestEventPayload{
		RequestID:     uuid.New(),
		UserID:        uuid.New(),
		ItemTitle:     "Domain-Driven Design",
		Status:        domain.StatusCompleted,
		ContactMethod: &channel,
		ContactDetail: &detail,
	})

	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, "buyer@example.com", sender.to)
	assert.Equal(t, "Purchase complete", sender.subject)
	assert.Contains(t, sender.text, "Domain-Driven Design")
}

func TestTelegramContactSnapshotGetsNoEmail(t *testing.T) {
	repo := new(mocks.NotificationRepository)
	sender := &senderStub{}
	bus := events.NewEventBus()
	svc := NewService(repo, sender, zerolog.Nop())
	svc.RegisterSubscribers(bus)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	channel := domain.ChannelTelegram
	detail := "@bookworm"
	_ = bus.PublishJSON(events.EventRequestApproved, events.RequestEventPayload{
		RequestID:     uuid.New(),
		UserID:        uuid.New(),
		ItemTitle:     "Refactoring",
		Status:        domain.StatusApproved,
		ContactMethod: &channel,
		ContactDetail: &detail,
	})

	assert.Equal(t, 0, sender.calls)
}

// Marking a notification read always carries the caller's id so the store
// can refuse rows owned by someone else.
func TestMarkAsRead_ScopedToCaller(t *testing.T) {
	repo := new(mocks.NotificationRepository)
	svc := NewService(repo, nil, zerolog.Nop())

	id := uuid.New()
	owner := uuid.New()
	stranger := uuid.New()

	repo.On("MarkAsRead", mock.Anything, id, owner).Return(nil).Once()
	repo.On("MarkAsRead", mock.Anything, id, stranger).Return(domain.ErrNotFound).Once()

	require.NoError(t, svc.MarkAsRead(context.Background(), id, owner))
	assert.ErrorIs(t, svc.MarkAsRead(context.Background(), id, stranger), domain.ErrNotFound)
	repo.AssertExpectations(t)
}

func TestCreatedEventIsIgnored(t *testing.T) {
	repo := new(mocks.NotificationRepository)
	bus := events.NewEventBus()
	svc := NewService(repo, nil, zerolog.Nop())
	svc.RegisterSubscribers(bus)

	_ = bus.PublishJSON(events.EventRequestCreated, events.RequestEventPayload{
		RequestID: uuid.New(),
		UserID:    uuid.New(),
	})

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
