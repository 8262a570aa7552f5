package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"pustaka-market/internal/domain"
)

const (
	EventRequestCreated   = "request_created"
	EventRequestContacted = "request_contacted"
	EventRequestApproved  = "request_approved"
	EventRequestRejected  = "request_rejected"
	EventRequestCompleted = "request_completed"
)

// RequestEventPayload is the minimal request snapshot for event consumers.
type RequestEventPayload struct {
	RequestID     uuid.UUID              `json:"request_id"`
	UserID        uuid.UUID              `json:"user_id"`
	ItemType      domain.ItemType        `json:"item_type"`
	ItemTitle     string                 `json:"item_title"`
	Amount        float64                `json:"amount"`
	Status        domain.RequestStatus   `json:"status"`
	AdminNotes    string                 `json:"admin_notes,omitempty"`
	ContactMethod *domain.ContactChannel `json:"contact_method,omitempty"`
	ContactDetail *string                `json:"contact_detail,omitempty"`
}

// EventForStatus maps a freshly entered status to its event type.
func EventForStatus(status domain.RequestStatus) (string, bool) {
	switch status {
	case domain.StatusContacted:
		return EventRequestContacted, true
	case domain.StatusApproved:
		return EventRequestApproved, true
	case domain.StatusRejected:
		return EventRequestRejected, true
	case domain.StatusCompleted:
		return EventRequestCompleted, true
	}
	return "", false
}

// Event represents a lightweight domain event.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub. Subscribers are explicit wiring;
// there is no ambient global bus.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload any) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
