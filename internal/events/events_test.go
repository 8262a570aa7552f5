package events

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pustaka-market/internal/domain"
)

func TestEventBus_PublishReachesSubscribers(t *testing.T) {
	bus := NewEventBus()

	var got []*Event
	bus.Subscribe(EventRequestApproved, func(e *Event) error {
		got = append(got, e)
		return nil
	})
	bus.Subscribe(EventRequestApproved, func(e *Event) error {
		got = append(got, e)
		return nil
	})
	bus.Subscribe(EventRequestRejected, func(e *Event) error {
		t.Fatal("wrong event type delivered")
		return nil
	})

	bus.Publish(&Event{Type: EventRequestApproved, Payload: []byte(`{}`)})

	require.Len(t, got, 2)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestEventBus_PublishJSON(t *testing.T) {
	bus := NewEventBus()

	payload := RequestEventPayload{
		RequestID: uuid.New(),
		UserID:    uuid.New(),
		ItemType:  domain.ItemBundle,
		ItemTitle: "Go Bundle",
		Amount:    120,
		Status:    domain.StatusApproved,
	}

	var decoded RequestEventPayload
	bus.Subscribe(EventRequestApproved, func(e *Event) error {
		return json.Unmarshal(e.Payload, &decoded)
	})

	err := bus.PublishJSON(EventRequestApproved, payload)

	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestEventBus_HandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := NewEventBus()

	var second bool
	bus.Subscribe(EventRequestCompleted, func(e *Event) error {
		return errors.New("boom")
	})
	bus.Subscribe(EventRequestCompleted, func(e *Event) error {
		second = true
		return nil
	})

	bus.Publish(&Event{Type: EventRequestCompleted})

	assert.True(t, second)
}

func TestEventBus_NilBusPublishJSON(t *testing.T) {
	var bus *EventBus
	assert.NoError(t, bus.PublishJSON(EventRequestCreated, struct{}{}))
}

func TestEventForStatus(t *testing.T) {
	cases := map[domain.RequestStatus]string{
		domain.StatusContacted: EventRequestContacted,
		domain.StatusApproved:  EventRequestApproved,
		domain.StatusRejected:  EventRequestRejected,
		domain.StatusCompleted: EventRequestCompleted,
	}

	for status, want := range cases {
		got, ok := EventForStatus(status)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := EventForStatus(domain.StatusPending)
	assert.False(t, ok)
}
