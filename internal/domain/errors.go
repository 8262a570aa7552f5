package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the request id does not exist in the store.
	ErrNotFound = errors.New("purchase request not found")

	// ErrConflict means another admin mutated the request first; the caller
	// must refetch and decide whether to re-apply.
	ErrConflict = errors.New("purchase request was modified by another admin")

	// ErrMissingRejectionNotes blocks a rejection without an explanation for
	// the buyer.
	ErrMissingRejectionNotes = errors.New("rejecting a request requires admin notes")
)

// InvalidTransitionError reports an edge outside the legal status graph.
type InvalidTransitionError struct {
	From RequestStatus
	To   RequestStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %q to %q", e.From, e.To)
}

// MessageTooLongError reports a contact message over the channel limit.
// The message is never truncated; the admin has to shorten it.
type MessageTooLongError struct {
	Channel   ContactChannel
	Length    int
	MaxLength int
}

func (e *MessageTooLongError) Error() string {
	return fmt.Sprintf("message of %d characters exceeds the %s limit of %d", e.Length, e.Channel, e.MaxLength)
}
