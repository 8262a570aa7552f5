package domain

import "time"

// Priority is a derived urgency tier based on how long a pending request has
// waited. It is used for sorting and display only and must be recomputed on
// every read; it is never persisted on the row.
type Priority string

const (
	PriorityNone   Priority = ""
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

const (
	priorityHighAge   = 7 * 24 * time.Hour
	priorityMediumAge = 3 * 24 * time.Hour
)

// PriorityFor derives the urgency tier of a request at the given instant.
// Only pending requests carry a priority; everything else returns none.
func PriorityFor(req *PurchaseRequest, now time.Time) Priority {
	if req == nil || req.Status != StatusPending {
		return PriorityNone
	}

	age := now.Sub(req.CreatedAt)
	switch {
	case age >= priorityHighAge:
		return PriorityHigh
	case age >= priorityMediumAge:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
