package domain

import "github.com/google/uuid"

type WarningSeverity string

const (
	SeverityInfo    WarningSeverity = "info"
	SeverityWarning WarningSeverity = "warning"
	SeverityError   WarningSeverity = "error"
)

type WarningType string

const (
	WarningHighValue     WarningType = "high_value"
	WarningVeryHighValue WarningType = "very_high_value"
	WarningLargeBatch    WarningType = "large_batch"
	WarningMixedTypes    WarningType = "mixed_types"
	WarningOldRequests   WarningType = "old_requests"
)

// BulkWarning is advisory output of the pre-flight batch validation. It is
// surfaced to the admin but never blocks the action on its own; the UI
// decides whether an error-severity warning needs extra confirmation.
type BulkWarning struct {
	Type     WarningType     `json:"type"`
	Severity WarningSeverity `json:"severity"`
	Message  string          `json:"message"`
}

type BulkInput struct {
	IDs    []uuid.UUID `json:"ids"`
	Action BulkAction  `json:"action"`
	Notes  *string     `json:"notes,omitempty"`
}

// BulkFailure records one request that could not be transitioned.
type BulkFailure struct {
	ID     uuid.UUID `json:"id"`
	Reason string    `json:"reason"`
}

// BulkResult reports per-request outcomes of a bulk action. There is no
// atomicity across requests: callers must re-render from this structure
// rather than assuming uniform success.
type BulkResult struct {
	Warnings     []BulkWarning `json:"warnings"`
	SucceededIDs []uuid.UUID   `json:"succeeded_ids"`
	FailedIDs    []BulkFailure `json:"failed_ids"`
}
