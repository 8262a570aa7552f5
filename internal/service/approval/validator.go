package approval

import (
	"fmt"
	"time"

	"pustaka-market/internal/domain"
)

// Fixed advisory thresholds for bulk actions.
const (
	highValueThreshold     = 500.0
	veryHighValueThreshold = 2000.0
	largeBatchThreshold    = 20
	oldRequestAge          = 14 * 24 * time.Hour
)

// ValidateBulk inspects a proposed batch in a single pass and returns
// advisory warnings. It never blocks the action; the caller decides what an
// error-severity warning requires from the admin.
func ValidateBulk(requests []domain.PurchaseRequest, now time.Time) []domain.BulkWarning {
	var (
		total     float64
		hasBook   bool
		hasBundle bool
		hasOld    bool
	)

	for i := range requests {
		total += requests[i].Amount
		switch requests[i].ItemType {
		case domain.ItemBook:
			hasBook = true
		case domain.ItemBundle:
			hasBundle = true
		}
		if now.Sub(requests[i].CreatedAt) > oldRequestAge {
			hasOld = true
		}
	}

	var warnings []domain.BulkWarning

	if total > highValueThreshold {
		warnings = append(warnings, domain.BulkWarning{
			Type:     domain.WarningHighValue,
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("Batch total $%.2f exceeds $%.0f", total, highValueThreshold),
		})
	}
	if total > veryHighValueThreshold {
		warnings = append(warnings, domain.BulkWarning{
			Type:     domain.WarningVeryHighValue,
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("Batch total $%.2f exceeds $%.0f", total, veryHighValueThreshold),
		})
	}
	if len(requests) > largeBatchThreshold {
		warnings = append(warnings, domain.BulkWarning{
			Type:     domain.WarningLargeBatch,
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("Batch of %d requests exceeds %d", len(requests), largeBatchThreshold),
		})
	}
	if hasBook && hasBundle {
		warnings = append(warnings, domain.BulkWarning{
			Type:     domain.WarningMixedTypes,
			Severity: domain.SeverityInfo,
			Message:  "Batch mixes book and bundle requests",
		})
	}
	if hasOld {
		warnings = append(warnings, domain.BulkWarning{
			Type:     domain.WarningOldRequests,
			Severity: domain.SeverityWarning,
			Message:  "Batch contains requests older than 14 days",
		})
	}

	return warnings
}
