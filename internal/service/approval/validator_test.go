package approval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pustaka-market/internal/domain"
)

func batchOf(n int, each float64, itemType domain.ItemType, age time.Duration, now time.Time) []domain.PurchaseRequest {
	requests := make([]domain.PurchaseRequest, n)
	for i := range requests {
		requests[i] = domain.PurchaseRequest{
			Amount:    each,
			ItemType:  itemType,
			CreatedAt: now.Add(-age),
		}
	}
	return requests
}

func warningTypes(warnings []domain.BulkWarning) []domain.WarningType {
	types := make([]domain.WarningType, 0, len(warnings))
	for _, w := range warnings {
		types = append(types, w.Type)
	}
	return types
}

func TestValidateBulk_ValueThresholds(t *testing.T) {
	now := time.Now()

	cases := []struct {
		total        float64
		wantHigh     bool
		wantVeryHigh bool
	}{
		{500, false, false},
		{501, true, false},
		{2000, true, false},
		{2001, true, true},
	}

	for _, tc := range cases {
		warnings := ValidateBulk(batchOf(1, tc.total, domain.ItemBook, 0, now), now)
		types := warningTypes(warnings)

		if tc.wantHigh {
			assert.Contains(t, types, domain.WarningHighValue, "total %.0f", tc.total)
		} else {
			assert.NotContains(t, types, domain.WarningHighValue, "total %.0f", tc.total)
		}
		if tc.wantVeryHigh {
			assert.Contains(t, types, domain.WarningVeryHighValue, "total %.0f", tc.total)
		} else {
			assert.NotContains(t, types, domain.WarningVeryHighValue, "total %.0f", tc.total)
		}
	}
}

func TestValidateBulk_VeryHighValueIsError(t *testing.T) {
	now := time.Now()
	warnings := ValidateBulk(batchOf(1, 2001, domain.ItemBook, 0, now), now)

	for _, w := range warnings {
		if w.Type == domain.WarningVeryHighValue {
			assert.Equal(t, domain.SeverityError, w.Severity)
			return
		}
	}
	t.Fatal("very_high_value warning not found")
}

func TestValidateBulk_LargeBatch(t *testing.T) {
	now := time.Now()

	warnings := ValidateBulk(batchOf(20, 1, domain.ItemBook, 0, now), now)
	assert.NotContains(t, warningTypes(warnings), domain.WarningLargeBatch)

	warnings = ValidateBulk(batchOf(21, 1, domain.ItemBook, 0, now), now)
	assert.Contains(t, warningTypes(warnings), domain.WarningLargeBatch)
}

func TestValidateBulk_MixedTypes(t *testing.T) {
	now := time.Now()

	batch := batchOf(2, 1, domain.ItemBook, 0, now)
	warnings := ValidateBulk(batch, now)
	assert.NotContains(t, warningTypes(warnings), domain.WarningMixedTypes)

	batch[1].ItemType = domain.ItemBundle
	warnings = ValidateBulk(batch, now)
	types := warningTypes(warnings)
	assert.Contains(t, types, domain.WarningMixedTypes)

	for _, w := range warnings {
		if w.Type == domain.WarningMixedTypes {
			assert.Equal(t, domain.SeverityInfo, w.Severity)
		}
	}
}

func TestValidateBulk_OldRequests(t *testing.T) {
	now := time.Now()

	warnings := ValidateBulk(batchOf(3, 1, domain.ItemBook, 13*24*time.Hour, now), now)
	assert.NotContains(t, warningTypes(warnings), domain.WarningOldRequests)

	batch := batchOf(3, 1, domain.ItemBook, 0, now)
	batch[2].CreatedAt = now.Add(-15 * 24 * time.Hour)
	warnings = ValidateBulk(batch, now)
	assert.Contains(t, warningTypes(warnings), domain.WarningOldRequests)
}

func TestValidateBulk_CleanBatch(t *testing.T) {
	now := time.Now()
	warnings := ValidateBulk(batchOf(5, 10, domain.ItemBook, 24*time.Hour, now), now)
	assert.Empty(t, warnings)
}
