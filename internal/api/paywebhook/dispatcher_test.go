package paywebhook

import (
	"testing"
	"time"

	"marketplace-app/internal/domain/subscriptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestTransitionTable_CoversAllKnownEvents(t *testing.T) {
	for _, kind := range []EventKind{
		EventSubscriptionUpdated,
		EventPaymentSucceeded,
		EventSubscriptionCanceled,
		EventPaymentFailed,
	} {
		assert.Contains(t, transitions, kind)
	}
	assert.Len(t, transitions, 4)
}

func TestApplyUpdated_UsesProviderStatusAndCycle(t *testing.T) {
	now := time.Now()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	res := applyUpdated(now, subscriptionData{
		ID:           "sub_123",
		Status:       strPtr("past_due"),
		CurrentCycle: &cycleData{StartAt: start, EndAt: end},
	})

	assert.False(t, res.downgradeProfile)
	assert.Equal(t, subscriptions.StatusPaymentFailed, res.updates["status"])
	assert.Equal(t, start, res.updates["current_period_start"])
	assert.Equal(t, end, res.updates["current_period_end"])
}

func TestApplyUpdated_DefaultsToActiveWithoutStatus(t *testing.T) {
	res := applyUpdated(time.Now(), subscriptionData{ID: "sub_123"})

	assert.Equal(t, subscriptions.StatusActive, res.updates["status"])
	assert.NotContains(t, res.updates, "current_period_start")
	assert.NotContains(t, res.updates, "current_period_end")
}

func TestApplyCanceled_SetsTimestampAndDowngrades(t *testing.T) {
	now := time.Now()
	res := applyCanceled(now, subscriptionData{ID: "sub_123"})

	assert.True(t, res.downgradeProfile)
	assert.Equal(t, subscriptions.StatusCanceled, res.updates["status"])
	require.Contains(t, res.updates, "canceled_at")
	assert.Equal(t, now, res.updates["canceled_at"])
}

func TestApplyPaymentFailed_MessageFallback(t *testing.T) {
	res := applyPaymentFailed(time.Now(), subscriptionData{ID: "sub_123"})
	assert.Equal(t, "Unknown error", res.updates["last_payment_error"])

	res = applyPaymentFailed(time.Now(), subscriptionData{
		ID:      "sub_123",
		Payment: &paymentData{ErrorMessage: strPtr("  ")},
	})
	assert.Equal(t, "Unknown error", res.updates["last_payment_error"])

	res = applyPaymentFailed(time.Now(), subscriptionData{
		ID:      "sub_123",
		Payment: &paymentData{ErrorMessage: strPtr("insufficient funds")},
	})
	assert.Equal(t, "insufficient funds", res.updates["last_payment_error"])
}

func TestApplyPaymentSucceeded_OnlyTouchesStatus(t *testing.T) {
	res := applyPaymentSucceeded(time.Now(), subscriptionData{ID: "sub_123"})

	assert.False(t, res.downgradeProfile)
	assert.Equal(t, map[string]interface{}{"status": subscriptions.StatusActive}, res.updates)
}
