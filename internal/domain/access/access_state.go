package access

import (
	"time"

	"marketplace-app/internal/domain/plans"
	"marketplace-app/internal/domain/subscriptions"
	"marketplace-app/internal/infra/pagarme"
)

// Effective access for UI/product: full|trial|limited|locked
func ComputeEffectiveAccessState(now time.Time, tier string, sub *subscriptions.Subscription) AccessState {
	// No subscription at all: premium tier still locked out of gated
	// content once nothing backs it.
	if sub == nil || sub.PagarmeSubscriptionID == "" {
		if tier == plans.TierPremium {
			return AccessLimited
		}
		return AccessLocked
	}

	switch pagarme.NormalizeStatus(&sub.Status) {
	case subscriptions.StatusActive:
		return AccessFull

	case subscriptions.StatusTrial:
		return AccessTrial

	case subscriptions.StatusPaymentFailed:
		// Grace: keep access until the paid-through date runs out.
		if sub.CurrentPeriodEnd != nil && now.Before(*sub.CurrentPeriodEnd) {
			return AccessLimited
		}
		return AccessLocked

	case subscriptions.StatusCanceled:
		if sub.CurrentPeriodEnd != nil && now.Before(*sub.CurrentPeriodEnd) {
			return AccessLimited
		}
		return AccessLocked

	default:
		return AccessLocked
	}
}
