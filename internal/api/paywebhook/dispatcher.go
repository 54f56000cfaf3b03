package paywebhook

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace-app/internal/domain/plans"
	"marketplace-app/internal/domain/subscriptions"
	"marketplace-app/internal/domain/users"
	"marketplace-app/internal/infra/pagarme"

	"gorm.io/gorm"
)

const fallbackPaymentError = "Unknown error"

// How often we re-read and retry when a concurrent postback touched the
// same row between our read and our guarded update.
const maxUpdateRetries = 3

var errStaleRow = errors.New("subscription row changed since read")

// transitionResult is the full effect of one postback event: the column
// updates for the subscription row, plus whether the owning profile
// drops back to the free tier (canceled subscriptions only).
type transitionResult struct {
	updates          map[string]interface{}
	downgradeProfile bool
}

type transitionFunc func(now time.Time, data subscriptionData) transitionResult

var transitions = map[EventKind]transitionFunc{
	EventSubscriptionUpdated:  applyUpdated,
	EventPaymentSucceeded:     applyPaymentSucceeded,
	EventSubscriptionCanceled: applyCanceled,
	EventPaymentFailed:        applyPaymentFailed,
}

func applyUpdated(now time.Time, data subscriptionData) transitionResult {
	status := subscriptions.StatusActive
	if data.Status != nil && strings.TrimSpace(*data.Status) != "" {
		status = pagarme.NormalizeStatus(data.Status)
	}

	updates := map[string]interface{}{"status": status}
	if data.CurrentCycle != nil {
		updates["current_period_start"] = data.CurrentCycle.StartAt
		updates["current_period_end"] = data.CurrentCycle.EndAt
	}
	return transitionResult{updates: updates}
}

func applyPaymentSucceeded(now time.Time, data subscriptionData) transitionResult {
	return transitionResult{
		updates: map[string]interface{}{"status": subscriptions.StatusActive},
	}
}

func applyCanceled(now time.Time, data subscriptionData) transitionResult {
	return transitionResult{
		updates: map[string]interface{}{
			"status":      subscriptions.StatusCanceled,
			"canceled_at": now,
		},
		downgradeProfile: true,
	}
}

func applyPaymentFailed(now time.Time, data subscriptionData) transitionResult {
	msg := fallbackPaymentError
	if data.Payment != nil && data.Payment.ErrorMessage != nil && strings.TrimSpace(*data.Payment.ErrorMessage) != "" {
		msg = *data.Payment.ErrorMessage
	}
	return transitionResult{
		updates: map[string]interface{}{
			"status":             subscriptions.StatusPaymentFailed,
			"last_payment_error": msg,
		},
	}
}

// Dispatch looks up the transition for the event kind and applies it to
// the subscription row matching the gateway's subscription id.
//
// The update is guarded on the row's updated_at from the read, so two
// postbacks racing on the same subscription cannot silently overwrite
// each other; the loser re-reads and retries. Cancelation writes the
// subscription row and the profile downgrade in one transaction.
func (h *Handler) Dispatch(event eventPayload) error {
	transition, ok := transitions[EventKind(event.Type)]
	if !ok {
		fmt.Println("ℹ️ Ignoring unhandled postback event:", event.Type)
		return nil
	}

	result := transition(time.Now(), event.Data)

	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		var sub subscriptions.Subscription
		err := h.db.Where("pagarme_subscription_id = ?", event.Data.ID).First(&sub).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The gateway can deliver events for subscriptions this app
			// never created (shared account, deleted test data).
			fmt.Println("⚠️ Postback for unknown subscription:", event.Data.ID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("load subscription %s: %w", event.Data.ID, err)
		}

		txErr := h.db.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&subscriptions.Subscription{}).
				Where("pagarme_subscription_id = ? AND updated_at = ?", sub.PagarmeSubscriptionID, sub.UpdatedAt).
				Updates(result.updates)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errStaleRow
			}

			if result.downgradeProfile {
				if err := tx.Model(&users.Profile{}).
					Where("user_id = ?", sub.UserID).
					Update("tier", plans.TierFree).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if txErr == nil {
			return nil
		}
		if errors.Is(txErr, errStaleRow) {
			continue
		}
		return fmt.Errorf("apply %s to subscription %s: %w", event.Type, event.Data.ID, txErr)
	}

	return fmt.Errorf("subscription %s: gave up after %d conflicting updates", event.Data.ID, maxUpdateRetries)
}
