package billing

import (
	"net/http"
	"time"

	"marketplace-app/database"
	"marketplace-app/internal/domain/billing"
	"marketplace-app/internal/domain/plans"
	"marketplace-app/internal/domain/subscriptions"
	"marketplace-app/internal/domain/users"
	"marketplace-app/internal/infra/pagarme"

	"github.com/gin-gonic/gin"
)

// POST /billing/confirm
//
// Called when the user lands back from the gateway checkout. Pulls the
// authoritative subscription state, and on an active/trial subscription
// upgrades the profile tier and records the first payment. Postbacks
// keep the row in sync afterwards.
func (h *Handler) ConfirmCheckout(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var sub subscriptions.Subscription
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&sub).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No subscription to confirm"})
		return
	}

	gwSub, err := h.gateway.GetSubscription(c.Request.Context(), sub.PagarmeSubscriptionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch gateway subscription", "details": err.Error()})
		return
	}

	status := pagarme.NormalizeStatus(&gwSub.Status)

	updates := map[string]interface{}{"status": status}
	if gwSub.CurrentCycle != nil {
		updates["current_period_start"] = gwSub.CurrentCycle.StartAt
		updates["current_period_end"] = gwSub.CurrentCycle.EndAt
	}
	if err := database.DB.Model(&subscriptions.Subscription{}).
		Where("id = ?", sub.ID).
		Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subscription"})
		return
	}

	if status != subscriptions.StatusActive && status != subscriptions.StatusTrial {
		c.JSON(http.StatusOK, gin.H{"status": status})
		return
	}

	tier := plans.TierPremium
	if sub.PlanID != nil {
		var plan plans.Plan
		if err := database.DB.First(&plan, *sub.PlanID).Error; err == nil {
			tier = plans.PlanTier(&plan)
		}
	}

	if err := database.DB.Model(&users.Profile{}).
		Where("user_id = ?", userID).
		Update("tier", tier).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile tier"})
		return
	}

	if status == subscriptions.StatusActive {
		recordFirstPayment(userID, &sub)
	}

	c.JSON(http.StatusOK, gin.H{"status": status, "tier": tier})
}

func recordFirstPayment(userID uint, sub *subscriptions.Subscription) {
	amount := 0.0
	if sub.PlanID != nil {
		var plan plans.Plan
		if err := database.DB.First(&plan, *sub.PlanID).Error; err == nil {
			amount = plan.PriceBRL
		}
	}

	payment := billing.Payment{
		UserID:                userID,
		PlanID:                sub.PlanID,
		PagarmeChargeID:       sub.PagarmeSubscriptionID + "-" + time.Now().Format("200601"),
		PagarmeSubscriptionID: &sub.PagarmeSubscriptionID,
		AmountBRL:             amount,
		Status:                "paid",
	}
	// Charge id is unique per cycle; a duplicate confirm is a no-op.
	database.DB.Create(&payment)
}
