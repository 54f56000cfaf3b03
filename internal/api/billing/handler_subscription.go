package billing

import (
	"net/http"

	"marketplace-app/database"
	"marketplace-app/internal/domain/subscriptions"

	"github.com/gin-gonic/gin"
)

// GET /billing/subscription
func (h *Handler) GetSubscription(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var sub subscriptions.Subscription
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&sub).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No subscription found"})
		return
	}

	c.JSON(http.StatusOK, sub)
}

// POST /billing/cancel
//
// Asks the gateway to cancel; the local row flips to canceled when the
// subscription.canceled postback lands.
func (h *Handler) CancelSubscription(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var sub subscriptions.Subscription
	if err := database.DB.
		Where("user_id = ? AND status IN ?", userID, []string{subscriptions.StatusActive, subscriptions.StatusTrial, subscriptions.StatusPaymentFailed}).
		Order("created_at DESC").
		First(&sub).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active subscription to cancel"})
		return
	}

	if _, err := h.gateway.CancelSubscription(c.Request.Context(), sub.PagarmeSubscriptionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel gateway subscription", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cancelation requested", "subscription_id": sub.PagarmeSubscriptionID})
}
