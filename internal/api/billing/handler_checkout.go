package billing

import (
	"fmt"
	"net/http"

	"marketplace-app/database"
	"marketplace-app/internal/domain/plans"
	"marketplace-app/internal/domain/subscriptions"
	"marketplace-app/internal/domain/users"
	"marketplace-app/internal/infra/pagarme"

	"github.com/gin-gonic/gin"
)

// POST /billing/checkout
func (h *Handler) CreateCheckout(c *gin.Context) {
	var body struct {
		PlanID string `json:"plan_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.PlanID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid plan_id"})
		return
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	// allow-list plan id
	var plan plans.Plan
	if err := database.DB.Where("pagarme_plan_id = ?", body.PlanID).First(&plan).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan_id"})
		return
	}

	var user users.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	if !user.IsVerified {
		c.JSON(http.StatusForbidden, gin.H{"error": "Please verify your email first"})
		return
	}

	gwSub, err := h.gateway.CreateSubscription(c.Request.Context(), pagarme.CreateSubscriptionParams{
		PlanID:        plan.PagarmePlanID,
		CustomerName:  user.Name + " " + user.Lastname,
		CustomerEmail: user.Email,
		Code:          fmt.Sprint(user.ID),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create gateway subscription", "details": err.Error()})
		return
	}

	sub := subscriptions.Subscription{
		UserID:                user.ID,
		PagarmeSubscriptionID: gwSub.ID,
		Status:                subscriptions.StatusPending,
		PlanID:                &plan.ID,
	}
	if err := database.DB.Create(&sub).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"checkout_url": gwSub.CheckoutURL, "subscription_id": gwSub.ID})
}
