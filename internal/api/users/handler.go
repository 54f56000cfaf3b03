package users

import (
	"net/http"
	"time"

	"marketplace-app/database"
	"marketplace-app/internal/domain/access"
	"marketplace-app/internal/domain/plans"
	"marketplace-app/internal/domain/subscriptions"
	"marketplace-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func GetCurrentUser(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.
		Preload("Profile").
		Where("email = ?", email).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	tier := plans.TierFree
	if user.Profile != nil {
		tier = user.Profile.Tier
	}

	// Latest subscription, if any; rows are never deleted so the newest
	// one is the current billing relationship.
	var sub *subscriptions.Subscription
	var latest subscriptions.Subscription
	if err := database.DB.
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		First(&latest).Error; err == nil {
		sub = &latest
	}

	now := time.Now()
	state := access.ComputeEffectiveAccessState(now, tier, sub)

	resp := MeResponse{
		User: UserDTO{
			ID:         user.ID,
			Email:      user.Email,
			Name:       user.Name,
			Lastname:   user.Lastname,
			Role:       user.Role,
			IsVerified: user.IsVerified,
		},
		Billing: BillingDTO{
			Subscription: buildSubscriptionDTO(sub),
			Plan:         buildPlanDTO(sub),
		},
		Access: AccessDTO{
			Tier:         tier,
			State:        string(state),
			Capabilities: access.CapabilitiesFor(state, tier),
		},
	}

	c.JSON(http.StatusOK, resp)
}

func buildSubscriptionDTO(sub *subscriptions.Subscription) *SubscriptionDTO {
	if sub == nil {
		return nil
	}
	return &SubscriptionDTO{
		Status:                sub.Status,
		CurrentPeriodStart:    sub.CurrentPeriodStart,
		CurrentPeriodEnd:      sub.CurrentPeriodEnd,
		CanceledAt:            sub.CanceledAt,
		LastPaymentError:      sub.LastPaymentError,
		PagarmeSubscriptionID: sub.PagarmeSubscriptionID,
	}
}

func buildPlanDTO(sub *subscriptions.Subscription) *PlanDTO {
	if sub == nil || sub.PlanID == nil {
		return nil
	}
	var plan plans.Plan
	if err := database.DB.First(&plan, *sub.PlanID).Error; err != nil {
		return nil
	}
	return &PlanDTO{
		ID:            plan.ID,
		Name:          plan.Name,
		Interval:      plan.Interval,
		PriceBRL:      plan.PriceBRL,
		PagarmePlanID: plan.PagarmePlanID,
	}
}

func VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	type Token struct {
		UserID int
	}
	var t Token
	if err := database.DB.Table("verification_tokens").Where("token = ?", token).First(&t).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}

	if err := database.DB.Model(&users.User{}).Where("id = ?", t.UserID).Update("is_verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
		return
	}

	_ = database.DB.Exec("DELETE FROM verification_tokens WHERE token = ?", token)

	redirectURL := "http://localhost:5173/signin"
	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}
