package middleware

import (
	"net/http"

	"marketplace-app/database"
	"marketplace-app/internal/domain/plans"
	"marketplace-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// RequirePremiumTier gates premium-only routes on the profile tier. The
// tier is maintained by checkout confirmation and the gateway postback
// dispatcher, so a lapsed subscription locks these routes without any
// extra lookups here.
func RequirePremiumTier() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var profile users.Profile
		if err := database.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Profile not found",
			})
			return
		}

		if profile.Tier != plans.TierPremium {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error": "Premium subscription required",
			})
			return
		}

		c.Next()
	}
}
