package plans

import (
	"net/http"

	"marketplace-app/database"
	"marketplace-app/internal/domain/plans"
	"marketplace-app/internal/infra/pagarme"

	"github.com/gin-gonic/gin"
)

func ListPlans(c *gin.Context) {
	var plansList []plans.Plan
	if err := database.DB.Model(&plans.Plan{}).
		Order("price_brl ASC").
		Find(&plansList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plans"})
		return
	}

	c.JSON(http.StatusOK, plansList)
}

// Handler holds the gateway client for the admin sync endpoint.
type Handler struct {
	gateway *pagarme.Client
}

func NewHandler(gateway *pagarme.Client) *Handler {
	return &Handler{gateway: gateway}
}

// SyncPlans pulls the plan catalog from the gateway and upserts local
// rows keyed by the gateway plan id. Hidden plans are skipped.
func (h *Handler) SyncPlans(c *gin.Context) {
	remote, err := h.gateway.ListPlans(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch gateway plans", "details": err.Error()})
		return
	}

	synced := 0
	created := 0
	updated := 0
	skipped := 0

	for _, p := range remote {
		if !p.Visible {
			skipped++
			continue
		}

		amount := float64(p.Amount) / 100.0

		tier := plans.TierPremium
		if p.Amount == 0 {
			tier = plans.TierFree
		}

		var existing plans.Plan
		err := database.DB.Where("pagarme_plan_id = ?", p.ID).First(&existing).Error

		if err != nil {
			plan := plans.Plan{
				Name:          p.Name,
				PriceBRL:      amount,
				PagarmePlanID: p.ID,
				Interval:      p.Interval,
				Tier:          tier,
			}
			if err := database.DB.Create(&plan).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create plan", "details": err.Error()})
				return
			}
			created++
		} else {
			existing.Name = p.Name
			existing.PriceBRL = amount
			existing.Interval = p.Interval
			existing.Tier = tier

			if err := database.DB.Save(&existing).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan", "details": err.Error()})
				return
			}
			updated++
		}

		synced++
	}

	c.JSON(http.StatusOK, gin.H{
		"synced":  synced,
		"created": created,
		"updated": updated,
		"skipped": skipped,
	})
}
