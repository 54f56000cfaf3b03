package admin

import (
	"net/http"
	"time"

	"marketplace-app/database"
	"marketplace-app/internal/domain/billing"
	"marketplace-app/internal/domain/subscriptions"
	"marketplace-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Lastname   string `json:"lastname"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
	Tier       string `json:"tier"`
}

type AdminSubscription struct {
	ID                    uint       `json:"id"`
	Email                 string     `json:"email"`
	PagarmeSubscriptionID string     `json:"pagarme_subscription_id"`
	Status                string     `json:"status"`
	CurrentPeriodEnd      *time.Time `json:"current_period_end,omitempty"`
	CanceledAt            *time.Time `json:"canceled_at,omitempty"`
	LastPaymentError      *string    `json:"last_payment_error,omitempty"`
}

type AdminPayment struct {
	ID              uint    `json:"id"`
	Email           string  `json:"email"`
	PlanName        *string `json:"plan_name,omitempty"`
	AmountBRL       float64 `json:"amount_brl"`
	Status          string  `json:"status"`
	PagarmeChargeID string  `json:"pagarme_charge_id"`
	CreatedAt       string  `json:"created_at"`
}

type AdminStats struct {
	TotalUsers      int            `json:"total_users"`
	TotalRevenue    float64        `json:"total_revenue"`
	RecentRevenue   float64        `json:"recent_revenue"`
	UsersPerTier    map[string]int `json:"users_per_tier"`
	SubsPerStatus   map[string]int `json:"subscriptions_per_status"`
	PublishedAssets int64          `json:"published_assets"`
}

func AdminDashboard(c *gin.Context) {
	var stats AdminStats

	var totalUsers int64
	var totalRevenue float64
	var recentRevenue float64

	database.DB.Model(&users.User{}).Count(&totalUsers)
	database.DB.Model(&billing.Payment{}).Where("status = ?", "paid").Select("COALESCE(SUM(amount_brl), 0)").Scan(&totalRevenue)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	database.DB.Model(&billing.Payment{}).
		Where("status = ? AND created_at >= ?", "paid", thirtyDaysAgo).
		Select("COALESCE(SUM(amount_brl), 0)").Scan(&recentRevenue)

	stats.TotalUsers = int(totalUsers)
	stats.TotalRevenue = totalRevenue
	stats.RecentRevenue = recentRevenue

	type bucket struct {
		Key   string
		Count int
	}

	var tiers []bucket
	database.DB.
		Table("profiles").
		Select("tier as key, COUNT(user_id) as count").
		Group("tier").
		Scan(&tiers)

	stats.UsersPerTier = map[string]int{}
	for _, b := range tiers {
		stats.UsersPerTier[b.Key] = b.Count
	}

	var statuses []bucket
	database.DB.
		Table("subscriptions").
		Select("status as key, COUNT(id) as count").
		Group("status").
		Scan(&statuses)

	stats.SubsPerStatus = map[string]int{}
	for _, b := range statuses {
		stats.SubsPerStatus[b.Key] = b.Count
	}

	database.DB.Table("assets").Where("published = ?", true).Count(&stats.PublishedAssets)

	c.JSON(http.StatusOK, stats)
}

func ListAllUsers(c *gin.Context) {
	var all []users.User
	err := database.DB.Preload("Profile").Find(&all).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	var adminUsers []AdminUser
	for _, u := range all {
		tier := "free"
		if u.Profile != nil {
			tier = u.Profile.Tier
		}

		adminUsers = append(adminUsers, AdminUser{
			ID:         u.ID,
			Name:       u.Name,
			Lastname:   u.Lastname,
			Email:      u.Email,
			Role:       u.Role,
			IsVerified: u.IsVerified,
			Tier:       tier,
		})
	}

	c.JSON(http.StatusOK, adminUsers)
}

func ListAllSubscriptions(c *gin.Context) {
	var subs []subscriptions.Subscription
	if err := database.DB.Order("created_at DESC").Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscriptions"})
		return
	}

	emails := map[uint]string{}
	var all []users.User
	database.DB.Select("id", "email").Find(&all)
	for _, u := range all {
		emails[u.ID] = u.Email
	}

	var result []AdminSubscription
	for _, s := range subs {
		result = append(result, AdminSubscription{
			ID:                    s.ID,
			Email:                 emails[s.UserID],
			PagarmeSubscriptionID: s.PagarmeSubscriptionID,
			Status:                s.Status,
			CurrentPeriodEnd:      s.CurrentPeriodEnd,
			CanceledAt:            s.CanceledAt,
			LastPaymentError:      s.LastPaymentError,
		})
	}

	c.JSON(http.StatusOK, result)
}

func ListAllPayments(c *gin.Context) {
	var payments []billing.Payment
	err := database.DB.Preload("User").Preload("Plan").Order("created_at DESC").Find(&payments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	var result []AdminPayment
	for _, p := range payments {
		var planName *string
		if p.Plan != nil {
			planName = &p.Plan.Name
		}
		result = append(result, AdminPayment{
			ID:              p.ID,
			Email:           p.User.Email,
			PlanName:        planName,
			AmountBRL:       p.AmountBRL,
			Status:          p.Status,
			PagarmeChargeID: p.PagarmeChargeID,
			CreatedAt:       p.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	c.JSON(http.StatusOK, result)
}

func GetUserDetails(c *gin.Context) {
	userID := c.Param("id")

	var user users.User
	if err := database.DB.Preload("Profile").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var subs []subscriptions.Subscription
	if err := database.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscriptions"})
		return
	}

	var payments []billing.Payment
	if err := database.DB.Preload("Plan").Where("user_id = ?", userID).Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":          user,
		"subscriptions": subs,
		"payments":      payments,
	})
}
