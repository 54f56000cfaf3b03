package routes

import (
	adminapi "marketplace-app/internal/api/admin"
	assetsapi "marketplace-app/internal/api/assets"
	authapi "marketplace-app/internal/api/auth"
	"marketplace-app/internal/api/billing"
	"marketplace-app/internal/api/paywebhook"
	plansapi "marketplace-app/internal/api/plans"
	resourcesapi "marketplace-app/internal/api/resources"
	"marketplace-app/internal/api/users"
	"marketplace-app/internal/app/http/middleware"
	"marketplace-app/internal/infra/pagarme"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, gateway *pagarme.Client, webhookSecret string) {
	webhook := paywebhook.NewHandler(db, webhookSecret)
	billingHandler := billing.NewHandler(gateway)
	plansHandler := plansapi.NewHandler(gateway)

	// Raw-body route: must stay outside the sanitizer, signature checks
	// run over the exact bytes the gateway sent.
	r.POST("/webhooks/payment", webhook.HandlePostback)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/plans", plansapi.ListPlans)
	public.GET("/verify", users.VerifyEmail)
	public.POST("/resend-verification", authapi.ResendVerification)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	public.GET("/assets", assetsapi.ListAssets)
	public.GET("/assets/categories", assetsapi.ListCategories)
	public.GET("/assets/:slug", assetsapi.GetAssetBySlug)
	public.GET("/resources", resourcesapi.ListResources)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", users.GetCurrentUser)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.GET("/payments", billingHandler.GetPaymentHistory)
	auth.POST("/billing/checkout", billingHandler.CreateCheckout)
	auth.POST("/billing/confirm", billingHandler.ConfirmCheckout)
	auth.GET("/billing/subscription", billingHandler.GetSubscription)

	auth.POST("/resources", resourcesapi.SubmitResource)

	// Premium-or-free split happens inside the handler: the asset row
	// decides whether the tier matters.
	auth.GET("/assets/:slug/download", assetsapi.DownloadAsset)

	// Subscribed users
	subscribed := auth.Group("/")
	subscribed.Use(middleware.RequirePremiumTier())
	subscribed.POST("/billing/cancel", billingHandler.CancelSubscription)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/subscriptions", adminapi.ListAllSubscriptions)
	admin.GET("/payments", adminapi.ListAllPayments)
	admin.GET("/user/:id", adminapi.GetUserDetails)
	admin.POST("/sync-plans", plansHandler.SyncPlans)

	admin.POST("/assets", assetsapi.CreateAsset)
	admin.PUT("/assets/:id", assetsapi.UpdateAsset)
	admin.DELETE("/assets/:id", assetsapi.DeleteAsset)
	admin.POST("/assets/:id/publish", assetsapi.PublishAsset)
	admin.POST("/assets/:id/unpublish", assetsapi.UnpublishAsset)

	admin.GET("/resources/pending", resourcesapi.ListPendingResources)
	admin.POST("/resources/:id/approve", resourcesapi.ApproveResource)
	admin.DELETE("/resources/:id", resourcesapi.DeleteResource)
}
