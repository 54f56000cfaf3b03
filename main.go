package main

import (
	"os"
	"time"

	"marketplace-app/config"
	"marketplace-app/database"
	routes "marketplace-app/internal/app/http"
	"marketplace-app/internal/infra/pagarme"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()

	gateway := pagarme.NewClient(config.PAGARME_API_URL, config.PAGARME_API_KEY)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("CORS_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, database.DB, gateway, config.PAGARME_API_KEY)

	r.Run(":" + config.PORT)
}
