package database

import (
	"fmt"
	"log"
	"os"

	"marketplace-app/internal/domain/assets"
	"marketplace-app/internal/domain/billing"
	"marketplace-app/internal/domain/plans"
	"marketplace-app/internal/domain/resources"
	"marketplace-app/internal/domain/subscriptions"
	"marketplace-app/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Fatal("❌ Failed to enable pgcrypto extension:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}

// Migrate is split out so tests can run the same schema against sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// core
		&users.User{},
		&users.Profile{},
		&users.VerificationToken{},
		&plans.Plan{},
		&subscriptions.Subscription{},
		&billing.Payment{},

		// catalog
		&assets.Asset{},

		// directory
		&resources.Resource{},
	)
}
