package billing

import (
	"marketplace-app/internal/domain/plans"
	"marketplace-app/internal/domain/users"
	"time"
)

type Payment struct {
	ID                    uint `gorm:"primaryKey"`
	UserID                uint
	User                  users.User
	PlanID                *uint
	Plan                  *plans.Plan
	PagarmeChargeID       string `gorm:"uniqueIndex"`
	PagarmeSubscriptionID *string
	AmountBRL             float64
	Status                string
	CreatedAt             time.Time
}
