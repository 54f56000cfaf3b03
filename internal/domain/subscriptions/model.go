package subscriptions

import "time"

// Subscription statuses. Transitions happen only through gateway
// postback events; rows are never deleted, only moved to canceled.
const (
	StatusActive        = "active"
	StatusCanceled      = "canceled"
	StatusPaymentFailed = "payment_failed"
	StatusTrial         = "trial"
	StatusPending       = "pending"
)

type Subscription struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"index"`

	// The gateway's own primary key for this subscription. At most one
	// row per gateway subscription.
	PagarmeSubscriptionID string `gorm:"column:pagarme_subscription_id;not null;uniqueIndex:idx_subscriptions_pagarme_subscription_id"`

	Status string `gorm:"type:varchar(32);not null;default:'pending';index"`

	CurrentPeriodStart *time.Time
	CurrentPeriodEnd   *time.Time
	CanceledAt         *time.Time

	LastPaymentError *string

	PlanID *uint

	CreatedAt time.Time
	UpdatedAt time.Time
}
