package users

import "time"

// Profile holds the entitlement tier for a user. It shares the user's
// identifier and is downgraded to "free" when the user's subscription
// is canceled.
type Profile struct {
	UserID    uint   `gorm:"primaryKey;column:user_id"`
	Tier      string `gorm:"type:varchar(20);not null;default:'free'"`
	UpdatedAt time.Time
}
