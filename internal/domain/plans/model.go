package plans

type Plan struct {
	ID            uint `gorm:"primaryKey"`
	Name          string
	PriceBRL      float64
	PagarmePlanID string `gorm:"column:pagarme_plan_id;not null;uniqueIndex:idx_plans_pagarme_plan_id"`
	Interval      string
	Tier          string `gorm:"column:tier"` // "free" | "premium"
}
