package assets

import "time"

type Asset struct {
	ID uint `gorm:"primaryKey"`

	Title       string `gorm:"not null"`
	Slug        string `gorm:"not null;uniqueIndex:idx_assets_slug"`
	Description string
	Category    string `gorm:"index:idx_assets_category_published,priority:1"`

	// Price in BRL for one-off reference display; access is gated by
	// tier, not per-asset purchase.
	PriceBRL float64

	PreviewURL string
	FileURL    string `json:"-"`

	Premium   bool `gorm:"not null;default:false"`
	Published bool `gorm:"not null;default:false;index:idx_assets_category_published,priority:2"`

	Downloads int64 `gorm:"not null;default:0"`

	CreatedByID *uint

	CreatedAt time.Time
	UpdatedAt time.Time
}
