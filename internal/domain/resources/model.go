package resources

import "time"

// Resource is a curated external link in the directory. Submissions
// start unapproved and only show publicly after an admin approves them.
type Resource struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	URL         string `gorm:"not null;uniqueIndex:idx_resources_url"`
	Description string
	Category    string `gorm:"index"`
	Approved    bool   `gorm:"not null;default:false;index"`

	SubmittedByID *uint

	CreatedAt time.Time
	UpdatedAt time.Time
}
