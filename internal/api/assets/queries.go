package assets

import (
	"strings"

	"marketplace-app/internal/domain/assets"

	"gorm.io/gorm"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// publishedQuery applies the public browse filters: published only,
// optional category, optional title/description search.
func publishedQuery(db *gorm.DB, category, search string) *gorm.DB {
	q := db.Model(&assets.Asset{}).Where("published = ?", true)

	if category != "" {
		q = q.Where("category = ?", category)
	}

	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	return q
}

func clampPerPage(perPage int) int {
	if perPage <= 0 {
		return defaultPerPage
	}
	if perPage > maxPerPage {
		return maxPerPage
	}
	return perPage
}
