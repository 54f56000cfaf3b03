package assets

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

/*
	Asset slug helpers
	------------------
	- Responsible ONLY for:
	  • generating slugs
	  • persisting them
	- No access logic, no billing logic here
*/

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// MakeSlug generates a URL-safe base slug from an asset title.
// Example: "Icon Pack Vol. 2" -> "icon-pack-vol-2"
func MakeSlug(title string) string {
	base := strings.ToLower(strings.TrimSpace(title))
	base = strings.ReplaceAll(base, " ", "-")
	base = strings.ReplaceAll(base, ".", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "asset"
	}
	return base
}

// EnsureSlug ensures asset.Slug exists and is persisted.
// Must be called AFTER the asset has an ID (after Create).
//
// IMPORTANT: pass db in, do NOT import marketplace-app/database here (avoids import cycle).
func EnsureSlug(db *gorm.DB, asset *Asset) (string, error) {
	if asset == nil {
		return "", fmt.Errorf("asset is nil")
	}
	if db == nil {
		return "", fmt.Errorf("db is nil")
	}

	if strings.TrimSpace(asset.Slug) != "" {
		return strings.TrimSpace(asset.Slug), nil
	}

	if asset.ID == 0 {
		return "", fmt.Errorf("asset ID missing (call EnsureSlug after Create)")
	}

	slug := fmt.Sprintf("%s-%d", MakeSlug(asset.Title), asset.ID)

	asset.Slug = slug

	if err := db.
		Model(&Asset{}).
		Where("id = ?", asset.ID).
		Update("slug", slug).Error; err != nil {
		return "", err
	}

	return slug, nil
}
