package assets

import (
	"net/http"
	"strconv"

	"marketplace-app/database"
	"marketplace-app/internal/domain/assets"
	"marketplace-app/internal/domain/plans"
	"marketplace-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /assets?category=&q=&page=&per_page=
func ListAssets(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "0"))
	perPage = clampPerPage(perPage)

	q := publishedQuery(database.DB, c.Query("category"), c.Query("q"))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load assets"})
		return
	}

	var rows []assets.Asset
	if err := q.
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load assets"})
		return
	}

	out := ListResponse{
		Assets:  make([]AssetDTO, 0, len(rows)),
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}
	for _, a := range rows {
		out.Assets = append(out.Assets, toDTO(a))
	}

	c.JSON(http.StatusOK, out)
}

// GET /assets/:slug
func GetAssetBySlug(c *gin.Context) {
	var asset assets.Asset
	if err := database.DB.
		Where("slug = ? AND published = ?", c.Param("slug"), true).
		First(&asset).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		return
	}

	c.JSON(http.StatusOK, toDTO(asset))
}

// GET /assets/:slug/download (auth; premium assets need the premium tier)
func DownloadAsset(c *gin.Context) {
	var asset assets.Asset
	if err := database.DB.
		Where("slug = ? AND published = ?", c.Param("slug"), true).
		First(&asset).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		return
	}

	if asset.Premium {
		var profile users.Profile
		if err := database.DB.Where("user_id = ?", c.GetUint("user_id")).First(&profile).Error; err != nil ||
			profile.Tier != plans.TierPremium {
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "Premium subscription required"})
			return
		}
	}

	database.DB.Model(&assets.Asset{}).
		Where("id = ?", asset.ID).
		UpdateColumn("downloads", gorm.Expr("downloads + 1"))

	c.JSON(http.StatusOK, gin.H{"url": asset.FileURL})
}

// GET /assets/categories
func ListCategories(c *gin.Context) {
	var categories []string
	if err := database.DB.Model(&assets.Asset{}).
		Where("published = ? AND category <> ''", true).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

/* ---------------- admin ---------------- */

// POST /admin/assets
func CreateAsset(c *gin.Context) {
	var input upsertInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("user_id")

	asset := assets.Asset{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		PriceBRL:    input.PriceBRL,
		PreviewURL:  input.PreviewURL,
		FileURL:     input.FileURL,
		Premium:     input.Premium,
		CreatedByID: &userID,
	}

	if err := database.DB.Create(&asset).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create asset"})
		return
	}

	if _, err := assets.EnsureSlug(database.DB, &asset); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate slug", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toDTO(asset))
}

// PUT /admin/assets/:id
func UpdateAsset(c *gin.Context) {
	var asset assets.Asset
	if err := database.DB.First(&asset, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		return
	}

	var input upsertInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"title":       input.Title,
		"description": input.Description,
		"category":    input.Category,
		"price_brl":   input.PriceBRL,
		"preview_url": input.PreviewURL,
		"file_url":    input.FileURL,
		"premium":     input.Premium,
	}

	if err := database.DB.Model(&assets.Asset{}).
		Where("id = ?", asset.ID).
		Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update asset"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset updated"})
}

// DELETE /admin/assets/:id
func DeleteAsset(c *gin.Context) {
	res := database.DB.Delete(&assets.Asset{}, c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete asset"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted"})
}

// POST /admin/assets/:id/publish
func PublishAsset(c *gin.Context) {
	setPublished(c, true)
}

// POST /admin/assets/:id/unpublish
func UnpublishAsset(c *gin.Context) {
	setPublished(c, false)
}

func setPublished(c *gin.Context, published bool) {
	res := database.DB.Model(&assets.Asset{}).
		Where("id = ?", c.Param("id")).
		Update("published", published)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update asset"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset updated"})
}

func toDTO(a assets.Asset) AssetDTO {
	return AssetDTO{
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		Description: a.Description,
		Category:    a.Category,
		PriceBRL:    a.PriceBRL,
		PreviewURL:  a.PreviewURL,
		Premium:     a.Premium,
		Downloads:   a.Downloads,
		CreatedAt:   a.CreatedAt,
	}
}
