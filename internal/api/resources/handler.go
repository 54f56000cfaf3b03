package resources

import (
	"net/http"
	"strings"

	"marketplace-app/database"
	"marketplace-app/internal/domain/resources"

	"github.com/gin-gonic/gin"
)

// GET /resources?category=
func ListResources(c *gin.Context) {
	q := database.DB.Model(&resources.Resource{}).Where("approved = ?", true)

	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	var rows []resources.Resource
	if err := q.Order("title ASC").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load resources"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// POST /resources (auth) — submissions land unapproved.
func SubmitResource(c *gin.Context) {
	var input struct {
		Title       string `json:"title" binding:"required"`
		URL         string `json:"url" binding:"required,url"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !strings.HasPrefix(input.URL, "http://") && !strings.HasPrefix(input.URL, "https://") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL must be http(s)"})
		return
	}

	userID := c.GetUint("user_id")

	resource := resources.Resource{
		Title:         input.Title,
		URL:           input.URL,
		Description:   input.Description,
		Category:      input.Category,
		Approved:      false,
		SubmittedByID: &userID,
	}

	if err := database.DB.Create(&resource).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Resource may already exist", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Resource submitted for review", "id": resource.ID})
}

/* ---------------- admin ---------------- */

// GET /admin/resources/pending
func ListPendingResources(c *gin.Context) {
	var rows []resources.Resource
	if err := database.DB.
		Where("approved = ?", false).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load resources"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// POST /admin/resources/:id/approve
func ApproveResource(c *gin.Context) {
	res := database.DB.Model(&resources.Resource{}).
		Where("id = ?", c.Param("id")).
		Update("approved", true)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve resource"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Resource approved"})
}

// DELETE /admin/resources/:id
func DeleteResource(c *gin.Context) {
	res := database.DB.Delete(&resources.Resource{}, c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete resource"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Resource deleted"})
}
