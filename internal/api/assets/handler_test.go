package assets

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketplace-app/database"
	"marketplace-app/internal/domain/assets"
	"marketplace-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&assets.Asset{}, &users.User{}, &users.Profile{}))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	return db
}

func testRouter(userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/assets", ListAssets)
	r.GET("/assets/categories", ListCategories)
	r.GET("/assets/:slug", GetAssetBySlug)
	r.GET("/assets/:slug/download", func(c *gin.Context) {
		c.Set("user_id", userID)
		DownloadAsset(c)
	})

	return r
}

func seedAsset(t *testing.T, db *gorm.DB, title, category string, premium, published bool) assets.Asset {
	t.Helper()

	a := assets.Asset{
		Title:     title,
		Category:  category,
		Premium:   premium,
		Published: published,
		FileURL:   "https://cdn.example.com/" + assets.MakeSlug(title) + ".zip",
	}
	require.NoError(t, db.Create(&a).Error)
	_, err := assets.EnsureSlug(db, &a)
	require.NoError(t, err)

	return a
}

func getJSON(t *testing.T, r *gin.Engine, path string, out interface{}) int {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w.Code
}

func TestListAssetsOnlyPublished(t *testing.T) {
	db := setupTestDB(t)
	r := testRouter(0)

	seedAsset(t, db, "Icon Pack", "icons", false, true)
	seedAsset(t, db, "Draft Pack", "icons", false, false)

	var out ListResponse
	code := getJSON(t, r, "/assets", &out)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(1), out.Total)
	require.Len(t, out.Assets, 1)
	assert.Equal(t, "Icon Pack", out.Assets[0].Title)
	assert.Equal(t, defaultPerPage, out.PerPage)
}

func TestListAssetsFilters(t *testing.T) {
	db := setupTestDB(t)
	r := testRouter(0)

	seedAsset(t, db, "UI Kit Dark", "ui", true, true)
	seedAsset(t, db, "UI Kit Light", "ui", false, true)
	seedAsset(t, db, "Texture Bundle", "textures", false, true)

	var out ListResponse
	getJSON(t, r, "/assets?category=ui", &out)
	assert.Equal(t, int64(2), out.Total)

	out = ListResponse{}
	getJSON(t, r, "/assets?q=texture", &out)
	assert.Equal(t, int64(1), out.Total)
	require.Len(t, out.Assets, 1)
	assert.Equal(t, "Texture Bundle", out.Assets[0].Title)
}

func TestListAssetsPagination(t *testing.T) {
	db := setupTestDB(t)
	r := testRouter(0)

	for i := 0; i < 5; i++ {
		seedAsset(t, db, fmt.Sprintf("Asset %d", i), "misc", false, true)
	}

	var out ListResponse
	getJSON(t, r, "/assets?per_page=2&page=3", &out)

	assert.Equal(t, int64(5), out.Total)
	assert.Equal(t, 3, out.Page)
	assert.Equal(t, 2, out.PerPage)
	assert.Len(t, out.Assets, 1)
}

func TestGetAssetBySlug(t *testing.T) {
	db := setupTestDB(t)
	r := testRouter(0)

	a := seedAsset(t, db, "Mesh Gradients", "backgrounds", false, true)
	hidden := seedAsset(t, db, "Hidden Pack", "backgrounds", false, false)

	var dto AssetDTO
	code := getJSON(t, r, "/assets/"+a.Slug, &dto)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, a.ID, dto.ID)

	code = getJSON(t, r, "/assets/"+hidden.Slug, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code = getJSON(t, r, "/assets/nope", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestDownloadFreeAsset(t *testing.T) {
	db := setupTestDB(t)

	pw := "x"
	user := users.User{Name: "Ana", Email: "ana@example.com", Password: &pw}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&users.Profile{UserID: user.ID, Tier: "free"}).Error)

	r := testRouter(user.ID)
	a := seedAsset(t, db, "Free Icons", "icons", false, true)

	var out map[string]string
	code := getJSON(t, r, "/assets/"+a.Slug+"/download", &out)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, a.FileURL, out["url"])

	var reloaded assets.Asset
	require.NoError(t, db.First(&reloaded, a.ID).Error)
	assert.Equal(t, int64(1), reloaded.Downloads)
}

func TestDownloadPremiumAssetRequiresPremiumTier(t *testing.T) {
	db := setupTestDB(t)

	pw := "x"
	user := users.User{Name: "Ana", Email: "ana@example.com", Password: &pw}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&users.Profile{UserID: user.ID, Tier: "free"}).Error)

	r := testRouter(user.ID)
	a := seedAsset(t, db, "Pro Mockups", "mockups", true, true)

	code := getJSON(t, r, "/assets/"+a.Slug+"/download", nil)
	assert.Equal(t, http.StatusPaymentRequired, code)

	var reloaded assets.Asset
	require.NoError(t, db.First(&reloaded, a.ID).Error)
	assert.Equal(t, int64(0), reloaded.Downloads, "blocked download must not count")

	require.NoError(t, db.Model(&users.Profile{}).
		Where("user_id = ?", user.ID).
		Update("tier", "premium").Error)

	var out map[string]string
	code = getJSON(t, r, "/assets/"+a.Slug+"/download", &out)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, a.FileURL, out["url"])
}

func TestListCategories(t *testing.T) {
	db := setupTestDB(t)
	r := testRouter(0)

	seedAsset(t, db, "A", "icons", false, true)
	seedAsset(t, db, "B", "icons", false, true)
	seedAsset(t, db, "C", "textures", false, true)
	seedAsset(t, db, "D", "hidden-cat", false, false)

	var categories []string
	code := getJSON(t, r, "/assets/categories", &categories)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"icons", "textures"}, categories)
}
