package paywebhook

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketplace-app/database"
	"marketplace-app/internal/domain/plans"
	"marketplace-app/internal/domain/subscriptions"
	"marketplace-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "sk_test_webhook_secret"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))
	return db
}

func setupRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/webhooks/payment", NewHandler(db, testSecret).HandlePostback)
	return r
}

func seedSubscription(t *testing.T, db *gorm.DB) subscriptions.Subscription {
	t.Helper()

	user := users.User{Name: "Ana", Lastname: "Souza", Email: "ana@example.com", Role: "user", IsVerified: true}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&users.Profile{UserID: user.ID, Tier: plans.TierPremium}).Error)

	sub := subscriptions.Subscription{
		UserID:                user.ID,
		PagarmeSubscriptionID: "sub_123",
		Status:                subscriptions.StatusActive,
	}
	require.NoError(t, db.Create(&sub).Error)
	return sub
}

func signSHA256(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func signSHA1(body []byte) string {
	mac := hmac.New(sha1.New, []byte(testSecret))
	mac.Write(body)
	return "sha1=" + hex.EncodeToString(mac.Sum(nil))
}

func postEvent(r *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("X-Hub-Signature", signature)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPostback_RejectsBadSignature(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	seedSubscription(t, db)

	body := []byte(`{"type":"subscription.canceled","data":{"id":"sub_123"}}`)

	w := postEvent(r, body, "sha256=deadbeef")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "error")

	// no mutation
	var sub subscriptions.Subscription
	require.NoError(t, db.Where("pagarme_subscription_id = ?", "sub_123").First(&sub).Error)
	assert.Equal(t, subscriptions.StatusActive, sub.Status)
	assert.Nil(t, sub.CanceledAt)
}

func TestPostback_RejectsMissingSignature(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)

	w := postEvent(r, []byte(`{"type":"subscription.updated","data":{"id":"sub_123"}}`), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPostback_AcceptsLegacySHA1(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	seedSubscription(t, db)

	body := []byte(`{"type":"subscription.payment_succeeded","data":{"id":"sub_123"}}`)

	w := postEvent(r, body, signSHA1(body))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"received":true`)
}

func TestPostback_UpdatedSetsStatusAndCycleBounds(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	seedSubscription(t, db)

	body := []byte(`{
		"type": "subscription.updated",
		"data": {
			"id": "sub_123",
			"status": "active",
			"current_cycle": {
				"start_at": "2024-01-01T00:00:00Z",
				"end_at": "2024-02-01T00:00:00Z"
			}
		}
	}`)

	w := postEvent(r, body, signSHA256(body))
	assert.Equal(t, http.StatusOK, w.Code)

	var sub subscriptions.Subscription
	require.NoError(t, db.Where("pagarme_subscription_id = ?", "sub_123").First(&sub).Error)
	assert.Equal(t, subscriptions.StatusActive, sub.Status)
	require.NotNil(t, sub.CurrentPeriodStart)
	require.NotNil(t, sub.CurrentPeriodEnd)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), sub.CurrentPeriodStart.UTC())
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), sub.CurrentPeriodEnd.UTC())
}

func TestPostback_UpdatedWithoutStatusDefaultsToActive(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	sub := seedSubscription(t, db)
	require.NoError(t, db.Model(&sub).Update("status", subscriptions.StatusPending).Error)

	body := []byte(`{"type":"subscription.updated","data":{"id":"sub_123"}}`)

	w := postEvent(r, body, signSHA256(body))
	assert.Equal(t, http.StatusOK, w.Code)

	var got subscriptions.Subscription
	require.NoError(t, db.Where("pagarme_subscription_id = ?", "sub_123").First(&got).Error)
	assert.Equal(t, subscriptions.StatusActive, got.Status)
}

func TestPostback_CanceledDowngradesProfile(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	sub := seedSubscription(t, db)

	body := []byte(`{"type":"subscription.canceled","data":{"id":"sub_123"}}`)

	w := postEvent(r, body, signSHA256(body))
	assert.Equal(t, http.StatusOK, w.Code)

	var got subscriptions.Subscription
	require.NoError(t, db.Where("pagarme_subscription_id = ?", "sub_123").First(&got).Error)
	assert.Equal(t, subscriptions.StatusCanceled, got.Status)
	assert.NotNil(t, got.CanceledAt)

	var profile users.Profile
	require.NoError(t, db.Where("user_id = ?", sub.UserID).First(&profile).Error)
	assert.Equal(t, plans.TierFree, profile.Tier)
}

func TestPostback_PaymentFailedFallbackMessage(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	seedSubscription(t, db)

	body := []byte(`{"type":"subscription.payment_failed","data":{"id":"sub_123","payment":{}}}`)

	w := postEvent(r, body, signSHA256(body))
	assert.Equal(t, http.StatusOK, w.Code)

	var got subscriptions.Subscription
	require.NoError(t, db.Where("pagarme_subscription_id = ?", "sub_123").First(&got).Error)
	assert.Equal(t, subscriptions.StatusPaymentFailed, got.Status)
	require.NotNil(t, got.LastPaymentError)
	assert.Equal(t, "Unknown error", *got.LastPaymentError)
}

func TestPostback_PaymentFailedKeepsProvidedMessage(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	seedSubscription(t, db)

	body := []byte(`{"type":"subscription.payment_failed","data":{"id":"sub_123","payment":{"error_message":"card declined"}}}`)

	w := postEvent(r, body, signSHA256(body))
	assert.Equal(t, http.StatusOK, w.Code)

	var got subscriptions.Subscription
	require.NoError(t, db.Where("pagarme_subscription_id = ?", "sub_123").First(&got).Error)
	require.NotNil(t, got.LastPaymentError)
	assert.Equal(t, "card declined", *got.LastPaymentError)
}

func TestPostback_PaymentSucceededIsReplaySafe(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	sub := seedSubscription(t, db)
	require.NoError(t, db.Model(&sub).Update("status", subscriptions.StatusPaymentFailed).Error)

	body := []byte(`{"type":"subscription.payment_succeeded","data":{"id":"sub_123"}}`)

	for i := 0; i < 2; i++ {
		w := postEvent(r, body, signSHA256(body))
		assert.Equal(t, http.StatusOK, w.Code, "delivery %d", i+1)

		var got subscriptions.Subscription
		require.NoError(t, db.Where("pagarme_subscription_id = ?", "sub_123").First(&got).Error)
		assert.Equal(t, subscriptions.StatusActive, got.Status, "delivery %d", i+1)
	}
}

func TestPostback_UnknownEventTypeIsAcknowledged(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	seedSubscription(t, db)

	body := []byte(`{"type":"something.else","data":{"id":"sub_123"}}`)

	w := postEvent(r, body, signSHA256(body))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"received":true`)

	var got subscriptions.Subscription
	require.NoError(t, db.Where("pagarme_subscription_id = ?", "sub_123").First(&got).Error)
	assert.Equal(t, subscriptions.StatusActive, got.Status)
}

func TestPostback_UnknownSubscriptionIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	seedSubscription(t, db)

	body := []byte(`{"type":"subscription.canceled","data":{"id":"sub_does_not_exist"}}`)

	w := postEvent(r, body, signSHA256(body))
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&subscriptions.Subscription{}).Where("status = ?", subscriptions.StatusCanceled).Count(&count)
	assert.Zero(t, count)
}

func TestPostback_MalformedJSONWithValidSignature(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(t, db)
	seedSubscription(t, db)

	body := []byte(`{"type": "subscription.updated", "data":`)

	w := postEvent(r, body, signSHA256(body))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var got subscriptions.Subscription
	require.NoError(t, db.Where("pagarme_subscription_id = ?", "sub_123").First(&got).Error)
	assert.Equal(t, subscriptions.StatusActive, got.Status)
}

func TestPostback_MissingSecretIsServerError(t *testing.T) {
	db := setupTestDB(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/webhooks/payment", NewHandler(db, "").HandlePostback)

	body := []byte(`{"type":"subscription.updated","data":{"id":"sub_123"}}`)
	w := postEvent(r, body, signSHA256(body))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
