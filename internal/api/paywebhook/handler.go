package paywebhook

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"marketplace-app/internal/infra/pagarme"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler owns the gateway postback endpoint. The DB handle comes in by
// construction so the package never touches process globals and tests
// can point it at a throwaway database.
type Handler struct {
	db     *gorm.DB
	secret string
}

func NewHandler(db *gorm.DB, secret string) *Handler {
	return &Handler{db: db, secret: secret}
}

// POST /webhooks/payment
func (h *Handler) HandlePostback(c *gin.Context) {
	if h.secret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "PAGARME_API_KEY not configured"})
		return
	}

	payload, err := readPostbackBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading request body"})
		return
	}

	if !pagarme.VerifySignature(payload, c.GetHeader("X-Hub-Signature"), h.secret) {
		fmt.Println("❌ Postback signature verification failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Signature verification failed"})
		return
	}

	var event eventPayload
	if err := json.Unmarshal(payload, &event); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse postback body"})
		return
	}

	if err := h.Dispatch(event); err != nil {
		fmt.Println("❌ Postback processing failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func readPostbackBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
