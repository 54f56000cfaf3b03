package billing

import (
	"marketplace-app/internal/infra/pagarme"
)

// Handler groups the billing endpoints around one gateway client,
// constructed once at startup and shared by all requests.
type Handler struct {
	gateway *pagarme.Client
}

func NewHandler(gateway *pagarme.Client) *Handler {
	return &Handler{gateway: gateway}
}
