package assets

import "time"

type AssetDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	PriceBRL    float64   `json:"price_brl"`
	PreviewURL  string    `json:"preview_url"`
	Premium     bool      `json:"premium"`
	Downloads   int64     `json:"downloads"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListResponse struct {
	Assets  []AssetDTO `json:"assets"`
	Total   int64      `json:"total"`
	Page    int        `json:"page"`
	PerPage int        `json:"per_page"`
}

type upsertInput struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	PriceBRL    float64 `json:"price_brl"`
	PreviewURL  string  `json:"preview_url"`
	FileURL     string  `json:"file_url"`
	Premium     bool    `json:"premium"`
}
