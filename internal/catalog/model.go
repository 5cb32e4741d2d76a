package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Product struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Price is in points; NUMERIC in Postgres
	Price      decimal.Decimal `json:"price"`
	CategoryID string          `json:"category_id"`
	ImageURL   *string         `json:"image_url"`
	CreatedAt  time.Time       `json:"created_at"`
}

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// Error message
	// example: category not found
	Error string `json:"error"`
}

// CreateProductRequest payload of creation.
// swagger:model CreateProductRequest
type CreateProductRequest struct {
	Name       string          `json:"name"        example:"Pen"`
	Price      decimal.Decimal `json:"price"       example:"5" swaggertype:"number"`
	CategoryID string          `json:"category_id" example:"9b1f3c1e-3f0e-4a56-9d1d-0c7e6a4b2f10"`
	ImageURL   *string         `json:"image_url"`
}

// CreateCategoryRequest payload of creation.
// swagger:model CreateCategoryRequest
type CreateCategoryRequest struct {
	Name string `json:"name" example:"Books"`
}
