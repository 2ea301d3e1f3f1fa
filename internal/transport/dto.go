package transport

import (
	"time"

	"github.com/google/uuid"
)

// Cart payloads use the field names the storefront already binds to
// (totalAmount, isInCart), the rest of the API is snake_case.

type CartProduct struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Images      []string  `json:"images"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
}

type CartItemResponse struct {
	ID        uuid.UUID   `json:"id"`
	Product   CartProduct `json:"product"`
	VariantID *uuid.UUID  `json:"variant_id,omitempty"`
	Quantity  uint        `json:"quantity"`
}

type CartResponse struct {
	ID          uuid.UUID          `json:"id,omitempty"`
	UserID      uuid.UUID          `json:"user_id,omitempty"`
	Items       []CartItemResponse `json:"items"`
	TotalAmount float64            `json:"totalAmount"`
}

type CartStatusResponse struct {
	IsInCart bool `json:"isInCart"`
	Quantity uint `json:"quantity"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type ProductListMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}
