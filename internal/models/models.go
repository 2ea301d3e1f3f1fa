package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"primaryKey"           json:"id"`
	Name         string    `gorm:"not null"             json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null"             json:"-"`
	RefreshToken string    `json:"-"`
	PhoneNumber  string    `json:"phone_number"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (User) TableName() string {
	return "users"
}

type Product struct {
	ID          uuid.UUID        `gorm:"primaryKey"              json:"id"`
	Name        string           `gorm:"not null"                json:"name"`
	Category    string           `gorm:"index;not null"          json:"category"`
	Price       float64          `gorm:"not null;check:price>=0" json:"price"`
	Rating      float64          `gorm:"default:0"               json:"rating"`
	Popularity  int64            `gorm:"default:0"               json:"popularity"`
	ReleaseDate time.Time        `json:"release_date"`
	Description string           `gorm:"not null"                json:"description"`
	Images      []string         `gorm:"serializer:json"         json:"images"`
	Variants    []ProductVariant `gorm:"constraint:OnDelete:CASCADE" json:"variants"`
	Reviews     []ProductReview  `gorm:"constraint:OnDelete:CASCADE" json:"reviews"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Product) TableName() string {
	return "products"
}

type ProductVariant struct {
	ID        uuid.UUID `gorm:"primaryKey"     json:"id"`
	ProductID uuid.UUID `gorm:"index;not null" json:"product_id"`
	Color     string    `gorm:"not null"       json:"color"`
	Size      string    `gorm:"not null"       json:"size"`
	Stock     uint      `gorm:"not null"       json:"stock"`
}

func (v *ProductVariant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

func (ProductVariant) TableName() string {
	return "product_variants"
}

type ProductReview struct {
	ID        uuid.UUID `gorm:"primaryKey"     json:"id"`
	ProductID uuid.UUID `gorm:"index;not null" json:"product_id"`
	User      string    `gorm:"not null"       json:"user"`
	Rating    int       `gorm:"not null;check:rating>=1 AND rating<=5" json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *ProductReview) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (ProductReview) TableName() string {
	return "product_reviews"
}

type Cart struct {
	ID          uuid.UUID  `gorm:"primaryKey"           json:"id"`
	UserID      uuid.UUID  `gorm:"uniqueIndex;not null" json:"user_id"`
	Items       []CartItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount float64    `gorm:"not null;default:0"   json:"total_amount"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (Cart) TableName() string {
	return "carts"
}

type CartItem struct {
	ID        uuid.UUID  `gorm:"primaryKey"                            json:"id"`
	CartID    uuid.UUID  `gorm:"uniqueIndex:idx_cart_product;not null" json:"cart_id"`
	ProductID uuid.UUID  `gorm:"uniqueIndex:idx_cart_product;not null" json:"product_id"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Quantity  uint       `gorm:"default:1;check:quantity>0"            json:"quantity"`
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (CartItem) TableName() string {
	return "cart_items"
}
