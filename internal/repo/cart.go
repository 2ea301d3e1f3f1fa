package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/parusoft/shop-backend/internal/models"
)

// CartMutator edits the cart's items inside the surrounding transaction.
// Item-level writes go through tx; the caller recomputes the total afterwards.
type CartMutator func(tx *gorm.DB, cart *models.Cart) error

func (r *GormRepo) GetCartByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// MutateCart runs fn against the user's cart under a row lock, then
// recomputes total_amount from current product prices and persists it.
func (r *GormRepo) MutateCart(ctx context.Context, userID uuid.UUID, createIfMissing bool, fn CartMutator) (*models.Cart, error) {
	var out *models.Cart
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		// sqlite (tests) has no FOR UPDATE; the write lock there is the whole DB anyway
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var cart models.Cart
		if err := q.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) || !createIfMissing {
				return err
			}
			cart = models.Cart{UserID: userID}
			if err := tx.Create(&cart).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("cart_id = ?", cart.ID).Find(&cart.Items).Error; err != nil {
			return err
		}

		if err := fn(tx, &cart); err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.ID).Find(&cart.Items).Error; err != nil {
			return err
		}

		total, err := cartTotal(tx, cart.Items)
		if err != nil {
			return err
		}
		cart.TotalAmount = total
		if err := tx.Model(&models.Cart{}).
			Where("id = ?", cart.ID).
			Update("total_amount", total).Error; err != nil {
			return err
		}

		out = &cart
		return nil
	})
	return out, err
}

// cartTotal resolves current product prices, not a snapshot at add time.
func cartTotal(tx *gorm.DB, items []models.CartItem) (float64, error) {
	if len(items) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}

	var products []models.Product
	if err := tx.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return 0, err
	}

	price := make(map[uuid.UUID]float64, len(products))
	for _, p := range products {
		price[p.ID] = p.Price
	}

	var total float64
	for _, it := range items {
		total += price[it.ProductID] * float64(it.Quantity)
	}
	return total, nil
}
