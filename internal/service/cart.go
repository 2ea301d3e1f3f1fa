package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/parusoft/shop-backend/internal/models"
	"github.com/parusoft/shop-backend/internal/repo"
	"github.com/parusoft/shop-backend/internal/transport"
)

const (
	AdjustIncrease = "increase"
	AdjustDecrease = "decrease"
)

type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) AddToCart(ctx context.Context, userID, productID uuid.UUID, quantity uint, variantID *uuid.UUID) (*transport.CartResponse, error) {
	if productID == uuid.Nil {
		return nil, fmt.Errorf("product id is required: %w", ErrValidation)
	}
	if quantity == 0 {
		quantity = 1
	}

	product, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product not found: %w", ErrNotFound)
		}
		return nil, err
	}

	// variant stock is checked before the cart is touched, so a rejected
	// add leaves the cart exactly as it was
	if variantID != nil {
		var variant *models.ProductVariant
		for i := range product.Variants {
			if product.Variants[i].ID == *variantID {
				variant = &product.Variants[i]
				break
			}
		}
		if variant == nil {
			return nil, fmt.Errorf("product variant not found: %w", ErrNotFound)
		}
		if variant.Stock < quantity {
			return nil, fmt.Errorf("not enough stock available: %w", ErrInsufficientStock)
		}
	}

	cart, err := s.Repo.MutateCart(ctx, userID, true, func(tx *gorm.DB, cart *models.Cart) error {
		for i := range cart.Items {
			if cart.Items[i].ProductID == productID {
				return tx.Model(&cart.Items[i]).
					Update("quantity", cart.Items[i].Quantity+quantity).Error
			}
		}
		item := models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			VariantID: variantID,
			Quantity:  quantity,
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, cart)
}

func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity uint) (*transport.CartResponse, error) {
	if itemID == uuid.Nil {
		return nil, fmt.Errorf("item id is required: %w", ErrValidation)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", ErrValidation)
	}

	cart, err := s.Repo.MutateCart(ctx, userID, false, func(tx *gorm.DB, cart *models.Cart) error {
		item := findItem(cart, itemID)
		if item == nil {
			return fmt.Errorf("item not found in cart: %w", ErrNotFound)
		}
		return tx.Model(item).Update("quantity", quantity).Error
	})
	if err != nil {
		return nil, cartErr(err)
	}
	return s.expand(ctx, cart)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*transport.CartResponse, error) {
	cart, err := s.Repo.MutateCart(ctx, userID, false, func(tx *gorm.DB, cart *models.Cart) error {
		// removing an item that is already gone is a no-op
		return tx.Where("cart_id = ? AND id = ?", cart.ID, itemID).
			Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, cartErr(err)
	}
	return s.expand(ctx, cart)
}

func (s *CartService) RemoveProduct(ctx context.Context, userID, productID uuid.UUID) (*transport.CartResponse, error) {
	if productID == uuid.Nil {
		return nil, fmt.Errorf("product id is required: %w", ErrValidation)
	}

	cart, err := s.Repo.MutateCart(ctx, userID, false, func(tx *gorm.DB, cart *models.Cart) error {
		return tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).
			Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, cartErr(err)
	}
	return s.expand(ctx, cart)
}

func (s *CartService) AdjustItem(ctx context.Context, userID, itemID uuid.UUID, action string) (*transport.CartResponse, error) {
	if action != AdjustIncrease && action != AdjustDecrease {
		return nil, fmt.Errorf("action must be either increase or decrease: %w", ErrValidation)
	}

	cart, err := s.Repo.MutateCart(ctx, userID, false, func(tx *gorm.DB, cart *models.Cart) error {
		item := findItem(cart, itemID)
		if item == nil {
			return fmt.Errorf("item not found in cart: %w", ErrNotFound)
		}
		if action == AdjustIncrease {
			return tx.Model(item).Update("quantity", item.Quantity+1).Error
		}
		if item.Quantity <= 1 {
			return tx.Delete(item).Error
		}
		return tx.Model(item).Update("quantity", item.Quantity-1).Error
	})
	if err != nil {
		return nil, cartErr(err)
	}
	return s.expand(ctx, cart)
}

func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) (*transport.CartResponse, error) {
	cart, err := s.Repo.MutateCart(ctx, userID, false, func(tx *gorm.DB, cart *models.Cart) error {
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, cartErr(err)
	}
	return s.expand(ctx, cart)
}

// Get never fails on a missing cart: a user who has not added anything yet
// sees an empty cart, not an error.
func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (*transport.CartResponse, error) {
	cart, err := s.Repo.GetCartByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &transport.CartResponse{Items: []transport.CartItemResponse{}}, nil
		}
		return nil, err
	}
	return s.expand(ctx, cart)
}

func (s *CartService) CheckProduct(ctx context.Context, userID, productID uuid.UUID) (*transport.CartStatusResponse, error) {
	cart, err := s.Repo.GetCartByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &transport.CartStatusResponse{}, nil
		}
		return nil, err
	}
	for _, item := range cart.Items {
		if item.ProductID == productID {
			return &transport.CartStatusResponse{IsInCart: true, Quantity: item.Quantity}, nil
		}
	}
	return &transport.CartStatusResponse{}, nil
}

func (s *CartService) expand(ctx context.Context, cart *models.Cart) (*transport.CartResponse, error) {
	ids := make([]uuid.UUID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.Repo.GetProductsByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]transport.CartItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		p := byID[item.ProductID]
		items = append(items, transport.CartItemResponse{
			ID: item.ID,
			Product: transport.CartProduct{
				ID:          p.ID,
				Name:        p.Name,
				Price:       p.Price,
				Images:      p.Images,
				Description: p.Description,
				Category:    p.Category,
			},
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
		})
	}

	return &transport.CartResponse{
		ID:          cart.ID,
		UserID:      cart.UserID,
		Items:       items,
		TotalAmount: cart.TotalAmount,
	}, nil
}

func findItem(cart *models.Cart, itemID uuid.UUID) *models.CartItem {
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			return &cart.Items[i]
		}
	}
	return nil
}

func cartErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("cart not found: %w", ErrNotFound)
	}
	return err
}
