package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/parusoft/shop-backend/internal/models"
	"github.com/parusoft/shop-backend/internal/repo"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product not found: %w", ErrNotFound)
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) GetProducts(ctx context.Context, f repo.ProductFilter) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, f)
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	return s.Repo.CreateProduct(ctx, product)
}

func (s *CatalogService) CreateProducts(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return fmt.Errorf("products array is required: %w", ErrValidation)
	}
	for i := range products {
		if err := validateProduct(&products[i]); err != nil {
			return err
		}
	}
	return s.Repo.CreateProducts(ctx, products)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.Product) (*models.Product, error) {
	if req.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = req.Name
	product.Category = req.Category
	product.Price = req.Price
	product.Rating = req.Rating
	product.Popularity = req.Popularity
	product.Description = req.Description
	product.Images = req.Images
	if !req.ReleaseDate.IsZero() {
		product.ReleaseDate = req.ReleaseDate
	}

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.Repo.DeleteProduct(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("product not found: %w", ErrNotFound)
	}
	return nil
}

func validateProduct(p *models.Product) error {
	if p.Name == "" || p.Category == "" || p.Description == "" {
		return fmt.Errorf("name, category and description are required: %w", ErrValidation)
	}
	if p.Price < 0 {
		return fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}
	if p.Rating < 0 || p.Rating > 5 {
		return fmt.Errorf("rating must be between 0 and 5: %w", ErrValidation)
	}
	return nil
}
