package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/parusoft/shop-backend/internal/models"
	"github.com/parusoft/shop-backend/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// one connection, so every query sees the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductVariant{},
		&models.ProductReview{},
		&models.Cart{},
		&models.CartItem{},
	))

	return db
}

func newCartEnv(t *testing.T) (*CartService, *repo.GormRepo) {
	t.Helper()
	r := &repo.GormRepo{DB: newTestDB(t)}
	return &CartService{Repo: r}, r
}

func newAuthEnv(t *testing.T) (*AuthService, *repo.GormRepo) {
	t.Helper()
	r := &repo.GormRepo{DB: newTestDB(t)}
	return &AuthService{
		Repo:          r,
		AccessSecret:  []byte("test-access-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
		AccessTTL:     24 * time.Hour,
		RefreshTTL:    7 * 24 * time.Hour,
	}, r
}

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := models.User{
		Name:         "test user",
		Email:        "test@example.com",
		PasswordHash: "irrelevant",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, variants ...models.ProductVariant) *models.Product {
	t.Helper()
	product := models.Product{
		Name:        name,
		Category:    "test",
		Price:       price,
		Description: "test product",
		Variants:    variants,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func cartItemID(t *testing.T, db *gorm.DB, userID, productID uuid.UUID) uuid.UUID {
	t.Helper()
	var cart models.Cart
	require.NoError(t, db.Where("user_id = ?", userID).First(&cart).Error)
	var item models.CartItem
	require.NoError(t, db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error)
	return item.ID
}
