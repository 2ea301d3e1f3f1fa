package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/parusoft/shop-backend/internal/models"
)

func TestAddToCartAccumulatesQuantity(t *testing.T) {
	svc, r := newCartEnv(t)
	ctx := context.Background()

	user := seedUser(t, r.DB)
	product := seedProduct(t, r.DB, "lamp", 10)

	_, err := svc.AddToCart(ctx, user.ID, product.ID, 2, nil)
	require.NoError(t, err)

	cart, err := svc.AddToCart(ctx, user.ID, product.ID, 3, nil)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	require.Equal(t, uint(5), cart.Items[0].Quantity)
	require.Equal(t, product.ID, cart.Items[0].Product.ID)
}

func TestTotalAmountMatchesPriceTimesQuantity(t *testing.T) {
	svc, r := newCartEnv(t)
	ctx := context.Background()

	user := seedUser(t, r.DB)
	p1 := seedProduct(t, r.DB, "mug", 10)
	p2 := seedProduct(t, r.DB, "teapot", 25)

	_, err := svc.AddToCart(ctx, user.ID, p1.ID, 2, nil)
	require.NoError(t, err)

	cart, err := svc.AddToCart(ctx, user.ID, p2.ID, 1, nil)
	require.NoError(t, err)

	require.Equal(t, float64(45), cart.TotalAmount)
}

func TestTotalAmountUsesCurrentPrice(t *testing.T) {
	svc, r := newCartEnv(t)
	ctx := context.Background()

	user := seedUser(t, r.DB)
	product := seedProduct(t, r.DB, "mug", 10)

	_, err := svc.AddToCart(ctx, user.ID, product.ID, 2, nil)
	require.NoError(t, err)

	require.NoError(t, r.DB.Model(product).Update("price", 20).Error)

	itemID := cartItemID(t, r.DB, user.ID, product.ID)
	cart, err := svc.AdjustItem(ctx, user.ID, itemID, AdjustIncrease)
	require.NoError(t, err)

	require.Equal(t, float64(60), cart.TotalAmount)
}

func TestAdjustDecreaseRemovesItemAtQuantityOne(t *testing.T) {
	svc, r := newCartEnv(t)
	ctx := context.Background()

	user := seedUser(t, r.DB)
	product := seedProduct(t, r.DB, "mug", 10)

	_, err := svc.AddToCart(ctx, user.ID, product.ID, 1, nil)
	require.NoError(t, err)

	itemID := cartItemID(t, r.DB, user.ID, product.ID)
	cart, err := svc.AdjustItem(ctx, user.ID, itemID, AdjustDecrease)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
	require.Equal(t, float64(0), cart.TotalAmount)

	got, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, got.Items)
}

func TestAdjustMissingItemNotFound(t *testing.T) {
	svc, r := newCartEnv(t)
	ctx := context.Background()

	user := seedUser(t, r.DB)
	product := seedProduct(t, r.DB, "mug", 10)

	_, err := svc.AddToCart(ctx, user.ID, product.ID, 1, nil)
	require.NoError(t, err)

	_, err = svc.AdjustItem(ctx, user.ID, uuid.New(), AdjustIncrease)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAdjustInvalidAction(t *testing.T) {
	svc, r := newCartEnv(t)
	user := seedUser(t, r.DB)

	_, err := svc.AdjustItem(context.Background(), user.ID, uuid.New(), "double")
	require.ErrorIs(t, err, ErrValidation)
}

func TestAddToCartInsufficientStockLeavesCartUnchanged(t *testing.T) {
	svc, r := newCartEnv(t)
	ctx := context.Background()

	user := seedUser(t, r.DB)
	product := seedProduct(t, r.DB, "shirt", 30,
		models.ProductVariant{Color: "red", Size: "M", Stock: 1},
	)
	variantID := product.Variants[0].ID

	_, err := svc.AddToCart(ctx, user.ID, product.ID, 2, &variantID)
	require.ErrorIs(t, err, ErrInsufficientStock)

	cart, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
	require.Equal(t, float64(0), cart.TotalAmount)
}

func TestAddToCartMissingVariant(t *testing.T) {
	svc, r := newCartEnv(t)
	ctx := context.Background()

	user := seedUser(t, r.DB)
	product := seedProduct(t, r.DB, "shirt", 30)

	missing := uuid.New()
	_, err := svc.AddToCart(ctx, user.ID, product.ID, 1, &missing)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAddToCartMissingProduct(t *testing.T) {
	svc, r := newCartEnv(t)
	user := seedUser(t, r.DB)

	_, err := svc.AddToCart(context.Background(), user.ID, uuid.New(), 1, nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetCartWithoutCartReturnsEmpty(t *testing.T) {
	svc, r := newCartEnv(t)
	user := seedUser(t, r.DB)

	cart, err := svc.Get(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, cart.Items)
	require.Empty(t, cart.Items)
	require.Equal(t, float64(0), cart.TotalAmount)
}

func TestUpdateItemQuantity(t *testing.T) {
	svc, r := newCartEnv(t)
	ctx := context.Background()

	user := seedUser(t, r.DB)
	product := seedProduct(t, r.DB, "mug", 10)

	_, err := svc.AddToCart(ctx, user.ID, product.ID, 1, nil)
	require.NoError(t, err)

	itemID := cartItemID(t, r.DB, user.ID, product.ID)
	cart, err := svc.UpdateItem(ctx, user.ID, itemID, 4)
	require.NoError(t, err)
	require.Equal(t, uint(4), cart.Items[0].Quantity)
	require.Equal(t, float64(40), cart.TotalAmount)
}

func TestUpdateItemQuantityBelowOne(t *testing.T) {
	svc, r := newCartEnv(t)
	user := seedUser(t, r.DB)

	_, err := svc.UpdateItem(context.Background(), user.ID, uuid.New(), 0)
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateItemWithoutCart(t *testing.T) {
	svc, r := newCartEnv(t)
	user := seedUser(t, r.DB)

	_, err := svc.UpdateItem(context.Background(), user.ID, uuid.New(), 2)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveItemIsNoopWhenAbsent(t *testing.T) {
	svc, r := newCartEnv(t)
	ctx := context.Background()

	user := seedUser(t, r.DB)
	product := seedProduct(t, r.DB, "mug", 10)

	_, err := svc.AddToCart(ctx, user.ID, product.ID, 1, nil)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(ctx, user.ID, uuid.New())
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
}

func TestRemoveProductFromCart(t *testing.T) {
	svc, r := newCartEnv(t)
	ctx := context.Background()

	user := seedUser(t, r.DB)
	p1 := seedProduct(t, r.DB, "mug", 10)
	p2 := seedProduct(t, r.DB, "teapot", 25)

	_, err := svc.AddToCart(ctx, user.ID, p1.ID, 2, nil)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, user.ID, p2.ID, 1, nil)
	require.NoError(t, err)

	cart, err := svc.RemoveProduct(ctx, user.ID, p1.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, p2.ID, cart.Items[0].Product.ID)
	require.Equal(t, float64(25), cart.TotalAmount)
}

func TestClearCart(t *testing.T) {
	svc, r := newCartEnv(t)
	ctx := context.Background()

	user := seedUser(t, r.DB)
	product := seedProduct(t, r.DB, "mug", 10)

	_, err := svc.AddToCart(ctx, user.ID, product.ID, 3, nil)
	require.NoError(t, err)

	cart, err := svc.Clear(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
	require.Equal(t, float64(0), cart.TotalAmount)
}

func TestClearCartWithoutCart(t *testing.T) {
	svc, r := newCartEnv(t)
	user := seedUser(t, r.DB)

	_, err := svc.Clear(context.Background(), user.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCheckProductInCart(t *testing.T) {
	svc, r := newCartEnv(t)
	ctx := context.Background()

	user := seedUser(t, r.DB)
	product := seedProduct(t, r.DB, "mug", 10)

	status, err := svc.CheckProduct(ctx, user.ID, product.ID)
	require.NoError(t, err)
	require.False(t, status.IsInCart)
	require.Equal(t, uint(0), status.Quantity)

	_, err = svc.AddToCart(ctx, user.ID, product.ID, 2, nil)
	require.NoError(t, err)

	status, err = svc.CheckProduct(ctx, user.ID, product.ID)
	require.NoError(t, err)
	require.True(t, status.IsInCart)
	require.Equal(t, uint(2), status.Quantity)
}

func TestAddToCartDefaultsQuantityToOne(t *testing.T) {
	svc, r := newCartEnv(t)
	ctx := context.Background()

	user := seedUser(t, r.DB)
	product := seedProduct(t, r.DB, "mug", 10)

	cart, err := svc.AddToCart(ctx, user.ID, product.ID, 0, nil)
	require.NoError(t, err)
	require.Equal(t, uint(1), cart.Items[0].Quantity)
}
