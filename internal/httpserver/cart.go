package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/parusoft/shop-backend/internal/events"
	"github.com/parusoft/shop-backend/internal/logging"
	authmw "github.com/parusoft/shop-backend/internal/middleware/auth"
	"github.com/parusoft/shop-backend/internal/service"
)

type CartHTTP struct {
	Svc    *service.CartService
	Events *events.Producer
}

func (h *CartHTTP) publish(c echo.Context, userID uuid.UUID, event map[string]interface{}) {
	if h.Events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Events.PublishEvent(ctx, events.TopicCartEvents, userID.String(), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := authmw.CurrentUserID(c)
	if !ok {
		return respondErr(c, service.ErrUnauthenticated)
	}

	cart, err := h.Svc.Get(ctx, userID)
	if err != nil {
		logging.FromContext(ctx).Error("get_cart_error", "error", err)
		return respondErr(c, err)
	}
	return respond(c, http.StatusOK, "Cart retrieved successfully", cart)
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID, ok := authmw.CurrentUserID(c)
	if !ok {
		return respondErr(c, service.ErrUnauthenticated)
	}

	var req struct {
		ProductID uuid.UUID  `json:"productId"`
		Quantity  uint       `json:"quantity"`
		VariantID *uuid.UUID `json:"variantId"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return badRequest(c, "invalid body")
	}

	cart, err := h.Svc.AddToCart(ctx, userID, req.ProductID, req.Quantity, req.VariantID)
	if err != nil {
		l.Warn("add_to_cart_error", "error", err)
		return respondErr(c, err)
	}

	h.publish(c, userID, map[string]interface{}{
		"type":       "cart_item_added",
		"user_id":    userID,
		"product_id": req.ProductID,
	})

	return respond(c, http.StatusOK, "Product added to cart successfully", cart)
}

func (h *CartHTTP) UpdateCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	userID, ok := authmw.CurrentUserID(c)
	if !ok {
		return respondErr(c, service.ErrUnauthenticated)
	}

	var req struct {
		ItemID   uuid.UUID `json:"itemId"`
		Quantity uint      `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_error", "status", 400, "error", err)
		return badRequest(c, "invalid body")
	}

	cart, err := h.Svc.UpdateItem(ctx, userID, req.ItemID, req.Quantity)
	if err != nil {
		l.Warn("update_cart_error", "error", err)
		return respondErr(c, err)
	}
	return respond(c, http.StatusOK, "Cart updated successfully", cart)
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	userID, ok := authmw.CurrentUserID(c)
	if !ok {
		return respondErr(c, service.ErrUnauthenticated)
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return badRequest(c, "invalid item id")
	}

	cart, err := h.Svc.RemoveItem(ctx, userID, itemID)
	if err != nil {
		l.Warn("remove_from_cart_error", "error", err)
		return respondErr(c, err)
	}
	return respond(c, http.StatusOK, "Item removed from cart successfully", cart)
}

func (h *CartHTTP) RemoveProductFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_product")

	userID, ok := authmw.CurrentUserID(c)
	if !ok {
		return respondErr(c, service.ErrUnauthenticated)
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return badRequest(c, "invalid product id")
	}

	cart, err := h.Svc.RemoveProduct(ctx, userID, productID)
	if err != nil {
		l.Warn("remove_product_error", "error", err)
		return respondErr(c, err)
	}

	h.publish(c, userID, map[string]interface{}{
		"type":       "cart_product_removed",
		"user_id":    userID,
		"product_id": productID,
	})

	return respond(c, http.StatusOK, "Product removed from cart successfully", cart)
}

func (h *CartHTTP) AdjustCartItemQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.adjust")

	userID, ok := authmw.CurrentUserID(c)
	if !ok {
		return respondErr(c, service.ErrUnauthenticated)
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return badRequest(c, "invalid item id")
	}

	var req struct {
		Action string `json:"action"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("adjust_cart_error", "status", 400, "error", err)
		return badRequest(c, "invalid body")
	}

	cart, err := h.Svc.AdjustItem(ctx, userID, itemID, req.Action)
	if err != nil {
		l.Warn("adjust_cart_error", "error", err)
		return respondErr(c, err)
	}
	return respond(c, http.StatusOK, "Item quantity "+req.Action+"d successfully", cart)
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	userID, ok := authmw.CurrentUserID(c)
	if !ok {
		return respondErr(c, service.ErrUnauthenticated)
	}

	cart, err := h.Svc.Clear(ctx, userID)
	if err != nil {
		l.Warn("clear_cart_error", "error", err)
		return respondErr(c, err)
	}

	h.publish(c, userID, map[string]interface{}{
		"type":    "cart_cleared",
		"user_id": userID,
	})

	return respond(c, http.StatusOK, "Cart cleared successfully", cart)
}

func (h *CartHTTP) CheckProductInCart(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := authmw.CurrentUserID(c)
	if !ok {
		return respondErr(c, service.ErrUnauthenticated)
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return badRequest(c, "invalid product id")
	}

	status, err := h.Svc.CheckProduct(ctx, userID, productID)
	if err != nil {
		logging.FromContext(ctx).Error("check_cart_error", "error", err)
		return respondErr(c, err)
	}
	return respond(c, http.StatusOK, "Cart status retrieved", status)
}
