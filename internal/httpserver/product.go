package httpserver

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/parusoft/shop-backend/internal/events"
	"github.com/parusoft/shop-backend/internal/logging"
	"github.com/parusoft/shop-backend/internal/models"
	"github.com/parusoft/shop-backend/internal/repo"
	"github.com/parusoft/shop-backend/internal/service"
	"github.com/parusoft/shop-backend/internal/service/search"
	"github.com/parusoft/shop-backend/internal/transport"
	"github.com/parusoft/shop-backend/internal/util"
)

type ProductHTTP struct {
	Svc     *service.CatalogService
	ES      *elasticsearch.Client
	ESIndex string
	Events  *events.Producer
}

func (h *ProductHTTP) publish(c echo.Context, key string, event map[string]interface{}) {
	if h.Events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Events.PublishEvent(ctx, events.TopicProductEvents, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func parseFloatParam(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	filter := repo.ProductFilter{
		Category:  c.QueryParam("category"),
		MinPrice:  parseFloatParam(c.QueryParam("minPrice")),
		MaxPrice:  parseFloatParam(c.QueryParam("maxPrice")),
		MinRating: parseFloatParam(c.QueryParam("minRating")),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
		Offset:    offset,
		Limit:     limit,
	}

	total, items, err := h.Svc.GetProducts(ctx, filter)
	if err != nil {
		logging.FromContext(ctx).Error("get_products_error", "error", err)
		return respondErr(c, err)
	}

	return respond(c, http.StatusOK, "Products retrieved successfully", echo.Map{
		"products": items,
		"meta": transport.ProductListMeta{
			Page:       page,
			Size:       limit,
			Total:      total,
			TotalPages: (total + int64(limit) - 1) / int64(limit),
			HasPrev:    page > 1,
			HasNext:    int64(offset+limit) < total,
		},
	})
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid product id")
	}

	product, err := h.Svc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, http.StatusOK, "Product retrieved successfully", product)
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.create")

	var product models.Product
	if err := c.Bind(&product); err != nil {
		l.Warn("create_product_error", "status", 400, "error", err)
		return badRequest(c, "invalid body")
	}

	if err := h.Svc.CreateProduct(ctx, &product); err != nil {
		l.Warn("create_product_failed", "error", err)
		return respondErr(c, err)
	}

	h.publish(c, product.ID.String(), map[string]interface{}{
		"type":       "product_created",
		"product_id": product.ID,
		"name":       product.Name,
	})

	return respond(c, http.StatusCreated, "Product created successfully", product)
}

func (h *ProductHTTP) CreateProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.create_bulk")

	var products []models.Product
	if err := c.Bind(&products); err != nil {
		l.Warn("create_products_error", "status", 400, "error", err)
		return badRequest(c, "invalid body")
	}

	if err := h.Svc.CreateProducts(ctx, products); err != nil {
		l.Warn("create_products_failed", "error", err)
		return respondErr(c, err)
	}
	return respond(c, http.StatusCreated, "Products added successfully", products)
}

func (h *ProductHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.update")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid product id")
	}

	var req models.Product
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_error", "status", 400, "error", err)
		return badRequest(c, "invalid body")
	}

	product, err := h.Svc.UpdateProduct(ctx, id, &req)
	if err != nil {
		l.Warn("update_product_failed", "error", err)
		return respondErr(c, err)
	}

	h.publish(c, product.ID.String(), map[string]interface{}{
		"type":       "product_updated",
		"product_id": product.ID,
		"name":       product.Name,
	})

	return respond(c, http.StatusOK, "Product updated successfully", product)
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid product id")
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		return respondErr(c, err)
	}

	h.publish(c, id.String(), map[string]interface{}{
		"type":       "product_deleted",
		"product_id": id,
	})

	return respond(c, http.StatusOK, "Product deleted successfully", nil)
}

func (h *ProductHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()

	if h.ES == nil {
		return c.JSON(http.StatusServiceUnavailable, transport.Envelope{
			Success: false,
			Message: "search is not available",
		})
	}

	q := c.QueryParam("q")
	if q == "" {
		return badRequest(c, "query parameter q is required")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, products, err := search.Search(ctx, h.ES, h.ESIndex, q, from, limit)
	if err != nil {
		logging.FromContext(ctx).Error("search_error", "error", err)
		return respondErr(c, err)
	}

	return respond(c, http.StatusOK, "Search results retrieved", echo.Map{
		"total":    total,
		"products": products,
	})
}
