package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/parusoft/shop-backend/internal/models"
	"github.com/parusoft/shop-backend/internal/transport"
)

func TestGetProductsEndpointFiltersAndMeta(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct("cheap widget", 5)
	env.seedProduct("mid widget", 50)
	env.seedProduct("pricey widget", 500)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/products?minPrice=10&maxPrice=100&page=1&limit=10", nil)
	require.NoError(t, env.Prod.GetProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Products []models.Product          `json:"products"`
		Meta     transport.ProductListMeta `json:"meta"`
	}
	reDecode(t, decodeEnvelope(t, rec).Data, &data)
	require.Len(t, data.Products, 1)
	require.Equal(t, "mid widget", data.Products[0].Name)
	require.EqualValues(t, 1, data.Meta.Total)
	require.False(t, data.Meta.HasNext)
}

func TestGetProductsEndpointPagination(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 5; i++ {
		env.seedProduct("widget", float64(i+1))
	}

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/products?page=2&limit=2&sortBy=price&sortOrder=asc", nil)
	require.NoError(t, env.Prod.GetProducts(c))

	var data struct {
		Products []models.Product          `json:"products"`
		Meta     transport.ProductListMeta `json:"meta"`
	}
	reDecode(t, decodeEnvelope(t, rec).Data, &data)
	require.Len(t, data.Products, 2)
	require.Equal(t, float64(3), data.Products[0].Price)
	require.EqualValues(t, 5, data.Meta.Total)
	require.True(t, data.Meta.HasPrev)
	require.True(t, data.Meta.HasNext)
}

func TestGetProductEndpointNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/products/x", nil)
	c.SetParamNames("id")
	c.SetParamValues("2c9e5f3a-0000-0000-0000-000000000000")

	require.NoError(t, env.Prod.GetProduct(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.False(t, decodeEnvelope(t, rec).Success)
}

func TestGetProductEndpointBadID(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/products/x", nil)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	require.NoError(t, env.Prod.GetProduct(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "invalid product id", decodeEnvelope(t, rec).Message)
}

func TestCreateProductEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name":        "keyboard",
		"category":    "electronics",
		"price":       79.99,
		"description": "mechanical keyboard",
	})
	require.NoError(t, env.Prod.CreateProduct(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var product models.Product
	reDecode(t, decodeEnvelope(t, rec).Data, &product)
	require.NotEmpty(t, product.ID)
	require.Equal(t, "keyboard", product.Name)
}

func TestCreateProductEndpointValidation(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name":  "keyboard",
		"price": -1,
	})
	require.NoError(t, env.Prod.CreateProduct(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, decodeEnvelope(t, rec).Success)
}

func TestDeleteProductEndpoint(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct("doomed", 10)

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/v1/products/x", nil)
	c.SetParamNames("id")
	c.SetParamValues(product.ID.String())

	require.NoError(t, env.Prod.DeleteProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	rec, c = env.doJSONRequest(http.MethodDelete, "/api/v1/products/x", nil)
	c.SetParamNames("id")
	c.SetParamValues(product.ID.String())

	require.NoError(t, env.Prod.DeleteProduct(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchEndpointUnavailableWithoutES(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/products/search?q=widget", nil)
	require.NoError(t, env.Prod.SearchProducts(c))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "search is not available", decodeEnvelope(t, rec).Message)
}
