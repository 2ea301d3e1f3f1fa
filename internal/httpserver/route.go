package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/parusoft/shop-backend/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	CartHandler    *CartHTTP
	ProductHandler *ProductHTTP
	Gate           *authmw.Gate
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api/v1")

	users := api.Group("/users")
	users.POST("/register", d.AuthHandler.Register)
	users.POST("/login", d.AuthHandler.Login)
	users.POST("/refresh-token", d.AuthHandler.RefreshToken)

	usersPrivate := users.Group("")
	usersPrivate.Use(d.Gate.RequireAuth)
	usersPrivate.POST("/logout", d.AuthHandler.Logout)
	usersPrivate.GET("/profile", d.AuthHandler.Profile)
	usersPrivate.PATCH("/update-profile", d.AuthHandler.UpdateProfile)

	cart := api.Group("/cart")
	cart.Use(d.Gate.RequireAuth)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("/add", d.CartHandler.AddToCart)
	cart.PUT("/update", d.CartHandler.UpdateCartItem)
	cart.DELETE("/item/:itemId", d.CartHandler.RemoveFromCart)
	cart.DELETE("/product/:productId", d.CartHandler.RemoveProductFromCart)
	cart.DELETE("/clear", d.CartHandler.ClearCart)
	cart.PATCH("/item/:itemId/adjust", d.CartHandler.AdjustCartItemQuantity)
	cart.GET("/check/:productId", d.CartHandler.CheckProductInCart)

	products := api.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/search", d.ProductHandler.SearchProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct)
	products.POST("/bulk", d.ProductHandler.CreateProducts)
	products.PUT("/:id", d.ProductHandler.UpdateProduct)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct)
}
