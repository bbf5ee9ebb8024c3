// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/domain/order"
	"github.com/your-org/storefront-api/internal/domain/product"
	"github.com/your-org/storefront-api/internal/domain/user"
	"github.com/your-org/storefront-api/internal/infrastructure/database/mongo"
	"github.com/your-org/storefront-api/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-api/internal/pkg/pdf"
	"github.com/your-org/storefront-api/internal/pkg/token"
)

// Setup wires repositories, services and handlers onto the API group
func Setup(rg *gin.RouterGroup, client *mongo.Client, cfg *config.Config) {
	productService := product.NewService(mongo.NewProductRepository(client), cfg)
	cartService := cart.NewService(mongo.NewCartRepository(client), cfg)
	orderService := order.NewService(mongo.NewOrderRepository(client), cfg)
	userService := user.NewService(mongo.NewUserRepository(client), cfg)

	tokens := token.NewManager(cfg)
	invoices := pdf.NewService(cfg)

	setupProductRoutes(rg, handlers.NewProductHandler(productService, cfg))
	setupCartRoutes(rg, handlers.NewCartHandler(cartService, tokens, cfg))
	setupOrderRoutes(rg, handlers.NewOrderHandler(orderService, cartService, invoices, tokens, cfg))
	setupUserRoutes(rg, handlers.NewUserHandler(userService, orderService, cfg))
}

func setupProductRoutes(rg *gin.RouterGroup, h *handlers.ProductHandler) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/search", h.Search)
		products.GET("/trending", h.Trending)
		products.GET("/max-price", h.MaxPrice)
		products.GET("/stock", h.GetAllStock)
		products.GET("/out-of-stock", h.GetOutOfStock)
		products.GET("/slug/:slug", h.GetBySlug)
		products.GET("/:id", h.Get)
		products.GET("/:id/stock", h.GetStock)

		products.POST("", h.Create)
		products.PUT("/:id", h.Update)
		products.DELETE("/:id", h.Delete)
		products.POST("/:id/increase-stock", h.IncreaseStock)
		products.POST("/:id/decrease-stock", h.DecreaseStock)
	}
}

func setupCartRoutes(rg *gin.RouterGroup, h *handlers.CartHandler) {
	carts := rg.Group("/cart")
	{
		carts.GET("", h.Get)
		carts.POST("/add-item", h.AddItem)
		carts.POST("/remove-item", h.RemoveItem)
	}
}

func setupOrderRoutes(rg *gin.RouterGroup, h *handlers.OrderHandler) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.GET("/:id/invoice", h.Invoice)
		orders.POST("", h.Create)
		orders.PUT("/:id/status", h.UpdateStatus)
	}
}

func setupUserRoutes(rg *gin.RouterGroup, h *handlers.UserHandler) {
	users := rg.Group("/users")
	{
		users.GET("", h.List)
		users.GET("/:id", h.Get)
		users.GET("/:id/orders", h.Orders)
		users.POST("", h.Create)
		users.DELETE("/:id", h.Delete)
	}
}
