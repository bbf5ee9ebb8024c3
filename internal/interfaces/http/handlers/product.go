// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/product"
)

// ProductHandler handles product catalog endpoints
type ProductHandler struct {
	service *product.Service
	config  *config.Config
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *product.Service, cfg *config.Config) *ProductHandler {
	return &ProductHandler{
		service: service,
		config:  cfg,
	}
}

// Search handles GET /products/search
func (h *ProductHandler) Search(c *gin.Context) {
	var req product.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	page, err := h.service.Search(c.Request.Context(), &req)
	if err != nil {
		fail(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	currentPage, err := strconv.Atoi(c.DefaultQuery("currentPage", "0"))
	if err != nil || currentPage < 0 {
		badRequest(c, errInvalidPage)
		return
	}

	page, err := h.service.List(c.Request.Context(), currentPage)
	if err != nil {
		fail(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": p})
}

// GetBySlug handles GET /products/slug/:slug
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	p, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": p})
}

// MaxPrice handles GET /products/max-price
func (h *ProductHandler) MaxPrice(c *gin.Context) {
	maxPrice, err := h.service.MaxPrice(c.Request.Context(), c.Query("category"))
	if err != nil {
		fail(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"maxPrice": maxPrice})
}

// Trending handles GET /products/trending
func (h *ProductHandler) Trending(c *gin.Context) {
	products, err := h.service.Trending(c.Request.Context())
	if err != nil {
		fail(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": products})
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req product.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		fail(c, h.config, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"data":    p,
	})
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	var req product.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		fail(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"data":    p,
	})
}

// Delete handles DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}

// GetStock handles GET /products/:id/stock
func (h *ProductHandler) GetStock(c *gin.Context) {
	stock, err := h.service.GetStock(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stock})
}

// GetAllStock handles GET /products/stock
func (h *ProductHandler) GetAllStock(c *gin.Context) {
	stock, err := h.service.GetAllStock(c.Request.Context())
	if err != nil {
		fail(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stock})
}

// GetOutOfStock handles GET /products/out-of-stock
func (h *ProductHandler) GetOutOfStock(c *gin.Context) {
	stock, err := h.service.GetOutOfStock(c.Request.Context())
	if err != nil {
		fail(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stock})
}

// StockAdjustRequest represents the stock adjustment request body
type StockAdjustRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// IncreaseStock handles POST /products/:id/increase-stock
func (h *ProductHandler) IncreaseStock(c *gin.Context) {
	var req StockAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.service.IncreaseStock(c.Request.Context(), c.Param("id"), req.Quantity)
	if err != nil {
		fail(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock increased successfully",
		"data":    p,
	})
}

// DecreaseStock handles POST /products/:id/decrease-stock
func (h *ProductHandler) DecreaseStock(c *gin.Context) {
	var req StockAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.service.DecreaseStock(c.Request.Context(), c.Param("id"), req.Quantity)
	if err != nil {
		fail(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock decreased successfully",
		"data":    p,
	})
}
