// internal/interfaces/http/handlers/order.go
package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/domain/order"
	"github.com/your-org/storefront-api/internal/pkg/token"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	service     *order.Service
	cartService *cart.Service
	invoices    InvoiceGenerator
	tokens      *token.Manager
	config      *config.Config
}

// InvoiceGenerator renders an order into a printable invoice
type InvoiceGenerator interface {
	GenerateInvoice(o *order.Order) (*bytes.Buffer, error)
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(service *order.Service, cartService *cart.Service, invoices InvoiceGenerator, tokens *token.Manager, cfg *config.Config) *OrderHandler {
	return &OrderHandler{
		service:     service,
		cartService: cartService,
		invoices:    invoices,
		tokens:      tokens,
		config:      cfg,
	}
}

// Create handles POST /orders. The order snapshot comes from the
// caller's cart, resolved through the same signed cookie as the cart
// endpoints.
func (h *OrderHandler) Create(c *gin.Context) {
	var req order.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	crt, err := h.cartService.Get(c.Request.Context(), h.cartIDFromCookie(c))
	if err != nil {
		fail(c, h.config, err)
		return
	}

	o, err := h.service.CreateFromCart(c.Request.Context(), crt, &req)
	if err != nil {
		fail(c, h.config, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"data":    o,
	})
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": o})
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		fail(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": orders})
}

// UpdateStatus handles PUT /orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req order.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	o, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), order.Status(req.Status))
	if err != nil {
		fail(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
		"data":    o,
	})
}

// Invoice handles GET /orders/:id/invoice
func (h *OrderHandler) Invoice(c *gin.Context) {
	o, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.config, err)
		return
	}

	pdfBuf, err := h.invoices.GenerateInvoice(o)
	if err != nil {
		fail(c, h.config, err)
		return
	}

	filename := fmt.Sprintf("invoice-%s.pdf", o.ID.Hex())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdfBuf.Bytes())
}

func (h *OrderHandler) cartIDFromCookie(c *gin.Context) string {
	raw, err := c.Cookie(h.config.Cart.CookieName)
	if err != nil {
		return ""
	}

	cartID, err := h.tokens.Parse(raw)
	if err != nil {
		return ""
	}

	return cartID
}
