// internal/interfaces/http/handlers/user.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/order"
	"github.com/your-org/storefront-api/internal/domain/user"
)

// UserHandler handles user endpoints
type UserHandler struct {
	service      *user.Service
	orderService *order.Service
	config       *config.Config
}

// NewUserHandler creates a new user handler
func NewUserHandler(service *user.Service, orderService *order.Service, cfg *config.Config) *UserHandler {
	return &UserHandler{
		service:      service,
		orderService: orderService,
		config:       cfg,
	}
}

// List handles GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		fail(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": users})
}

// Get handles GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": u})
}

// Create handles POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req user.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	u, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		fail(c, h.config, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"data":    u,
	})
}

// Delete handles DELETE /users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	u, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
		"data":    u,
	})
}

// Orders handles GET /users/:id/orders. Orders survive user deletion,
// so this intentionally skips a user existence check.
func (h *UserHandler) Orders(c *gin.Context) {
	orders, err := h.orderService.ListByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.config, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": orders})
}
