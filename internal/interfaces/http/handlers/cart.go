// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/pkg/token"
)

// CartHandler handles cart endpoints. The cart identifier travels in a
// signed cookie; an unreadable or missing cookie falls back to creating
// a fresh cart on the read path.
type CartHandler struct {
	service *cart.Service
	tokens  *token.Manager
	config  *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(service *cart.Service, tokens *token.Manager, cfg *config.Config) *CartHandler {
	return &CartHandler{
		service: service,
		tokens:  tokens,
		config:  cfg,
	}
}

// Get handles GET /cart
func (h *CartHandler) Get(c *gin.Context) {
	crt, created, err := h.service.GetOrCreate(c.Request.Context(), h.cartIDFromCookie(c))
	if err != nil {
		fail(c, h.config, err)
		return
	}

	if created {
		if err := h.setCartCookie(c, crt); err != nil {
			fail(c, h.config, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": crt})
}

// AddItem handles POST /cart/add-item
func (h *CartHandler) AddItem(c *gin.Context) {
	var req cart.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	crt, created, err := h.service.GetOrCreate(c.Request.Context(), h.cartIDFromCookie(c))
	if err != nil {
		fail(c, h.config, err)
		return
	}

	if created {
		if err := h.setCartCookie(c, crt); err != nil {
			fail(c, h.config, err)
			return
		}
	}

	item, err := h.service.AddOrUpdateItem(c.Request.Context(), crt, &req)
	if err != nil {
		fail(c, h.config, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": item})
}

// RemoveItem handles POST /cart/remove-item. Unlike the read path this
// never creates a cart: removing from a cart that does not exist is an
// error the client should see.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	var req cart.RemoveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	crt, err := h.service.Get(c.Request.Context(), h.cartIDFromCookie(c))
	if err != nil {
		fail(c, h.config, err)
		return
	}

	item, err := h.service.RemoveItem(c.Request.Context(), crt, req.ProductID)
	if err != nil {
		fail(c, h.config, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": item})
}

// cartIDFromCookie extracts the cart id from the signed cookie. Any
// failure reads as "no cart yet".
func (h *CartHandler) cartIDFromCookie(c *gin.Context) string {
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

func (h *CartHandler) setCartCookie(c *gin.Context, crt *cart.Cart) error {
	signed, err := h.tokens.Issue(crt.ID.Hex(), crt.ExpiresOn)
	if err != nil {
		return err
	}

	c.SetCookie(
		h.config.Cart.CookieName,
		signed,
		int(h.config.Cart.TTL.Seconds()),
		"/",
		"",
		h.config.Cart.CookieSecure,
		true,
	)

	return nil
}
