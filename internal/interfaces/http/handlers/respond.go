// internal/interfaces/http/handlers/respond.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/pkg/apperrors"
)

var errInvalidPage = errors.New("currentPage must be a non-negative integer")

// fail writes the error envelope for a failed operation. The status
// code comes from the error kind; internal failure detail is only
// surfaced in development.
func fail(c *gin.Context, cfg *config.Config, err error) {
	c.JSON(apperrors.HTTPStatus(err), gin.H{
		"error": apperrors.SafeMessage(err, cfg.IsDevelopment()),
	})
}

// badRequest writes the envelope for a request that failed binding
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request data",
		"details": err.Error(),
	})
}
