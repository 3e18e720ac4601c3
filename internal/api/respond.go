// ABOUTME: Response helpers mapping component errors to HTTP status codes
// ABOUTME: Validation is 400, missing entities 404, an unreachable store 503
package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harper/brand-memory/internal/models"
)

func respondError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"error": msg})
}

func respondSuccess(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// statusFor maps sentinel errors; anything unrecognised is a 500
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondErr(c *gin.Context, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		log.Printf("[API] %s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	respondError(c, err.Error(), code)
}

// bindJSON decodes the body or writes a 400
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}
