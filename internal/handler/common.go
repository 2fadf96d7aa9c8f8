package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dukalink/storefront-gateway/internal/api"
)

// respondBackendError surfaces the backend-supplied message when there
// is one, with a generic fallback otherwise. 4xx statuses pass
// through; backend 5xx becomes a bad gateway.
func respondBackendError(c *gin.Context, err error) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status >= 500 {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": apiErr.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
