package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/dukalink/storefront-gateway/internal/model"
)

func TestAuthorize(t *testing.T) {
	cases := []struct {
		name         string
		userRole     string
		requiredRole string
		allowed      bool
		redirectTo   string
		reason       string
	}{
		{"unauthenticated", "", "admin", false, "/login", "not authenticated"},
		{"wrong role", "customer", "admin", false, "/", "insufficient role"},
		{"matching role", "admin", "admin", true, "", ""},
		{"no role required", "customer", "", true, "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision := Authorize(tc.userRole, tc.requiredRole)
			assert.Equal(t, tc.allowed, decision.Allowed)
			assert.Equal(t, tc.redirectTo, decision.RedirectTo)
			assert.Equal(t, tc.reason, decision.Reason)
		})
	}
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/admin", func(c *gin.Context) {
		c.Set("sessionUser", model.User{Role: "customer", Active: true})
	}, RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/ok", func(c *gin.Context) {
		c.Set("sessionUser", model.User{Role: "admin", Active: true})
	}, RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient role")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
