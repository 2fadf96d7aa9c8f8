package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/dukalink/storefront-gateway/internal/api"
	"github.com/dukalink/storefront-gateway/internal/model"
	"github.com/dukalink/storefront-gateway/internal/session"
)

// SessionMiddleware authenticates the gateway session token, loads the
// persisted session, and attaches the backend bearer token to the
// request context so outbound calls authenticate as the session user.
// A deactivated account tears the session down and forces a logout.
func SessionMiddleware(secret string, sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "redirect": "/login"})
			return
		}

		token, err := jwt.Parse(header[7:], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token", "redirect": "/login"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims", "redirect": "/login"})
			return
		}
		sessionID, _ := claims["sid"].(string)
		if sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session", "redirect": "/login"})
			return
		}

		sess, err := sessions.Load(c.Request.Context(), sessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if sess == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired", "redirect": "/login"})
			return
		}
		if !sess.User.Active {
			_ = sessions.Teardown(c.Request.Context(), sessionID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account deactivated", "redirect": "/login"})
			return
		}

		c.Set("sessionID", sessionID)
		c.Set("sessionUser", sess.User)
		c.Request = c.Request.WithContext(api.WithToken(c.Request.Context(), sess.Token))
		c.Next()
	}
}

// Decision is the outcome of an authorization check: allowed, or
// denied with a redirect target and reason.
type Decision struct {
	Allowed    bool
	RedirectTo string
	Reason     string
}

// Authorize is the role predicate, evaluated before a handler runs.
func Authorize(userRole, requiredRole string) Decision {
	if userRole == "" {
		return Decision{RedirectTo: "/login", Reason: "not authenticated"}
	}
	if requiredRole != "" && userRole != requiredRole {
		return Decision{RedirectTo: "/", Reason: "insufficient role"}
	}
	return Decision{Allowed: true}
}

// RequireRole gates a route group on the session user's role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := Authorize(CurrentUser(c).Role, role)
		if !decision.Allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    decision.Reason,
				"redirect": decision.RedirectTo,
			})
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) model.User {
	u, _ := c.Get("sessionUser")
	user, _ := u.(model.User)
	return user
}

func SessionID(c *gin.Context) string {
	id, _ := c.Get("sessionID")
	sid, _ := id.(string)
	return sid
}
