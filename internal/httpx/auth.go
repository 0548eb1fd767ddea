package httpx

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/mealmoment/internal/auth"
)

const (
	keyUserID  = "user_id"
	keyEmail   = "email"
	keyIsAdmin = "is_admin"

	SessionHeader = "X-Session-ID"
)

type TokenParser interface {
	Parse(raw string) (*auth.Claims, error)
}

// Auth reads an optional bearer token. Requests without one pass through
// anonymous; a malformed or expired token is rejected.
func Auth(p TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			c.Next()
			return
		}
		raw, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			AbortError(c, http.StatusUnauthorized, "invalid authorization header")
			return
		}
		claims, err := p.Parse(strings.TrimSpace(raw))
		if err != nil {
			AbortError(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		c.Set(keyUserID, claims.UserID())
		c.Set(keyEmail, claims.Email)
		c.Set(keyIsAdmin, claims.IsAdmin)
		c.Next()
	}
}

func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserID(c); !ok {
			AbortError(c, http.StatusUnauthorized, "authentication required")
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserID(c); !ok {
			AbortError(c, http.StatusUnauthorized, "authentication required")
			return
		}
		if !c.GetBool(keyIsAdmin) {
			AbortError(c, http.StatusForbidden, "admin access required")
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user, if any.
func UserID(c *gin.Context) (string, bool) {
	id := c.GetString(keyUserID)
	return id, id != ""
}

func SessionID(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(SessionHeader))
}

func Email(c *gin.Context) string { return c.GetString(keyEmail) }
