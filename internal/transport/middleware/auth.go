package middleware

import (
	"net/http"
	"strings"

	"github.com/abhey8/Hospital-OPD/internal/entity"
	"github.com/abhey8/Hospital-OPD/pkg/token"

	"github.com/gin-gonic/gin"
)

const (
	UserIDKey   = "userID"
	UserRoleKey = "userRole"
)

// Auth validates the bearer token and stores the caller's identity on the
// request context.
func Auth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		claims, err := tokens.Parse(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserRoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole guards a route group; it must run after Auth.
func RequireRole(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, ok := c.Get(UserRoleKey)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization"})
			return
		}

		role, _ := value.(entity.Role)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	}
}

// GetUserID reads the authenticated caller's user id set by Auth.
func GetUserID(c *gin.Context) (int64, bool) {
	value, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}

// GetUserRole reads the authenticated caller's role set by Auth.
func GetUserRole(c *gin.Context) (entity.Role, bool) {
	value, ok := c.Get(UserRoleKey)
	if !ok {
		return "", false
	}
	role, ok := value.(entity.Role)
	return role, ok
}
