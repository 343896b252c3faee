package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/crichq/pavilion/pkg/token"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	AuthAccountIDKey = "auth_account_id"
	AuthRoleKey      = "auth_role"
)

// AuthMiddleware validates the bearer token and confirms the account still
// exists before letting the request through.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format. Expected: Bearer <token>"})
			return
		}

		claims, err := token.ValidateJWT(bearerToken[1], jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
			return
		}

		var exists bool
		if err := db.Table("accounts").Select("1").Where("id = ? AND deleted_at IS NULL", claims.AccountID).Scan(&exists).Error; err != nil || !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account not found or inactive"})
			return
		}

		c.Set(AuthAccountIDKey, claims.AccountID)
		c.Set(AuthRoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole allows only accounts whose role matches one of the given roles.
// Admin always passes.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(AuthRoleKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		role, _ := roleVal.(string)
		if strings.EqualFold(role, "admin") {
			c.Next()
			return
		}
		for _, r := range roles {
			if strings.EqualFold(role, r) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":    "Forbidden",
			"message":  "You don't have permission to access this resource",
			"required": roles,
		})
	}
}

// ScorerMiddleware is a convenience middleware for scoring endpoints.
func ScorerMiddleware() gin.HandlerFunc {
	return RequireRole("scorer")
}

// AdminMiddleware is a convenience middleware for admin-only access.
func AdminMiddleware() gin.HandlerFunc {
	return RequireRole("admin")
}

// GetAccountIDFromContext extracts the authenticated account ID from the context.
func GetAccountIDFromContext(c *gin.Context) (uint, error) {
	accountID, exists := c.Get(AuthAccountIDKey)
	if !exists {
		return 0, errors.New("account ID not found in context")
	}

	id, ok := accountID.(uint)
	if !ok {
		return 0, fmt.Errorf("account ID has unexpected type: %T", accountID)
	}

	return id, nil
}
