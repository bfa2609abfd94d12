package middleware

import (
	"github.com/gin-gonic/gin"
	appauth "github.com/web79/smiportal/internal/app/auth"
	"github.com/web79/smiportal/internal/app/models"
	"github.com/web79/smiportal/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextClaimsKey = "claims"
	ContextUserIDKey = "userID"
	ContextRoleKey   = "role"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	gate *appauth.Gate
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(gate *appauth.Gate) *AuthMiddleware {
	return &AuthMiddleware{gate: gate}
}

// JWTAuth requires a valid bearer token
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.gate.Authenticate(c.GetHeader("Authorization"))
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextRoleKey, claims.Role)

		c.Next()
	}
}

// RoleRequired requires the authenticated caller to hold requiredRole.
// It must run after JWTAuth.
func (m *AuthMiddleware) RoleRequired(requiredRole models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := ClaimsFromContext(c)
		if err := m.gate.CheckRole(claims, requiredRole); err != nil {
			HandleAPIError(c, err)
			return
		}

		c.Next()
	}
}

// ClaimsFromContext returns the claims stored by JWTAuth
func ClaimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(ContextClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}
