package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthhub/healthhub-api/internal/model"
	"github.com/healthhub/healthhub-api/pkg/auth"
)

// SessionCookieName is the HTTP-only cookie carrying the session token.
const SessionCookieName = "authToken"

// ContextClaims is the gin context key holding the verified claims.
const ContextClaims = "claims"

type AuthMiddleware struct {
	jwtSvc auth.JWTService
}

func NewAuthMiddleware(jwtSvc auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtSvc: jwtSvc}
}

// Authenticate verifies the session cookie and attaches the claims to
// the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "No token provided"})
			c.Abort()
			return
		}

		claims, err := m.jwtSvc.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// RequireRole gates a route group to one of the closed role set.
func (m *AuthMiddleware) RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "No token provided"})
			c.Abort()
			return
		}

		if claims.Role != role {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Access denied. Only " + role.String() + "s can access this endpoint.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// ClaimsFromContext returns the verified claims set by Authenticate, or
// nil when the route was not authenticated.
func ClaimsFromContext(c *gin.Context) *model.TokenClaims {
	value, exists := c.Get(ContextClaims)
	if !exists {
		return nil
	}
	claims, ok := value.(*model.TokenClaims)
	if !ok {
		return nil
	}
	return claims
}
