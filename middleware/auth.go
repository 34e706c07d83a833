package middleware

import (
	"context"
	"net/http"
	"strings"

	"electronics-store/models"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Authenticator resolves a bearer token into the caller's identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.Identity, error)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
		Success: false,
		Code:    "unauthorized",
		Message: message,
	})
}

func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header required")
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" || tokenParts[1] == "" {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		ident, err := auth.Authenticate(c.Request.Context(), tokenParts[1])
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(identityKey, ident)
		c.Next()
	}
}

// AdminMiddleware must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := CurrentIdentity(c)
		if !ok {
			abortUnauthorized(c, "Authentication required")
			return
		}

		if !ident.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Success: false,
				Code:    "forbidden",
				Message: "Access denied. Admin role required",
			})
			return
		}

		c.Next()
	}
}

// CurrentIdentity returns the identity stored by AuthMiddleware.
func CurrentIdentity(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	ident, ok := v.(models.Identity)
	return ident, ok
}

// SetIdentity is used by handlers mounted behind other authentication and by tests.
func SetIdentity(c *gin.Context, ident models.Identity) {
	c.Set(identityKey, ident)
}
