// Package authtoken provides the bearer-token authentication middleware.
//
// Tokens are opaque values issued at login and looked up in the token
// store on every request; there is nothing to verify client-side.
package authtoken

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recipe_backend/internal/feature/user/domain/entity"
	"recipe_backend/internal/feature/user/usecase"
)

const (
	// ContextUserID is the gin context key holding the authenticated user's ID.
	ContextUserID = "userID"

	// ContextTokenID is the gin context key holding the presented token value.
	ContextTokenID = "tokenID"
)

// TokenFinder resolves a presented token value to a stored token.
// Following Go convention: the interface is defined by the consumer (middleware), not the provider.
type TokenFinder interface {
	FindByID(ctx context.Context, id string) (*entity.Token, error)
}

// AuthRequired returns a Gin middleware function that resolves bearer tokens
// and restricts access to authenticated users only.
func AuthRequired(tokens TokenFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		value := strings.TrimPrefix(auth, "Bearer ")

		// 2. Look the token up in the store
		token, err := tokens.FindByID(c.Request.Context(), value)
		if err != nil {
			if errors.Is(err, usecase.ErrTokenNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
			// A store failure is not the client's fault; 401 would read as revocation
			slog.Error("token store lookup failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		// 3. Reject expired and revoked tokens
		if !token.IsValid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 4. Expose the authenticated identity to handlers
		c.Set(ContextUserID, token.UserID)
		c.Set(ContextTokenID, token.ID)

		// 5. Pass control to the next handler
		c.Next()
	}
}

// UserID returns the authenticated user's ID from the gin context.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// TokenID returns the presented token value from the gin context.
func TokenID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextTokenID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
