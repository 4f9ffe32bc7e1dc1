// internal/middleware/auth.go
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"finly/internal/domain"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

type TokenParser interface {
	ParseToken(tokenStr string) (domain.Identity, error)
}

type AuthMiddleware struct {
	tokens TokenParser
}

func NewAuthMiddleware(tokens TokenParser) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth rejects the request with the same 401 body whatever went wrong,
// so callers cannot tell a missing token from a forged one.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		scheme, tokenStr, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenStr) == "" {
			unauthorized(c, "missing bearer token")
			return
		}

		id, err := m.tokens.ParseToken(strings.TrimSpace(tokenStr))
		if err != nil {
			unauthorized(c, err.Error())
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

func unauthorized(c *gin.Context, reason string) {
	slog.Debug("Request rejected", "path", c.FullPath(), "reason", reason)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
}

// IdentityFrom returns the caller resolved by RequireAuth.
func IdentityFrom(c *gin.Context) (domain.Identity, error) {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	id, ok := v.(domain.Identity)
	if !ok || id.ID == "" {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	return id, nil
}

// SetIdentity is used by non-HTTP front ends and tests that bypass tokens.
func SetIdentity(c *gin.Context, id domain.Identity) {
	c.Set(identityKey, id)
}
