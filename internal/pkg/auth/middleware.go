package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	cacheport "go-parley/internal/infrastructure/cache/port"

	"github.com/gin-gonic/gin"
)

const (
	claimsContextKey = "auth.claims"
	tokenContextKey  = "auth.token"
	denylistPrefix   = "auth:denylist:"
)

// Middleware authenticates requests with a bearer token and consults the
// cache-backed denylist so logged-out tokens stop working before they expire.
type Middleware struct {
	Tokens *TokenManager
	Cache  cacheport.Cache
}

func NewMiddleware(tokens *TokenManager, cache cacheport.Cache) *Middleware {
	return &Middleware{Tokens: tokens, Cache: cache}
}

// Handler returns the gin middleware. Tokens are accepted from the
// Authorization header or, for websocket upgrades, the token query parameter.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.Request)
		if raw == "" {
			raw = c.Query("token")
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
			return
		}

		claims, err := m.Authenticate(c.Request.Context(), raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Set(tokenContextKey, raw)
		c.Next()
	}
}

// Authenticate validates a raw token and checks the denylist. It returns
// ErrRevokedToken for a well-formed token that was logged out.
func (m *Middleware) Authenticate(ctx context.Context, raw string) (*Claims, error) {
	claims, err := m.Tokens.Validate(raw)
	if err != nil {
		return nil, err
	}
	if m.revoked(ctx, claims.ID) {
		return nil, ErrRevokedToken
	}
	return claims, nil
}

// Revoke denylists the request's token for its remaining lifetime.
func (m *Middleware) Revoke(ctx context.Context, c *gin.Context) error {
	claims := ClaimsFrom(c)
	if claims == nil || m.Cache == nil {
		return nil
	}
	ttl := time.Duration(0)
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil // already expired, nothing to revoke
	}
	return m.Cache.Set(ctx, denylistPrefix+claims.ID, "revoked", ttl)
}

func (m *Middleware) revoked(ctx context.Context, jti string) bool {
	if m.Cache == nil || jti == "" {
		return false
	}
	_, err := m.Cache.Get(ctx, denylistPrefix+jti)
	if errors.Is(err, cacheport.ErrMiss) {
		return false
	}
	// Treat cache transport errors as not-revoked; availability over strictness.
	return err == nil
}

// ClaimsFrom returns the authenticated claims stored by the middleware,
// or nil outside an authenticated request.
func ClaimsFrom(c *gin.Context) *Claims {
	v, ok := c.Get(claimsContextKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}

// UserID returns the authenticated user id, or empty.
func UserID(c *gin.Context) string {
	if claims := ClaimsFrom(c); claims != nil {
		return claims.UserID
	}
	return ""
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
