package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"

	userEntity "rasana/internal/core/user"
)

const viewerKey = "viewer"

// ViewerResolver loads the account behind a token subject.
type ViewerResolver interface {
	FindByFsid(ctx context.Context, fsid string) (*userEntity.User, error)
}

// JWTAuth requires a valid bearer token and puts the resolved viewer in
// the request context.
func JWTAuth(secret []byte, resolver ViewerResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := resolveViewer(c, secret, resolver)
		if !ok {
			return
		}
		if viewer == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(viewerKey, viewer)
		c.Next()
	}
}

// OptionalJWTAuth resolves the viewer when a token is present and lets
// the request through as a guest when it is not. A present-but-invalid
// token is still rejected.
func OptionalJWTAuth(secret []byte, resolver ViewerResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := resolveViewer(c, secret, resolver)
		if !ok {
			return
		}
		if viewer != nil {
			c.Set(viewerKey, viewer)
		}
		c.Next()
	}
}

// resolveViewer returns (nil, true) for guests, (viewer, true) for valid
// tokens, and (nil, false) after aborting an invalid one.
func resolveViewer(c *gin.Context, secret []byte, resolver ViewerResolver) (*userEntity.User, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, true
	}

	raw := strings.TrimPrefix(header, "Bearer ")
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return nil, false
	}

	viewer, err := resolver.FindByFsid(c.Request.Context(), claims.Subject)
	if err != nil || viewer == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown account"})
		return nil, false
	}
	if !viewer.IsEnabled {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account disabled"})
		return nil, false
	}

	return viewer, true
}

// Viewer pulls the authenticated user out of the gin context; nil for
// guests.
func Viewer(c *gin.Context) *userEntity.User {
	v, exists := c.Get(viewerKey)
	if !exists {
		return nil
	}
	viewer, _ := v.(*userEntity.User)
	return viewer
}
