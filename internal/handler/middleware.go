package handler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"complaint-portal/internal/auth"
	"complaint-portal/internal/authz"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// TokenValidator is the part of the token issuer the guard needs.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

// authenticate resolves the caller. It writes the response itself when it
// returns false.
func authenticate(c *gin.Context, tokens TokenValidator, roles authz.RoleResolver, required bool) bool {
	token, ok := bearerToken(c)
	if !ok {
		if required {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized - No token provided"})
			return false
		}
		return true
	}

	claims, err := tokens.Validate(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized - Invalid token"})
		return false
	}

	facts, err := roles.ResolveRoles(c.Request.Context(), claims.ID)
	if err != nil {
		log.Printf("auth: resolve roles for %s: %v", claims.ID, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user roles"})
		return false
	}

	id := &authz.Identity{ID: claims.ID, Name: claims.Name, Email: claims.Email, RoleFacts: facts}
	c.Set(identityKey, id)
	c.Request = c.Request.WithContext(authz.WithIdentity(c.Request.Context(), id))
	return true
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(tokens TokenValidator, roles authz.RoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authenticate(c, tokens, roles, true) {
			c.Next()
		}
	}
}

// OptionalAuth lets anonymous requests through but still rejects a token
// that is present and invalid.
func OptionalAuth(tokens TokenValidator, roles authz.RoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authenticate(c, tokens, roles, false) {
			c.Next()
		}
	}
}

// QueryToken copies ?token= into the Authorization header for clients that
// cannot set headers, such as EventSource and browser websockets.
func QueryToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			if token := c.Query("token"); token != "" {
				c.Request.Header.Set("Authorization", "Bearer "+token)
			}
		}
		c.Next()
	}
}

func CurrentIdentity(c *gin.Context) (*authz.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*authz.Identity)
	return id, ok && id != nil
}

// CORS allows the configured origins, or any origin when none are set.
func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-File-Name"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: len(origins) > 0,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
