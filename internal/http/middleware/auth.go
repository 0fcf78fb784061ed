package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/venkyden/Roomivo/internal/jwt"
)

const identityKey = "identity"

// Identity is the verified caller attached to the request context.
type Identity struct {
	UserID primitive.ObjectID
	Email  string
	Role   string
}

// Auth validates the Authorization header and attaches the caller
// identity.
type Auth struct {
	Generator *jwt.Generator
}

// ValidateJWT ensures the request has a valid bearer token.
func (m *Auth) ValidateJWT(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
		return
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
		return
	}

	identity, err := IdentityFromToken(m.Generator, parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid token"})
		return
	}

	c.Set(identityKey, identity)
	c.Next()
}

// GetIdentity exposes the verified caller to handlers.
func GetIdentity(c *gin.Context) (Identity, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
}

// IdentityFromToken validates a raw token and extracts the caller
// identity. Shared with the websocket handshake, which cannot use the
// gin middleware chain.
func IdentityFromToken(generator *jwt.Generator, raw string) (Identity, error) {
	std, custom, err := generator.Validate(raw)
	if err != nil {
		return Identity{}, err
	}
	userID, err := primitive.ObjectIDFromHex(std.Subject)
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: userID, Email: custom.Email, Role: custom.Role}, nil
}
