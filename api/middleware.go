package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skydesk/reservations/internal/auth"
)

const identityKey = "identity"

// Authenticate verifies the Authorization header and stores the caller's
// identity on the request context for downstream handlers.
func Authenticate(tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := tokens.Verify(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"kind": "unauthorized", "error": err.Error()})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		identity := identityFrom(c)
		if identity == nil || !allowed[identity.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"kind": "forbidden", "error": "access denied"})
			return
		}
		c.Next()
	}
}

func identityFrom(c *gin.Context) *auth.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, ok := v.(*auth.Identity)
	if !ok {
		return nil
	}
	return identity
}
