package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"chilaq/pkg/jwt"
)

const (
	// IdentityCookie carries the server-signed viewer identity token.
	IdentityCookie = "chilaq_id"

	// IdentityKey is the gin context key holding the verified identity id.
	IdentityKey = "identity_token"

	identityCookieMaxAge = 365 * 24 * 3600
)

// IdentityMiddleware guarantees every request carries a server-verified viewer
// identity. A valid signed cookie is accepted as-is; anything else (absent,
// tampered, expired) gets a freshly issued identity. The identity is a dedup
// key for the like ledger, not an account, so issuance needs no interaction.
func IdentityMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, err := c.Cookie(IdentityCookie); err == nil && raw != "" {
			if claims, err := jwtService.ValidateToken(raw); err == nil {
				c.Set(IdentityKey, claims.UserID)
				c.Next()
				return
			}
		}

		identityID := uuid.New().String()
		token, err := jwtService.GenerateIdentityToken(identityID)
		if err != nil {
			// No identity means the like endpoint will reject with
			// invalid_identity; reads still work.
			c.Next()
			return
		}

		c.SetCookie(IdentityCookie, token, identityCookieMaxAge, "/", "", false, true)
		c.Set(IdentityKey, identityID)
		c.Next()
	}
}
