package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// OrganizationIDLocalKey holds the authenticated tenant scope.
	OrganizationIDLocalKey = "organization_id"
	// UserIDLocalKey holds the authenticated user id (token subject).
	UserIDLocalKey = "user_id"
	// RoleLocalKey holds the authenticated user's role.
	RoleLocalKey = "role"
)

// Claims is the expected bearer token payload. Every protected route is
// organization-scoped, so organization_id is mandatory.
type Claims struct {
	jwt.RegisteredClaims
	OrganizationID string `json:"organization_id"`
	Role           string `json:"role"`
}

// Auth returns a middleware that verifies the Authorization bearer token
// (HMAC-signed JWT) and stores organization/user/role in context locals.
//
// Missing or malformed credentials are 401; a valid token without an
// organization scope is 403.
func Auth(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		tokenStr, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenStr == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}
		if claims.OrganizationID == "" {
			return fiber.NewError(fiber.StatusForbidden, "token has no organization scope")
		}

		c.Locals(OrganizationIDLocalKey, claims.OrganizationID)
		c.Locals(UserIDLocalKey, claims.Subject)
		c.Locals(RoleLocalKey, claims.Role)

		return c.Next()
	}
}
