package middleware

import (
	"strings"

	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	localUserID = "userID"
	localRole   = "role"
)

// AuthMiddleware rejects requests without a valid bearer token and stores
// the caller's id and role in the request locals.
func AuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.ExtractClaimsFromToken(c, secret)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		c.Locals(localUserID, claims.UserID)
		c.Locals(localRole, claims.Role)
		return c.Next()
	}
}

// RoleMiddleware must run after AuthMiddleware.
func RoleMiddleware(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := CurrentRole(c)
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return utils.Forbidden(c, "Forbidden - "+strings.Join(roles, " or ")+" access required")
	}
}

// CurrentUserID is empty on routes without AuthMiddleware.
func CurrentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(localUserID).(string)
	return id
}

// CurrentRole is empty on routes without AuthMiddleware.
func CurrentRole(c *fiber.Ctx) string {
	role, _ := c.Locals(localRole).(string)
	return role
}
