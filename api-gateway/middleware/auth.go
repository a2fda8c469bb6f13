package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fleetops/depot-backend/pkg/auth"
)

// roleRank orders the account roles: every manager can do what a
// technician can, every admin what a manager can
var roleRank = map[string]int{
	"technician": 1,
	"manager":    2,
	"admin":      3,
}

// AuthMiddleware validates the JWT and forwards the caller's identity
// to the backend. The stock service trusts these headers for the author
// field on movements, so they are always overwritten, never passed
// through from the client.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("username", claims.Username)
		c.Locals("role", claims.Role)

		c.Request().Header.Set("X-User-ID", fmt.Sprintf("%d", claims.UserID))
		c.Request().Header.Set("X-Username", claims.Username)
		c.Request().Header.Set("X-User-Role", claims.Role)

		return c.Next()
	}
}

// RequireRole rejects callers below the given role
func RequireRole(minimum string) fiber.Handler {
	required := roleRank[minimum]
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if roleRank[role] < required {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": fmt.Sprintf("%s access required", minimum),
			})
		}
		return c.Next()
	}
}

// ManagerMiddleware admits managers and admins
func ManagerMiddleware() fiber.Handler {
	return RequireRole("manager")
}

// AdminMiddleware admits admins only
func AdminMiddleware() fiber.Handler {
	return RequireRole("admin")
}
