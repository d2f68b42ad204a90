package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"tienda/internal/authz"
	"tienda/internal/services"
)

const principalKey = "principal"

// AuthRequired checks the Authorization header and stores the resolved
// principal in the request context. Both "Token <t>" and "Bearer <t>"
// prefixes are accepted.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "authentication_error",
				"message": "Authorization header is required",
			})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || (parts[0] != "Token" && parts[0] != "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "authentication_error",
				"message": "Authorization header format must be 'Token <token>' or 'Bearer <token>'",
			})
		}

		principal, err := authService.ValidateToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "authentication_error",
				"message": "Invalid or expired token",
			})
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// RequireAction denies the request unless the resolved principal's role
// holds the action in the capability table. Must run after AuthRequired for
// authenticated routes; without a principal the public role is checked.
func RequireAction(action authz.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := Principal(c)
		if !authz.Allowed(principal.Role, action) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":   "authorization_error",
				"message": "You do not have permission to perform this action",
			})
		}
		return c.Next()
	}
}

// Principal returns the principal resolved for this request, or Anonymous
// when the request carried no credentials.
func Principal(c *fiber.Ctx) authz.Principal {
	if p, ok := c.Locals(principalKey).(authz.Principal); ok {
		return p
	}
	return authz.Anonymous
}
