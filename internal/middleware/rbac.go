package middleware

import (
	"slices"

	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/common/models"
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// RequireRoles checks the caller's role against the endpoint allow-list.
// An empty role never matches anything.
func RequireRoles(skipAuth bool, allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if skipAuth {
			return c.Next()
		}

		claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrUnauthorized())
		}

		if claims.Role == "" || !slices.Contains(allowed, claims.Role) {
			return c.Status(fiber.StatusForbidden).JSON(models.ErrForbidden())
		}

		return c.Next()
	}
}
