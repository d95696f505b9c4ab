package middleware

import (
	"github.com/attthulll/Learnsphere---Backend/backend/models"
	"github.com/attthulll/Learnsphere---Backend/backend/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	localUserID   = "userID"
	localUserRole = "userRole"
)

// AuthMiddleware verifies the bearer token and stores the caller in Locals.
func AuthMiddleware(jwt *utils.JWTIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := jwt.ExtractClaimsFromToken(c)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		c.Locals(localUserID, claims.UserID)
		c.Locals(localUserRole, claims.Role)
		return c.Next()
	}
}

// OnlyRoles must run after AuthMiddleware.
func OnlyRoles(message string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(localUserRole).(string)
		if !ok {
			return utils.Unauthorized(c, "Unauthorized")
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		if message == "" {
			message = "Forbidden"
		}
		return utils.Forbidden(c, message)
	}
}

func AdminMiddleware() fiber.Handler {
	return OnlyRoles("Admin access only", models.RoleAdmin)
}

func InstructorMiddleware() fiber.Handler {
	return OnlyRoles("Access denied. Instructors only.", models.RoleInstructor)
}

// CurrentUserID returns the caller set by AuthMiddleware.
func CurrentUserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(localUserID).(uuid.UUID)
	return id
}
