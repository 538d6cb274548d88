package middleware

import (
	"errors"

	"techstorm/database"
	"techstorm/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// fetchUser returns the token owner, or a non-zero status with a message
func fetchUser(c *fiber.Ctx) (models.User, int, string) {
	var user models.User

	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return user, fiber.StatusUnauthorized, "Unauthorized!"
	}

	err := database.Database.Db.First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, fiber.StatusUnauthorized, "User not found!"
		}
		return user, fiber.StatusInternalServerError, "Server error while loading user!"
	}

	if user.Status == models.UserSuspended {
		return user, fiber.StatusForbidden, "Your account has been suspended."
	}

	return user, 0, ""
}

// LoadUser loads the token owner into c.Locals("user"). Must run after JWTMiddleware.
func LoadUser(c *fiber.Ctx) error {
	user, status, message := fetchUser(c)
	if status != 0 {
		return JsonResponse(c, status, false, message, nil)
	}

	c.Locals("user", user)
	return c.Next()
}

// RequireRoles returns a middleware that loads the caller and checks the role
func RequireRoles(roles ...string) fiber.Handler {
	denied := "Access denied!"
	if len(roles) == 1 && roles[0] == models.RoleAdmin {
		denied = "Access denied! Admin only."
	}

	return func(c *fiber.Ctx) error {
		user, status, message := fetchUser(c)
		if status != 0 {
			return JsonResponse(c, status, false, message, nil)
		}

		for _, role := range roles {
			if user.Role == role {
				c.Locals("user", user)
				return c.Next()
			}
		}

		return JsonResponse(c, fiber.StatusForbidden, false, denied, nil)
	}
}

// CurrentUser returns the user stored by LoadUser or RequireRoles
func CurrentUser(c *fiber.Ctx) (models.User, bool) {
	user, ok := c.Locals("user").(models.User)
	return user, ok
}
