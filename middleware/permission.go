package middleware

import (
	"educhain/database"
	"educhain/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequireRole returns a middleware that restricts a dashboard surface to one
// user type. The role on the token is cross-checked against the users table
// so a stale session cannot outlive a role change.
func RequireRole(requiredType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		walletAddress, ok := c.Locals("walletAddress").(string)
		if !ok || walletAddress == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  false,
				"message": "Unauthorized: no session wallet address",
				"data":    nil,
			})
		}

		// A logged-out session must not reach any dashboard even if its
		// token has not expired yet.
		if sessionID, ok := c.Locals("sessionId").(string); ok && sessionID != "" {
			var session models.Session
			err := database.Database.Db.Where("session_id = ? AND is_deleted = false", sessionID).
				First(&session).Error
			if err != nil || session.LoggedOutAt != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"status":  false,
					"message": "Session has ended. Please login again!",
					"data":    nil,
				})
			}
		}

		var user models.User
		err := database.Database.Db.Where("lower(wallet_address) = lower(?) AND is_deleted = false",
			walletAddress).First(&user).Error

		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"status":  false,
					"message": "Unknown wallet. Please login again!",
					"data":    nil,
				})
			}
			// Other DB error
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  false,
				"message": "Server error while checking role!",
				"data":    nil,
			})
		}

		if user.UserType != requiredType {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":  false,
				"message": "You do not have permission to access this dashboard!",
				"data":    nil,
			})
		}

		c.Locals("userId", user.ID)
		return c.Next()
	}
}
