package verifierValidator

import (
	"educhain/middleware"

	"github.com/gofiber/fiber/v2"
)

func Verify() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			TokenID uint64 `json:"tokenId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Token ID
		if reqData.TokenID == 0 {
			errors["tokenId"] = "Token id must be greater than 0!"
		}

		// Respond with validation errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedVerify", reqData)
		return c.Next()
	}
}
