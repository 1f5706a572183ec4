package authValidator

import (
	"educhain/middleware"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
)

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			WalletAddress string `json:"walletAddress"`
			UserType      string `json:"userType"`
			Name          string `json:"name"`
			Email         string `json:"email"`
			Signature     string `json:"signature"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Wallet Address
		if !common.IsHexAddress(strings.TrimSpace(reqData.WalletAddress)) {
			errors["walletAddress"] = "A valid wallet address is required!"
		}

		// Validate User Type
		reqData.UserType = strings.ToUpper(strings.TrimSpace(reqData.UserType))
		switch reqData.UserType {
		case "STUDENT", "INSTITUTION", "VERIFIER":
		default:
			errors["userType"] = "User type must be STUDENT, INSTITUTION or VERIFIER!"
		}

		// Validate Name
		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		} else if len(strings.TrimSpace(reqData.Name)) < 2 {
			errors["name"] = "Name must be at least 2 characters long!"
		}

		// Validate Email (optional)
		if reqData.Email != "" && !strings.Contains(reqData.Email, "@") {
			errors["email"] = "Email address is not valid!"
		}

		// Validate Signature
		if !strings.HasPrefix(reqData.Signature, "0x") || len(reqData.Signature) != 132 {
			errors["signature"] = "A 65-byte hex signature is required!"
		}

		// Respond with validation errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}
