package studentValidator

import (
	"educhain/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func CreateRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			StudentName        string `json:"studentName"`
			RegistrationNumber string `json:"registrationNumber"`
			Course             string `json:"course"`
			InstitutionID      uint   `json:"institutionId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Student Name
		if strings.TrimSpace(reqData.StudentName) == "" {
			errors["studentName"] = "Student name is required!"
		} else if len(strings.TrimSpace(reqData.StudentName)) < 2 {
			errors["studentName"] = "Student name must be at least 2 characters long!"
		}

		// Validate Registration Number
		if strings.TrimSpace(reqData.RegistrationNumber) == "" {
			errors["registrationNumber"] = "Registration number is required!"
		}

		// Validate Course
		if strings.TrimSpace(reqData.Course) == "" {
			errors["course"] = "Course is required!"
		}

		// Validate Institution
		if reqData.InstitutionID == 0 {
			errors["institutionId"] = "Institution is required!"
		}

		// Respond with validation errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRequest", reqData)
		return c.Next()
	}
}
