package institutionValidator

import (
	"strconv"
	"strings"

	"educhain/certificate"
	"educhain/middleware"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
)

// IssueCertificate validates the multipart issue form before the workflow is
// ever invoked: all fields required, cgpa in [0,10], marks in [0,100].
func IssueCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		// Validate Request ID
		requestID, err := strconv.ParseUint(strings.TrimSpace(c.FormValue("requestId")), 10, 32)
		if err != nil || requestID == 0 {
			errors["requestId"] = "A valid request id is required!"
		}

		// Validate Institution Wallet Address
		institutionWallet := strings.TrimSpace(c.FormValue("institutionWalletAddress"))
		if !common.IsHexAddress(institutionWallet) {
			errors["institutionWalletAddress"] = "A valid institution wallet address is required!"
		}

		// Validate CGPA
		cgpa := strings.TrimSpace(c.FormValue("cgpa"))
		if value, err := strconv.ParseFloat(cgpa, 64); err != nil || value < 0 || value > 10 {
			errors["cgpa"] = "CGPA must be a number between 0 and 10!"
		}

		// Validate the six semester marks
		marks := [6]string{}
		for i := 0; i < 6; i++ {
			field := "sem" + strconv.Itoa(i+1)
			mark := strings.TrimSpace(c.FormValue(field))
			if value, err := strconv.ParseFloat(mark, 64); err != nil || value < 0 || value > 100 {
				errors[field] = "Semester marks must be a number between 0 and 100!"
			}
			marks[i] = mark
		}

		// Validate Certificate Image
		if _, err := c.FormFile("image"); err != nil {
			errors["image"] = "A certificate image is required!"
		}

		// Respond with validation errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData := &struct {
			RequestID                uint
			InstitutionWalletAddress string
			CGPA                     string
			SemMarks                 certificate.SemMarks
		}{
			RequestID:                uint(requestID),
			InstitutionWalletAddress: institutionWallet,
			CGPA:                     cgpa,
			SemMarks: certificate.SemMarks{
				Sem1: marks[0], Sem2: marks[1], Sem3: marks[2],
				Sem4: marks[3], Sem5: marks[4], Sem6: marks[5],
			},
		}

		c.Locals("validatedIssue", reqData)
		return c.Next()
	}
}
