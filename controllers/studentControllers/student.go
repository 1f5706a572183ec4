package studentControllers

import (
	"educhain/database"
	"educhain/middleware"
	"educhain/models"

	"github.com/gofiber/fiber/v2"
)

// ListInstitutions returns the registered institutions a student can request
// a certificate from
func ListInstitutions(c *fiber.Ctx) error {
	var institutions []models.User
	if err := database.Database.Db.
		Where("user_type = ? AND is_deleted = false", "INSTITUTION").
		Order("name asc").
		Find(&institutions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch institutions!", nil)
	}

	type InstitutionView struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
	result := make([]InstitutionView, len(institutions))
	for i, inst := range institutions {
		result[i] = InstitutionView{ID: inst.ID, Name: inst.Name}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Institutions fetched successfully!", fiber.Map{
		"institutions": result,
	})
}

// CreateRequest submits a certificate request to an institution
func CreateRequest(c *fiber.Ctx) error {
	walletAddress, ok := c.Locals("walletAddress").(string)
	if !ok || walletAddress == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedRequest").(*struct {
		StudentName        string `json:"studentName"`
		RegistrationNumber string `json:"registrationNumber"`
		Course             string `json:"course"`
		InstitutionID      uint   `json:"institutionId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var institution models.User
	if err := db.Where("id = ? AND user_type = ? AND is_deleted = false",
		reqData.InstitutionID, "INSTITUTION").First(&institution).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Selected institution not found!", nil)
	}

	// Block duplicate pending requests for the same registration and course
	var existing models.CertificateRequest
	if err := db.Where(
		"registration_number = ? AND course = ? AND institution_id = ? AND status = ? AND is_deleted = false",
		reqData.RegistrationNumber, reqData.Course, reqData.InstitutionID, "PENDING",
	).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate request already pending!", nil)
	}

	request := models.CertificateRequest{
		StudentName:        reqData.StudentName,
		RegistrationNumber: reqData.RegistrationNumber,
		Course:             reqData.Course,
		InstitutionID:      institution.ID,
		InstitutionName:    institution.Name,
		WalletAddress:      walletAddress,
		Status:             "PENDING",
	}
	if err := db.Create(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit certificate request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate request submitted successfully!", request)
}

// ListRequests returns the student's own requests with their status
func ListRequests(c *fiber.Ctx) error {
	walletAddress, ok := c.Locals("walletAddress").(string)
	if !ok || walletAddress == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var requests []models.CertificateRequest
	if err := database.Database.Db.
		Where("lower(wallet_address) = lower(?) AND is_deleted = false", walletAddress).
		Order("created_at desc").
		Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Requests fetched successfully!", fiber.Map{
		"requests": requests,
		"total":    len(requests),
	})
}

// ReceivedCertificates lists the certificate tokens minted to the student's
// wallet
func ReceivedCertificates(c *fiber.Ctx) error {
	walletAddress, ok := c.Locals("walletAddress").(string)
	if !ok || walletAddress == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var certificates []models.Certificate
	if err := database.Database.Db.
		Where("lower(recipient_wallet) = lower(?) AND is_deleted = false", walletAddress).
		Order("issued_at desc").
		Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certificates,
		"total":        len(certificates),
	})
}
