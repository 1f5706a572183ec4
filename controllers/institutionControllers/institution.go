package institutionControllers

import (
	"errors"
	"io"
	"log"
	"strconv"

	"educhain/certificate"
	"educhain/database"
	"educhain/middleware"
	"educhain/models"
	"educhain/utils"

	"github.com/gofiber/fiber/v2"
)

// Service is the issuance/verification workflow instance, injected at startup
var Service *certificate.Service

// ListRequests returns the pending certificate requests addressed to this
// institution
func ListRequests(c *fiber.Ctx) error {
	institutionID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var requests []models.CertificateRequest
	if err := database.Database.Db.
		Where("institution_id = ? AND status = ? AND is_deleted = false", institutionID, "PENDING").
		Order("created_at desc").
		Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Requests fetched successfully!", fiber.Map{
		"requests": requests,
		"total":    len(requests),
	})
}

// ApproveRequest claims a pending request for issuance. The status transition
// is a guarded update so two concurrent approvals cannot both win, which in
// turn prevents a double mint for one request.
func ApproveRequest(c *fiber.Ctx) error {
	institutionID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	requestID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request id!", nil)
	}

	result := database.Database.Db.
		Model(&models.CertificateRequest{}).
		Where("id = ? AND institution_id = ? AND status = ? AND is_deleted = false",
			requestID, institutionID, "PENDING").
		Update("status", "APPROVED")
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve request!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Request is not pending or was already claimed!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Request approved successfully!", nil)
}

// DeleteRequest removes a pending request without issuing
func DeleteRequest(c *fiber.Ctx) error {
	institutionID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	requestID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request id!", nil)
	}

	result := database.Database.Db.
		Model(&models.CertificateRequest{}).
		Where("id = ? AND institution_id = ? AND is_deleted = false", requestID, institutionID).
		Updates(map[string]interface{}{"is_deleted": true, "status": "REJECTED"})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete request!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Request not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Request deleted successfully!", nil)
}

// IssueCertificate runs the issuance workflow for an approved request
func IssueCertificate(c *fiber.Ctx) error {
	institutionID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedIssue").(*struct {
		RequestID                uint
		InstitutionWalletAddress string
		CGPA                     string
		SemMarks                 certificate.SemMarks
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var request models.CertificateRequest
	if err := db.Where("id = ? AND institution_id = ? AND is_deleted = false",
		reqData.RequestID, institutionID).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate request not found!", nil)
	}
	if request.Status != "APPROVED" {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Approve the request before issuing!", nil)
	}

	// The certificate image arrives as a multipart file
	var image []byte
	imageName := "certificate.png"
	if file, err := c.FormFile("image"); err == nil {
		src, err := file.Open()
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read certificate image!", nil)
		}
		defer src.Close()
		buf, err := io.ReadAll(src)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read certificate image!", nil)
		}
		image = buf
		imageName = file.Filename
	}

	input := certificate.IssueInput{
		RequestID:                request.ID,
		StudentName:              request.StudentName,
		RegistrationNumber:       request.RegistrationNumber,
		Course:                   request.Course,
		RecipientWallet:          request.WalletAddress,
		InstitutionName:          request.InstitutionName,
		InstitutionWalletAddress: reqData.InstitutionWalletAddress,
		CGPA:                     reqData.CGPA,
		SemMarks:                 reqData.SemMarks,
		ImageName:                imageName,
		Image:                    image,
	}

	result, err := Service.Issue(c.Context(), input)
	if err != nil {
		return issueErrorResponse(c, err)
	}

	// Notify the institution contact, best effort
	var institution models.User
	if err := db.Where("id = ?", institutionID).First(&institution).Error; err == nil && institution.Email != "" {
		go utils.SendCertificateIssuedEmail(institution.Email, request.StudentName, result.TokenID, result.TransactionHash)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate issued successfully!", result)
}

// issueErrorResponse maps workflow errors onto user-facing responses. Nothing
// is retried; every failure is terminal for the attempt.
func issueErrorResponse(c *fiber.Ctx, err error) error {
	var validationErr *certificate.ValidationError
	var uploadErr *certificate.UploadError
	var signerErr *certificate.SignerMismatchError
	var mintErr *certificate.MintError

	switch {
	case errors.As(err, &validationErr):
		return middleware.ValidationErrorResponse(c, map[string]string{validationErr.Field: validationErr.Message})
	case errors.As(err, &uploadErr):
		log.Printf("Issuance upload failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to upload to IPFS: "+uploadErr.Err.Error(), nil)
	case errors.Is(err, certificate.ErrWalletUnavailable):
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "No institution wallet session is configured!", nil)
	case errors.As(err, &signerErr):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Connect the institution wallet address you declared!", nil)
	case errors.As(err, &mintErr):
		log.Printf("Mint failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to mint certificate: "+mintErr.Reason, nil)
	default:
		log.Printf("Issuance failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}
}

// RevokeCertificate flips the one-way revocation flag for an issued token
func RevokeCertificate(c *fiber.Ctx) error {
	walletAddress, ok := c.Locals("walletAddress").(string)
	if !ok || walletAddress == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	tokenID, err := strconv.ParseUint(c.Params("tokenId"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid token id!", nil)
	}

	db := database.Database.Db

	var cert models.Certificate
	if err := db.Where("token_id = ? AND lower(institution_wallet_address) = lower(?) AND is_deleted = false",
		tokenID, walletAddress).First(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found for this institution!", nil)
	}
	if cert.IsRevoked {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate is already revoked!", nil)
	}

	txHash, err := Service.RevokeToken(c.Context(), tokenID)
	if err != nil {
		var revokeErr *certificate.RevokeError
		if errors.As(err, &revokeErr) {
			log.Printf("Revoke failed: %v", err)
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to revoke certificate: "+revokeErr.Reason, nil)
		}
		log.Printf("Revoke failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to revoke certificate!", nil)
	}

	// Keep the mirror in step with the chain
	if err := db.Model(&models.Certificate{}).
		Where("token_id = ?", tokenID).
		Update("is_revoked", true).Error; err != nil {
		log.Printf("Certificate %d revoked on-chain but mirror update failed: %v", tokenID, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate revoked successfully!", fiber.Map{
		"transaction_hash": txHash,
	})
}

// ListIssued returns the certificates this institution has issued
func ListIssued(c *fiber.Ctx) error {
	walletAddress, ok := c.Locals("walletAddress").(string)
	if !ok || walletAddress == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var certificates []models.Certificate
	if err := database.Database.Db.
		Where("lower(institution_wallet_address) = lower(?) AND is_deleted = false", walletAddress).
		Order("issued_at desc").
		Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certificates,
		"total":        len(certificates),
	})
}
