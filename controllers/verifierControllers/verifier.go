package verifierControllers

import (
	"errors"
	"log"
	"time"

	"educhain/certificate"
	"educhain/database"
	"educhain/middleware"
	"educhain/models"

	"github.com/gofiber/fiber/v2"
)

// Service is the issuance/verification workflow instance, injected at startup
var Service *certificate.Service

// VerifyCertificate recomputes the hash from pinned metadata and checks the
// recovered signer against the on-chain record
func VerifyCertificate(c *fiber.Ctx) error {
	walletAddress, _ := c.Locals("walletAddress").(string)

	reqData, ok := c.Locals("validatedVerify").(*struct {
		TokenID uint64 `json:"tokenId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	result, err := Service.Verify(c.Context(), reqData.TokenID)
	if err != nil {
		var notFound *certificate.NotFoundError
		var fetchErr *certificate.MetadataFetchError
		switch {
		case errors.As(err, &notFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No certificate exists for this token id!", nil)
		case errors.As(err, &fetchErr):
			log.Printf("Metadata fetch failed: %v", err)
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to fetch certificate metadata!", nil)
		default:
			log.Printf("Verification failed: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify certificate!", nil)
		}
	}

	// Record the attempt for the verification history view
	logEntry := models.VerificationLog{
		TokenID:        reqData.TokenID,
		VerifierWallet: walletAddress,
		Valid:          result.Valid,
		ReasonCode:     string(result.ReasonCode),
		CheckedAt:      time.Now(),
	}
	if err := database.Database.Db.Create(&logEntry).Error; err != nil {
		log.Printf("Failed to record verification of token %d: %v", reqData.TokenID, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Verification completed!", result)
}

// History lists this verifier's past verification attempts
func History(c *fiber.Ctx) error {
	walletAddress, ok := c.Locals("walletAddress").(string)
	if !ok || walletAddress == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var logs []models.VerificationLog
	if err := database.Database.Db.
		Where("lower(verifier_wallet) = lower(?) AND is_deleted = false", walletAddress).
		Order("checked_at desc").
		Find(&logs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch verification history!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Verification history fetched successfully!", fiber.Map{
		"history": logs,
		"total":   len(logs),
	})
}
