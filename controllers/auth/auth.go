package authController

import (
	"educhain/certificate"
	"educhain/database"
	"educhain/middleware"
	"educhain/models"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// loginMessage is the fixed prefix of the text a wallet signs to prove
// ownership during login.
const loginMessage = "EduChain login nonce: "

var (
	nonceMu sync.Mutex
	nonces  = make(map[string]nonceEntry)
)

type nonceEntry struct {
	nonce   string
	expires time.Time
}

// Nonce hands out a one-time login challenge for a wallet address
func Nonce(c *fiber.Ctx) error {
	walletAddress := strings.ToLower(strings.TrimSpace(c.Query("walletAddress")))
	if !common.IsHexAddress(walletAddress) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "A valid wallet address is required!", nil)
	}

	nonce := uuid.NewString()
	now := time.Now()
	nonceMu.Lock()
	// Abandoned challenges are never consumed by a login, so sweep the
	// expired ones here to keep the map bounded.
	for wallet, entry := range nonces {
		if now.After(entry.expires) {
			delete(nonces, wallet)
		}
	}
	nonces[walletAddress] = nonceEntry{nonce: nonce, expires: now.Add(5 * time.Minute)}
	nonceMu.Unlock()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login nonce issued!", fiber.Map{
		"message": loginMessage + nonce,
	})
}

// Login verifies the signed challenge, registers the wallet on first login
// and opens a session
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*struct {
		WalletAddress string `json:"walletAddress"`
		UserType      string `json:"userType"`
		Name          string `json:"name"`
		Email         string `json:"email"`
		Signature     string `json:"signature"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	wallet := strings.ToLower(reqData.WalletAddress)

	nonceMu.Lock()
	entry, found := nonces[wallet]
	delete(nonces, wallet)
	nonceMu.Unlock()

	if !found || time.Now().After(entry.expires) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Login nonce expired. Request a new one!", nil)
	}

	// The signature must recover to the wallet that requested the nonce.
	recovered, err := certificate.RecoverSigner(loginMessage+entry.nonce, reqData.Signature)
	if err != nil || recovered != common.HexToAddress(wallet) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Wallet signature verification failed!", nil)
	}

	db := database.Database.Db

	// First login registers the user; later logins keep the stored profile.
	var user models.User
	if err := db.Where("lower(wallet_address) = ?", wallet).First(&user).Error; err != nil {
		user = models.User{
			WalletAddress: wallet,
			UserType:      reqData.UserType,
			Name:          reqData.Name,
			Email:         reqData.Email,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("Error saving user to database: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register wallet!", nil)
		}
	}

	// Session init: one row per login, closed again on logout.
	sessionID := uuid.NewString()
	session := models.Session{
		SessionID:     sessionID,
		WalletAddress: wallet,
		IPAddress:     c.IP(),
	}
	if err := db.Create(&session).Error; err != nil {
		log.Printf("Error creating session: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to open session!", nil)
	}

	token, err := middleware.GenerateJWT(user.WalletAddress, user.UserType, user.Name, sessionID)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create session token!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{
		"token":    token,
		"userType": user.UserType,
		"name":     user.Name,
		"wallet":   user.WalletAddress,
	})
}

// Logout closes the current session
func Logout(c *fiber.Ctx) error {
	sessionID, ok := c.Locals("sessionId").(string)
	if !ok || sessionID == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "No active session!", nil)
	}

	now := time.Now()
	if err := database.Database.Db.Model(&models.Session{}).
		Where("session_id = ? AND logged_out_at IS NULL", sessionID).
		Update("logged_out_at", now).Error; err != nil {
		log.Printf("Error closing session %s: %v", sessionID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to close session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged out successfully!", nil)
}
