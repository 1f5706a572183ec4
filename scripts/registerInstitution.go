package main

import (
	"educhain/config"
	"educhain/database"
	"educhain/models"
	"log"
	"os"
	"strings"
)

// Registers an institution account directly, for bootstrapping a deployment
// before any wallet has logged in.
// Usage: go run scripts/registerInstitution.go <walletAddress> <name> [email]
func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: registerInstitution <walletAddress> <name> [email]")
	}
	wallet := strings.ToLower(os.Args[1])
	name := os.Args[2]
	email := ""
	if len(os.Args) > 3 {
		email = os.Args[3]
	}

	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	var existing models.User
	if err := db.Where("lower(wallet_address) = ?", wallet).First(&existing).Error; err == nil {
		log.Fatalf("Wallet %s is already registered as %s", wallet, existing.UserType)
	}

	user := models.User{
		WalletAddress: wallet,
		UserType:      "INSTITUTION",
		Name:          name,
		Email:         email,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Failed to register institution: %v", err)
	}

	log.Printf("Institution %q registered with wallet %s (id %d)", name, wallet, user.ID)
}
