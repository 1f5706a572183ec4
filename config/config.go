package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	JWTKey string

	// Pinata content-addressed storage
	PinataJWT     string
	PinataBaseURL string
	IPFSGateway   string

	// Ledger connection
	RPCURL          string
	ChainID         int64
	ContractAddress string

	// Institution signing session. Empty means no wallet session is
	// configured and issuance will fail with WalletUnavailableError.
	InstitutionPrivateKey string

	EmailSender string
	Password    string // SMTP Password
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:   getEnv("PORT", "3000"),
		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		PinataJWT:     getEnv("PINATA_JWT", ""),
		PinataBaseURL: getEnv("PINATA_BASE_URL", "https://api.pinata.cloud"),
		IPFSGateway:   getEnv("IPFS_GATEWAY", "https://ipfs.io/ipfs/"),

		RPCURL:          getEnv("RPC_URL", "https://eth-sepolia.g.alchemy.com/v2/demo"),
		ChainID:         getEnvInt64("CHAIN_ID", 11155111),
		ContractAddress: getEnv("CONTRACT_ADDRESS", "0x27e58463b927423B62218ca2d4d3D75447090Dc0"),

		InstitutionPrivateKey: getEnv("INSTITUTION_PRIVATE_KEY", ""),

		EmailSender: getEnv("EMAIL_SENDER", "defaultSecret"),
		Password:    getEnv("PASSWORD", "defaultSecret"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.PinataJWT == "" {
		log.Println("Warning: PINATA_JWT is not set. IPFS uploads will fail.")
	}
	if AppConfig.InstitutionPrivateKey == "" {
		log.Println("Warning: INSTITUTION_PRIVATE_KEY is not set. Certificate signing is disabled.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt64 retrieves an environment variable as an int64 or returns the default value
func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
