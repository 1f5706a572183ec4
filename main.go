package main

import (
	"crypto/ecdsa"
	"educhain/certificate"
	"educhain/config"
	institutionControllers "educhain/controllers/institutionControllers"
	verifierControllers "educhain/controllers/verifierControllers"
	"educhain/database"
	"educhain/ipfs"
	"educhain/ledger"
	authRoutes "educhain/routers/authRoutes"
	institutionRoutes "educhain/routers/institutionRoutes"
	studentRoutes "educhain/routers/studentRoutes"
	verifierRoutes "educhain/routers/verifierRoutes"
	"educhain/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"log"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// Institution wallet session; nil when no key is configured so issuance
	// reports the wallet as unavailable instead of crashing at startup.
	var session *ledger.Session
	var signer certificate.Signer
	var key *ecdsa.PrivateKey
	if config.AppConfig.InstitutionPrivateKey != "" {
		var err error
		session, err = ledger.NewSession(config.AppConfig.InstitutionPrivateKey)
		if err != nil {
			log.Fatalf("Failed to load institution wallet session: %v", err)
		}
		signer = session
		key = session.Key()
	}

	chain, err := ledger.Dial(
		config.AppConfig.RPCURL,
		config.AppConfig.ContractAddress,
		config.AppConfig.ChainID,
		key,
	)
	if err != nil {
		log.Fatalf("Failed to connect to ledger: %v", err)
	}

	pinner := ipfs.NewClient(
		config.AppConfig.PinataJWT,
		config.AppConfig.PinataBaseURL,
		config.AppConfig.IPFSGateway,
	)

	service := certificate.NewService(pinner, chain, signer, pinner, database.CertificateRecorder{})
	institutionControllers.Service = service
	verifierControllers.Service = service

	// Keep the certificate mirror in step with on-chain revocations
	utils.StartRevocationScheduler(chain)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	studentRoutes.SetupStudentRoutes(app)
	institutionRoutes.SetupInstitutionRoutes(app)
	verifierRoutes.SetupVerifierRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
