package verifierRoutes

import (
	verifierControllers "educhain/controllers/verifierControllers"
	"educhain/middleware"
	verifierValidator "educhain/validators/verifier"

	"github.com/gofiber/fiber/v2"
)

func SetupVerifierRoutes(app *fiber.App) {
	verifierGroup := app.Group("/verifier", middleware.JWTMiddleware, middleware.RequireRole("VERIFIER"))

	verifierGroup.Post("/verify", verifierValidator.Verify(), verifierControllers.VerifyCertificate)
	verifierGroup.Get("/history", verifierControllers.History)
}
