package authRoutes

import (
	authController "educhain/controllers/auth"
	"educhain/middleware"
	authValidator "educhain/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Get("/nonce", authController.Nonce)
	authGroup.Post("/login", authValidator.Login(), authController.Login)
	authGroup.Post("/logout", middleware.JWTMiddleware, authController.Logout)
}
