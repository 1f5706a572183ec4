package institutionRoutes

import (
	institutionControllers "educhain/controllers/institutionControllers"
	"educhain/middleware"
	institutionValidator "educhain/validators/institution"

	"github.com/gofiber/fiber/v2"
)

func SetupInstitutionRoutes(app *fiber.App) {
	institutionGroup := app.Group("/institution", middleware.JWTMiddleware, middleware.RequireRole("INSTITUTION"))

	institutionGroup.Get("/requests", institutionControllers.ListRequests)
	institutionGroup.Post("/requests/:id/approve", institutionControllers.ApproveRequest)
	institutionGroup.Delete("/requests/:id", institutionControllers.DeleteRequest)
	institutionGroup.Post("/issue", institutionValidator.IssueCertificate(), institutionControllers.IssueCertificate)
	institutionGroup.Post("/certificates/:tokenId/revoke", institutionControllers.RevokeCertificate)
	institutionGroup.Get("/certificates", institutionControllers.ListIssued)
}
