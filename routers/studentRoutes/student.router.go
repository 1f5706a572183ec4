package studentRoutes

import (
	studentControllers "educhain/controllers/studentControllers"
	"educhain/middleware"
	studentValidator "educhain/validators/student"

	"github.com/gofiber/fiber/v2"
)

func SetupStudentRoutes(app *fiber.App) {
	studentGroup := app.Group("/student", middleware.JWTMiddleware, middleware.RequireRole("STUDENT"))

	studentGroup.Get("/institutions", studentControllers.ListInstitutions)
	studentGroup.Post("/requests", studentValidator.CreateRequest(), studentControllers.CreateRequest)
	studentGroup.Get("/requests", studentControllers.ListRequests)
	studentGroup.Get("/certificates", studentControllers.ReceivedCertificates)
}
