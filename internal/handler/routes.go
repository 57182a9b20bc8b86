package handler

import (
	"iq-admin/internal/middleware"
	"iq-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups everything mounted under /api.
type Handlers struct {
	Imports   *ImportHandler
	Tests     *TestHandler
	Questions *QuestionHandler
}

// RegisterRoutes mounts the API on router. authService may be nil.
func RegisterRoutes(router fiber.Router, h Handlers, authService service.AuthService) {
	api := router.Group("/api", middleware.Protected(authService))

	api.Get("/tests", h.Tests.ListTests)
	api.Post("/tests", h.Tests.CreateTest)
	api.Put("/tests/:testId", h.Tests.UpdateTest)
	api.Put("/tests/:testId/status", h.Tests.SetTestStatus)
	api.Get("/tests/:testId/questions", h.Tests.ListTestQuestions)
	api.Post("/tests/:testId/imports", h.Imports.OpenImport)

	session := middleware.ValidateSessionID("sessionId")
	api.Get("/imports/:sessionId", session, h.Imports.GetImport)
	api.Delete("/imports/:sessionId", session, h.Imports.CancelImport)
	api.Put("/imports/:sessionId/file", session, h.Imports.ReplaceFile)
	api.Post("/imports/:sessionId/submit", session, h.Imports.SubmitImport)

	api.Put("/questions/:questionId", h.Questions.UpdateQuestion)
	api.Delete("/questions/:questionId", h.Questions.DeleteQuestion)
	api.Post("/uploads/image", h.Questions.UploadImage)
}
