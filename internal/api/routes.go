package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	app.Get("/lang/:lang", handler.SetLanguage)

	api := app.Group("/api")
	api.Get("/questionnaire", handler.ShowQuestionnaire)
	api.Post("/assessments", handler.CreateAssessment)
	api.Get("/results", handler.SessionRequired, handler.GetResults)

	assessment := api.Group("/assessment", handler.SessionRequired)
	assessment.Get("/step", handler.GetStep)
	assessment.Post("/step/check", handler.CheckStep)
	assessment.Post("/step/next", handler.NextStep)
	assessment.Post("/step/back", handler.PreviousStep)
	assessment.Post("/submit", handler.SubmitAssessment)
	assessment.Get("/analysis", handler.GetAnalysis)
	assessment.Get("/analysis/stream", handler.StreamAnalysis)
	assessment.Post("/reset", handler.ResetAssessment)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
