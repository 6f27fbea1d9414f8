package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) SetLanguage(c *fiber.Ctx) error {
	language := handler.i18n.NormalizeLanguage(c.Params("lang"))
	handler.setLanguageCookie(c, language)
	return c.JSON(fiber.Map{"language": language})
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, "not_found")
}

func (handler *Handler) ShowQuestionnaire(c *fiber.Ctx) error {
	view := buildQuestionnaireView(currentMessages(c), handler.assessments.Catalog())
	view.Language = currentLanguage(c)
	return c.JSON(view)
}
