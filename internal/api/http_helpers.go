package api

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellness/internal/services"
)

// apiError renders {"error": code, "message": localized text}. The message
// falls back to the code when no translation exists.
func apiError(c *fiber.Ctx, status int, code string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": localizedErrorMessage(c, code),
	})
}

func localizedErrorMessage(c *fiber.Ctx, code string) string {
	key := "error." + code
	message := translateMessage(currentMessages(c), key)
	if message == key {
		return code
	}
	return message
}

type serviceErrorMapping struct {
	target error
	status int
	code   string
}

var serviceErrorMappings = []serviceErrorMapping{
	{target: services.ErrSessionNotFound, status: fiber.StatusNotFound, code: "session_not_found"},
	{target: services.ErrRequiredFieldsMissing, status: fiber.StatusUnprocessableEntity, code: "required_fields"},
	{target: services.ErrUnknownField, status: fiber.StatusBadRequest, code: "unknown_field"},
	{target: services.ErrUnknownOption, status: fiber.StatusBadRequest, code: "unknown_option"},
	{target: services.ErrFieldKind, status: fiber.StatusBadRequest, code: "field_kind"},
	{target: services.ErrInvalidEdit, status: fiber.StatusBadRequest, code: "bad_request"},
	{target: services.ErrInvalidChoice, status: fiber.StatusBadRequest, code: "invalid_choice"},
	{target: services.ErrAnalysisInProgress, status: fiber.StatusConflict, code: "analysis_in_progress"},
	{target: services.ErrNoPreviousStep, status: fiber.StatusConflict, code: "no_previous_step"},
	{target: services.ErrNotAtTerminalStep, status: fiber.StatusConflict, code: "not_at_terminal_step"},
	{target: services.ErrNotConfirming, status: fiber.StatusConflict, code: "not_at_terminal_step"},
}

func serviceErrorStatus(err error) (int, string) {
	for _, mapping := range serviceErrorMappings {
		if errors.Is(err, mapping.target) {
			return mapping.status, mapping.code
		}
	}
	return fiber.StatusInternalServerError, "internal"
}

func respondServiceError(c *fiber.Ctx, err error) error {
	status, code := serviceErrorStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("api: %s %s failed: %v", c.Method(), c.Path(), err)
	}
	return apiError(c, status, code)
}

func acceptsEventStream(c *fiber.Ctx) bool {
	return strings.Contains(strings.ToLower(c.Get(fiber.HeaderAccept)), "text/event-stream")
}

// IsEventStream reports requests answered with Server-Sent Events; they must
// not pass through response compression.
func IsEventStream(c *fiber.Ctx) bool {
	return strings.HasSuffix(c.Path(), "/analysis/stream") || acceptsEventStream(c)
}
