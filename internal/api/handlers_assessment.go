package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellness/internal/services"
)

// CreateAssessment starts a fresh assessment and hands the client a session
// token, both as a sealed cookie and in the body for bearer use.
func (handler *Handler) CreateAssessment(c *fiber.Ctx) error {
	now := time.Now()
	if !handler.createLimiter.allow(requestLimiterKey(c), now, createSessionLimit, createSessionWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too_many_requests")
	}

	state, err := handler.assessments.Create()
	if err != nil {
		return respondServiceError(c, err)
	}

	token, err := handler.buildSessionToken(state.SessionID, now)
	if err != nil {
		return respondServiceError(c, err)
	}
	if err := handler.setSessionCookie(c, token, now); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":      token,
		"expires_at": now.Add(handler.sessionTTL).UTC().Format(time.RFC3339),
		"step":       buildStepView(currentMessages(c), handler.assessments.Catalog(), state),
	})
}

func (handler *Handler) GetStep(c *fiber.Ctx) error {
	sessionID, _ := currentSessionID(c)
	state, err := handler.assessments.CurrentStep(sessionID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(buildStepView(currentMessages(c), handler.assessments.Catalog(), state))
}

func (handler *Handler) CheckStep(c *fiber.Ctx) error {
	input, err := parseStepInput(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request")
	}

	sessionID, _ := currentSessionID(c)
	state, err := handler.assessments.CheckStep(sessionID, input.Edits)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(buildStepView(currentMessages(c), handler.assessments.Catalog(), state))
}

func (handler *Handler) NextStep(c *fiber.Ctx) error {
	input, err := parseStepInput(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request")
	}

	messages := currentMessages(c)
	catalog := handler.assessments.Catalog()
	sessionID, _ := currentSessionID(c)
	transition, state, err := handler.assessments.AdvanceStep(sessionID, input.Edits)

	var missingErr *services.MissingFieldsError
	if errors.As(err, &missingErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   "required_fields",
			"message": localizedErrorMessage(c, "required_fields"),
			"missing": missingErr.Fields,
			"step":    buildStepView(messages, catalog, state),
		})
	}
	if err != nil {
		return respondServiceError(c, err)
	}
	if err := handler.renewSession(c, sessionID); err != nil {
		return respondServiceError(c, err)
	}

	view := advanceView{
		Transition: transition,
		Step:       buildStepView(messages, catalog, state),
	}
	if transition.Confirm {
		view.Confirm = buildConfirmView(messages)
	}
	return c.JSON(view)
}

func (handler *Handler) PreviousStep(c *fiber.Ctx) error {
	sessionID, _ := currentSessionID(c)
	state, err := handler.assessments.Back(sessionID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if err := handler.renewSession(c, sessionID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(buildStepView(currentMessages(c), handler.assessments.Catalog(), state))
}

func (handler *Handler) ResetAssessment(c *fiber.Ctx) error {
	sessionID, _ := currentSessionID(c)
	state, err := handler.assessments.Reset(sessionID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if err := handler.renewSession(c, sessionID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(buildStepView(currentMessages(c), handler.assessments.Catalog(), state))
}

func parseStepInput(c *fiber.Ctx) (stepInput, error) {
	input := stepInput{}
	if len(c.Body()) == 0 {
		return input, nil
	}
	if err := c.BodyParser(&input); err != nil {
		return stepInput{}, err
	}
	return input, nil
}
