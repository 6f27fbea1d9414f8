package api

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellness/internal/models"
	"github.com/terraincognita07/wellness/internal/services"
)

func (handler *Handler) SubmitAssessment(c *fiber.Ctx) error {
	input := submitInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "bad_request")
	}
	choice, err := services.ParseConfirmChoice(input.Choice)
	if err != nil {
		return respondServiceError(c, err)
	}

	sessionID, _ := currentSessionID(c)
	outcome, err := handler.assessments.Submit(sessionID, choice)
	if err != nil {
		return respondServiceError(c, err)
	}

	status := fiber.StatusOK
	if outcome.Submitted {
		status = fiber.StatusAccepted
		if err := handler.renewSession(c, sessionID); err != nil {
			return respondServiceError(c, err)
		}
	}
	return c.Status(status).JSON(outcome)
}

func (handler *Handler) GetAnalysis(c *fiber.Ctx) error {
	if acceptsEventStream(c) {
		return handler.StreamAnalysis(c)
	}

	sessionID, _ := currentSessionID(c)
	status, err := handler.assessments.AnalysisStatus(sessionID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(buildAnalysisView(currentMessages(c), status))
}

// StreamAnalysis pushes progress as Server-Sent Events until the analysis
// completes, fails, or the session leaves the analyzing stage.
func (handler *Handler) StreamAnalysis(c *fiber.Ctx) error {
	sessionID, _ := currentSessionID(c)
	if _, err := handler.assessments.AnalysisStatus(sessionID); err != nil {
		return respondServiceError(c, err)
	}

	messages := currentMessages(c)
	interval := handler.streamInterval
	assessments := handler.assessments

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(func(writer *bufio.Writer) {
		for {
			status, err := assessments.AnalysisStatus(sessionID)
			if err != nil {
				return
			}

			event := streamEventProgress
			finished := status.Done || status.Stage != models.StageAnalyzing
			if finished {
				event = streamEventCompleted
			}
			if err := writeServerSentEvent(writer, event, buildAnalysisView(messages, status)); err != nil {
				return
			}
			if finished {
				return
			}
			time.Sleep(interval)
		}
	})
	return nil
}

func writeServerSentEvent(writer *bufio.Writer, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	return writer.Flush()
}

func (handler *Handler) GetResults(c *fiber.Ctx) error {
	sessionID, _ := currentSessionID(c)
	results, err := handler.assessments.Results(sessionID, c.Query("category"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(buildResultsView(currentMessages(c), results))
}
