package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/smart-learners/orca-api/internal/dto"
	"github.com/smart-learners/orca-api/internal/service"
	"github.com/smart-learners/orca-api/internal/utils"
)

// AssessmentHandler manages assessment result endpoints.
type AssessmentHandler struct {
	service service.AssessmentService
	logger  zerolog.Logger
}

// NewAssessmentHandler builds an assessment handler instance.
func NewAssessmentHandler(service service.AssessmentService, logger zerolog.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		service: service,
		logger:  logger.With().Str("component", "assessment_handler").Logger(),
	}
}

// Register attaches assessment routes to the provided router group.
func (h *AssessmentHandler) Register(router fiber.Router) {
	router.Post("/assessment/submit", h.submit)
	router.Get("/assessment/results", h.listResults)
	router.Get("/assessment/results/:assessment_id", h.getResult)
}

func (h *AssessmentHandler) submit(c *fiber.Ctx) error {
	var payload dto.AssessmentSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Submit(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assessment submitted", response)
}

func (h *AssessmentHandler) listResults(c *fiber.Ctx) error {
	results, err := h.service.ListResults(c.Context(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assessment results retrieved", results)
}

func (h *AssessmentHandler) getResult(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	assessmentID, err := parseIntParam(c, "assessment_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.service.GetResult(c.Context(), userID, assessmentID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assessment result retrieved", result)
}

func (h *AssessmentHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrAssessmentIDRequired):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAssessmentResultNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
