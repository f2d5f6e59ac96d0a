package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/smart-learners/orca-api/internal/dto"
	"github.com/smart-learners/orca-api/internal/service"
	"github.com/smart-learners/orca-api/internal/utils"
)

// ChatHandler manages the learning assistant endpoint.
type ChatHandler struct {
	service service.ChatService
	logger  zerolog.Logger
}

// NewChatHandler builds a chat handler instance.
func NewChatHandler(service service.ChatService, logger zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		logger:  logger.With().Str("component", "chat_handler").Logger(),
	}
}

// Register attaches the chat route to the provided router group.
func (h *ChatHandler) Register(router fiber.Router) {
	router.Post("/chat", h.chat)
}

func (h *ChatHandler) chat(c *fiber.Ctx) error {
	var payload dto.ChatRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Chat(c.Context(), payload)
	if err != nil {
		if errors.Is(err, service.ErrMessageRequired) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		// Model outages still answer with the canned apology so the client
		// conversation keeps flowing.
		if errors.Is(err, service.ErrChatUnavailable) {
			return utils.SendSuccess(c, "chat response generated", response)
		}
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "chat response generated", response)
}
