package service

import (
	"context"
	"errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/smart-learners/orca-api/internal/dto"
	"github.com/smart-learners/orca-api/pkg/ai"
)

// ErrMessageRequired indicates the chat payload had no message text.
var ErrMessageRequired = errors.New("message cannot be empty")

// ErrChatUnavailable wraps a model failure; handlers pair it with the
// apology fallback text.
var ErrChatUnavailable = errors.New("failed to generate response")

// ChatFallbackReply is returned when the model call fails.
const ChatFallbackReply = "I apologize, but I'm having trouble processing your request right now. Please try again in a moment."

// ChatService forwards persona-prefixed conversations to the model.
type ChatService interface {
	Chat(ctx context.Context, payload dto.ChatRequest) (dto.ChatResponse, error)
}

type chatService struct {
	grader    *ai.Grader
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewChatService constructs a ChatService instance. User text is stripped of
// markup before it reaches the model.
func NewChatService(grader *ai.Grader, logger zerolog.Logger) ChatService {
	return &chatService{
		grader:    grader,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "chat_service").Logger(),
	}
}

func (s *chatService) Chat(ctx context.Context, payload dto.ChatRequest) (dto.ChatResponse, error) {
	message := strings.TrimSpace(s.sanitizer.Sanitize(payload.Message))
	if message == "" {
		return dto.ChatResponse{}, ErrMessageRequired
	}

	reply, err := s.grader.Chat(ctx, dto.ToChatMessages(payload.History), message)
	if err != nil {
		s.logger.Warn().Err(err).Msg("chat model call failed")
		return dto.ChatResponse{Response: ChatFallbackReply}, errors.Join(ErrChatUnavailable, err)
	}

	return dto.ChatResponse{Response: reply}, nil
}
