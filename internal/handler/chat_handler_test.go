package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/smart-learners/orca-api/internal/dto"
	"github.com/smart-learners/orca-api/internal/handler"
	"github.com/smart-learners/orca-api/internal/service"
)

type mockChatService struct {
	response dto.ChatResponse
	err      error
}

func (m *mockChatService) Chat(context.Context, dto.ChatRequest) (dto.ChatResponse, error) {
	return m.response, m.err
}

func newChatApp(svc service.ChatService) *fiber.App {
	app := fiber.New()
	handler.NewChatHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/ai"))
	return app
}

func chatRequest(t *testing.T, message string) *http.Request {
	t.Helper()

	body, err := json.Marshal(dto.ChatRequest{Message: message})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/ai/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestChatHandlerSuccess(t *testing.T) {
	app := newChatApp(&mockChatService{response: dto.ChatResponse{Response: "here is an answer"}})

	resp, err := app.Test(chatRequest(t, "hi"))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestChatHandlerFallbackStillOK(t *testing.T) {
	svc := &mockChatService{
		response: dto.ChatResponse{Response: service.ChatFallbackReply},
		err:      errors.Join(service.ErrChatUnavailable, errors.New("rate limited")),
	}
	app := newChatApp(svc)

	resp, err := app.Test(chatRequest(t, "hi"))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Success bool             `json:"success"`
		Data    dto.ChatResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.True(t, response.Success)
	require.Equal(t, service.ChatFallbackReply, response.Data.Response)
}

func TestChatHandlerEmptyMessage(t *testing.T) {
	app := newChatApp(&mockChatService{err: service.ErrMessageRequired})

	resp, err := app.Test(chatRequest(t, ""))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
