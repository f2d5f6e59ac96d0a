package dto

import "github.com/smart-learners/orca-api/pkg/ai"

// ChatHistoryEntry is one prior message in the conversation.
type ChatHistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the assistant chat payload.
type ChatRequest struct {
	Message string             `json:"message"`
	History []ChatHistoryEntry `json:"history"`
}

// ChatResponse carries the assistant's reply.
type ChatResponse struct {
	Response string `json:"response"`
}

// ToChatMessages converts history entries into the grading engine's input type.
func ToChatMessages(entries []ChatHistoryEntry) []ai.ChatMessage {
	messages := make([]ai.ChatMessage, 0, len(entries))
	for _, entry := range entries {
		messages = append(messages, ai.ChatMessage{Role: entry.Role, Content: entry.Content})
	}

	return messages
}
