package ai

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSON indicates a model reply contained no parseable JSON object.
var ErrNoJSON = errors.New("could not parse JSON from model response")

// ExtractJSON pulls a JSON object out of a raw model reply. It first tries the
// whole text, then falls back to the span between the first '{' and the last
// '}'. Generative output frequently wraps JSON in commentary or code fences
// despite instructions.
func ExtractJSON(raw string) ([]byte, error) {
	trimmed := strings.TrimSpace(raw)
	if json.Valid([]byte(trimmed)) {
		return []byte(trimmed), nil
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		candidate := trimmed[start : end+1]
		if json.Valid([]byte(candidate)) {
			return []byte(candidate), nil
		}
	}

	return nil, ErrNoJSON
}

// decodeObject parses sanitized JSON into a generic map for defensive
// field-by-field extraction.
func decodeObject(data []byte) (map[string]any, error) {
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, ErrNoJSON
	}
	return decoded, nil
}
