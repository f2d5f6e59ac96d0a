package ai

import (
	"strconv"
	"strings"
)

// Coercion helpers for semi-structured model output. The model is asked for a
// strict schema but routinely returns numbers as strings, missing keys, or
// nulls; every field is therefore read defensively with a fallback.

func asString(value any, fallback string) string {
	if text, ok := value.(string); ok {
		return text
	}
	return fallback
}

func asBool(value any, fallback bool) bool {
	if flag, ok := value.(bool); ok {
		return flag
	}
	return fallback
}

func asInt(value any, fallback int) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return int(parsed)
		}
	}
	return fallback
}

func asStringSlice(value any, limit int) []string {
	items, ok := value.([]any)
	if !ok {
		return []string{}
	}

	result := make([]string, 0, limit)
	for _, item := range items {
		if len(result) == limit {
			break
		}
		if text, ok := item.(string); ok {
			result = append(result, text)
		}
	}

	return result
}

func asObjectSlice(value any) []map[string]any {
	items, ok := value.([]any)
	if !ok {
		return nil
	}

	result := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if object, ok := item.(map[string]any); ok {
			result = append(result, object)
		}
	}

	return result
}

// clampScore coerces a score field to an integer inside [MinScore, MaxScore].
// Non-numeric and missing values default to 0.
func clampScore(value any) int {
	score := asInt(value, 0)
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// optionalString returns nil for absent, null, or literal "null" values.
func optionalString(value any) *string {
	text, ok := value.(string)
	if !ok {
		return nil
	}
	if text == "" || strings.EqualFold(text, "null") {
		return nil
	}
	return &text
}
