package ai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractJSONDirect(t *testing.T) {
	data, err := ExtractJSON(`  {"overall_score": 85}  `)
	require.NoError(t, err)
	require.JSONEq(t, `{"overall_score": 85}`, string(data))
}

func TestExtractJSONEmbedded(t *testing.T) {
	raw := "Here is the evaluation you asked for:\n```json\n{\"overall_score\": 42, \"is_relevant\": true}\n```\nLet me know if you need anything else."

	data, err := ExtractJSON(raw)
	require.NoError(t, err)
	require.JSONEq(t, `{"overall_score": 42, "is_relevant": true}`, string(data))
}

func TestExtractJSONNestedBraces(t *testing.T) {
	raw := `Sure! {"outer": {"inner": [1, 2, 3]}} done.`

	data, err := ExtractJSON(raw)
	require.NoError(t, err)
	require.JSONEq(t, `{"outer": {"inner": [1, 2, 3]}}`, string(data))
}

func TestExtractJSONNoObject(t *testing.T) {
	_, err := ExtractJSON("I cannot grade this submission.")
	require.ErrorIs(t, err, ErrNoJSON)
}

func TestExtractJSONMalformedSpan(t *testing.T) {
	_, err := ExtractJSON(`prefix {"unterminated": } suffix`)
	require.ErrorIs(t, err, ErrNoJSON)
}

func TestDecodeObjectRejectsNonObject(t *testing.T) {
	_, err := decodeObject([]byte(`[1, 2, 3]`))
	require.ErrorIs(t, err, ErrNoJSON)
}
