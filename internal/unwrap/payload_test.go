package unwrap

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeNativeShapes(t *testing.T) {
	obj := Decode(map[string]any{"k": "v"})
	assert.Equal(t, KindObject, obj.Kind)

	arr := Decode([]any{"a", "b"})
	assert.Equal(t, KindArray, arr.Kind)

	str := Decode("plain text, not JSON")
	assert.Equal(t, KindString, str.Kind)
	assert.Equal(t, "plain text, not JSON", str.Str)
}

func TestDecodeJSONString(t *testing.T) {
	payload := Decode(`{"news_briefing":[]}`)
	require.Equal(t, KindObject, payload.Kind)
	assert.Contains(t, payload.Obj, "news_briefing")
}

func TestDecodeDoubleEncodedString(t *testing.T) {
	inner := `{"title":"T"}`
	once, err := json.Marshal(inner)
	require.NoError(t, err)
	twice, err := json.Marshal(string(once))
	require.NoError(t, err)

	payload := Decode(string(twice))
	require.Equal(t, KindObject, payload.Kind)
	assert.Equal(t, "T", payload.Obj["title"])
}

func TestDecodeDeepEncodingDegradesToText(t *testing.T) {
	// Five encoding layers exceed the decode depth; the value must come back
	// as opaque text rather than hanging or erroring.
	value := `{"title":"deep"}`
	for i := 0; i < 5; i++ {
		encoded, err := json.Marshal(value)
		require.NoError(t, err)
		value = string(encoded)
	}

	payload := Decode(value)
	assert.Equal(t, KindString, payload.Kind)
	assert.NotEmpty(t, payload.Str)
}

func TestDecodeFencedJSON(t *testing.T) {
	fenced := "```json\n{\"news_briefing\":[{\"title\":\"T1\"}]}\n```"

	payload := Decode(fenced)
	require.Equal(t, KindObject, payload.Kind)
	briefing, ok := payload.Obj["news_briefing"].([]any)
	require.True(t, ok)
	require.Len(t, briefing, 1)
}

func TestDecodeFenceRoundTrip(t *testing.T) {
	original := map[string]any{"title": "원전 수출", "score": float64(91)}
	encoded, err := json.Marshal(original)
	require.NoError(t, err)
	fenced := "```json\n" + string(encoded) + "\n```"

	payload := Decode(fenced)
	require.Equal(t, KindObject, payload.Kind)
	assert.Equal(t, original, payload.Obj)
}

func TestDecodeNumberIsOpaque(t *testing.T) {
	payload := Decode(float64(42))
	assert.Equal(t, KindString, payload.Kind)
}

func TestExtractFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`, true},
		{"bare fence", "```\n[1,2]\n```", "[1,2]", true},
		{"fence with surrounding prose", "here you go:\n```json\n{}\n```\nthanks", "{}", true},
		{"unterminated fence", "```json\n{\"a\":1}", "", false},
		{"no fence", `{"a":1}`, "", false},
		{"empty block", "```json\n\n```", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner, ok := ExtractFence(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, inner)
		})
	}
}
