package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSON(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}```":       `{"a":1}`,
		"  {\"a\":1}  ":           `{"a":1}`,
		"":                        "",
	}
	for in, want := range cases {
		assert.Equal(t, want, CleanJSON(in), "input %q", in)
	}
}

func TestDecodeJSON(t *testing.T) {
	var out struct {
		Score int `json:"score"`
	}
	require.NoError(t, DecodeJSON("```json\n{\"score\": 87}\n```", &out))
	assert.Equal(t, 87, out.Score)

	assert.ErrorIs(t, DecodeJSON("   ", &out), ErrEmptyResponse)
	assert.Error(t, DecodeJSON("not json", &out))
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), "", "gemini-2.5-flash", 0.3)
	assert.ErrorIs(t, err, ErrNotConfigured)

	var c Completer = Unconfigured{}
	assert.ErrorIs(t, c.CompleteJSON(context.Background(), "", "x", &struct{}{}), ErrNotConfigured)
}
