package ai

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kariyer_backend/internal/llm"
	"kariyer_backend/internal/models"
)

type fakeCompleter struct {
	response   string
	err        error
	lastPrompt string
	lastSystem string
}

func (f *fakeCompleter) CompleteJSON(_ context.Context, system, prompt string, out any) error {
	f.lastSystem = system
	f.lastPrompt = prompt
	if f.err != nil {
		return f.err
	}
	return llm.DecodeJSON(f.response, out)
}

func TestAnalyzeCV_ClampsScoreAndRendersPrompt(t *testing.T) {
	fc := &fakeCompleter{response: `{"score": 140, "summary": "ok", "strengths": ["go"]}`}
	a := NewAssistant(fc)

	res, err := a.AnalyzeCV(context.Background(), json.RawMessage(`{"skills":["Go"]}`), "en")
	require.NoError(t, err)
	assert.Equal(t, 100, res.Score)
	assert.Equal(t, []string{"go"}, res.Strengths)
	assert.Contains(t, fc.lastPrompt, `{"skills":["Go"]}`)
	assert.Contains(t, fc.lastPrompt, "English")
	assert.Contains(t, fc.lastSystem, "JSON")
}

func TestParseCV_RejectsNonObject(t *testing.T) {
	a := NewAssistant(&fakeCompleter{response: `{"title": "x", "data": [1,2]}`})
	_, err := a.ParseCV(context.Background(), "John Doe, engineer")
	assert.Error(t, err)

	a = NewAssistant(&fakeCompleter{response: "```json\n{\"title\": \"Backend\", \"data\": {\"skills\": [\"Go\"]}}\n```"})
	parsed, err := a.ParseCV(context.Background(), "John Doe, engineer")
	require.NoError(t, err)
	assert.Equal(t, "Backend", parsed.Title)
	assert.JSONEq(t, `{"skills":["Go"]}`, string(parsed.Data))
}

func TestParseCV_ClipsLongTextOnCharacters(t *testing.T) {
	fc := &fakeCompleter{response: `{"title": "Öğretmen", "data": {"name": "Ayşe"}}`}
	a := NewAssistant(fc)

	_, err := a.ParseCV(context.Background(), strings.Repeat("ş", maxCVText+50))
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(fc.lastPrompt), "no character is split")
	assert.Equal(t, maxCVText, strings.Count(fc.lastPrompt, "ş"))
}

func TestImprove_EmptyAnswerIsError(t *testing.T) {
	a := NewAssistant(&fakeCompleter{response: `{"improved": "  "}`})
	_, err := a.Improve(context.Background(), "summary", "I did things", "tr")
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)
}

func TestMatchJob_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	fc := &fakeCompleter{err: boom}
	a := NewAssistant(fc)

	job := &models.JobListing{Title: "Veri Analisti", Institution: "TÜİK", City: "Ankara"}
	_, err := a.MatchJob(context.Background(), json.RawMessage(`{}`), job, "tr")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, fc.lastPrompt, "Veri Analisti")
	assert.Contains(t, fc.lastPrompt, "Turkish")
}
