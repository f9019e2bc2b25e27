// Package ai turns CV and job data into prompts and decodes the model's JSON answers.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"kariyer_backend/internal/llm"
	"kariyer_backend/internal/models"
)

// maxCVText bounds the imported text sent to the model, in characters.
const maxCVText = 20000

type CVAnalysis struct {
	Score       int      `json:"score"`
	Summary     string   `json:"summary"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Suggestions []string `json:"suggestions"`
	Keywords    []string `json:"keywords"`
}

type ParsedCV struct {
	Title string          `json:"title"`
	Data  json.RawMessage `json:"data"`
}

type JobMatch struct {
	MatchScore     int      `json:"match_score"`
	MatchedSkills  []string `json:"matched_skills"`
	MissingSkills  []string `json:"missing_skills"`
	Summary        string   `json:"summary"`
	Recommendation string   `json:"recommendation"`
}

// Assistant is the typed AI surface used by the services.
type Assistant interface {
	AnalyzeCV(ctx context.Context, cvData json.RawMessage, language string) (*CVAnalysis, error)
	ParseCV(ctx context.Context, text string) (*ParsedCV, error)
	Improve(ctx context.Context, section, text, language string) (string, error)
	MatchJob(ctx context.Context, cvData json.RawMessage, job *models.JobListing, language string) (*JobMatch, error)
}

type assistant struct {
	llm    llm.Completer
	system string
}

func NewAssistant(completer llm.Completer) Assistant {
	system, err := render("system", nil)
	if err != nil {
		panic(fmt.Sprintf("ai: render system prompt: %v", err))
	}
	return &assistant{llm: completer, system: system}
}

func languageName(code string) string {
	if code == "en" {
		return "English"
	}
	return "Turkish"
}

func (a *assistant) AnalyzeCV(ctx context.Context, cvData json.RawMessage, language string) (*CVAnalysis, error) {
	prompt, err := render("cv_analysis", map[string]any{
		"CV":       string(cvData),
		"Language": languageName(language),
	})
	if err != nil {
		return nil, err
	}

	var out CVAnalysis
	if err := a.llm.CompleteJSON(ctx, a.system, prompt, &out); err != nil {
		return nil, err
	}
	out.Score = clampScore(out.Score)
	return &out, nil
}

func (a *assistant) ParseCV(ctx context.Context, text string) (*ParsedCV, error) {
	text = clipRunes(strings.TrimSpace(text), maxCVText)
	prompt, err := render("cv_parse", map[string]any{"Text": text})
	if err != nil {
		return nil, err
	}

	var out ParsedCV
	if err := a.llm.CompleteJSON(ctx, a.system, prompt, &out); err != nil {
		return nil, err
	}
	if len(out.Data) == 0 || out.Data[0] != '{' {
		return nil, fmt.Errorf("ai: parsed cv data is not an object")
	}
	return &out, nil
}

func (a *assistant) Improve(ctx context.Context, section, text, language string) (string, error) {
	prompt, err := render("improve", map[string]any{
		"Section":  section,
		"Text":     text,
		"Language": languageName(language),
	})
	if err != nil {
		return "", err
	}

	var out struct {
		Improved string `json:"improved"`
	}
	if err := a.llm.CompleteJSON(ctx, a.system, prompt, &out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.Improved) == "" {
		return "", llm.ErrEmptyResponse
	}
	return out.Improved, nil
}

func (a *assistant) MatchJob(ctx context.Context, cvData json.RawMessage, job *models.JobListing, language string) (*JobMatch, error) {
	prompt, err := render("job_match", map[string]any{
		"CV":       string(cvData),
		"Job":      job,
		"Language": languageName(language),
	})
	if err != nil {
		return nil, err
	}

	var out JobMatch
	if err := a.llm.CompleteJSON(ctx, a.system, prompt, &out); err != nil {
		return nil, err
	}
	out.MatchScore = clampScore(out.MatchScore)
	return &out, nil
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

func clipRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
