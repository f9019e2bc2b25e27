// Package llm wraps the Gemini API behind a small JSON-mode completion interface.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"kariyer_backend/internal/logger"
)

var (
	ErrNotConfigured = errors.New("llm: api key not configured")
	ErrEmptyResponse = errors.New("llm: empty response")
)

// Completer asks the model for a JSON document and decodes it into out.
type Completer interface {
	CompleteJSON(ctx context.Context, system, prompt string, out any) error
}

type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGeminiClient returns ErrNotConfigured when apiKey is empty.
func NewGeminiClient(ctx context.Context, apiKey, model string, temperature float32) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: create client: %w", err)
	}
	return &GeminiClient{client: client, model: model, temperature: temperature}, nil
}

func (g *GeminiClient) CompleteJSON(ctx context.Context, system, prompt string, out any) error {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr(g.temperature),
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return fmt.Errorf("llm: generate content: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return ErrEmptyResponse
	}
	if err := DecodeJSON(text, out); err != nil {
		logger.CtxWarn(ctx, "llm returned undecodable json", "model", g.model, "error", err)
		return err
	}
	return nil
}

// DecodeJSON strips markdown fences and unmarshals raw into out.
func DecodeJSON(raw string, out any) error {
	cleaned := CleanJSON(raw)
	if cleaned == "" {
		return ErrEmptyResponse
	}
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return fmt.Errorf("llm: decode json: %w", err)
	}
	return nil
}

// CleanJSON removes a surrounding ```json fence if the model added one.
func CleanJSON(input string) string {
	clean := strings.TrimSpace(input)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

// Unconfigured is used when no API key is set; every call fails with ErrNotConfigured.
type Unconfigured struct{}

func (Unconfigured) CompleteJSON(context.Context, string, string, any) error {
	return ErrNotConfigured
}
