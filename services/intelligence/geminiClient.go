// File: service/ai/gemini_client.go
package ai

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiModelName = "models/gemini-2.5-flash"

// TextGenerator is the one seam between the language service and the model
// provider. Tests swap in a canned implementation.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, maxTokens int32) (string, error)
}

type GeminiClient struct {
	client      *genai.Client
	temperature float32
}

func NewGeminiClient(apiKey string) *GeminiClient {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		panic(fmt.Sprintf("failed to create Gemini client: %v", err))
	}
	return &GeminiClient{client: client, temperature: 0.3}
}

// GenerateText runs one prompt with a per-call output budget. A fresh model
// handle per call keeps the shared client free of mutable state.
func (g *GeminiClient) GenerateText(ctx context.Context, prompt string, maxTokens int32) (string, error) {
	model := g.client.GenerativeModel(geminiModelName)
	model.SetTemperature(g.temperature)
	model.SetMaxOutputTokens(maxTokens)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if textPart, ok := part.(genai.Text); ok {
				sb.WriteString(string(textPart))
			}
		}
		break
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("gemini returned no text")
	}
	return text, nil
}
