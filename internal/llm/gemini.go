package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/notime/internal/models"
)

type geminiClient struct {
	client *genai.Client
}

// NewGemini creates a ChatModel backed by the Gemini API.
// Each response candidate becomes one choice.
func NewGemini(ctx context.Context, apiKey string) (ChatModel, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return &geminiClient{client: client}, nil
}

func (g *geminiClient) Create(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
		ResponseMIMEType:  "application/json",
	}

	result, err := g.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.User), cfg)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("generate content: %w: %w", models.ErrExternalService, err)
	}
	if result == nil {
		return ChatResponse{}, fmt.Errorf("empty response from Gemini: %w", models.ErrExternalService)
	}

	var out ChatResponse
	for _, cand := range result.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		var text strings.Builder
		for _, part := range cand.Content.Parts {
			if part != nil && part.Text != "" {
				text.WriteString(part.Text)
			}
		}
		out.Choices = append(out.Choices, Choice{Content: text.String()})
	}
	return out, nil
}
