package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/notime/internal/models"
)

type openAIClient struct {
	client *openai.Client
}

// NewOpenAI creates a ChatModel backed by the OpenAI chat completions API.
// baseURL is the API root, e.g. https://api.openai.com/v1.
func NewOpenAI(apiKey, baseURL string, timeout time.Duration) ChatModel {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &openAIClient{client: openai.NewClientWithConfig(cfg)}
}

func (c *openAIClient) Create(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
	})
	if err != nil {
		return ChatResponse{}, fmt.Errorf("chat completion: %w: %w", models.ErrExternalService, err)
	}

	out := ChatResponse{Choices: make([]Choice, 0, len(resp.Choices))}
	for _, ch := range resp.Choices {
		out.Choices = append(out.Choices, Choice{Content: ch.Message.Content})
	}
	return out, nil
}
