package transcriber

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/notime/internal/logger"
	"github.com/nguyentantai21042004/notime/internal/models"
)

type implOpenAI struct {
	client *openai.Client
	model  string
	logger logger.Logger
}

// NewOpenAI creates a Transcriber that uploads audio to the OpenAI transcription endpoint
// and asks for SRT output.
func NewOpenAI(apiKey, baseURL, model string, log logger.Logger) Transcriber {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	return &implOpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: log,
	}
}

func (t *implOpenAI) Transcribe(ctx context.Context, audioPath string) (string, error) {
	t.logger.Info(ctx, "Transcribing with %s: %s", t.model, audioPath)

	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.model,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatSRT,
	})
	if err != nil {
		return "", fmt.Errorf("transcription: %w: %w", models.ErrExternalService, err)
	}
	return resp.Text, nil
}
