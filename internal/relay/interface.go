package relay

import (
	"context"

	"github.com/nguyentantai21042004/notime/internal/models"
)

// Relay accepts chat webhooks and answers link messages with summaries.
type Relay interface {
	// Accept verifies and parses a webhook body, starts handling its events in the
	// background and reports whether the body was accepted.
	Accept(ctx context.Context, body []byte, signature string) bool
	// Wait blocks until every event started by Accept has been handled.
	Wait()
}

// Summarizer produces the summary result for a URL.
type Summarizer interface {
	Summarize(ctx context.Context, rawURL string) (models.Result, error)
}

// Replier posts a text reply to a chat conversation.
type Replier interface {
	Reply(ctx context.Context, replyToken, text string) error
}

// SummarizerFunc adapts a function to Summarizer.
type SummarizerFunc func(ctx context.Context, rawURL string) (models.Result, error)

func (f SummarizerFunc) Summarize(ctx context.Context, rawURL string) (models.Result, error) {
	return f(ctx, rawURL)
}
