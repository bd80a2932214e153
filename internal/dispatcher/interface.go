package dispatcher

import (
	"context"

	"github.com/nguyentantai21042004/notime/internal/models"
)

// Dispatcher is the single inbound operation: summarize one URL.
type Dispatcher interface {
	Handle(ctx context.Context, rawURL string) models.Result
}

// Pipeline turns a URL of one kind into a Reply.
type Pipeline interface {
	Summarize(ctx context.Context, rawURL, host string) (models.Reply, error)
}

// Classifier decides which pipeline serves a host.
type Classifier interface {
	Classify(host string) models.Kind
}
