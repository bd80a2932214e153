package relay

import (
	"sync"

	"github.com/nguyentantai21042004/notime/internal/logger"
)

type implRelay struct {
	secret     string
	summarizer Summarizer
	replier    Replier
	logger     logger.Logger
	wg         sync.WaitGroup
}

// New creates a Relay verifying webhooks with the channel secret.
func New(secret string, summarizer Summarizer, replier Replier, log logger.Logger) Relay {
	return &implRelay{
		secret:     secret,
		summarizer: summarizer,
		replier:    replier,
		logger:     log,
	}
}
