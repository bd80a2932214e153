package video

import (
	"context"

	"github.com/nguyentantai21042004/notime/internal/models"
)

// Pipeline summarizes a video URL into timestamped chapters.
type Pipeline interface {
	Summarize(ctx context.Context, rawURL, host string) (models.Reply, error)
}
