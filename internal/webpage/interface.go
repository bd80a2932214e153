package webpage

import (
	"context"

	"github.com/nguyentantai21042004/notime/internal/models"
)

// Pipeline summarizes a generic web page into a synopsis and a comment digest.
type Pipeline interface {
	Summarize(ctx context.Context, rawURL, host string) (models.Reply, error)
}
