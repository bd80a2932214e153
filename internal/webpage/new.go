package webpage

import (
	"time"

	"github.com/nguyentantai21042004/notime/internal/cache"
	"github.com/nguyentantai21042004/notime/internal/llm"
	"github.com/nguyentantai21042004/notime/internal/logger"
	"github.com/nguyentantai21042004/notime/internal/metrics"
	"github.com/nguyentantai21042004/notime/internal/scraper"
)

type Config struct {
	Model         string
	Language      string
	MaxInputChars int
	TTL           time.Duration
}

type implPipeline struct {
	cfg     Config
	memo    *cache.Memoizer
	fetcher scraper.Fetcher
	chat    llm.ChatModel
	logger  logger.Logger
	metrics *metrics.Metrics
}

// New creates a new web page Pipeline
func New(cfg Config, memo *cache.Memoizer, fetcher scraper.Fetcher, chat llm.ChatModel, log logger.Logger, m *metrics.Metrics) Pipeline {
	return &implPipeline{
		cfg:     cfg,
		memo:    memo,
		fetcher: fetcher,
		chat:    chat,
		logger:  log,
		metrics: m,
	}
}
