package video

import (
	"time"

	"github.com/nguyentantai21042004/notime/internal/cache"
	"github.com/nguyentantai21042004/notime/internal/llm"
	"github.com/nguyentantai21042004/notime/internal/logger"
	"github.com/nguyentantai21042004/notime/internal/media"
	"github.com/nguyentantai21042004/notime/internal/metrics"
	"github.com/nguyentantai21042004/notime/internal/transcriber"
)

// maxChapters is the most chapters a reply carries.
const maxChapters = 5

type Config struct {
	// TempDir holds downloaded and transcoded audio plus transcript sidecars.
	TempDir string
	// Extension of the transcoded audio, including the dot.
	Extension     string
	Model         string
	Language      string
	MaxInputChars int
	// TTL applies to chapter summaries; audio never expires.
	TTL time.Duration
}

type Deps struct {
	Memoizer    *cache.Memoizer
	Downloader  media.Downloader
	Transcoder  media.Transcoder
	Transcriber transcriber.Transcriber
	Chat        llm.ChatModel
	Logger      logger.Logger
	Metrics     *metrics.Metrics
}

type implPipeline struct {
	cfg         Config
	memo        *cache.Memoizer
	downloader  media.Downloader
	transcoder  media.Transcoder
	transcriber transcriber.Transcriber
	chat        llm.ChatModel
	logger      logger.Logger
	metrics     *metrics.Metrics
}

// New creates a new video Pipeline
func New(cfg Config, deps Deps) Pipeline {
	return &implPipeline{
		cfg:         cfg,
		memo:        deps.Memoizer,
		downloader:  deps.Downloader,
		transcoder:  deps.Transcoder,
		transcriber: deps.Transcriber,
		chat:        deps.Chat,
		logger:      deps.Logger,
		metrics:     deps.Metrics,
	}
}
