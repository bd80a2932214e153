package main

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/nguyentantai21042004/notime/internal/cache"
	"github.com/nguyentantai21042004/notime/internal/classifier"
	"github.com/nguyentantai21042004/notime/internal/config"
	"github.com/nguyentantai21042004/notime/internal/dispatcher"
	"github.com/nguyentantai21042004/notime/internal/llm"
	"github.com/nguyentantai21042004/notime/internal/logger"
	"github.com/nguyentantai21042004/notime/internal/media"
	"github.com/nguyentantai21042004/notime/internal/metrics"
	"github.com/nguyentantai21042004/notime/internal/scraper"
	"github.com/nguyentantai21042004/notime/internal/transcriber"
	"github.com/nguyentantai21042004/notime/internal/video"
	"github.com/nguyentantai21042004/notime/internal/webpage"
	"github.com/nguyentantai21042004/notime/pkg/executor"
)

const redisDialTimeout = 5 * time.Second

// app holds the wired summarizer.
type app struct {
	dispatcher dispatcher.Dispatcher
	classifier *classifier.Classifier
	registry   *prometheus.Registry
	redis      *redis.Client
}

func (a *app) Close() {
	if a.redis != nil {
		a.redis.Close()
	}
}

// newRegistry returns a registry with the Go runtime and process collectors.
func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

func buildApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*app, error) {
	a := &app{registry: newRegistry()}
	m := metrics.New(a.registry)

	var store cache.Store
	switch cfg.Cache.Driver {
	case "redis":
		client, err := cache.Conn(ctx, cfg.Cache.RedisURL, redisDialTimeout)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.redis = client
		store = cache.NewRedis(client)
	default:
		log.Warn(ctx, "Using in-memory cache; entries are lost on restart")
		store = cache.NewMemory(nil)
	}
	memo := cache.NewMemoizer(store, log, m)

	chat, err := newChatModel(ctx, cfg.LLM)
	if err != nil {
		a.Close()
		return nil, err
	}

	exec := executor.New()

	var tr transcriber.Transcriber
	switch cfg.Transcriber.Backend {
	case "whisper_cpp":
		tr = transcriber.NewWhisperCPP(cfg.Transcriber.WhisperCPP, exec, log)
	default:
		tr = transcriber.NewOpenAI(cfg.Transcriber.APIKey, cfg.Transcriber.BaseURL, cfg.Transcriber.Model, log)
	}

	videoPipeline := video.New(video.Config{
		TempDir:       cfg.Media.TempDir,
		Extension:     cfg.Media.Transcoder.Extension,
		Model:         cfg.LLM.Model,
		Language:      cfg.LLM.Language,
		MaxInputChars: cfg.LLM.MaxInputChars,
		TTL:           cfg.Cache.TTL,
	}, video.Deps{
		Memoizer:    memo,
		Downloader:  media.NewDownloader(cfg.Media.Downloader, cfg.Scraper.UserAgent, exec, log),
		Transcoder:  media.NewTranscoder(cfg.Media.Transcoder, exec, log),
		Transcriber: tr,
		Chat:        chat,
		Logger:      log,
		Metrics:     m,
	})

	webPipeline := webpage.New(webpage.Config{
		Model:         cfg.LLM.Model,
		Language:      cfg.LLM.Language,
		MaxInputChars: cfg.LLM.MaxInputChars,
		TTL:           cfg.Cache.TTL,
	}, memo, scraper.New(cfg.Scraper.UserAgent, cfg.Scraper.Timeout), chat, log, m)

	a.classifier = classifier.New(cfg.Video.Whitelist)
	a.dispatcher = dispatcher.New(a.classifier, videoPipeline, webPipeline, log, m)
	return a, nil
}

func newChatModel(ctx context.Context, cfg config.LLMConfig) (llm.ChatModel, error) {
	switch cfg.Provider {
	case "gemini":
		chat, err := llm.NewGemini(ctx, cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		return chat, nil
	default:
		return llm.NewOpenAI(cfg.APIKey, cfg.BaseURL, cfg.Timeout), nil
	}
}
