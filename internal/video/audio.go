package video

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/notime/internal/cache"
)

// fetchAudio returns the path of the transcoded audio for url. The path is cached
// without expiry, so a url is downloaded at most once while the cache lives.
func (p *implPipeline) fetchAudio(ctx context.Context, url string) (string, error) {
	return cache.Memoize(ctx, p.memo, "audio", url, cache.NoExpiry, func(ctx context.Context) (string, error) {
		if err := os.MkdirAll(p.cfg.TempDir, 0o755); err != nil {
			return "", fmt.Errorf("create temp dir: %w", err)
		}

		basePath := filepath.Join(p.cfg.TempDir, uuid.NewString())
		audioPath := basePath + p.cfg.Extension

		start := time.Now()
		err := p.downloader.Download(ctx, url, basePath)
		p.metrics.ObserveStep("download", start)
		if err != nil {
			p.cleanupTempFile(ctx, basePath)
			return "", err
		}

		start = time.Now()
		err = p.transcoder.Transcode(ctx, basePath, audioPath)
		p.metrics.ObserveStep("transcode", start)
		p.cleanupTempFile(ctx, basePath)
		if err != nil {
			p.cleanupTempFile(ctx, audioPath)
			return "", err
		}

		p.logger.Info(ctx, "Audio ready: %s", audioPath)
		return audioPath, nil
	})
}
