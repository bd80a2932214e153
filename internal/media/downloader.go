package media

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/nguyentantai21042004/notime/internal/config"
	"github.com/nguyentantai21042004/notime/internal/logger"
	"github.com/nguyentantai21042004/notime/internal/models"
	"github.com/nguyentantai21042004/notime/pkg/executor"
)

type implDownloader struct {
	cfg       config.DownloaderConfig
	userAgent string
	executor  executor.Executor
	logger    logger.Logger
}

// NewDownloader creates a yt-dlp backed Downloader.
func NewDownloader(cfg config.DownloaderConfig, userAgent string, exec executor.Executor, log logger.Logger) Downloader {
	return &implDownloader{
		cfg:       cfg,
		userAgent: userAgent,
		executor:  exec,
		logger:    log,
	}
}

func (d *implDownloader) Download(ctx context.Context, url, output string) error {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	d.logger.Info(ctx, "Downloading audio: %s", url)

	// --abort-on-error: Stop on the first failure
	// --no-playlist: Only the linked video
	// --no-part: Write straight to the output file
	// --format: Audio-only stream (140 = m4a 128k)
	args := []string{
		"--abort-on-error",
		"--no-playlist",
		"--no-part",
		"--format", d.cfg.Format,
		"--user-agent", d.userAgent,
		"--output", filepath.Base(output),
		url,
	}

	if _, err := d.executor.ExecuteInDir(ctx, filepath.Dir(output), d.cfg.BinaryPath, args...); err != nil {
		return fmt.Errorf("yt-dlp download: %w: %w", models.ErrExternalTool, err)
	}

	d.logger.Debug(ctx, "Audio downloaded: %s", output)
	return nil
}
