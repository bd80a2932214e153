package media

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/notime/internal/config"
	"github.com/nguyentantai21042004/notime/internal/logger"
	"github.com/nguyentantai21042004/notime/internal/models"
	"github.com/nguyentantai21042004/notime/pkg/executor"
)

type implTranscoder struct {
	cfg      config.TranscoderConfig
	executor executor.Executor
	logger   logger.Logger
}

// NewTranscoder creates an ffmpeg backed Transcoder.
func NewTranscoder(cfg config.TranscoderConfig, exec executor.Executor, log logger.Logger) Transcoder {
	return &implTranscoder{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}

func (t *implTranscoder) Transcode(ctx context.Context, input, output string) error {
	ctx, cancel := context.WithTimeout(ctx, t.cfg.Timeout)
	defer cancel()

	t.logger.Info(ctx, "Transcoding audio: %s", input)

	// -i: Input file
	// -t: Keep only the first MaxDuration of audio
	// -vn: No video
	// -c:a: Audio codec
	// -b:a: Audio bitrate
	args := []string{
		"-i", filepath.Base(input),
		"-t", clock(t.cfg.MaxDuration),
		"-vn",
		"-c:a", t.cfg.Codec,
		"-b:a", t.cfg.Bitrate,
		filepath.Base(output),
	}

	if _, err := t.executor.ExecuteInDir(ctx, filepath.Dir(input), t.cfg.BinaryPath, args...); err != nil {
		return fmt.Errorf("ffmpeg transcode: %w: %w", models.ErrExternalTool, err)
	}

	t.logger.Debug(ctx, "Audio transcoded: %s", output)
	return nil
}

// clock formats d as HH:MM:SS for ffmpeg duration flags.
func clock(d time.Duration) string {
	s := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}
