package video

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// sidecarPath is the transcript location next to audioPath.
func sidecarPath(audioPath string) string {
	return strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + ".srt"
}

// transcribe returns the sidecar path and its SRT text. An existing sidecar is
// reused; otherwise the transcriber runs once and the sidecar is written.
func (p *implPipeline) transcribe(ctx context.Context, audioPath string) (string, string, error) {
	srtPath := sidecarPath(audioPath)

	data, err := os.ReadFile(srtPath)
	if err == nil {
		p.logger.Debug(ctx, "Reusing transcript: %s", srtPath)
		return srtPath, string(data), nil
	}
	if !os.IsNotExist(err) {
		return "", "", fmt.Errorf("read transcript: %w", err)
	}

	start := time.Now()
	text, err := p.transcriber.Transcribe(ctx, audioPath)
	p.metrics.ObserveStep("transcribe", start)
	if err != nil {
		return "", "", err
	}

	if err := writeSidecar(srtPath, text); err != nil {
		return "", "", fmt.Errorf("write transcript: %w", err)
	}

	p.logger.Info(ctx, "Transcript written: %s", srtPath)
	return srtPath, text, nil
}

// writeSidecar publishes text at path through a rename so readers never see a
// partial transcript.
func writeSidecar(path, text string) error {
	tmp := path + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, []byte(text), 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
