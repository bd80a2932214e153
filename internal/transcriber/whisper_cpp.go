package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/notime/internal/config"
	"github.com/nguyentantai21042004/notime/internal/logger"
	"github.com/nguyentantai21042004/notime/internal/models"
	"github.com/nguyentantai21042004/notime/pkg/executor"
)

type implWhisperCPP struct {
	cfg      config.WhisperCPPConfig
	executor executor.Executor
	logger   logger.Logger
}

// NewWhisperCPP creates a Transcriber that runs a local whisper.cpp binary.
func NewWhisperCPP(cfg config.WhisperCPPConfig, exec executor.Executor, log logger.Logger) Transcriber {
	return &implWhisperCPP{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}

func (w *implWhisperCPP) Transcribe(ctx context.Context, audioPath string) (string, error) {
	// whisper.cpp appends .srt to the prefix; a distinct suffix keeps it off the sidecar path
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + ".whisper"

	w.logger.Info(ctx, "Starting transcription with %d threads: %s", w.cfg.Threads, audioPath)

	// -m: Model path
	// -f: Input audio file
	// -osrt: Output SRT format
	// -l: Spoken language ("auto" detects)
	// -t: Number of threads
	// --output-file: Output file prefix
	args := []string{
		"-m", w.cfg.ModelPath,
		"-f", audioPath,
		"-osrt",
		"-l", w.cfg.Language,
		"-t", strconv.Itoa(w.cfg.Threads),
		"--output-file", outputPrefix,
	}

	if _, err := w.executor.Execute(ctx, w.cfg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w: %w", models.ErrExternalTool, err)
	}

	srtPath := outputPrefix + ".srt"
	defer os.Remove(srtPath)

	data, err := os.ReadFile(srtPath)
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w: %w", models.ErrExternalTool, err)
	}

	w.logger.Info(ctx, "Transcription completed: %s", audioPath)
	return string(data), nil
}
