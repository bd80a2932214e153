package video

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nguyentantai21042004/notime/internal/models"
)

// Summarize downloads the audio of rawURL, transcribes it and asks the chat model for chapters.
func (p *implPipeline) Summarize(ctx context.Context, rawURL, host string) (models.Reply, error) {
	startTime := time.Now()
	p.logger.Info(ctx, "Starting video summary: %s (%s)", rawURL, host)

	// Step 1: Download and transcode audio
	audioPath, err := p.fetchAudio(ctx, rawURL)
	if err != nil {
		return models.Reply{}, fmt.Errorf("fetch audio: %w", err)
	}

	// Step 2: Transcript sidecar
	srtPath, transcript, err := p.transcribe(ctx, audioPath)
	if err != nil {
		return models.Reply{}, fmt.Errorf("transcribe: %w", err)
	}

	// Step 3: Chapters
	chapters, err := p.chapterize(ctx, srtPath, transcript)
	if err != nil {
		return models.Reply{}, fmt.Errorf("chapterize: %w", err)
	}

	p.logger.Info(ctx, "Video summary completed in %s: %d chapters", time.Since(startTime), len(chapters))
	return reply(chapters), nil
}

// reply flattens chapters into "time - summarize" lines. Video replies carry no comment.
func reply(chapters []models.Chapter) models.Reply {
	lines := make([]string, 0, len(chapters))
	for _, c := range chapters {
		lines = append(lines, c.Time+" - "+c.Summarize)
	}
	return models.Reply{Main: strings.Join(lines, "\n")}
}
