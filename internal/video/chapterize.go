package video

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nguyentantai21042004/notime/internal/cache"
	"github.com/nguyentantai21042004/notime/internal/llm"
	"github.com/nguyentantai21042004/notime/internal/models"
)

const systemPrompt = "You are a video explainer who helps the user understand a video quickly. " +
	"Return your analysis to the user in JSON format. Write in %s."

const userPrompt = "Your answer must use exactly this JSON format and nothing else:\n" +
	"`[{\"time\":\"\",\"summarize\":\"\"}]`\n\n" +
	"Fill the keys as follows:\n" +
	"- `time`: the start time of the section\n" +
	"- `summarize`: the gist of the section in 25 to 50 characters, written in %s\n\n" +
	"Split the video into at most five sections.\n\n" +
	"---\n\n" +
	"%s"

// chapterize asks the chat model for at most five chapters. Results are cached by sidecar path.
func (p *implPipeline) chapterize(ctx context.Context, srtPath, transcript string) ([]models.Chapter, error) {
	return cache.Memoize(ctx, p.memo, "video", srtPath, p.cfg.TTL, func(ctx context.Context) ([]models.Chapter, error) {
		text := llm.Truncate(stripTimings(transcript), p.cfg.MaxInputChars)

		start := time.Now()
		resp, err := p.chat.Create(ctx, llm.ChatRequest{
			Model:  p.cfg.Model,
			System: fmt.Sprintf(systemPrompt, p.cfg.Language),
			User:   fmt.Sprintf(userPrompt, p.cfg.Language, text),
		})
		p.metrics.ObserveStep("chat", start)
		if err != nil {
			return nil, err
		}

		content, ok := resp.LastContent()
		if !ok {
			return nil, fmt.Errorf("no choices: %w", models.ErrUnparseableOutput)
		}

		chapters, err := llm.Decode[[]models.Chapter](content)
		if err != nil {
			return nil, err
		}
		if len(chapters) == 0 {
			return nil, fmt.Errorf("no chapters: %w", models.ErrUnparseableOutput)
		}
		if len(chapters) > maxChapters {
			chapters = chapters[:maxChapters]
		}
		return chapters, nil
	})
}

// stripTimings drops SRT index lines and the " --> end" part of timing lines,
// leaving start times next to the spoken text.
func stripTimings(srt string) string {
	lines := strings.Split(strings.ReplaceAll(srt, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if isIndex(line) {
			continue
		}
		if i := strings.Index(line, " --> "); i >= 0 {
			line = line[:i]
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func isIndex(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	for _, r := range line {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
