package webpage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nguyentantai21042004/notime/internal/cache"
	"github.com/nguyentantai21042004/notime/internal/htmltext"
	"github.com/nguyentantai21042004/notime/internal/llm"
	"github.com/nguyentantai21042004/notime/internal/models"
)

const systemPrompt = "You are a public sentiment analyst who helps the user keep up with what is happening online. " +
	"Return your analysis to the user in JSON format. Your analysis must be written in %s."

const userPrompt = "Your answer must use exactly this JSON format and nothing else:\n" +
	"`{\"main\":\"\",\"comment\":\"\"}`\n\n" +
	"Fill the keys as follows:\n" +
	"- `main`: an outline of the main text in 50 to 150 characters\n" +
	"- `comment`: an analysis of the article's comments or replies; use an empty string if there are none\n\n" +
	"---\n\n" +
	"%s"

// Summarize scrapes rawURL and asks the chat model for a synopsis and comment digest.
func (p *implPipeline) Summarize(ctx context.Context, rawURL, host string) (models.Reply, error) {
	p.logger.Info(ctx, "Starting web page summary: %s", rawURL)

	text, err := p.scrape(ctx, rawURL, host)
	if err != nil {
		return models.Reply{}, fmt.Errorf("scrape: %w", err)
	}

	reply, err := p.summarize(ctx, rawURL, text)
	if err != nil {
		return models.Reply{}, fmt.Errorf("summarize: %w", err)
	}
	return reply, nil
}

// scrape fetches the page and converts it to plain text, cached by url.
func (p *implPipeline) scrape(ctx context.Context, rawURL, host string) (string, error) {
	return cache.Memoize(ctx, p.memo, "scrape", rawURL, p.cfg.TTL, func(ctx context.Context) (string, error) {
		start := time.Now()
		body, err := p.fetcher.Get(ctx, rawURL, host)
		p.metrics.ObserveStep("scrape", start)
		if err != nil {
			return "", err
		}

		text, err := htmltext.Convert(body, htmltext.Options{IgnoreErrors: true, DropLinks: true})
		if err != nil {
			return "", fmt.Errorf("convert html: %w", err)
		}
		p.logger.Debug(ctx, "Scraped %d characters from %s", len(text), rawURL)
		return text, nil
	})
}

// summarize asks the chat model for a Reply, cached by url.
func (p *implPipeline) summarize(ctx context.Context, rawURL, text string) (models.Reply, error) {
	return cache.Memoize(ctx, p.memo, "webpage", rawURL, p.cfg.TTL, func(ctx context.Context) (models.Reply, error) {
		start := time.Now()
		resp, err := p.chat.Create(ctx, llm.ChatRequest{
			Model:  p.cfg.Model,
			System: fmt.Sprintf(systemPrompt, p.cfg.Language),
			User:   fmt.Sprintf(userPrompt, llm.Truncate(text, p.cfg.MaxInputChars)),
		})
		p.metrics.ObserveStep("chat", start)
		if err != nil {
			return models.Reply{}, err
		}

		content, ok := resp.LastContent()
		if !ok {
			return models.Reply{}, fmt.Errorf("no choices: %w", models.ErrUnparseableOutput)
		}
		reply, err := llm.Decode[models.Reply](content)
		if err != nil {
			return models.Reply{}, err
		}
		if strings.TrimSpace(reply.Main) == "" {
			return models.Reply{}, fmt.Errorf("reply has no main text: %w", models.ErrUnparseableOutput)
		}
		return reply, nil
	})
}
