package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/notime/internal/models"
)

type webhook struct {
	Events []event `json:"events"`
}

type event struct {
	Type       string   `json:"type"`
	ReplyToken string   `json:"replyToken"`
	Message    *message `json:"message"`
}

type message struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (r *implRelay) Accept(ctx context.Context, body []byte, signature string) bool {
	if !Verify(body, signature, r.secret) {
		r.logger.Warn(ctx, "Rejected webhook: signature mismatch")
		return false
	}

	var hook webhook
	if err := json.Unmarshal(body, &hook); err != nil {
		r.logger.Warn(ctx, "Rejected webhook: %v", err)
		return false
	}

	// events outlive the webhook request
	bg := context.WithoutCancel(ctx)
	for _, ev := range hook.Events {
		r.wg.Add(1)
		go func(ev event) {
			defer r.wg.Done()
			defer func() {
				if p := recover(); p != nil {
					r.logger.Error(bg, "Handle %s event panicked: %v", ev.Type, p)
				}
			}()
			if err := r.handle(bg, ev); err != nil {
				r.logger.Error(bg, "Handle %s event: %v", ev.Type, err)
			}
		}(ev)
	}

	r.logger.Info(ctx, "Accepted webhook with %d events", len(hook.Events))
	return true
}

func (r *implRelay) Wait() {
	r.wg.Wait()
}

// handle answers one text message that contains a link. Anything else is ignored.
func (r *implRelay) handle(ctx context.Context, ev event) error {
	if ev.Type != "message" || ev.Message == nil || ev.Message.Type != "text" {
		return nil
	}

	link, ok := ExtractURL(ev.Message.Text)
	if !ok {
		return nil
	}

	res, err := r.summarizer.Summarize(ctx, link)
	if err != nil {
		return fmt.Errorf("summarize %s: %w", link, err)
	}
	if !res.OK || res.Reply == nil {
		r.logger.Info(ctx, "No summary for %s", link)
		return nil
	}

	if err := r.replier.Reply(ctx, ev.ReplyToken, FormatReply(res)); err != nil {
		return fmt.Errorf("reply: %w", err)
	}

	r.logger.Info(ctx, "Replied with summary of %s", link)
	return nil
}

// FormatReply renders a successful result as chat text.
func FormatReply(res models.Result) string {
	var main, comment string
	if res.Reply != nil {
		main = res.Reply.Main
		if res.Reply.Comment != nil {
			comment = *res.Reply.Comment
		}
	}
	return strings.TrimSpace(fmt.Sprintf("%s\n---\n%s\n\n%s", res.URL, main, comment))
}
