package dispatcher

import (
	"context"
	"fmt"
	"net/url"
	"runtime/debug"
	"time"

	"github.com/nguyentantai21042004/notime/internal/models"
)

// Handle validates rawURL, routes it by host and runs the matching pipeline.
// Every failure collapses to {ok:false}; the cause is only logged.
func (d *implDispatcher) Handle(ctx context.Context, rawURL string) (res models.Result) {
	startTime := time.Now()
	kind := "invalid"

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error(ctx, "Summarize %s panicked: %v\n%s", rawURL, r, debug.Stack())
			d.metrics.Request(kind, "panic")
			res = models.Failed()
		}
	}()

	u, err := parse(rawURL)
	if err != nil {
		d.logger.Warn(ctx, "Rejected %q: %v", rawURL, err)
		d.metrics.Request(kind, models.ErrorKind(err))
		return models.Failed()
	}

	host := u.Hostname()
	k := d.classifier.Classify(host)
	kind = k.String()
	pipeline := d.web
	if k == models.KindVideo {
		pipeline = d.video
	}

	d.logger.Info(ctx, "Summarizing %s as %s", rawURL, kind)

	reply, err := pipeline.Summarize(ctx, rawURL, host)
	if err != nil {
		d.logger.Error(ctx, "Summarize %s failed (%s): %v", rawURL, models.ErrorKind(err), err)
		d.metrics.Request(kind, models.ErrorKind(err))
		return models.Failed()
	}

	d.logger.Info(ctx, "Summarized %s in %s", rawURL, time.Since(startTime))
	d.metrics.Request(kind, "ok")
	return models.Succeeded(rawURL, reply)
}

// parse accepts absolute URLs with a non-empty host.
func parse(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w: %w", models.ErrInvalidInput, err)
	}
	if !u.IsAbs() || u.Hostname() == "" {
		return nil, fmt.Errorf("url %q is not absolute: %w", rawURL, models.ErrInvalidInput)
	}
	return u, nil
}
