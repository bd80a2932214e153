package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/nguyentantai21042004/notime/internal/models"
)

// maxBodyBytes caps how much of a page is read.
const maxBodyBytes = 10 << 20

// Fetcher downloads the raw HTML of a page.
type Fetcher interface {
	Get(ctx context.Context, rawURL, host string) (string, error)
}

type implFetcher struct {
	userAgent string
	timeout   time.Duration
}

// New creates a Fetcher sending userAgent. A zero timeout leaves the client default.
func New(userAgent string, timeout time.Duration) Fetcher {
	return &implFetcher{
		userAgent: userAgent,
		timeout:   timeout,
	}
}

// Get fetches rawURL with the browser user agent and an over18=1 cookie scoped to host.
// The body is returned whatever the status code.
func (f *implFetcher) Get(ctx context.Context, rawURL, host string) (string, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return "", fmt.Errorf("cookie jar: %w", err)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	jar.SetCookies(u, []*http.Cookie{{Name: "over18", Value: "1", Domain: host, Path: "/"}})

	client := &http.Client{
		Jar:     jar,
		Timeout: f.timeout,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w: %w", models.ErrExternalService, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w: %w", models.ErrExternalService, err)
	}
	return string(body), nil
}
