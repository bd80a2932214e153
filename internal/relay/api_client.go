package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nguyentantai21042004/notime/internal/models"
)

type apiClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewAPIClient creates a Summarizer calling a remote summarizer at endpoint via GET /?url=.
func NewAPIClient(endpoint string, timeout time.Duration) Summarizer {
	return &apiClient{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *apiClient) Summarize(ctx context.Context, rawURL string) (models.Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/?url="+url.QueryEscape(rawURL), nil)
	if err != nil {
		return models.Result{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Result{}, fmt.Errorf("call summarizer: %w: %w", models.ErrExternalService, err)
	}
	defer resp.Body.Close()

	var res models.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return models.Result{}, fmt.Errorf("decode summarizer response (status %d): %w: %w", resp.StatusCode, models.ErrExternalService, err)
	}
	return res, nil
}
