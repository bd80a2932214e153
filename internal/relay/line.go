package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nguyentantai21042004/notime/internal/models"
)

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type replyRequest struct {
	ReplyToken           string        `json:"replyToken"`
	NotificationDisabled bool          `json:"notificationDisabled"`
	Messages             []textMessage `json:"messages"`
}

type lineClient struct {
	endpoint    string
	accessToken string
	httpClient  *http.Client
}

// NewLINEClient creates a Replier posting to the LINE Messaging API reply endpoint.
func NewLINEClient(endpoint, accessToken string, timeout time.Duration) Replier {
	return &lineClient{
		endpoint:    endpoint,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// Reply sends text silently (no push notification).
func (c *lineClient) Reply(ctx context.Context, replyToken, text string) error {
	body, err := json.Marshal(replyRequest{
		ReplyToken:           replyToken,
		NotificationDisabled: true,
		Messages:             []textMessage{{Type: "text", Text: text}},
	})
	if err != nil {
		return fmt.Errorf("marshal reply: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post reply: %w: %w", models.ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("post reply: %w: status %d: %s", models.ErrExternalService, resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return nil
}
