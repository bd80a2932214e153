package webpage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/notime/internal/cache"
	"github.com/nguyentantai21042004/notime/internal/llm"
	"github.com/nguyentantai21042004/notime/internal/logger"
	"github.com/nguyentantai21042004/notime/internal/models"
)

const pageURL = "https://example.com/news/1"

type fakeFetcher struct {
	calls int
	body  string
	err   error
	host  string
}

func (f *fakeFetcher) Get(ctx context.Context, rawURL, host string) (string, error) {
	f.calls++
	f.host = host
	return f.body, f.err
}

type fakeChat struct {
	calls    int
	content  string
	err      error
	requests []llm.ChatRequest
}

func (f *fakeChat) Create(ctx context.Context, req llm.ChatRequest) (llm.ChatResponse, error) {
	f.calls++
	f.requests = append(f.requests, req)
	if f.err != nil {
		return llm.ChatResponse{}, f.err
	}
	return llm.ChatResponse{Choices: []llm.Choice{{Content: f.content}}}, nil
}

type fixture struct {
	now      time.Time
	fetcher  *fakeFetcher
	chat     *fakeChat
	pipeline Pipeline
}

func newFixture() *fixture {
	f := &fixture{
		now:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		fetcher: &fakeFetcher{body: "<html><body><h1>Title</h1><p>Body text <a href=\"/x\">link</a></p></body></html>"},
		chat:    &fakeChat{content: `{"main":"A short synopsis","comment":""}`},
	}
	store := cache.NewMemory(func() time.Time { return f.now })
	f.pipeline = New(Config{
		Model:         "gpt-3.5-turbo",
		Language:      "Traditional Chinese",
		MaxInputChars: 5000,
		TTL:           time.Hour,
	}, cache.NewMemoizer(store, logger.Nop(), nil), f.fetcher, f.chat, logger.Nop(), nil)
	return f
}

func TestSummarize(t *testing.T) {
	f := newFixture()

	r, err := f.pipeline.Summarize(context.Background(), pageURL, "example.com")
	require.NoError(t, err)
	assert.Equal(t, "A short synopsis", r.Main)
	require.NotNil(t, r.Comment)
	assert.Equal(t, "", *r.Comment)
	assert.Equal(t, "example.com", f.fetcher.host)

	require.Len(t, f.chat.requests, 1)
	req := f.chat.requests[0]
	assert.Equal(t, "gpt-3.5-turbo", req.Model)
	assert.Contains(t, req.System, "Traditional Chinese")
	assert.Contains(t, req.User, "Title")
	assert.Contains(t, req.User, "Body text link")
	assert.NotContains(t, req.User, "/x")

	t.Run("cached within ttl", func(t *testing.T) {
		f.now = f.now.Add(59 * time.Minute)
		_, err := f.pipeline.Summarize(context.Background(), pageURL, "example.com")
		require.NoError(t, err)
		assert.Equal(t, 1, f.fetcher.calls)
		assert.Equal(t, 1, f.chat.calls)
	})

	t.Run("recomputed after ttl", func(t *testing.T) {
		f.now = f.now.Add(2 * time.Minute)
		_, err := f.pipeline.Summarize(context.Background(), pageURL, "example.com")
		require.NoError(t, err)
		assert.Equal(t, 2, f.fetcher.calls)
		assert.Equal(t, 2, f.chat.calls)
	})
}

func TestSummarizeTruncatesText(t *testing.T) {
	runes := make([]rune, 7000)
	for i := range runes {
		runes[i] = rune(0x4E00 + i)
	}
	text := string(runes)

	f := newFixture()
	f.fetcher.body = "<p>" + text + "</p>"

	_, err := f.pipeline.Summarize(context.Background(), pageURL, "example.com")
	require.NoError(t, err)

	require.Len(t, f.chat.requests, 1)
	user := f.chat.requests[0].User
	assert.True(t, strings.HasSuffix(user, string(runes[:5000])), "prompt must end with the first 5000 runes")
	assert.NotContains(t, user, string(runes[5000]))
}

func TestSummarizeUnparseable(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"prose", "Here is your summary: it is about cats."},
		{"null", "null"},
		{"array", `["main"]`},
		{"empty object", `{}`},
		{"blank main", `{"main":"  ","comment":"readers disagree"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.chat.content = tt.content

			_, err := f.pipeline.Summarize(context.Background(), pageURL, "example.com")
			assert.ErrorIs(t, err, models.ErrUnparseableOutput)

			// scraped text is cached; the failed summary is not
			_, err = f.pipeline.Summarize(context.Background(), pageURL, "example.com")
			assert.ErrorIs(t, err, models.ErrUnparseableOutput)
			assert.Equal(t, 1, f.fetcher.calls)
			assert.Equal(t, 2, f.chat.calls)
		})
	}
}

func TestSummarizeFetchFailure(t *testing.T) {
	f := newFixture()
	f.fetcher.err = models.ErrExternalService

	_, err := f.pipeline.Summarize(context.Background(), pageURL, "example.com")
	assert.ErrorIs(t, err, models.ErrExternalService)
	assert.Equal(t, 0, f.chat.calls)
}

func TestSummarizeCommentNull(t *testing.T) {
	f := newFixture()
	f.chat.content = "```json\n{\"main\":\"synopsis\",\"comment\":\"readers disagree\"}\n```"

	r, err := f.pipeline.Summarize(context.Background(), pageURL, "example.com")
	require.NoError(t, err)
	require.NotNil(t, r.Comment)
	assert.Equal(t, "readers disagree", *r.Comment)
}
