package video

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/notime/internal/cache"
	"github.com/nguyentantai21042004/notime/internal/llm"
	"github.com/nguyentantai21042004/notime/internal/logger"
	"github.com/nguyentantai21042004/notime/internal/models"
)

const (
	videoURL   = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	sampleSRT  = "1\n00:00:00,000 --> 00:00:04,000\nintro line\n\n2\n00:05:00,000 --> 00:05:04,000\nmain topic line\n"
	twoChapter = `[{"time":"00:00","summarize":"intro"},{"time":"05:00","summarize":"main topic"}]`
)

type fakeDownloader struct {
	calls int
	err   error
}

func (f *fakeDownloader) Download(ctx context.Context, url, output string) error {
	f.calls++
	if f.err != nil {
		os.WriteFile(output, []byte("partial"), 0o644)
		return f.err
	}
	return os.WriteFile(output, []byte("m4a"), 0o644)
}

type fakeTranscoder struct {
	calls int
	err   error
}

func (f *fakeTranscoder) Transcode(ctx context.Context, input, output string) error {
	f.calls++
	if _, err := os.Stat(input); err != nil {
		return err
	}
	if err := os.WriteFile(output, []byte("opus"), 0o644); err != nil {
		return err
	}
	return f.err
}

type fakeTranscriber struct {
	calls int
	srt   string
	err   error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	f.calls++
	return f.srt, f.err
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
	return llm.ChatResponse{Choices: []llm.Choice{{Content: "ignored"}, {Content: f.content}}}, nil
}

type fixture struct {
	dir         string
	now         time.Time
	downloader  *fakeDownloader
	transcoder  *fakeTranscoder
	transcriber *fakeTranscriber
	chat        *fakeChat
	pipeline    *implPipeline
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		dir:         t.TempDir(),
		now:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		downloader:  &fakeDownloader{},
		transcoder:  &fakeTranscoder{},
		transcriber: &fakeTranscriber{srt: sampleSRT},
		chat:        &fakeChat{content: twoChapter},
	}
	store := cache.NewMemory(func() time.Time { return f.now })
	f.pipeline = New(Config{
		TempDir:       f.dir,
		Extension:     ".webm",
		Model:         "gpt-3.5-turbo",
		Language:      "English",
		MaxInputChars: 5000,
		TTL:           time.Hour,
	}, Deps{
		Memoizer:    cache.NewMemoizer(store, logger.Nop(), nil),
		Downloader:  f.downloader,
		Transcoder:  f.transcoder,
		Transcriber: f.transcriber,
		Chat:        f.chat,
		Logger:      logger.Nop(),
	}).(*implPipeline)
	return f
}

func (f *fixture) files(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(f.dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestReplyFormatting(t *testing.T) {
	r := reply([]models.Chapter{
		{Time: "00:00", Summarize: "intro"},
		{Time: "05:00", Summarize: "main topic"},
	})
	assert.Equal(t, "00:00 - intro\n05:00 - main topic", r.Main)
	assert.Nil(t, r.Comment)
}

func TestSummarize(t *testing.T) {
	f := newFixture(t)

	r, err := f.pipeline.Summarize(context.Background(), videoURL, "www.youtube.com")
	require.NoError(t, err)
	assert.Equal(t, "00:00 - intro\n05:00 - main topic", r.Main)
	assert.Nil(t, r.Comment)

	// only the transcoded audio and its sidecar remain
	files := f.files(t)
	require.Len(t, files, 2)
	var audio, srt int
	for _, name := range files {
		switch filepath.Ext(name) {
		case ".webm":
			audio++
		case ".srt":
			srt++
		}
	}
	assert.Equal(t, 1, audio)
	assert.Equal(t, 1, srt)

	require.Len(t, f.chat.requests, 1)
	req := f.chat.requests[0]
	assert.Equal(t, "gpt-3.5-turbo", req.Model)
	assert.Contains(t, req.System, "English")
	assert.Contains(t, req.User, "00:00:00,000\nintro line")
	assert.NotContains(t, req.User, "-->")

	t.Run("second call is served from cache", func(t *testing.T) {
		r2, err := f.pipeline.Summarize(context.Background(), videoURL, "www.youtube.com")
		require.NoError(t, err)
		assert.Equal(t, r, r2)
		assert.Equal(t, 1, f.downloader.calls)
		assert.Equal(t, 1, f.transcoder.calls)
		assert.Equal(t, 1, f.transcriber.calls)
		assert.Equal(t, 1, f.chat.calls)
	})

	t.Run("audio outlives chapter ttl", func(t *testing.T) {
		f.now = f.now.Add(48 * time.Hour)
		_, err := f.pipeline.Summarize(context.Background(), videoURL, "www.youtube.com")
		require.NoError(t, err)
		assert.Equal(t, 1, f.downloader.calls)
		assert.Equal(t, 1, f.transcriber.calls)
		assert.Equal(t, 2, f.chat.calls)
	})
}

func TestSummarizeDownloadFailure(t *testing.T) {
	f := newFixture(t)
	f.downloader.err = errors.New("yt-dlp download: exit status 1")

	_, err := f.pipeline.Summarize(context.Background(), videoURL, "www.youtube.com")
	require.Error(t, err)
	assert.Equal(t, 0, f.transcoder.calls)
	assert.Equal(t, 0, f.transcriber.calls)
	assert.Equal(t, 0, f.chat.calls)
	assert.Empty(t, f.files(t))

	// failures are not cached
	f.downloader.err = nil
	_, err = f.pipeline.Summarize(context.Background(), videoURL, "www.youtube.com")
	require.NoError(t, err)
	assert.Equal(t, 2, f.downloader.calls)
}

func TestSummarizeTranscodeFailure(t *testing.T) {
	f := newFixture(t)
	f.transcoder.err = models.ErrExternalTool

	_, err := f.pipeline.Summarize(context.Background(), videoURL, "www.youtube.com")
	assert.ErrorIs(t, err, models.ErrExternalTool)
	assert.Equal(t, 0, f.transcriber.calls)
	assert.Empty(t, f.files(t))
}

func TestSummarizeUnparseable(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"prose", "Sorry, I cannot help with that."},
		{"null", "null"},
		{"empty array", "[]"},
		{"object", `{"time":"00:00","summarize":"intro"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.chat.content = tt.content

			_, err := f.pipeline.Summarize(context.Background(), videoURL, "www.youtube.com")
			assert.ErrorIs(t, err, models.ErrUnparseableOutput)

			_, err = f.pipeline.Summarize(context.Background(), videoURL, "www.youtube.com")
			assert.ErrorIs(t, err, models.ErrUnparseableOutput)
			assert.Equal(t, 2, f.chat.calls)
		})
	}
}

func TestSummarizeChatFailure(t *testing.T) {
	f := newFixture(t)
	f.chat.err = models.ErrExternalService

	_, err := f.pipeline.Summarize(context.Background(), videoURL, "www.youtube.com")
	assert.ErrorIs(t, err, models.ErrExternalService)
}

func TestChapterizeCapsAtFive(t *testing.T) {
	f := newFixture(t)
	f.chat.content = `[{"time":"00:00","summarize":"a"},{"time":"01:00","summarize":"b"},` +
		`{"time":"02:00","summarize":"c"},{"time":"03:00","summarize":"d"},` +
		`{"time":"04:00","summarize":"e"},{"time":"05:00","summarize":"f"}]`

	chapters, err := f.pipeline.chapterize(context.Background(), filepath.Join(f.dir, "x.srt"), sampleSRT)
	require.NoError(t, err)
	require.Len(t, chapters, 5)
	assert.Equal(t, "04:00", chapters[4].Time)
}

func TestChapterizeTruncatesInput(t *testing.T) {
	f := newFixture(t)

	transcript := strings.Repeat("語", 6000)
	_, err := f.pipeline.chapterize(context.Background(), filepath.Join(f.dir, "x.srt"), transcript)
	require.NoError(t, err)

	require.Len(t, f.chat.requests, 1)
	user := f.chat.requests[0].User
	assert.Equal(t, 5000, strings.Count(user, "語"))
	assert.True(t, utf8.ValidString(user))
}

func TestTranscribeReusesSidecar(t *testing.T) {
	f := newFixture(t)
	audio := filepath.Join(f.dir, "clip.webm")
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "clip.srt"), []byte("cached transcript"), 0o644))

	srtPath, text, err := f.pipeline.transcribe(context.Background(), audio)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.dir, "clip.srt"), srtPath)
	assert.Equal(t, "cached transcript", text)
	assert.Equal(t, 0, f.transcriber.calls)
}

func TestTranscribeWritesSidecar(t *testing.T) {
	f := newFixture(t)
	audio := filepath.Join(f.dir, "clip.webm")

	srtPath, text, err := f.pipeline.transcribe(context.Background(), audio)
	require.NoError(t, err)
	assert.Equal(t, sampleSRT, text)

	data, err := os.ReadFile(srtPath)
	require.NoError(t, err)
	assert.Equal(t, sampleSRT, string(data))
	assert.Equal(t, []string{"clip.srt"}, f.files(t))

	t.Run("failed rename leaves no temp file", func(t *testing.T) {
		f := newFixture(t)
		target := filepath.Join(f.dir, "clip.srt")
		require.NoError(t, os.Mkdir(target, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(target, "keep"), nil, 0o644))

		require.Error(t, writeSidecar(target, sampleSRT))
		assert.Equal(t, []string{"clip.srt"}, f.files(t))
	})

	t.Run("transcriber failure leaves no sidecar", func(t *testing.T) {
		f := newFixture(t)
		f.transcriber.err = models.ErrExternalService
		_, _, err := f.pipeline.transcribe(context.Background(), filepath.Join(f.dir, "other.webm"))
		assert.ErrorIs(t, err, models.ErrExternalService)
		assert.Empty(t, f.files(t))
	})
}

func TestStripTimings(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "index and end time removed",
			in:   "1\n00:00:01,000 --> 00:00:02,500\nhello\n",
			want: "00:00:01,000\nhello\n",
		},
		{
			name: "crlf",
			in:   "12\r\n00:01:00,000 --> 00:01:03,000\r\nworld",
			want: "00:01:00,000\nworld",
		},
		{
			name: "numbers inside text are kept",
			in:   "3\n00:02:00,000 --> 00:02:01,000\nwe sold 2000",
			want: "00:02:00,000\nwe sold 2000",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripTimings(tt.in))
		})
	}
}

func TestSidecarPath(t *testing.T) {
	assert.Equal(t, "/tmp/a/5f1c.srt", sidecarPath("/tmp/a/5f1c.webm"))
	assert.Equal(t, "/tmp/a.b/clip.srt", sidecarPath("/tmp/a.b/clip.webm"))
}
