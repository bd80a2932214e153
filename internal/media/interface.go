package media

import "context"

// Downloader fetches the audio track of a video URL into a local file.
type Downloader interface {
	Download(ctx context.Context, url, output string) error
}

// Transcoder re-encodes an audio file into the compact format sent to the transcriber.
type Transcoder interface {
	Transcode(ctx context.Context, input, output string) error
}
