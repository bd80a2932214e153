package models

// Kind classifies a URL host.
type Kind int

const (
	KindGeneric Kind = iota
	KindVideo
)

func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	default:
		return "generic"
	}
}

// Reply is the uniform answer produced by both pipelines.
// Comment is nil for video replies and serializes as null.
type Reply struct {
	Main    string  `json:"main"`
	Comment *string `json:"comment"`
}

// Chapter is one chronological section of a video summary.
type Chapter struct {
	Time      string `json:"time"`
	Summarize string `json:"summarize"`
}

// Result is what callers of the summarizer see.
// A failed request serializes as exactly {"ok":false}.
type Result struct {
	OK    bool   `json:"ok"`
	URL   string `json:"url,omitempty"`
	Reply *Reply `json:"reply,omitempty"`
}

// Failed is the single failure result.
func Failed() Result {
	return Result{OK: false}
}

// Succeeded builds a successful result for url.
func Succeeded(url string, reply Reply) Result {
	return Result{OK: true, URL: url, Reply: &reply}
}
