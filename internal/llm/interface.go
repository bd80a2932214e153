package llm

import "context"

// ChatModel sends one system + user exchange to a chat-completion service.
type ChatModel interface {
	Create(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

type ChatRequest struct {
	Model  string
	System string
	User   string
}

type Choice struct {
	Content string
}

type ChatResponse struct {
	Choices []Choice
}

// LastContent returns the content of the last choice; ok is false when there are none.
func (r ChatResponse) LastContent() (string, bool) {
	if len(r.Choices) == 0 {
		return "", false
	}
	return r.Choices[len(r.Choices)-1].Content, true
}
