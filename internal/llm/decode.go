package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/notime/internal/models"
)

// Decode parses model output as JSON into T. Markdown code fences are tolerated.
// Empty output, JSON null, malformed input or a value of the wrong JSON type
// yield ErrUnparseableOutput. Missing fields are not checked: "{}" decodes into
// the zero T, so callers validate required fields themselves.
func Decode[T any](content string) (T, error) {
	var zero T

	raw := stripFences(content)
	if raw == "" || raw == "null" {
		return zero, fmt.Errorf("empty model output: %w", models.ErrUnparseableOutput)
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return zero, fmt.Errorf("decode %q: %w: %w", Truncate(raw, 80), models.ErrUnparseableOutput, err)
	}
	return v, nil
}

// stripFences removes markdown code fences from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// Truncate cuts s to at most n runes. A non-positive n leaves s whole.
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
