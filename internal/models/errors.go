package models

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrExternalTool      = errors.New("external tool failure")
	ErrExternalService   = errors.New("external service failure")
	ErrUnparseableOutput = errors.New("unparseable model output")
)

// ErrorKind names the taxonomy kind of err for logs and metrics.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrExternalTool):
		return "external_tool"
	case errors.Is(err, ErrUnparseableOutput):
		return "unparseable_output"
	case errors.Is(err, ErrExternalService):
		return "external_service"
	default:
		return "unknown"
	}
}
