package executor

import (
	"context"
	"errors"
)

// ErrTimeout is returned when a command is killed because its context deadline passed.
var ErrTimeout = errors.New("command timed out")

// Executor defines the interface for executing external commands
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
}
