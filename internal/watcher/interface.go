package watcher

import "context"

// Watcher defines the interface for config file monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is a function that handles a change of the watched file
type EventHandler func(ctx context.Context, filePath string) error
