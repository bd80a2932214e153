package dispatcher

import (
	"github.com/nguyentantai21042004/notime/internal/logger"
	"github.com/nguyentantai21042004/notime/internal/metrics"
)

type implDispatcher struct {
	classifier Classifier
	video      Pipeline
	web        Pipeline
	logger     logger.Logger
	metrics    *metrics.Metrics
}

// New creates a new Dispatcher. m may be nil.
func New(c Classifier, video, web Pipeline, log logger.Logger, m *metrics.Metrics) Dispatcher {
	return &implDispatcher{
		classifier: c,
		video:      video,
		web:        web,
		logger:     log,
		metrics:    m,
	}
}
