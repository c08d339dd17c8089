package vmwriter

import (
	"context"
	"time"

	"github.com/castai/logging"
)

const (
	defaultFlushInterval = 200 * time.Millisecond
	drainTimeout         = 10 * time.Second
)

// Flusher periodically flushes a Writer. It is an optional runner for callers
// that do not want to own a flush loop; the Writer on its own never schedules
// sends.
type Flusher struct {
	writer   *Writer
	interval time.Duration
	logger   *logging.Logger
}

// NewFlusher creates a Flusher sending the writer's buffer every interval.
// A non-positive interval falls back to 200ms.
func NewFlusher(writer *Writer, interval time.Duration, logger *logging.Logger) *Flusher {
	if interval <= 0 {
		interval = defaultFlushInterval
	}

	return &Flusher{
		writer:   writer,
		interval: interval,
		logger:   logger,
	}
}

// Start flushes the writer every interval until ctx is canceled. Send errors
// are logged and the loop continues on the next tick; a failed payload is not
// retried. On cancellation the remaining buffer is drained with a fresh
// timeout context before Start returns ctx.Err().
func (f *Flusher) Start(ctx context.Context) error {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Try to send any remaining records before returning.
			ctxTimeout, cancel := context.WithTimeout(context.Background(), drainTimeout)
			if err := f.writer.Send(ctxTimeout); err != nil {
				f.logger.Errorf("failed to drain metrics: %v", err)
			}
			cancel()

			return ctx.Err()
		case <-ticker.C:
			if err := f.writer.Send(ctx); err != nil {
				f.logger.Errorf("failed to flush metrics: %v", err)
			}
		}
	}
}
