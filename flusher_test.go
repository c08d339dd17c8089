package vmwriter

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/castai/logging"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logging.Logger {
	handler := logging.NewTextHandler(logging.TextHandlerConfig{
		Level: slog.LevelDebug,
	})
	return logging.New(handler)
}

func TestFlusher(t *testing.T) {
	logger := newTestLogger()

	t.Run("flushes on interval", func(t *testing.T) {
		endpoint, srv := newImportEndpoint(http.StatusOK)
		defer srv.Close()

		w, err := NewWriter(hostOf(srv))
		require.NoError(t, err)
		require.NoError(t, w.Add("up", nil, []float64{1}, []time.Time{time.UnixMilli(1000)}))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		flusher := NewFlusher(w, 10*time.Millisecond, logger)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.ErrorIs(t, flusher.Start(ctx), context.Canceled)
		}()

		require.Eventually(t, func() bool {
			return endpoint.requestCount() > 0
		}, time.Second, 5*time.Millisecond)

		cancel()
		wg.Wait()

		require.Equal(t,
			`{"metric":{"__name__":"up"},"values":[1],"timestamps":[1000]}`+"\r\n",
			endpoint.body(0),
		)
	})

	t.Run("drains remaining records on cancel", func(t *testing.T) {
		endpoint, srv := newImportEndpoint(http.StatusOK)
		defer srv.Close()

		w, err := NewWriter(hostOf(srv))
		require.NoError(t, err)
		require.NoError(t, w.Add("up", nil, []float64{1}, []time.Time{time.UnixMilli(1000)}))

		// Interval far beyond the test's lifetime, so only the drain can send.
		flusher := NewFlusher(w, time.Hour, logger)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.ErrorIs(t, flusher.Start(ctx), context.Canceled)
		require.Equal(t, 1, endpoint.requestCount())
		require.Zero(t, w.Buffered())
	})

	t.Run("keeps running after a failed flush", func(t *testing.T) {
		endpoint, srv := newImportEndpoint(http.StatusInternalServerError)
		defer srv.Close()

		w, err := NewWriter(hostOf(srv))
		require.NoError(t, err)
		require.NoError(t, w.Add("up", nil, []float64{1}, []time.Time{time.UnixMilli(1000)}))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		flusher := NewFlusher(w, 10*time.Millisecond, logger)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.ErrorIs(t, flusher.Start(ctx), context.Canceled)
		}()

		require.Eventually(t, func() bool {
			return endpoint.requestCount() > 0
		}, time.Second, 5*time.Millisecond)

		// The loop survives the error; a later tick delivers fresh records.
		endpoint.setStatus(http.StatusOK)
		require.NoError(t, w.Add("up", nil, []float64{2}, []time.Time{time.UnixMilli(2000)}))

		require.Eventually(t, func() bool {
			return w.Buffered() == 0
		}, time.Second, 5*time.Millisecond)

		cancel()
		wg.Wait()
	})

	t.Run("defaults the interval when non-positive", func(t *testing.T) {
		w, err := NewWriter("localhost:8428")
		require.NoError(t, err)

		flusher := NewFlusher(w, 0, logger)
		require.Equal(t, defaultFlushInterval, flusher.interval)
	})
}
