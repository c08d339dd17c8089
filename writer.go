package vmwriter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

const importPath = "/api/v1/import"

// Writer accumulates metric samples in memory and flushes them to a
// VictoriaMetrics JSON line import endpoint in a single POST per Send.
//
// The buffer is guarded by a mutex, so Add and Send may be called from
// separate goroutines (e.g. when paired with a Flusher). The Writer itself
// never schedules sends, retries, or logs; errors are returned to the caller.
type Writer struct {
	url      string
	client   *http.Client
	compress bool

	mu  sync.Mutex
	buf bytes.Buffer
}

// NewWriter creates a Writer targeting http://{host}/api/v1/import.
//
// host is a host:port pair without scheme. Its format is not validated; a
// malformed host surfaces later as a RequestError from Send.
func NewWriter(host string, opts ...Option) (*Writer, error) {
	if host == "" {
		return nil, errors.New("host is required")
	}

	w := &Writer{
		url:    fmt.Sprintf("http://%s%s", host, importPath),
		client: &http.Client{},
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Add serializes one metric record and appends it to the internal buffer,
// terminated by CRLF. Records accumulate in call order until Send flushes
// them.
//
// values and timestamps must have equal length; a mismatch is rejected with
// LengthMismatchError and leaves the buffer untouched. Timestamps are encoded
// as milliseconds since the Unix epoch.
func (w *Writer) Add(name string, labels map[string]string, values []float64, timestamps []time.Time) error {
	if len(values) != len(timestamps) {
		return &LengthMismatchError{Values: len(values), Timestamps: len(timestamps)}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	return appendRecord(&w.buf, name, labels, values, timestamps)
}

// Buffered returns the number of payload bytes accumulated since the last
// Send. Callers implementing their own flush policy can poll it to decide
// when to flush.
func (w *Writer) Buffered() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.buf.Len()
}

// Send flushes all buffered records in one HTTP POST. An empty buffer is a
// no-op: no request is issued and Send returns nil.
//
// The buffer is taken before the request is made, so a failed send loses the
// payload; the Writer stays usable for subsequent Add and Send calls.
// Failures are reported as RequestError (transport, including context
// cancellation) or StatusError (non-2xx response).
func (w *Writer) Send(ctx context.Context) error {
	payload := w.take()
	if len(payload) == 0 {
		return nil
	}

	if w.compress {
		var err error
		payload, err = gzipPayload(payload)
		if err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return &RequestError{Err: err}
	}
	if w.compress {
		req.Header.Set("Content-Encoding", "gzip")
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return &RequestError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode}
	}

	return nil
}

// take swaps the buffer contents out and resets it, so records added while a
// send is in flight land in the next payload.
func (w *Writer) take() []byte {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() == 0 {
		return nil
	}

	payload := make([]byte, w.buf.Len())
	copy(payload, w.buf.Bytes())
	w.buf.Reset()

	return payload
}
