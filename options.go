package vmwriter

import "net/http"

type Option func(*Writer)

// WithHTTPClient replaces the writer's internal HTTP client, e.g. to set
// timeouts or a custom transport.
func WithHTTPClient(client *http.Client) Option {
	return func(w *Writer) {
		w.client = client
	}
}

// WithCompression gzip-compresses request bodies and sets the
// Content-Encoding header accordingly. Payloads are sent uncompressed unless
// this option is given.
func WithCompression() Option {
	return func(w *Writer) {
		w.compress = true
	}
}
