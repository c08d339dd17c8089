package vmwriter

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/gzip"
)

func gzipPayload(payload []byte) ([]byte, error) {
	var buf bytes.Buffer

	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(payload); err != nil {
		return nil, fmt.Errorf("failed to compress payload: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish compression: %w", err)
	}

	return buf.Bytes(), nil
}
