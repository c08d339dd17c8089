package vmwriter

import (
	"bytes"
	"sort"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// record is one line of the JSON import format. Top-level key order is
// metric, values, timestamps.
type record struct {
	Metric     metricMeta `json:"metric"`
	Values     []float64  `json:"values"`
	Timestamps []int64    `json:"timestamps"`
}

// metricMeta flattens the metric name and its labels into a single JSON
// object: __name__ first, then label keys in lexicographic order.
type metricMeta struct {
	name   string
	labels map[string]string
}

func (m metricMeta) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"__name__":`)

	name, err := json.Marshal(m.name)
	if err != nil {
		return nil, err
	}
	buf.Write(name)

	keys := make([]string, 0, len(m.labels))
	for k := range m.labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(m.labels[k])
		if err != nil {
			return nil, err
		}

		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// appendRecord serializes one record and appends it to buf, terminated by
// CRLF. The import endpoint treats CRLF and LF alike; CRLF is emitted
// unconditionally so payloads are identical across platforms.
func appendRecord(buf *bytes.Buffer, name string, labels map[string]string, values []float64, timestamps []time.Time) error {
	if values == nil {
		values = []float64{}
	}

	ts := make([]int64, len(timestamps))
	for i, t := range timestamps {
		ts[i] = t.UnixMilli()
	}

	line, err := json.Marshal(record{
		Metric:     metricMeta{name: name, labels: labels},
		Values:     values,
		Timestamps: ts,
	})
	if err != nil {
		return err
	}

	buf.Write(line)
	buf.WriteString("\r\n")

	return nil
}
