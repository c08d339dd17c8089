/*
Package vmwriter provides a buffering writer for VictoriaMetrics' JSON line
import endpoint (/api/v1/import).

Samples are accumulated in memory with Add and shipped in a single HTTP POST
with Send. Each Add produces one newline-delimited JSON record:

	{"metric":{"__name__":"up","instance":"localhost:9100","job":"node_exporter"},"values":[0,0,0],"timestamps":[1549891472010,1549891487724,1549891503438]}

Label keys are serialized in lexicographic order after __name__, so payloads
are deterministic for a given input.

Example

	writer, err := vmwriter.NewWriter("localhost:8428")
	if err != nil {
		return err
	}

	err = writer.Add(
		"up",
		map[string]string{"job": "node_exporter", "instance": "localhost:9100"},
		[]float64{0, 0, 0},
		[]time.Time{
			time.UnixMilli(1549891472010),
			time.UnixMilli(1549891487724),
			time.UnixMilli(1549891503438),
		},
	)
	if err != nil {
		return err
	}

	return writer.Send(ctx)

Flush policy is left to the caller; Flusher is an optional runner for callers
that want periodic sends.
*/
package vmwriter
