// Package metrics records run statistics for docfoundry commands.
//
// Components receive a Recorder and call it unconditionally. NoopRecorder is
// the default, so nothing needs a nil check when metrics are disabled:
//
//	type Driver struct {
//	    recorder metrics.Recorder
//	}
//
//	d := &Driver{recorder: metrics.NoopRecorder{}}
//
// When a command is given --metrics-file, it swaps in a PrometheusRecorder
// backed by a private registry and flushes it with WriteTextfile at the end
// of the run. The file uses the node-exporter textfile collector format.
package metrics
