package metrics

import "time"

// DocumentResult enumerates per-document outcomes of a rewrite run.
type DocumentResult string

const (
	DocumentUpdated     DocumentResult = "updated"
	DocumentWouldUpdate DocumentResult = "would_update"
	DocumentUnchanged   DocumentResult = "unchanged"
	DocumentReadError   DocumentResult = "read_error"
	DocumentWriteError  DocumentResult = "write_error"
)

// Recorder defines observability hooks for docfoundry runs. All methods must
// be safe to call on the NoopRecorder.
type Recorder interface {
	IncDocument(docSet string, result DocumentResult)
	IncPartialMiss(name string)
	ObserveRunDuration(docSet string, d time.Duration)
	AddGeneratedPages(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncDocument(string, DocumentResult)       {}
func (NoopRecorder) IncPartialMiss(string)                    {}
func (NoopRecorder) ObserveRunDuration(string, time.Duration) {}
func (NoopRecorder) AddGeneratedPages(int)                    {}
