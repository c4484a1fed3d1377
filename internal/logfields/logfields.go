package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID    = "run_id"
	KeyPath     = "path"
	KeyFile     = "file"
	KeyDir      = "dir"
	KeyPattern  = "pattern"
	KeyPartial  = "partial"
	KeyChanges  = "changes"
	KeyCount    = "count"
	KeySet      = "doc_set"
	KeyModule   = "module"
	KeyTitle    = "title"
	KeyURL      = "url"
	KeyDuration = "duration_ms"
	KeyError    = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Dir(d string) slog.Attr          { return slog.String(KeyDir, d) }
func Pattern(p string) slog.Attr      { return slog.String(KeyPattern, p) }
func Partial(name string) slog.Attr   { return slog.String(KeyPartial, name) }
func Changes(c []string) slog.Attr    { return slog.Any(KeyChanges, c) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DocSet(name string) slog.Attr    { return slog.String(KeySet, name) }
func Module(dotted string) slog.Attr  { return slog.String(KeyModule, dotted) }
func Title(t string) slog.Attr        { return slog.String(KeyTitle, t) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDuration, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
