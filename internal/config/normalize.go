package config

import (
	"git.home.luguber.info/inful/docfoundry/internal/foundation/normalization"
)

// NavFormat selects which navigation manifests the reference generator writes.
type NavFormat string

const (
	NavFormatLiterate NavFormat = "literate"
	NavFormatYAML     NavFormat = "yaml"
	NavFormatBoth     NavFormat = "both"
)

var navFormatNormalizer = normalization.NewNormalizer("nav format", map[string]NavFormat{
	"literate": NavFormatLiterate,
	"yaml":     NavFormatYAML,
	"both":     NavFormatBoth,
}, NavFormatLiterate)

// ParseNavFormat normalizes a nav format name. Empty input is literate.
func ParseNavFormat(raw string) (NavFormat, error) {
	return navFormatNormalizer.NormalizeWithError(raw)
}

// WantsYAML reports whether nav.yml should be written.
func (f NavFormat) WantsYAML() bool { return f == NavFormatYAML || f == NavFormatBoth }

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelNormalizer = normalization.NewNormalizer("log level", map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
}, LogLevelInfo)

// NormalizeLogLevel maps raw to a level, defaulting to info.
func NormalizeLogLevel(raw string) LogLevel {
	return logLevelNormalizer.Normalize(raw)
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormatNormalizer = normalization.NewNormalizer("log format", map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

// NormalizeLogFormat maps raw to a format, defaulting to text.
func NormalizeLogFormat(raw string) LogFormat {
	return logFormatNormalizer.Normalize(raw)
}
