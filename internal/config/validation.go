package config

import (
	"time"

	"git.home.luguber.info/inful/docfoundry/internal/foundation/errors"
	"git.home.luguber.info/inful/docfoundry/internal/inject"
	"github.com/bmatcuk/doublestar/v4"
)

// Validate checks enum values and numeric ranges.
func Validate(cfg *Config) error {
	if _, err := inject.SchemeNamed(cfg.Inject.Scheme); err != nil {
		return invalid("inject.scheme", err)
	}
	if _, err := inject.ParseMissingHeading(cfg.Inject.OnMissingHeading); err != nil {
		return invalid("inject.on_missing_heading", err)
	}
	if _, err := inject.ParseMissingHeading(cfg.Render.OnMissingHeading); err != nil {
		return invalid("render.on_missing_heading", err)
	}
	format, err := ParseNavFormat(string(cfg.Reference.NavFormat))
	if err != nil {
		return invalid("reference.nav_format", err)
	}
	cfg.Reference.NavFormat = format

	for _, set := range []DocSet{cfg.Inject.Guides, cfg.Inject.Components} {
		if !doublestar.ValidatePattern(set.Pattern) {
			return errors.ValidationError("invalid document pattern").
				WithContext("field", "inject."+set.Name+".pattern").
				WithContext("value", set.Pattern).
				Build()
		}
	}
	if cfg.Partials.CacheSize < 0 {
		return errors.ValidationError("partials.cache_size must not be negative").
			WithContext("field", "partials.cache_size").
			Build()
	}
	if d, err := time.ParseDuration(cfg.Watch.Debounce); err != nil || d <= 0 {
		return errors.ValidationError("watch.debounce must be a positive duration").
			WithContext("field", "watch.debounce").
			WithContext("value", cfg.Watch.Debounce).
			Build()
	}
	return nil
}

func invalid(field string, err error) error {
	return errors.WrapError(err, errors.CategoryValidation, "invalid configuration value").
		WithContext("field", field).
		WithContext("hint", err.Error()).
		Fatal().
		Build()
}
