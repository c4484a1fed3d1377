package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "partials directory missing").
			WithSeverity(SeverityFatal).
			WithContext("dir", ".provide/foundry/docs/_partials").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "partials directory missing" {
			t.Errorf("unexpected message %q", err.Message())
		}

		dir, exists := err.Context().GetString("dir")
		if !exists || dir != ".provide/foundry/docs/_partials" {
			t.Errorf("expected dir context, got %v", dir)
		}
	})

	t.Run("Error detection through wrapping", func(t *testing.T) {
		inner := ConfigError("bad config").Build()
		wrapped := fmt.Errorf("loading: %w", inner)

		classified, ok := AsClassified(wrapped)
		if !ok {
			t.Fatal("expected wrapped error to be classified")
		}
		if !classified.IsFatal() {
			t.Error("expected config error to be fatal")
		}
		if !HasCategory(wrapped, CategoryConfig) {
			t.Error("expected config category through the chain")
		}
		if GetCategory(errors.New("plain")) != CategoryInternal {
			t.Error("expected plain errors to report internal category")
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	t.Run("Fluent API", func(t *testing.T) {
		originalErr := errors.New("permission denied")
		err := WrapError(originalErr, CategoryFileSystem, "write document").
			Warning().
			WithContext("path", "docs/index.md").
			Build()

		if err.Severity() != SeverityWarning {
			t.Errorf("expected severity %s, got %s", SeverityWarning, err.Severity())
		}
		if !errors.Is(err, originalErr) {
			t.Error("expected error to wrap original error")
		}
		if got := err.Error(); got != "[filesystem:warning] write document: permission denied" {
			t.Errorf("unexpected Error() output %q", got)
		}
	})

	t.Run("Convenience constructors", func(t *testing.T) {
		tests := []struct {
			name     string
			builder  *ErrorBuilder
			category ErrorCategory
			severity ErrorSeverity
		}{
			{"ConfigError", ConfigError("test"), CategoryConfig, SeverityFatal},
			{"ValidationError", ValidationError("test"), CategoryValidation, SeverityFatal},
			{"NotFoundError", NotFoundError("test"), CategoryNotFound, SeverityWarning},
			{"FileSystemError", FileSystemError("test"), CategoryFileSystem, SeverityError},
			{"PartialError", PartialError("test"), CategoryPartial, SeverityWarning},
			{"RuntimeError", RuntimeError("test"), CategoryRuntime, SeverityFatal},
			{"InternalError", InternalError("test"), CategoryInternal, SeverityFatal},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.builder.Build()
				if err.Category() != tt.category {
					t.Errorf("expected category %s, got %s", tt.category, err.Category())
				}
				if err.Severity() != tt.severity {
					t.Errorf("expected severity %s, got %s", tt.severity, err.Severity())
				}
			})
		}
	})
}

func TestErrorContext(t *testing.T) {
	ctx1 := ErrorContext{}.Set("key1", "value1").Set("shared", "original")
	ctx2 := ErrorContext{}.Set("key2", "value2").Set("shared", "overridden")

	merged := ctx1.Merge(ctx2)

	if v, _ := merged.GetString("key1"); v != "value1" {
		t.Errorf("expected key1=value1, got %s", v)
	}
	if v, _ := merged.GetString("key2"); v != "value2" {
		t.Errorf("expected key2=value2, got %s", v)
	}
	if v, _ := merged.GetString("shared"); v != "overridden" {
		t.Errorf("expected shared=overridden, got %s", v)
	}
	if _, ok := merged.Get("missing"); ok {
		t.Error("expected missing key to be absent")
	}
}
