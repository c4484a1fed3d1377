// Package errors provides the classified error primitives used across docfoundry.
//
// A ClassifiedError carries a category (what kind of failure), a severity
// (whether the current run can continue) and a small context map. Commands
// return plain Go errors; the CLI adapter inspects the chain for a
// ClassifiedError to pick the exit code and the message shown to the user.
//
// Example usage:
//
//	err := errors.WrapError(ioErr, errors.CategoryFileSystem, "read document").
//		Warning().
//		WithContext("path", path).
//		Build()
package errors
