// Package rewrite runs the injection pipeline over a set of Markdown files on
// disk and reports which ones changed.
package rewrite
