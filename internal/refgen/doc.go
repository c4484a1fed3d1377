// Package refgen generates API reference stub pages for a Python source tree.
//
// Every importable module gets one Markdown page holding a single
// `::: dotted.module.path` directive for mkdocstrings, and the whole set is
// listed in a literate-nav SUMMARY.md (and optionally a nav.yml fragment).
package refgen
