// Package inject inserts and removes the global header and footer blocks in
// Markdown bodies.
//
// Every inserted block is wrapped in a pair of marker comments. Strip removes
// exactly what Header and Footer add, so running Strip followed by the
// injectors over already processed content yields the same bytes again.
package inject
