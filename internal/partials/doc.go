// Package partials resolves shared Markdown fragments ("partials") and
// expands `{{ global('name') }}` placeholders with their content.
//
// Partials are looked up in a primary directory (project overrides,
// docs/_partials) and then in a fallback directory (package defaults,
// .provide/foundry/docs/_partials). A missing partial is a normal outcome.
package partials
