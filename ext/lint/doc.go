// Package lint shows diagnostics: underlined ranges, a gutter, and a panel
// listing them.
package lint
