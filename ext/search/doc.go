// Package search finds text in the document and highlights occurrences of
// the selected text.
package search
