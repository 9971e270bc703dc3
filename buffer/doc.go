// Package buffer implements the rune-accurate document model behind the
// editor engine.
//
// Offsets count runes from the start of the document, with each line break
// counting as one rune. Positions are 0-based (Row, Col) in runes.
// Ranges are half-open: [Start, End).
package buffer
