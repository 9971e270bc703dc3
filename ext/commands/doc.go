// Package commands provides the standard editing commands and keymaps:
// cursor motion, deletion, newline and indentation, undo history, and
// bracket closing.
package commands
