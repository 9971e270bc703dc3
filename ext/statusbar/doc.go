// Package statusbar adds informational panels: a help panel listing the
// configured key bindings, toggled with F1, and a word counter.
package statusbar
