// Package editor provides a Bubble Tea component that hosts an engine view.
//
// The Model keeps one view mounted through a binding.Core, re-rendering it
// declaratively whenever the host passes new Props. Keys, pasted text and
// mouse input are routed into the view; deferred extension work (completion
// requests, debounced linting) runs as Bubble Tea commands and is applied
// back on the Update loop.
package editor
