// Package preview serves editors over HTTP.
//
// A snapshot request renders a document once and returns the terminal text.
// A websocket connection owns a live editor: client messages are applied on
// the session's loop and every change is pushed back as a frame holding the
// rendered view and its statistics.
package preview
