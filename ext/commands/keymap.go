package commands

import "github.com/iw2rmb/inkwell/engine"

// DefaultKeymap binds motion, selection, deletion, and newline keys.
var DefaultKeymap = []engine.KeyBinding{
	engine.Bind(CursorCharLeft, "left"),
	engine.Bind(CursorCharRight, "right"),
	engine.Bind(CursorLineUp, "up"),
	engine.Bind(CursorLineDown, "down"),
	engine.Bind(CursorWordLeft, "ctrl+left", "alt+left", "alt+b"),
	engine.Bind(CursorWordRight, "ctrl+right", "alt+right", "alt+f"),
	engine.Bind(CursorLineStart, "home"),
	engine.Bind(CursorLineEnd, "end", "ctrl+e"),
	engine.Bind(CursorDocStart, "ctrl+home"),
	engine.Bind(CursorDocEnd, "ctrl+end"),
	engine.Bind(CursorPageUp, "pgup"),
	engine.Bind(CursorPageDown, "pgdown"),
	engine.Bind(SelectCharLeft, "shift+left"),
	engine.Bind(SelectCharRight, "shift+right"),
	engine.Bind(SelectLineUp, "shift+up"),
	engine.Bind(SelectLineDown, "shift+down"),
	engine.Bind(SelectWordLeft, "ctrl+shift+left", "alt+shift+left"),
	engine.Bind(SelectWordRight, "ctrl+shift+right", "alt+shift+right"),
	engine.Bind(SelectLineStart, "shift+home"),
	engine.Bind(SelectLineEnd, "shift+end"),
	engine.Bind(SelectDocStart, "ctrl+shift+home"),
	engine.Bind(SelectDocEnd, "ctrl+shift+end"),
	engine.Bind(SelectPageUp, "shift+pgup"),
	engine.Bind(SelectPageDown, "shift+pgdown"),
	engine.BindHelp(SelectAll, "ctrl+a", "select all", "ctrl+a"),
	engine.Bind(SimplifySelection, "esc"),
	engine.Bind(DeleteCharBackward, "backspace", "ctrl+h"),
	engine.Bind(DeleteCharForward, "delete"),
	engine.Bind(DeleteWordBackward, "ctrl+w", "alt+backspace"),
	engine.Bind(DeleteWordForward, "alt+delete", "alt+d"),
	engine.Bind(DeleteToLineStart, "ctrl+u"),
	engine.Bind(DeleteToLineEnd, "ctrl+k"),
	engine.Bind(InsertNewlineAndIndent, "enter"),
}

// HistoryKeymap binds undo and redo.
var HistoryKeymap = []engine.KeyBinding{
	engine.BindHelp(Undo, "ctrl+z", "undo", "ctrl+z"),
	engine.BindHelp(Redo, "ctrl+y", "redo", "ctrl+y"),
}

// IndentWithTab binds tab and shift+tab to indentation.
var IndentWithTab = []engine.KeyBinding{
	engine.BindHelp(IndentMore, "tab", "indent", "tab"),
	engine.BindHelp(IndentLess, "shift+tab", "dedent", "shift+tab"),
}
