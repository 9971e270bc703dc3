// Package setup bundles the extensions of a full-featured code editor.
package setup

import (
	"slices"
	"sync"

	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/ext/autocomplete"
	"github.com/iw2rmb/inkwell/ext/commands"
	"github.com/iw2rmb/inkwell/ext/fold"
	"github.com/iw2rmb/inkwell/ext/gutter"
	"github.com/iw2rmb/inkwell/ext/lang/javascript"
	"github.com/iw2rmb/inkwell/ext/lint"
	"github.com/iw2rmb/inkwell/ext/search"
	"github.com/iw2rmb/inkwell/ext/statusbar"
)

// Keymap joins the keymaps of Basic in precedence order: bracket closing,
// default editing, search, history, folding, completion, then lint.
func Keymap() []engine.KeyBinding {
	return slices.Concat(
		commands.CloseBracketsKeymap,
		commands.DefaultKeymap,
		search.SearchKeymap,
		commands.HistoryKeymap,
		fold.FoldKeymap,
		autocomplete.CompletionKeymap,
		lint.LintKeymap,
	)
}

var basic = sync.OnceValue(func() []engine.Extension {
	return []engine.Extension{
		gutter.BreakpointGutter(),
		gutter.LineNumbers(),
		gutter.HighlightActiveLineGutter(),
		commands.History(),
		fold.FoldGutter(fold.Options{OpenText: "⯆", ClosedText: "⯈"}),
		engine.AllowMultipleSelections.Of(true),
		commands.CloseBrackets(),
		autocomplete.Autocompletion(autocomplete.Config{ActivateOnTyping: true}),
		engine.HighlightActiveLine(),
		search.HighlightSelectionMatches(),
		search.Search(),
		lint.Lint(),
		engine.Keymap(Keymap()...),
		javascript.JavaScript(javascript.Dialect{JSX: true, TypeScript: true}),
		gutter.EmptyLineGutter,
		statusbar.HelpPanel(),
		statusbar.WordCounter(),
	}
})

// Basic returns the fragments of a full-featured JavaScript editor. Every
// call returns the same fragment values, so passing a fresh result on each
// render does not reconfigure the view.
func Basic() []engine.Extension {
	return slices.Clone(basic())
}
