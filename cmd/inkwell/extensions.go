package main

import (
	"context"
	"strings"

	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/ext/autocomplete"
	"github.com/iw2rmb/inkwell/ext/lint"
	"github.com/iw2rmb/inkwell/ext/setup"
	"github.com/iw2rmb/inkwell/internal/config"
)

// editorExtensions builds the fragments for e. Build them once and pass the
// same list on every render.
func editorExtensions(e config.Editor) []engine.Extension {
	var exts []engine.Extension
	if e.BasicSetup {
		exts = append(exts, setup.Basic()...)
	}
	exts = append(exts, engine.TabSize.Of(e.TabSize))
	if len(e.Words) > 0 {
		exts = append(exts, autocomplete.Sources.Of(autocomplete.WordSource(e.Words...)))
	}
	if e.LintDelay > 0 {
		exts = append(exts, lint.Linter(trailingWhitespace, e.LintDelay), lint.LintGutter())
	}
	return exts
}

// trailingWhitespace warns about spaces and tabs at the end of lines.
func trailingWhitespace(ctx context.Context, s *engine.State) ([]lint.Diagnostic, error) {
	var out []lint.Diagnostic
	for n := 1; n <= s.Lines(); n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line, ok := s.Line(n)
		if !ok {
			break
		}
		trimmed := strings.TrimRight(line.Text, " \t")
		if len(trimmed) == len(line.Text) {
			continue
		}
		out = append(out, lint.Diagnostic{
			From:     line.From + len([]rune(trimmed)),
			To:       line.To,
			Severity: lint.Warning,
			Message:  "trailing whitespace",
			Source:   "inkwell",
		})
	}
	return out, nil
}
