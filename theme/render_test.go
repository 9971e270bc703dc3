package theme

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/iw2rmb/inkwell/buffer"
	"github.com/iw2rmb/inkwell/engine"
)

var keywordAtStart = engine.Highlighters.Of(func(_ *engine.State, line buffer.Line) []engine.Span {
	if strings.HasPrefix(line.Text, "return") {
		return []engine.Span{{From: 0, To: 6, Tag: "keyword"}}
	}
	return nil
})

func renderRows(t *testing.T, opt Option, doc string) []string {
	t.Helper()
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	r.SetHasDarkBackground(true)

	s, err := engine.NewState(engine.StateConfig{
		Doc:        doc,
		Extensions: []engine.Extension{opt.Extension(), keywordAtStart, engine.HighlightActiveLine()},
	})
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	c := engine.NewContainer("test")
	c.Resize(20, 0)
	v, err := engine.NewView(engine.ViewConfig{State: s, Parent: c, Renderer: r})
	if err != nil {
		t.Fatalf("new view: %v", err)
	}
	t.Cleanup(v.Destroy)
	return strings.Split(v.Container().Content(), "\n")
}

func TestGithubDarkStylesReachRenderedRows(t *testing.T) {
	rows := renderRows(t, Dark, "return x\ny")
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(rows))
	}
	const (
		keyword    = "38;2;255;123;114"
		activeLine = "48;2;54;51;66"
	)
	if !strings.Contains(rows[0], keyword) {
		t.Fatalf("keyword color missing from %q", rows[0])
	}
	if !strings.Contains(rows[0], activeLine) {
		t.Fatalf("active line background missing from %q", rows[0])
	}
	if strings.Contains(rows[1], keyword) || strings.Contains(rows[1], activeLine) {
		t.Fatalf("second row styled as the first: %q", rows[1])
	}
}

func TestGithubLightKeywordColor(t *testing.T) {
	rows := renderRows(t, Light, "return")
	if !strings.Contains(rows[0], "38;2;215;58;73") {
		t.Fatalf("keyword color missing from %q", rows[0])
	}
	if strings.Contains(rows[0], "38;2;255;123;114") {
		t.Fatalf("dark keyword color in light theme: %q", rows[0])
	}
}
