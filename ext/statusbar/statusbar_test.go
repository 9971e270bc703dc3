package statusbar

import (
	"strings"
	"testing"

	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/ext/commands"
)

func newView(t *testing.T, doc string, exts ...engine.Extension) *engine.View {
	t.Helper()
	s, err := engine.NewState(engine.StateConfig{Doc: doc, Extensions: exts})
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	c := engine.NewContainer("test")
	c.Resize(60, 0)
	v, err := engine.NewView(engine.ViewConfig{State: s, Parent: c})
	if err != nil {
		t.Fatalf("new view: %v", err)
	}
	return v
}

func TestHelpPanelTogglesWithF1(t *testing.T) {
	v := newView(t, "x", HelpPanel(), engine.Keymap(commands.HistoryKeymap...))
	if strings.Contains(v.Container().Content(), "Toggle") {
		t.Fatalf("help shown before F1")
	}
	if !v.HandleKey("f1") {
		t.Fatalf("f1: not handled")
	}
	content := v.Container().Content()
	rows := strings.Split(content, "\n")
	if !strings.Contains(rows[0], "F1: Toggle the help panel") {
		t.Fatalf("first row: got %q", rows[0])
	}
	if !strings.Contains(content, "ctrl+z undo") {
		t.Fatalf("short help missing:\n%s", content)
	}
	if rows[len(rows)-1] != "x" {
		t.Fatalf("content should follow the panel, got %q", rows[len(rows)-1])
	}
	v.HandleKey("f1")
	if strings.Contains(v.Container().Content(), "Toggle") {
		t.Fatalf("help shown after second F1")
	}
}

func TestWordCounterRecountsOnDocChange(t *testing.T) {
	v := newView(t, "hello big world", WordCounter())
	rows := strings.Split(v.Container().Content(), "\n")
	if got := rows[len(rows)-1]; got != "Word count: 3" {
		t.Fatalf("bottom row: got %q", got)
	}
	if err := v.Dispatch(engine.TransactionSpec{Changes: []engine.Change{{From: 15, To: 15, Insert: " again_2"}}}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	rows = strings.Split(v.Container().Content(), "\n")
	if got := rows[len(rows)-1]; got != "Word count: 4" {
		t.Fatalf("bottom row after edit: got %q", got)
	}
}

func TestWordCounterIgnoresSelectionChanges(t *testing.T) {
	v := newView(t, "one two")
	p := &wordCountPanel{text: "seed"}
	p.Update(engine.Update{State: v.State(), SelectionSet: true})
	if p.text != "seed" {
		t.Fatalf("selection update recounted: got %q", p.text)
	}
	p.Update(engine.Update{State: v.State(), DocChanged: true})
	if p.text != "Word count: 2" {
		t.Fatalf("doc update: got %q", p.text)
	}
}
