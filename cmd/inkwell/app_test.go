package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inkwell"
	"github.com/iw2rmb/inkwell/editor"
	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/ext/lint"
	"github.com/iw2rmb/inkwell/internal/config"
)

func newTestApp(t *testing.T, path, text string, e config.Editor) app {
	t.Helper()
	a, err := newApp(path, text, editorProps(e, text, editorExtensions(e)), nil, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { a.editor.Close() })
	m, _ := a.Update(tea.WindowSizeMsg{Width: 40, Height: 6})
	return m.(app)
}

func plainEditor() config.Editor {
	e := config.Default().Editor
	e.BasicSetup = false
	e.LintDelay = 0
	return e
}

func key(s string) tea.KeyMsg {
	switch s {
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+q":
		return tea.KeyMsg{Type: tea.KeyCtrlQ}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collect runs cmd and every command it batches, returning their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// feed runs cmd and hands every message it produces back to a.
func feed(a app, cmd tea.Cmd) app {
	if cmd == nil {
		return a
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			a = feed(a, c)
		}
		return a
	}
	if msg == nil {
		return a
	}
	m, next := a.Update(msg)
	return feed(m.(app), next)
}

func update(a app, msg tea.Msg) app {
	m, cmd := a.Update(msg)
	return feed(m.(app), cmd)
}

func TestSaveWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	a := newTestApp(t, path, "", plainEditor())

	a = update(a, key("hi"))
	if !a.dirty {
		t.Fatalf("dirty: got false after typing")
	}
	if !strings.Contains(a.View(), "doc.txt +") {
		t.Fatalf("status: got %q", a.statusLine())
	}
	a = update(a, key("ctrl+s"))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "hi" {
		t.Fatalf("file: got %q, want %q", data, "hi")
	}
	if a.dirty || a.status != "saved" {
		t.Fatalf("after save: dirty %v, status %q", a.dirty, a.status)
	}
	if a.editor.Text() != "hi" {
		t.Fatalf("text after save: got %q", a.editor.Text())
	}
}

func TestSaveWithoutPath(t *testing.T) {
	a := newTestApp(t, "", "x", plainEditor())
	a = update(a, key("ctrl+s"))
	if a.status != "no file name" {
		t.Fatalf("status: got %q", a.status)
	}
	if !strings.Contains(a.statusLine(), "[scratch]") {
		t.Fatalf("status line: got %q", a.statusLine())
	}
}

func TestExternalChangeReplacesDocument(t *testing.T) {
	a := newTestApp(t, "doc.txt", "old", plainEditor())
	m, cmd := a.Update(fileChangedMsg{text: "new\ntext"})
	a = m.(app)
	var changes []editor.ChangeMsg
	for _, msg := range collect(cmd) {
		if ch, ok := msg.(editor.ChangeMsg); ok {
			changes = append(changes, ch)
		}
	}
	if got := a.editor.Text(); got != "new\ntext" {
		t.Fatalf("text: got %q", got)
	}
	if len(changes) != 1 || changes[0].Text != "new\ntext" {
		t.Fatalf("change messages: got %+v", changes)
	}
	if a.status != "reloaded" || a.saved != "new\ntext" {
		t.Fatalf("state: status %q, saved %q", a.status, a.saved)
	}

	// Our own write comes back as a change event with the same text.
	before := a.editor.Text()
	m, _ = a.Update(fileChangedMsg{text: "new\ntext"})
	a = m.(app)
	if a.editor.Text() != before {
		t.Fatalf("echo replaced the document")
	}
}

func TestQuitClosesEditor(t *testing.T) {
	a := newTestApp(t, "", "x", plainEditor())
	m, cmd := a.Update(key("ctrl+q"))
	if cmd == nil {
		t.Fatalf("quit: got nil command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("quit: got %T", cmd())
	}
	if m.(app).editor.Engine() != nil {
		t.Fatalf("editor still mounted after quit")
	}
}

func TestEditorPropsFromConfig(t *testing.T) {
	e := plainEditor()
	e.Theme = "dark"
	e.ReadOnly = true
	e.IndentWithTab = false
	e.Placeholder = "empty"
	p := editorProps(e, "doc", nil)
	if p.Theme.Name() != "dark" || !p.ReadOnly || *p.IndentWithTab || p.Placeholder != "empty" || p.Value != "doc" {
		t.Fatalf("props: got %+v", p)
	}
}

func TestReadOnlyIgnoresTyping(t *testing.T) {
	e := plainEditor()
	e.ReadOnly = true
	a := newTestApp(t, "", "fixed", e)
	a = update(a, key("x"))
	if got := a.editor.Text(); got != "fixed" {
		t.Fatalf("text: got %q", got)
	}
}

func TestTrailingWhitespace(t *testing.T) {
	s, err := engine.NewState(engine.StateConfig{Doc: "ok\nbad  \né\t"})
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	got, err := trailingWhitespace(context.Background(), s)
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	want := []lint.Diagnostic{
		{From: 6, To: 8, Severity: lint.Warning, Message: "trailing whitespace", Source: "inkwell"},
		{From: 10, To: 11, Severity: lint.Warning, Message: "trailing whitespace", Source: "inkwell"},
	}
	if len(got) != len(want) {
		t.Fatalf("diagnostics: got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("diagnostic %d: got %+v, want %+v", i, got[i], want[i])
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := trailingWhitespace(ctx, s); err == nil {
		t.Fatalf("cancelled: got nil error")
	}
}

func TestEditorExtensions(t *testing.T) {
	cases := []struct {
		name string
		edit func(*config.Editor)
		want int
	}{
		{name: "plain", edit: func(*config.Editor) {}, want: 1},
		{name: "words", edit: func(e *config.Editor) { e.Words = []string{"alpha"} }, want: 2},
		{name: "lint", edit: func(e *config.Editor) { e.LintDelay = time.Second }, want: 3},
	}
	for _, tc := range cases {
		e := plainEditor()
		tc.edit(&e)
		if got := len(editorExtensions(e)); got != tc.want {
			t.Fatalf("%s: got %d fragments, want %d", tc.name, got, tc.want)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{args: []string{"version", "--short"}, want: inkwell.Version() + "\n"},
		{args: []string{"version"}, want: "inkwell " + inkwell.VersionTag() + "\n"},
	}
	for _, tc := range cases {
		root := newRootCmd()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs(tc.args)
		if err := root.Execute(); err != nil {
			t.Fatalf("%v: %v", tc.args, err)
		}
		if !strings.HasPrefix(out.String(), tc.want) {
			t.Fatalf("%v: got %q, want prefix %q", tc.args, out.String(), tc.want)
		}
	}
}

func TestEditRejectsInvalidTheme(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"edit", "--theme=purple"})
	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "editor.theme") {
		t.Fatalf("err: got %v", err)
	}
}

func TestLoadAppliesLogLevelFlag(t *testing.T) {
	opts := &options{logLevel: "debug"}
	cfg, err := opts.load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("level: got %q", cfg.Log.Level)
	}
}
