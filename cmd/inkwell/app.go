package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/inkwell/binding"
	"github.com/iw2rmb/inkwell/editor"
	"github.com/iw2rmb/inkwell/engine"
	"github.com/iw2rmb/inkwell/internal/config"
)

var statusStyle = lipgloss.NewStyle().Reverse(true)

// app edits one file. The file contents are the editor's controlled value:
// a write from another program replaces the document.
type app struct {
	path   string
	editor editor.Model
	props  binding.Props
	watch  *watcher
	log    *slog.Logger

	// saved is the text last read from or written to the file.
	saved  string
	dirty  bool
	status string
	width  int
}

func editorProps(e config.Editor, text string, exts []engine.Extension) binding.Props {
	return binding.Props{
		Value:         text,
		Extensions:    exts,
		AutoFocus:     true,
		Theme:         e.ThemeOption(),
		Height:        e.Height,
		MaxHeight:     e.MaxHeight,
		ReadOnly:      e.ReadOnly,
		Placeholder:   e.Placeholder,
		IndentWithTab: binding.Bool(e.IndentWithTab),
	}
}

func newApp(path, text string, props binding.Props, w *watcher, log *slog.Logger) (app, error) {
	ed, err := editor.New(editor.Config{ContainerID: "inkwell", Logger: log}, props)
	if err != nil {
		return app{}, err
	}
	return app{path: path, editor: ed, props: props, watch: w, log: log, saved: text}, nil
}

func (a app) Init() tea.Cmd {
	return tea.Batch(a.editor.Init(), a.watchNext())
}

func (a app) watchNext() tea.Cmd {
	if a.watch == nil {
		return nil
	}
	return a.watch.next()
}

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.editor = a.editor.SetSize(msg.Width, max(msg.Height-1, 0))
		return a, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+q":
			a.editor = a.editor.Close()
			return a, tea.Quit
		case "ctrl+s":
			return a.save()
		}
	case editor.ChangeMsg:
		a.dirty = msg.Text != a.saved
		return a, nil
	case fileChangedMsg:
		if msg.text != a.saved {
			a.saved = msg.text
			a.props.Value = msg.text
			a.editor, cmd = a.editor.SetProps(a.props)
			a.dirty = false
			a.status = "reloaded"
			a.log.Info("file changed on disk", "path", a.path)
		}
		return a, tea.Batch(cmd, a.watchNext())
	case watchErrMsg:
		a.log.Warn("watch", "path", a.path, "error", msg.err)
		return a, a.watchNext()
	}
	a.editor, cmd = a.editor.Update(msg)
	return a, cmd
}

// save writes the document and makes it the new controlled value.
func (a app) save() (tea.Model, tea.Cmd) {
	if a.path == "" {
		a.status = "no file name"
		return a, nil
	}
	text := a.editor.Text()
	if err := os.WriteFile(a.path, []byte(text), 0o644); err != nil {
		a.log.Error("save", "path", a.path, "error", err)
		a.status = "save failed: " + err.Error()
		return a, nil
	}
	a.saved = text
	a.dirty = false
	a.status = "saved"
	a.props.Value = text
	var cmd tea.Cmd
	a.editor, cmd = a.editor.SetProps(a.props)
	return a, cmd
}

func (a app) statusLine() string {
	name := "[scratch]"
	if a.path != "" {
		name = filepath.Base(a.path)
	}
	if a.dirty {
		name += " +"
	}
	st := a.editor.Statistics()
	line := fmt.Sprintf(" %s  line %d of %d", name, st.Line.Number, st.LineCount)
	if a.status != "" {
		line += "  " + a.status
	}
	if err := a.editor.Err(); err != nil {
		line += "  " + err.Error()
	}
	return statusStyle.Width(max(a.width, 0)).Render(line)
}

func (a app) View() string {
	return a.editor.View() + "\n" + a.statusLine()
}
