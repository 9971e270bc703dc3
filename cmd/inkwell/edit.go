package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/inkwell/internal/config"
)

func editCmd(opts *options) *cobra.Command {
	var (
		themeName       string
		placeholder     string
		readOnly        bool
		noIndentWithTab bool
	)

	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit a file in the terminal",
		Long: `Edit a file in the terminal.

Ctrl+S saves and Ctrl+Q quits. When another program writes the file,
the editor reloads it. A missing file is created on the first save.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("theme") {
				cfg.Editor.Theme = themeName
			}
			if flags.Changed("placeholder") {
				cfg.Editor.Placeholder = placeholder
			}
			if flags.Changed("read-only") {
				cfg.Editor.ReadOnly = readOnly
			}
			if flags.Changed("no-indent-with-tab") {
				cfg.Editor.IndentWithTab = !noIndentWithTab
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return runEdit(cfg, path)
		},
	}

	cmd.Flags().StringVarP(&themeName, "theme", "t", "", "theme: light or dark")
	cmd.Flags().StringVar(&placeholder, "placeholder", "", "text shown while the document is empty")
	cmd.Flags().BoolVarP(&readOnly, "read-only", "r", false, "open the document read-only")
	cmd.Flags().BoolVar(&noIndentWithTab, "no-indent-with-tab", false, "let tab move focus instead of indenting")
	return cmd
}

func readDocument(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func runEdit(cfg config.Config, path string) error {
	log, closeLog, err := newLogger(cfg.Log, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	text, err := readDocument(path)
	if err != nil {
		return err
	}
	var w *watcher
	if path != "" {
		if w, err = newWatcher(path); err != nil {
			log.Warn("watch disabled", "path", path, "error", err)
			w = nil
		} else {
			defer w.Close()
		}
	}

	props := editorProps(cfg.Editor, text, editorExtensions(cfg.Editor))
	a, err := newApp(path, text, props, w, log)
	if err != nil {
		return err
	}
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())
	_, err = p.Run()
	return err
}
