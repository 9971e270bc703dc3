package main

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// fileChangedMsg carries the contents of the edited file after something
// else wrote it.
type fileChangedMsg struct {
	text string
}

type watchErrMsg struct {
	err error
}

// defaultQuiet is how long the file must stay untouched after a write
// before it is read back.
const defaultQuiet = 100 * time.Millisecond

// watcher reports writes to one file. It watches the parent directory so
// editors that save by renaming over the file are seen too.
type watcher struct {
	fsw   *fsnotify.Watcher
	path  string
	quiet time.Duration
}

func newWatcher(path string) (*watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}
	return &watcher{fsw: fsw, path: abs, quiet: defaultQuiet}, nil
}

// next waits for the file to be written or created, then for a quiet period
// with no further writes, and reads it once. Bursts of writes from a single
// save (truncate, then write) coalesce into one message.
func (w *watcher) next() tea.Cmd {
	return func() tea.Msg {
		var (
			timer *time.Timer
			fire  <-chan time.Time
		)
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()
		for {
			select {
			case ev, ok := <-w.fsw.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) != w.path || !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(w.quiet)
					fire = timer.C
					continue
				}
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.quiet)
			case <-fire:
				timer, fire = nil, nil
				data, err := os.ReadFile(w.path)
				if err != nil {
					if errors.Is(err, os.ErrNotExist) {
						continue
					}
					return watchErrMsg{err: err}
				}
				return fileChangedMsg{text: string(data)}
			case err, ok := <-w.fsw.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

func (w *watcher) Close() error { return w.fsw.Close() }
