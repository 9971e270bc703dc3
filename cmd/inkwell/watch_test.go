package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("a"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	w, err := newWatcher(path)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()

	msgs := make(chan tea.Msg, 16)
	go func() {
		for {
			msg := w.next()()
			if msg == nil {
				close(msgs)
				return
			}
			msgs <- msg
		}
	}()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write other: %v", err)
	}
	if err := os.WriteFile(path, []byte("b"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	// A write may be observed between truncation and the new contents.
	timeout := time.After(3 * time.Second)
	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				t.Fatalf("watcher closed before the write was seen")
			}
			ch, isChange := msg.(fileChangedMsg)
			if !isChange {
				t.Fatalf("message: got %T", msg)
			}
			if ch.text == "b" {
				return
			}
		case <-timeout:
			t.Fatalf("no change reported for %s", path)
		}
	}
}

func TestNewWatcherMissingDirectory(t *testing.T) {
	if _, err := newWatcher(filepath.Join(t.TempDir(), "missing", "doc.txt")); err == nil {
		t.Fatalf("watch: got nil error for a missing directory")
	}
}

func TestWatcherCoalescesBurstOfWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	w, err := newWatcher(path)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer w.Close()
	w.quiet = 300 * time.Millisecond

	msgs := make(chan tea.Msg, 16)
	go func() {
		for {
			msg := w.next()()
			if msg == nil {
				close(msgs)
				return
			}
			msgs <- msg
		}
	}()

	for _, text := range []string{"a", "ab", "abc"} {
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			t.Fatalf("write %q: %v", text, err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	select {
	case msg := <-msgs:
		ch, ok := msg.(fileChangedMsg)
		if !ok {
			t.Fatalf("message: got %T", msg)
		}
		if ch.text != "abc" {
			t.Fatalf("text: got %q, want %q", ch.text, "abc")
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("no change reported for %s", path)
	}

	select {
	case msg, ok := <-msgs:
		if ok {
			t.Fatalf("burst produced a second message: %#v", msg)
		}
	case <-time.After(2 * w.quiet):
	}
}
