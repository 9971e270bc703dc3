package engine

import (
	"context"
	"testing"
	"time"
)

func TestManualScheduler_RunsDueTasksInOrder(t *testing.T) {
	s := NewManualScheduler()
	var got []string
	task := func(name string, d time.Duration) Task {
		return Task{Delay: d, Run: func(context.Context) func() {
			return func() { got = append(got, name) }
		}}
	}
	s.Schedule(task("late", 20*time.Millisecond))
	s.Schedule(task("early", 10*time.Millisecond))
	cancel := s.Schedule(task("cancelled", 5*time.Millisecond))
	cancel()

	s.Advance(15 * time.Millisecond)
	if len(got) != 1 || got[0] != "early" {
		t.Fatalf("after 15ms: got %v", got)
	}
	if s.Pending() != 1 {
		t.Fatalf("pending: got %d, want 1", s.Pending())
	}
	s.Advance(5 * time.Millisecond)
	if len(got) != 2 || got[1] != "late" {
		t.Fatalf("after 20ms: got %v", got)
	}
}

func TestManualScheduler_TasksScheduledWhileAdvancing(t *testing.T) {
	s := NewManualScheduler()
	ran := 0
	s.Schedule(Task{Delay: time.Millisecond, Run: func(context.Context) func() {
		return func() {
			ran++
			s.Schedule(Task{Delay: time.Millisecond, Run: func(context.Context) func() {
				return func() { ran++ }
			}})
		}
	}})
	s.Advance(10 * time.Millisecond)
	if ran != 2 {
		t.Fatalf("ran: got %d, want 2", ran)
	}
}

func TestNopScheduler_DropsTasks(t *testing.T) {
	ran := false
	cancel := NopScheduler{}.Schedule(Task{Run: func(context.Context) func() { ran = true; return nil }})
	cancel()
	if ran {
		t.Fatalf("nop scheduler ran task")
	}
}
