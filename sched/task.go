// Package sched provides fire-once timers for bubbletea models.
//
// A Task is scheduled with a tea.Tick. Rescheduling or cancelling bumps the
// task's sequence number, so a tick that was already in flight arrives with
// a stale sequence and is ignored by Fired.
package sched

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FiredMsg is delivered when a scheduled task's delay elapses.
type FiredMsg struct {
	ID  string
	Seq uint64
}

// Task is a cancellable, reschedulable fire-once timer. The zero value is
// not usable; use New.
type Task struct {
	id      string
	delay   time.Duration
	seq     uint64
	pending bool
}

// New returns a task that fires delay after each Schedule call.
func New(id string, delay time.Duration) Task {
	return Task{id: id, delay: delay}
}

// Pending reports whether a firing is outstanding.
func (t *Task) Pending() bool { return t.pending }

// Schedule replaces any pending firing with a new one.
func (t *Task) Schedule() tea.Cmd {
	t.seq++
	t.pending = true
	id, seq := t.id, t.seq
	return tea.Tick(t.delay, func(time.Time) tea.Msg {
		return FiredMsg{ID: id, Seq: seq}
	})
}

// Cancel drops the pending firing, if any.
func (t *Task) Cancel() {
	if t.pending {
		t.seq++
		t.pending = false
	}
}

// Fired reports whether msg is the current firing of this task and, if so,
// marks the task idle. Stale or foreign messages return false.
func (t *Task) Fired(msg FiredMsg) bool {
	if msg.ID != t.id || msg.Seq != t.seq || !t.pending {
		return false
	}
	t.pending = false
	return true
}
