// Package board holds the view logic shared by the task UIs: the status
// filter set, list/board modes and column grouping.
package board

import (
	"fmt"
	"strings"

	"github.com/Nasaee/taskboard/internal/task"
)

type Mode string

const (
	ModeList  Mode = "list"
	ModeBoard Mode = "board"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeList, "":
		return ModeList, nil
	case ModeBoard:
		return ModeBoard, nil
	}
	return "", fmt.Errorf("unknown view mode %q", s)
}

// Filter is the set of visible statuses. At least one status is always active.
type Filter struct {
	active map[task.Status]bool
}

// NewFilter returns a filter with every status visible.
func NewFilter() *Filter {
	f := &Filter{active: make(map[task.Status]bool, len(task.Statuses))}
	for _, s := range task.Statuses {
		f.active[s] = true
	}
	return f
}

// FilterOf shows only the given statuses. Invalid or empty input falls back to all.
func FilterOf(statuses ...task.Status) *Filter {
	f := &Filter{active: make(map[task.Status]bool, len(task.Statuses))}
	for _, s := range statuses {
		if s.Valid() {
			f.active[s] = true
		}
	}
	if len(f.active) == 0 {
		return NewFilter()
	}
	return f
}

func (f *Filter) Active(s task.Status) bool { return f.active[s] }

// Toggle flips s and reports whether it changed. Turning off the last active
// status is refused.
func (f *Filter) Toggle(s task.Status) bool {
	if !s.Valid() {
		return false
	}
	if f.active[s] {
		if len(f.active) == 1 {
			return false
		}
		delete(f.active, s)
		return true
	}
	f.active[s] = true
	return true
}

// Statuses returns the active statuses in column order.
func (f *Filter) Statuses() []task.Status {
	out := make([]task.Status, 0, len(f.active))
	for _, s := range task.Statuses {
		if f.active[s] {
			out = append(out, s)
		}
	}
	return out
}

// Apply keeps tasks whose status is active, preserving order.
func (f *Filter) Apply(tasks []task.Task) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.active[t.Status] {
			out = append(out, t)
		}
	}
	return out
}

type Column struct {
	Status task.Status
	Tasks  []task.Task
}

// Columns groups tasks into the three fixed status columns, in fetch order within each.
func Columns(tasks []task.Task) []Column {
	cols := make([]Column, len(task.Statuses))
	idx := make(map[task.Status]int, len(task.Statuses))
	for i, s := range task.Statuses {
		cols[i] = Column{Status: s, Tasks: []task.Task{}}
		idx[s] = i
	}
	for _, t := range tasks {
		if i, ok := idx[t.Status]; ok {
			cols[i].Tasks = append(cols[i].Tasks, t)
		}
	}
	return cols
}

// Next is the status a "toggle" action moves to: Completed goes back to Not Started,
// anything else is marked Completed.
func Next(s task.Status) task.Status {
	if s == task.StatusCompleted {
		return task.StatusNotStarted
	}
	return task.StatusCompleted
}

// ParseStatus accepts the canonical names plus short aliases used on the command line.
func ParseStatus(s string) (task.Status, error) {
	switch strings.ToLower(strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(s))) {
	case "not started", "todo", "new":
		return task.StatusNotStarted, nil
	case "in progress", "doing", "started", "wip":
		return task.StatusInProgress, nil
	case "completed", "done":
		return task.StatusCompleted, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}
