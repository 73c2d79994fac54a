package task

import "time"

type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Statuses in board column order.
var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusCompleted}

func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Patch คือ field ที่แก้ได้ (nil = ไม่แตะ). id กับ createdAt แก้ไม่ได้
type Patch struct {
	Title       *string
	Description *string
	Status      *Status
}

func (p Patch) apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}

// newTask builds a fresh record; callers assign the ID.
func newTask(title, description string) Task {
	return Task{
		Title:       title,
		Description: description,
		Status:      StatusNotStarted,
		CreatedAt:   now(),
	}
}

// now has millisecond precision so a record survives a JSON or SQL round trip
// unchanged. It rounds up, never reporting a time before the call.
var now = func() time.Time {
	return ceilMillisecond(time.Now().UTC())
}

func ceilMillisecond(t time.Time) time.Time {
	c := t.Truncate(time.Millisecond)
	if c.Before(t) {
		c = c.Add(time.Millisecond)
	}
	return c
}
