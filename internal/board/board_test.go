package board

import (
	"reflect"
	"testing"

	"github.com/Nasaee/taskboard/internal/task"
)

func sample() []task.Task {
	return []task.Task{
		{ID: "1", Title: "a", Status: task.StatusCompleted},
		{ID: "2", Title: "b", Status: task.StatusNotStarted},
		{ID: "3", Title: "c", Status: task.StatusInProgress},
		{ID: "4", Title: "d", Status: task.StatusCompleted},
	}
}

func ids(tasks []task.Task) []string {
	out := []string{}
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestFilterToggle(t *testing.T) {
	f := NewFilter()

	if !f.Toggle(task.StatusCompleted) {
		t.Fatal("Toggle(Completed) off: refused")
	}
	if f.Active(task.StatusCompleted) {
		t.Error("Completed still active after toggle")
	}
	if !f.Toggle(task.StatusInProgress) {
		t.Fatal("Toggle(In Progress) off: refused")
	}

	// Not Started is the last one left
	if f.Toggle(task.StatusNotStarted) {
		t.Error("Toggle turned off the last active status")
	}
	if got := f.Statuses(); !reflect.DeepEqual(got, []task.Status{task.StatusNotStarted}) {
		t.Errorf("Statuses: got %v", got)
	}

	if !f.Toggle(task.StatusCompleted) || !f.Active(task.StatusCompleted) {
		t.Error("Toggle(Completed) back on failed")
	}
	if f.Toggle(task.Status("Done")) {
		t.Error("Toggle accepted an invalid status")
	}
}

func TestFilterApply(t *testing.T) {
	tests := []struct {
		name   string
		filter *Filter
		want   []string
	}{
		{"all", NewFilter(), []string{"1", "2", "3", "4"}},
		{"completed only", FilterOf(task.StatusCompleted), []string{"1", "4"}},
		{"two statuses", FilterOf(task.StatusInProgress, task.StatusNotStarted), []string{"2", "3"}},
		{"invalid falls back to all", FilterOf(task.Status("Done")), []string{"1", "2", "3", "4"}},
		{"empty falls back to all", FilterOf(), []string{"1", "2", "3", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(tt.filter.Apply(sample())); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColumns(t *testing.T) {
	cols := Columns(sample())
	if len(cols) != 3 {
		t.Fatalf("Columns: got %d, want 3", len(cols))
	}

	want := map[task.Status][]string{
		task.StatusNotStarted: {"2"},
		task.StatusInProgress: {"3"},
		task.StatusCompleted:  {"1", "4"},
	}
	for i, col := range cols {
		if col.Status != task.Statuses[i] {
			t.Errorf("column %d: got %q, want %q", i, col.Status, task.Statuses[i])
		}
		if got := ids(col.Tasks); !reflect.DeepEqual(got, want[col.Status]) {
			t.Errorf("column %q: got %v, want %v", col.Status, got, want[col.Status])
		}
	}

	for _, col := range Columns(nil) {
		if col.Tasks == nil || len(col.Tasks) != 0 {
			t.Errorf("empty column %q: got %#v", col.Status, col.Tasks)
		}
	}
}

func TestNext(t *testing.T) {
	tests := map[task.Status]task.Status{
		task.StatusNotStarted: task.StatusCompleted,
		task.StatusInProgress: task.StatusCompleted,
		task.StatusCompleted:  task.StatusNotStarted,
	}
	for in, want := range tests {
		if got := Next(in); got != want {
			t.Errorf("Next(%q): got %q, want %q", in, got, want)
		}
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    task.Status
		wantErr bool
	}{
		{"Not Started", task.StatusNotStarted, false},
		{"todo", task.StatusNotStarted, false},
		{"not-started", task.StatusNotStarted, false},
		{"in_progress", task.StatusInProgress, false},
		{"WIP", task.StatusInProgress, false},
		{" done ", task.StatusCompleted, false},
		{"Completed", task.StatusCompleted, false},
		{"finished", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStatus(%q): err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeList, "list": ModeList, "Board": ModeBoard} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q): got %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseMode("kanban"); err == nil {
		t.Error("ParseMode(kanban): expected error")
	}
}
