package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Nasaee/taskboard/internal/client"
	"github.com/Nasaee/taskboard/internal/task"
)

// fakeAPI keeps tasks in memory and mimics the server's not-found errors.
type fakeAPI struct {
	tasks   []task.Task
	next    int
	deleted []string
	cleared bool
}

func (f *fakeAPI) find(id string) int {
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func notFound() error {
	return &client.APIError{StatusCode: 404, Message: "task not found"}
}

func (f *fakeAPI) List(context.Context) ([]task.Task, error) {
	return append([]task.Task{}, f.tasks...), nil
}

func (f *fakeAPI) Get(_ context.Context, id string) (*task.Task, error) {
	i := f.find(id)
	if i < 0 {
		return nil, notFound()
	}
	t := f.tasks[i]
	return &t, nil
}

func (f *fakeAPI) Create(_ context.Context, title, description string) (*task.Task, error) {
	f.next++
	t := task.Task{
		ID:          strconv.Itoa(f.next),
		Title:       title,
		Description: description,
		Status:      task.StatusNotStarted,
		CreatedAt:   time.Now().UTC(),
	}
	f.tasks = append(f.tasks, t)
	return &t, nil
}

func (f *fakeAPI) SetStatus(_ context.Context, id string, s task.Status) (*task.Task, error) {
	i := f.find(id)
	if i < 0 {
		return nil, notFound()
	}
	f.tasks[i].Status = s
	t := f.tasks[i]
	return &t, nil
}

func (f *fakeAPI) Delete(_ context.Context, id string) error {
	i := f.find(id)
	if i < 0 {
		return notFound()
	}
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) Clear(context.Context) error {
	f.tasks = nil
	f.cleared = true
	return nil
}

func (f *fakeAPI) Stats(context.Context) (task.Stats, error) {
	return task.ComputeStats(f.tasks), nil
}

func (f *fakeAPI) Export(_ context.Context, format string) ([]byte, error) {
	return []byte("export:" + format), nil
}

type harness struct {
	api *fakeAPI
	r   *Runner
	out *bytes.Buffer
	err *bytes.Buffer
}

func newHarness(stdin string, titles ...string) *harness {
	api := &fakeAPI{}
	for _, title := range titles {
		_, _ = api.Create(context.Background(), title, "")
	}
	h := &harness{api: api, out: &bytes.Buffer{}, err: &bytes.Buffer{}}
	h.r = &Runner{API: api, In: strings.NewReader(stdin), Out: h.out, Err: h.err}
	return h
}

func (h *harness) run(args ...string) int {
	return h.r.Run(context.Background(), args)
}

func TestRunUsage(t *testing.T) {
	tests := []struct {
		args []string
		want int
	}{
		{nil, 2},
		{[]string{"help"}, 0},
		{[]string{"frobnicate"}, 2},
		{[]string{"add"}, 2},
		{[]string{"add", "  "}, 2},
		{[]string{"show"}, 2},
		{[]string{"done"}, 2},
		{[]string{"status", "1"}, 2},
		{[]string{"status", "1", "finished"}, 2},
		{[]string{"ls", "--status", "bogus"}, 2},
		{[]string{"rm"}, 2},
	}

	for _, tt := range tests {
		h := newHarness("", "Buy milk")
		if got := h.run(tt.args...); got != tt.want {
			t.Errorf("Run(%q): got exit %d, want %d (stderr %q)", tt.args, got, tt.want, h.err)
		}
	}
}

func TestAddAndStatusCommands(t *testing.T) {
	h := newHarness("")

	if code := h.run("add", "-d", "2 litres", "Buy", "milk"); code != 0 {
		t.Fatalf("add: exit %d (%s)", code, h.err)
	}
	if len(h.api.tasks) != 1 {
		t.Fatalf("add: got %d tasks, want 1", len(h.api.tasks))
	}
	if got := h.api.tasks[0]; got.Title != "Buy milk" || got.Description != "2 litres" {
		t.Errorf("add: got %+v", got)
	}
	if !strings.Contains(h.out.String(), "added #1") {
		t.Errorf("add output: %q", h.out)
	}

	steps := []struct {
		args []string
		want task.Status
	}{
		{[]string{"start", "1"}, task.StatusInProgress},
		{[]string{"done", "1"}, task.StatusCompleted},
		{[]string{"toggle", "1"}, task.StatusNotStarted},
		{[]string{"toggle", "1"}, task.StatusCompleted},
		{[]string{"reset", "1"}, task.StatusNotStarted},
		{[]string{"status", "1", "in-progress"}, task.StatusInProgress},
	}
	for _, s := range steps {
		if code := h.run(s.args...); code != 0 {
			t.Fatalf("%v: exit %d (%s)", s.args, code, h.err)
		}
		if got := h.api.tasks[0].Status; got != s.want {
			t.Errorf("%v: status %q, want %q", s.args, got, s.want)
		}
	}
}

func TestUnknownIDHint(t *testing.T) {
	h := newHarness("", "Buy milk")

	if code := h.run("done", "9"); code != 1 {
		t.Errorf("done 9: exit %d, want 1", code)
	}
	stderr := h.err.String()
	if !strings.Contains(stderr, "no task with id 9") || !strings.Contains(stderr, "taskctl ls") {
		t.Errorf("stderr: %q", stderr)
	}
}

func TestRemoveConfirmation(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		deleted bool
	}{
		{"yes", "y\n", []string{"rm", "1"}, true},
		{"YES", "YES\n", []string{"rm", "1"}, true},
		{"no", "n\n", []string{"rm", "1"}, false},
		{"empty answer", "\n", []string{"rm", "1"}, false},
		{"no input", "", []string{"rm", "1"}, false},
		{"skip prompt", "", []string{"rm", "-y", "1"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(tt.stdin, "Buy milk")
			if code := h.run(tt.args...); code != 0 {
				t.Fatalf("exit %d (%s)", code, h.err)
			}
			if got := len(h.api.deleted) == 1; got != tt.deleted {
				t.Errorf("deleted: got %v, want %v", got, tt.deleted)
			}
			skipped := tt.args[1] == "-y"
			if !skipped && !strings.Contains(h.out.String(), "Delete task 1?") {
				t.Errorf("prompt does not name the task: %q", h.out)
			}
		})
	}
}

func TestClearConfirmation(t *testing.T) {
	h := newHarness("n\n", "a", "b")
	if code := h.run("clear"); code != 0 || h.api.cleared {
		t.Errorf("clear declined: exit %d, cleared %v", code, h.api.cleared)
	}

	h = newHarness("", "a", "b")
	if code := h.run("clear", "-y"); code != 0 || !h.api.cleared {
		t.Errorf("clear -y: exit %d, cleared %v", code, h.api.cleared)
	}
}

func TestViewsFilterByStatus(t *testing.T) {
	h := newHarness("", "alpha", "beta", "gamma")
	h.api.tasks[1].Status = task.StatusCompleted

	if code := h.run("ls", "--status", "done"); code != 0 {
		t.Fatalf("ls: exit %d (%s)", code, h.err)
	}
	out := h.out.String()
	if !strings.Contains(out, "beta") || strings.Contains(out, "alpha") || strings.Contains(out, "gamma") {
		t.Errorf("ls --status done: %q", out)
	}

	h.out.Reset()
	if code := h.run("board", "--status", "todo,done"); code != 0 {
		t.Fatalf("board: exit %d (%s)", code, h.err)
	}
	out = h.out.String()
	if !strings.Contains(out, "Not Started (2)") || !strings.Contains(out, "Completed (1)") {
		t.Errorf("board column headers: %q", out)
	}
	// the filtered-out status keeps its column, empty
	if !strings.Contains(out, "In Progress (0)") {
		t.Errorf("board dropped the filtered-out column: %q", out)
	}
}

func TestExportToFile(t *testing.T) {
	h := newHarness("", "a")
	path := filepath.Join(t.TempDir(), "tasks.csv")

	if code := h.run("export", "-format", "csv", "-o", path); code != 0 {
		t.Fatalf("export: exit %d (%s)", code, h.err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(b) != "export:csv" {
		t.Errorf("file contents: %q", b)
	}

	h.out.Reset()
	if code := h.run("export"); code != 0 || h.out.String() != "export:json" {
		t.Errorf("export to stdout: exit %d, out %q", code, h.out)
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total, width int
		want               string
	}{
		{0, 0, 10, "░░░░░░░░░░   0%"},
		{1, 2, 10, "█████░░░░░  50%"},
		{3, 3, 5, "█████ 100%"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.done, tt.total, tt.width); got != tt.want {
			t.Errorf("ProgressBar(%d, %d, %d): got %q, want %q", tt.done, tt.total, tt.width, got, tt.want)
		}
	}
}
