package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Nasaee/taskboard/internal/board"
	"github.com/Nasaee/taskboard/internal/client"
	"github.com/Nasaee/taskboard/internal/task"
)

// API is the subset of the HTTP client the runner needs.
type API interface {
	List(ctx context.Context) ([]task.Task, error)
	Get(ctx context.Context, id string) (*task.Task, error)
	Create(ctx context.Context, title, description string) (*task.Task, error)
	SetStatus(ctx context.Context, id string, s task.Status) (*task.Task, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (task.Stats, error)
	Export(ctx context.Context, format string) ([]byte, error)
}

var _ API = (*client.Client)(nil)

type Runner struct {
	API API
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

func NewRunner(api API) *Runner {
	return &Runner{API: api, In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

func (r *Runner) ok(msg string) {
	fmt.Fprintln(r.Out, successStyle.Render("✔ "+msg))
}

func (r *Runner) fail(msg string) {
	fmt.Fprintln(r.Err, errorStyle.Render("✖ "+msg))
}

// statusFlags collects repeated --status values.
type statusFlags []task.Status

func (s *statusFlags) String() string {
	parts := make([]string, len(*s))
	for i, st := range *s {
		parts[i] = string(st)
	}
	return strings.Join(parts, ",")
}

func (s *statusFlags) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		st, err := board.ParseStatus(part)
		if err != nil {
			return err
		}
		*s = append(*s, st)
	}
	return nil
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func (r *Runner) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		r.PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		r.PrintHelp()
		return 0
	case "ls", "list":
		return r.doView(ctx, cmd, a, board.ModeList)
	case "board":
		return r.doView(ctx, cmd, a, board.ModeBoard)
	case "show":
		return r.doShow(ctx, a)
	case "add":
		return r.doAdd(ctx, a)
	case "start":
		return r.doSetStatus(ctx, cmd, a, task.StatusInProgress)
	case "done":
		return r.doSetStatus(ctx, cmd, a, task.StatusCompleted)
	case "reset":
		return r.doSetStatus(ctx, cmd, a, task.StatusNotStarted)
	case "toggle":
		return r.doToggle(ctx, a)
	case "status":
		if len(a) != 2 {
			r.fail("usage: taskctl status <id> <status>")
			return 2
		}
		st, err := board.ParseStatus(a[1])
		if err != nil {
			r.fail(err.Error())
			return 2
		}
		return r.doSetStatus(ctx, cmd, a[:1], st)
	case "rm":
		return r.doRemove(ctx, a)
	case "clear":
		return r.doClear(ctx, a)
	case "stats":
		return r.doStats(ctx)
	case "export":
		return r.doExport(ctx, a)
	}

	r.fail("unknown subcommand: " + cmd)
	fmt.Fprintln(r.Err)
	r.PrintHelp()
	return 2
}

func (r *Runner) PrintHelp() {
	fmt.Fprint(r.Out, `taskctl - terminal client for taskboard

Usage:
  taskctl [-server URL] <subcommand> [args]

Subcommands:
  ls [--status S]...      List tasks (filter by status, repeatable)
  board [--status S]...   Show tasks as a board grouped by status
  show <id>               Show one task
  add [-d text] <title>   Add a task (title can be multiple words)
  start <id>              Mark a task In Progress
  done <id>               Mark a task Completed
  reset <id>              Mark a task Not Started
  toggle <id>             Completed <-> Not Started
  status <id> <status>    Set any status (not-started, in-progress, completed)
  rm [-y] <id>            Delete a task (asks for confirmation)
  clear [-y]              Delete every task
  stats                   Show counts per status
  export [-format F] [-o FILE]
                          Export as json, csv or pdf

Examples:
  taskctl add "Buy milk"
  taskctl board --status todo --status doing
  taskctl done 1
  taskctl rm 3
`)
}

// -------------- subcommand impls ----------------

func (r *Runner) doView(ctx context.Context, name string, args []string, mode board.Mode) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(r.Err)
	var statuses statusFlags
	fs.Var(&statuses, "status", "show only this status (repeatable)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	tasks, err := r.API.List(ctx)
	if err != nil {
		r.fail("list: " + err.Error())
		return 1
	}

	f := board.FilterOf(statuses...)
	if mode == board.ModeBoard {
		fmt.Fprintln(r.Out, RenderBoard(tasks, f))
	} else {
		fmt.Fprintln(r.Out, RenderList(tasks, f))
	}
	return 0
}

func (r *Runner) doShow(ctx context.Context, args []string) int {
	if len(args) != 1 {
		r.fail("usage: taskctl show <id>")
		return 2
	}
	t, err := r.API.Get(ctx, args[0])
	if err != nil {
		return r.apiFail("show", args[0], err)
	}
	fmt.Fprintln(r.Out, RenderTask(*t))
	return 0
}

func (r *Runner) doAdd(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(r.Err)
	desc := fs.String("d", "", "description")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	title := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if title == "" {
		r.fail("add: task title cannot be empty")
		return 2
	}

	t, err := r.API.Create(ctx, title, *desc)
	if err != nil {
		r.fail("add: " + err.Error())
		return 1
	}
	r.ok(fmt.Sprintf("added #%s", t.ID))
	return 0
}

func (r *Runner) doSetStatus(ctx context.Context, name string, args []string, st task.Status) int {
	if len(args) != 1 {
		r.fail(fmt.Sprintf("usage: taskctl %s <id>", name))
		return 2
	}
	t, err := r.API.SetStatus(ctx, args[0], st)
	if err != nil {
		return r.apiFail(name, args[0], err)
	}
	r.ok(fmt.Sprintf("#%s is now %s", t.ID, t.Status))
	return 0
}

func (r *Runner) doToggle(ctx context.Context, args []string) int {
	if len(args) != 1 {
		r.fail("usage: taskctl toggle <id>")
		return 2
	}
	cur, err := r.API.Get(ctx, args[0])
	if err != nil {
		return r.apiFail("toggle", args[0], err)
	}
	return r.doSetStatus(ctx, "toggle", args, board.Next(cur.Status))
}

func (r *Runner) doRemove(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("rm", flag.ContinueOnError)
	fs.SetOutput(r.Err)
	yes := fs.Bool("y", false, "do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		r.fail("usage: taskctl rm [-y] <id>")
		return 2
	}
	id := fs.Arg(0)

	if !*yes && !r.confirm(fmt.Sprintf("Delete task %s?", id)) {
		fmt.Fprintln(r.Out, mutedStyle.Render("cancelled"))
		return 0
	}

	if err := r.API.Delete(ctx, id); err != nil {
		return r.apiFail("rm", id, err)
	}
	r.ok("removed #" + id)
	return 0
}

func (r *Runner) doClear(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("clear", flag.ContinueOnError)
	fs.SetOutput(r.Err)
	yes := fs.Bool("y", false, "do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if !*yes && !r.confirm("Delete ALL tasks?") {
		fmt.Fprintln(r.Out, mutedStyle.Render("cancelled"))
		return 0
	}

	if err := r.API.Clear(ctx); err != nil {
		r.fail("clear: " + err.Error())
		return 1
	}
	r.ok("cleared")
	return 0
}

func (r *Runner) doStats(ctx context.Context) int {
	st, err := r.API.Stats(ctx)
	if err != nil {
		r.fail("stats: " + err.Error())
		return 1
	}
	fmt.Fprintln(r.Out, RenderStats(st))
	return 0
}

func (r *Runner) doExport(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(r.Err)
	format := fs.String("format", "json", "json|csv|pdf")
	out := fs.String("o", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	b, err := r.API.Export(ctx, *format)
	if err != nil {
		r.fail("export: " + err.Error())
		return 1
	}

	if *out == "" {
		_, _ = r.Out.Write(b)
		return 0
	}
	if err := os.WriteFile(*out, b, 0o644); err != nil {
		r.fail("export: " + err.Error())
		return 1
	}
	r.ok("wrote " + *out)
	return 0
}

func (r *Runner) apiFail(cmd, id string, err error) int {
	if client.IsNotFound(err) {
		r.fail(fmt.Sprintf("%s: no task with id %s", cmd, id))
		fmt.Fprintln(r.Err, mutedStyle.Render("Hint: run `taskctl ls` to see valid ids"))
		return 1
	}
	r.fail(cmd + ": " + err.Error())
	return 1
}

func (r *Runner) confirm(question string) bool {
	fmt.Fprintf(r.Out, "%s [y/N] ", question)
	line, err := bufio.NewReader(r.In).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
