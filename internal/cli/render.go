package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Nasaee/taskboard/internal/board"
	"github.com/Nasaee/taskboard/internal/task"
)

// ------- styling (Lip Gloss) -------
var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

const (
	maxTitle    = 60
	columnWidth = 28
)

func statusStyle(s task.Status) lipgloss.Style {
	switch s {
	case task.StatusCompleted:
		return successStyle
	case task.StatusInProgress:
		return progressStyle
	default:
		return mutedStyle
	}
}

func statusMark(s task.Status) string {
	switch s {
	case task.StatusCompleted:
		return "☑"
	case task.StatusInProgress:
		return "◐"
	default:
		return "☐"
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

func taskLine(t task.Task, width int) string {
	title := truncate(t.Title, width)
	if t.Status == task.StatusCompleted {
		title = doneStyle.Render(title)
	}
	return fmt.Sprintf("%s %s %s",
		mutedStyle.Render(fmt.Sprintf("#%s", shortID(t.ID))),
		statusStyle(t.Status).Render(statusMark(t.Status)),
		title,
	)
}

// shortID keeps numeric ids whole and trims UUIDs the way the web list does.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ProgressBar renders done/total as a bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := done * width / total
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %3d%%", bar, done*100/total)
}

func header(st task.Stats) string {
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d  %s %d",
		titleStyle.Render("Tasks"),
		mutedStyle.Render("☐"), st.NotStarted,
		progressStyle.Render("◐"), st.InProgress,
		successStyle.Render("☑"), st.Completed,
		accentStyle.Render("Total"), st.Total,
	)
}

// RenderList draws the filtered tasks linearly in fetch order.
func RenderList(all []task.Task, f *board.Filter) string {
	st := task.ComputeStats(all)
	shown := f.Apply(all)

	lines := []string{
		header(st),
		mutedStyle.Render(ProgressBar(st.Completed, st.Total, 28)),
		"",
	}
	if len(shown) == 0 {
		lines = append(lines, mutedStyle.Render("no tasks"))
	}
	for _, t := range shown {
		lines = append(lines, taskLine(t, maxTitle))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

// RenderBoard always draws the three status columns; statuses filtered out
// render as empty columns.
func RenderBoard(all []task.Task, f *board.Filter) string {
	cols := board.Columns(f.Apply(all))

	var rendered []string
	for _, c := range cols {
		lines := []string{
			statusStyle(c.Status).Bold(true).Render(fmt.Sprintf("%s (%d)", c.Status, len(c.Tasks))),
			"",
		}
		if len(c.Tasks) == 0 {
			lines = append(lines, mutedStyle.Render("(none)"))
		}
		for _, t := range c.Tasks {
			lines = append(lines, taskLine(t, columnWidth-8))
		}
		rendered = append(rendered, columnStyle.Width(columnWidth).Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func RenderStats(st task.Stats) string {
	lines := []string{
		titleStyle.Render("Stats"),
		fmt.Sprintf("%-12s %d", "Total", st.Total),
		fmt.Sprintf("%-12s %d", task.StatusNotStarted, st.NotStarted),
		fmt.Sprintf("%-12s %d", task.StatusInProgress, st.InProgress),
		fmt.Sprintf("%-12s %d (%d%%)", task.StatusCompleted, st.Completed, st.CompletedPercent),
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

// RenderTask draws a single task with its description and creation time.
func RenderTask(t task.Task) string {
	lines := []string{
		taskLine(t, maxTitle),
	}
	if t.Description != "" {
		lines = append(lines, "", t.Description)
	}
	lines = append(lines, "", mutedStyle.Render(fmt.Sprintf("%s · created %s", t.Status, t.CreatedAt.Local().Format("2006-01-02 15:04"))))
	return panelStyle.Render(strings.Join(lines, "\n"))
}
