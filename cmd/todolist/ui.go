// Terminal rendering helpers for the interactive session.
package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/todolist/internal/memory"
	"github.com/mesh-intelligence/todolist/pkg/todolist"
	"github.com/mesh-intelligence/todolist/pkg/types"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	statusStyles = map[types.Status]lipgloss.Style{
		types.StatusTodo:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		types.StatusDoing: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		types.StatusDone:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
)

// renderHeader builds the session banner shown once at startup.
func renderHeader(sessionID string, limits types.Limits, autoclose time.Duration) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("todolist " + todolist.Version))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("session %s", sessionID)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf(
		"limits: %d projects, %d tasks", limits.MaxProjects, limits.MaxTasks)))
	if autoclose > 0 {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("autoclose every %s", autoclose)))
	}
	return b.String()
}

// renderMenu builds the numbered action menu.
func renderMenu() string {
	items := []string{
		"1.  Create project",
		"2.  List projects",
		"3.  Add task",
		"4.  List tasks",
		"5.  Update task status",
		"6.  Edit task",
		"7.  Delete task",
		"8.  Delete project",
		"9.  Project stats",
		"10. Overall stats",
		"11. Autoclose overdue tasks",
		"0.  Exit",
	}
	return "\n" + promptStyle.Render(strings.Join(items, "\n"))
}

// renderProjectLine formats one project for the listing view.
func renderProjectLine(p *types.Project) string {
	line := fmt.Sprintf("[%d] %s", p.ID, p.Name)
	if p.Description != "" {
		line += mutedStyle.Render(" — " + p.Description)
	}
	line += mutedStyle.Render(fmt.Sprintf(" (%d tasks)", p.TaskCount()))
	return line
}

// renderTaskLine formats one task for the listing view.
func renderTaskLine(t *types.Task) string {
	status := statusStyles[t.Status].Render(string(t.Status))
	line := fmt.Sprintf("[%d] %s %s", t.ID, status, t.Title)
	if t.Deadline != nil {
		line += mutedStyle.Render(" due " + t.Deadline.Format(types.DeadlineLayout))
	}
	if t.ClosedAt != nil {
		line += mutedStyle.Render(" closed " + t.ClosedAt.Format(types.DeadlineLayout))
	}
	return line
}

// renderProjectStats formats the per-status counts of one project.
func renderProjectStats(name string, s types.ProjectStats) string {
	return fmt.Sprintf("%s: %d total | todo %d | doing %d | done %d",
		headerStyle.Render(name), s.Total, s.Todo, s.Doing, s.Done)
}

// renderStoreStats formats the store-wide aggregates.
func renderStoreStats(s memory.StoreStats) string {
	return fmt.Sprintf(
		"%s\nprojects: %d/%d\ntasks: %d/%d (todo %d | doing %d | done %d)",
		headerStyle.Render("Overall"),
		s.Projects, s.Limits.MaxProjects,
		s.Tasks, s.Limits.MaxTasks,
		s.Todo, s.Doing, s.Done)
}

// renderError formats a taxonomy error with its kind label; errors from
// outside the taxonomy render as internal.
func renderError(err error) string {
	kind := types.KindInternal
	var appErr *types.Error
	if errors.As(err, &appErr) {
		kind = appErr.Kind
	}
	return errorStyle.Render(fmt.Sprintf("error (%s): %v", kind, err))
}
