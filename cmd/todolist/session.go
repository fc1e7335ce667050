// Interactive session loop for the todolist CLI. The session owns the
// store for one process run: it prompts on stdin, calls into the store,
// renders results, and reports taxonomy errors without leaving the loop.
package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/mesh-intelligence/todolist/internal/memory"
	"github.com/mesh-intelligence/todolist/pkg/types"
)

// session drives the interactive menu loop. The store is touched by the
// session goroutine only; the cron sweep just raises a flag that the loop
// consumes between commands, so the store keeps its single-actor contract.
type session struct {
	store *memory.Store
	cfg   config
	id    string
	in    *bufio.Scanner
	out   io.Writer

	scheduler        *cron.Cron
	autoclosePending atomic.Bool
}

// newSession stamps a fresh session with a UUID v7 identifier.
func newSession(store *memory.Store, cfg config, in io.Reader, out io.Writer) (*session, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating session id: %w", err)
	}
	return &session{
		store: store,
		cfg:   cfg,
		id:    id.String(),
		in:    bufio.NewScanner(in),
		out:   out,
	}, nil
}

// run prints the header and loops over the menu until the user exits or
// input ends.
func (s *session) run() error {
	if s.cfg.AutocloseInterval > 0 {
		s.scheduler = cron.New()
		spec := fmt.Sprintf("@every %s", s.cfg.AutocloseInterval)
		if _, err := s.scheduler.AddFunc(spec, func() {
			s.autoclosePending.Store(true)
		}); err != nil {
			return fmt.Errorf("schedule autoclose: %w", err)
		}
		s.scheduler.Start()
		defer func() { <-s.scheduler.Stop().Done() }()
	}

	fmt.Fprintln(s.out, renderHeader(s.id, s.store.Limits(), s.cfg.AutocloseInterval))

	for {
		s.sweepIfPending()

		fmt.Fprintln(s.out, renderMenu())
		choice, ok := s.readLine("> ")
		if !ok {
			return nil
		}

		if choice == menuExit {
			fmt.Fprintln(s.out, mutedStyle.Render("Goodbye."))
			return nil
		}

		handler, ok := s.handlers()[choice]
		if !ok {
			fmt.Fprintln(s.out, renderError(types.NewValidationError("unknown option %q", choice)))
			continue
		}
		if err := handler(); err != nil {
			fmt.Fprintln(s.out, renderError(err))
		}
	}
}

// Menu option keys, in display order.
const (
	menuCreateProject = "1"
	menuListProjects  = "2"
	menuAddTask       = "3"
	menuListTasks     = "4"
	menuUpdateStatus  = "5"
	menuEditTask      = "6"
	menuDeleteTask    = "7"
	menuDeleteProject = "8"
	menuProjectStats  = "9"
	menuOverallStats  = "10"
	menuAutoclose     = "11"
	menuExit          = "0"
)

func (s *session) handlers() map[string]func() error {
	return map[string]func() error{
		menuCreateProject: s.createProject,
		menuListProjects:  s.listProjects,
		menuAddTask:       s.addTask,
		menuListTasks:     s.listTasks,
		menuUpdateStatus:  s.updateTaskStatus,
		menuEditTask:      s.editTask,
		menuDeleteTask:    s.deleteTask,
		menuDeleteProject: s.deleteProject,
		menuProjectStats:  s.projectStats,
		menuOverallStats:  s.overallStats,
		menuAutoclose:     s.autocloseNow,
	}
}

// sweepIfPending runs an autoclose pass when the scheduler has ticked
// since the last command.
func (s *session) sweepIfPending() {
	if !s.autoclosePending.Swap(false) {
		return
	}
	if closed := s.store.AutocloseOverdue(time.Now()); closed > 0 {
		fmt.Fprintln(s.out, mutedStyle.Render(
			fmt.Sprintf("Auto-closed %d overdue task(s).", closed)))
	}
}

func (s *session) createProject() error {
	name, ok := s.readLine("Project name: ")
	if !ok {
		return nil
	}
	description, _ := s.readLine("Project description: ")

	p, err := s.store.CreateProject(name, description)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, successStyle.Render(
		fmt.Sprintf("Project created: [%d] %s", p.ID, p.Name)))
	return nil
}

func (s *session) listProjects() error {
	projects := s.store.ListProjects()
	if len(projects) == 0 {
		fmt.Fprintln(s.out, mutedStyle.Render("No projects found."))
		return nil
	}
	for _, p := range projects {
		fmt.Fprintln(s.out, renderProjectLine(p))
	}
	return nil
}

func (s *session) addTask() error {
	projectID, err := s.readInt("Project id: ")
	if err != nil {
		return err
	}
	title, ok := s.readLine("Task title: ")
	if !ok {
		return nil
	}
	description, _ := s.readLine("Task description: ")
	rawDeadline, _ := s.readLine("Deadline (YYYY-MM-DD, empty for none): ")
	deadline, err := types.ParseDeadline(rawDeadline)
	if err != nil {
		return err
	}

	t, err := s.store.AddTask(projectID, title, description, deadline)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, successStyle.Render(
		fmt.Sprintf("Task created: [%d] %s", t.ID, t.Title)))
	return nil
}

func (s *session) listTasks() error {
	projectID, err := s.readInt("Project id: ")
	if err != nil {
		return err
	}
	p, err := s.store.GetProject(projectID)
	if err != nil {
		return err
	}
	if len(p.Tasks) == 0 {
		fmt.Fprintln(s.out, mutedStyle.Render("No tasks in this project."))
		return nil
	}
	for _, t := range p.Tasks {
		fmt.Fprintln(s.out, renderTaskLine(t))
	}
	return nil
}

func (s *session) updateTaskStatus() error {
	projectID, err := s.readInt("Project id: ")
	if err != nil {
		return err
	}
	taskID, err := s.readInt("Task id: ")
	if err != nil {
		return err
	}
	raw, _ := s.readLine("New status (todo/doing/done): ")
	status, err := types.ParseStatus(raw)
	if err != nil {
		return err
	}

	t, err := s.store.UpdateTaskStatus(projectID, taskID, status)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, successStyle.Render(
		fmt.Sprintf("Task [%d] is now %s", t.ID, t.Status)))
	return nil
}

func (s *session) editTask() error {
	projectID, err := s.readInt("Project id: ")
	if err != nil {
		return err
	}
	taskID, err := s.readInt("Task id: ")
	if err != nil {
		return err
	}

	// Empty input keeps the current value.
	var title, description *string
	if raw, _ := s.readLine("New title (empty to keep): "); raw != "" {
		title = &raw
	}
	if raw, _ := s.readLine("New description (empty to keep): "); raw != "" {
		description = &raw
	}
	var deadline *time.Time
	if raw, _ := s.readLine("New deadline (YYYY-MM-DD, empty to keep): "); raw != "" {
		deadline, err = types.ParseDeadline(raw)
		if err != nil {
			return err
		}
	}

	t, err := s.store.UpdateTask(projectID, taskID, title, description, deadline)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, successStyle.Render(
		fmt.Sprintf("Task updated: [%d] %s", t.ID, t.Title)))
	return nil
}

func (s *session) deleteTask() error {
	projectID, err := s.readInt("Project id: ")
	if err != nil {
		return err
	}
	taskID, err := s.readInt("Task id: ")
	if err != nil {
		return err
	}
	if err := s.store.DeleteTask(projectID, taskID); err != nil {
		return err
	}
	fmt.Fprintln(s.out, successStyle.Render(fmt.Sprintf("Task %d deleted.", taskID)))
	return nil
}

func (s *session) deleteProject() error {
	projectID, err := s.readInt("Project id: ")
	if err != nil {
		return err
	}
	confirm, _ := s.readLine("Delete the project and all its tasks? (y/N): ")
	if !strings.EqualFold(confirm, "y") {
		fmt.Fprintln(s.out, mutedStyle.Render("Cancelled."))
		return nil
	}
	if err := s.store.DeleteProject(projectID); err != nil {
		return err
	}
	fmt.Fprintln(s.out, successStyle.Render(fmt.Sprintf("Project %d deleted.", projectID)))
	return nil
}

func (s *session) projectStats() error {
	projectID, err := s.readInt("Project id: ")
	if err != nil {
		return err
	}
	p, err := s.store.GetProject(projectID)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, renderProjectStats(p.Name, p.Stats()))
	return nil
}

func (s *session) overallStats() error {
	fmt.Fprintln(s.out, renderStoreStats(s.store.Stats()))
	return nil
}

func (s *session) autocloseNow() error {
	closed := s.store.AutocloseOverdue(time.Now())
	fmt.Fprintln(s.out, successStyle.Render(
		fmt.Sprintf("Auto-closed %d overdue task(s).", closed)))
	return nil
}

// readLine prompts and returns the next trimmed input line.
// ok is false when input has ended.
func (s *session) readLine(prompt string) (string, bool) {
	fmt.Fprint(s.out, promptStyle.Render(prompt))
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// readInt prompts for a decimal integer.
func (s *session) readInt(prompt string) (int, error) {
	raw, ok := s.readLine(prompt)
	if !ok {
		return 0, types.NewValidationError("input ended while reading %q", prompt)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, types.NewValidationError("invalid number %q", raw)
	}
	return n, nil
}
