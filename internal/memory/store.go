// Package memory implements the in-memory store for projects and tasks.
// The store is the sole holder of the authoritative project collection and
// the only component that enforces the configured limits and project name
// uniqueness. State lives for one process run; nothing is persisted.
package memory

import (
	"time"

	"github.com/mesh-intelligence/todolist/pkg/types"
)

// Store owns all projects and, transitively, their tasks. It is built for
// exactly one logical actor; callers layering a concurrent front end on
// top must add their own mutual exclusion at this boundary.
type Store struct {
	limits types.Limits

	// projects keeps insertion order; byID and byName are lookup views
	// over the same entities. byName is exact and case-sensitive.
	projects []*types.Project
	byID     map[int]*types.Project
	byName   map[string]*types.Project

	// Monotonic id counters, never reused even after deletes.
	nextProjectID int
	nextTaskID    int

	// Store-wide task count across all projects.
	taskCount int
}

// NewStore builds a store with the given limits.
// Fails fast with a validation error when either limit is not positive.
func NewStore(limits types.Limits) (*Store, error) {
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	return &Store{
		limits:        limits,
		byID:          make(map[int]*types.Project),
		byName:        make(map[string]*types.Project),
		nextProjectID: 1,
		nextTaskID:    1,
	}, nil
}

// Limits returns the configured maximum counts.
func (s *Store) Limits() types.Limits { return s.limits }

// CreateProject validates and stores a new project, assigning its id.
// Checks run before any mutation: the project limit, then name uniqueness
// (exact, case-sensitive), then entity field validation.
func (s *Store) CreateProject(name, description string) (*types.Project, error) {
	if len(s.projects) >= s.limits.MaxProjects {
		return nil, types.NewLimitExceededError(
			"cannot create more projects: maximum of %d reached", s.limits.MaxProjects)
	}
	if _, exists := s.byName[name]; exists {
		return nil, types.NewDuplicateError("project %q already exists", name)
	}

	p, err := types.NewProject(s.nextProjectID, name, description)
	if err != nil {
		return nil, err
	}

	s.nextProjectID++
	s.projects = append(s.projects, p)
	s.byID[p.ID] = p
	s.byName[p.Name] = p
	return p, nil
}

// GetProject returns the project with the given id.
func (s *Store) GetProject(id int) (*types.Project, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, types.NewNotFoundError("project %d not found", id)
	}
	return p, nil
}

// ListProjects returns all projects in insertion order.
// The returned slice is a copy; it is never nil.
func (s *Store) ListProjects() []*types.Project {
	out := make([]*types.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// UpdateProject renames a project and replaces its description.
// The duplicate-name check excludes the project itself, so re-saving the
// same name succeeds.
func (s *Store) UpdateProject(id int, name, description string) (*types.Project, error) {
	p, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}
	if other, exists := s.byName[name]; exists && other.ID != id {
		return nil, types.NewDuplicateError("project %q already exists", name)
	}

	updated := *p
	updated.Name = name
	updated.Description = description
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	delete(s.byName, p.Name)
	p.Name = name
	p.Description = description
	s.byName[p.Name] = p
	return p, nil
}

// DeleteProject removes a project and all tasks it owns. The cascaded
// tasks free store-wide task limit headroom; ids are never reused.
func (s *Store) DeleteProject(id int) error {
	p, err := s.GetProject(id)
	if err != nil {
		return err
	}

	s.taskCount -= len(p.Tasks)
	delete(s.byID, p.ID)
	delete(s.byName, p.Name)
	for i, candidate := range s.projects {
		if candidate.ID == id {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			break
		}
	}
	return nil
}

// AddTask validates and appends a new task to the given project, assigning
// a task id unique across all projects. Checks run before any mutation:
// project lookup, then the store-wide task limit, then entity validation.
func (s *Store) AddTask(projectID int, title, description string, deadline *time.Time) (*types.Task, error) {
	p, err := s.GetProject(projectID)
	if err != nil {
		return nil, err
	}
	if s.taskCount >= s.limits.MaxTasks {
		return nil, types.NewLimitExceededError(
			"cannot add more tasks: maximum of %d reached", s.limits.MaxTasks)
	}

	t, err := types.NewTask(s.nextTaskID, title, description, deadline)
	if err != nil {
		return nil, err
	}

	s.nextTaskID++
	s.taskCount++
	p.AddTask(t)
	return t, nil
}

// GetTask returns the task with the given id from the given project.
func (s *Store) GetTask(projectID, taskID int) (*types.Task, error) {
	p, err := s.GetProject(projectID)
	if err != nil {
		return nil, err
	}
	return p.Task(taskID)
}

// UpdateTaskStatus sets the status of a task, resolving the project and
// task first. The task's prior status is untouched on any failure.
func (s *Store) UpdateTaskStatus(projectID, taskID int, status types.Status) (*types.Task, error) {
	t, err := s.GetTask(projectID, taskID)
	if err != nil {
		return nil, err
	}
	if err := t.SetStatus(status); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTask replaces the provided fields of a task. A nil title or
// description leaves that field unchanged; a nil deadline leaves the
// deadline unchanged. A provided title is revalidated before anything is
// mutated.
func (s *Store) UpdateTask(projectID, taskID int, title, description *string, deadline *time.Time) (*types.Task, error) {
	t, err := s.GetTask(projectID, taskID)
	if err != nil {
		return nil, err
	}

	updated := *t
	if title != nil {
		updated.Title = *title
	}
	if description != nil {
		updated.Description = *description
	}
	if deadline != nil {
		updated.Deadline = deadline
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	*t = updated
	return t, nil
}

// DeleteTask removes a task from its project, freeing task limit headroom.
func (s *Store) DeleteTask(projectID, taskID int) error {
	p, err := s.GetProject(projectID)
	if err != nil {
		return err
	}
	if err := p.RemoveTask(taskID); err != nil {
		return err
	}
	s.taskCount--
	return nil
}

// ProjectStats returns per-status task counts for one project.
func (s *Store) ProjectStats(projectID int) (types.ProjectStats, error) {
	p, err := s.GetProject(projectID)
	if err != nil {
		return types.ProjectStats{}, err
	}
	return p.Stats(), nil
}

// StoreStats holds store-wide aggregates alongside the configured limits.
type StoreStats struct {
	Projects int
	Tasks    int
	Todo     int
	Doing    int
	Done     int
	Limits   types.Limits
}

// Stats aggregates all projects. Task counts sum to Tasks.
func (s *Store) Stats() StoreStats {
	out := StoreStats{
		Projects: len(s.projects),
		Tasks:    s.taskCount,
		Limits:   s.limits,
	}
	for _, p := range s.projects {
		ps := p.Stats()
		out.Todo += ps.Todo
		out.Doing += ps.Doing
		out.Done += ps.Done
	}
	return out
}

// AutocloseOverdue closes every task whose deadline is strictly before the
// date of now and whose status is not done, stamping the closing date.
// Returns the number of tasks closed. A second pass with the same date
// closes nothing.
func (s *Store) AutocloseOverdue(now time.Time) int {
	closed := 0
	for _, p := range s.projects {
		for _, t := range p.Tasks {
			if t.Overdue(now) {
				t.Close(now)
				closed++
			}
		}
	}
	return closed
}
