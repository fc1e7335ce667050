package types

import "time"

// Project represents a named container of tasks. Tasks are owned
// exclusively by their project and keep insertion order.
type Project struct {
	ID          int       `json:"id"`
	Name        string    `json:"name" validate:"notblank"`
	Description string    `json:"description,omitempty"`
	Tasks       []*Task   `json:"tasks"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewProject builds a project with the given id and fields, validating
// them. Returns a validation error when the name is empty or
// whitespace-only. Name uniqueness across projects is the store's concern,
// not the entity's.
func NewProject(id int, name, description string) (*Project, error) {
	p := &Project{
		ID:          id,
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the project's field constraints.
func (p *Project) Validate() error { return validateStruct(p) }

// AddTask appends a task to the owned collection. The global task limit is
// enforced by the store, not here.
func (p *Project) AddTask(t *Task) {
	p.Tasks = append(p.Tasks, t)
}

// Task returns the owned task with the given id.
// Returns a not-found error if no such task exists in this project.
func (p *Project) Task(taskID int) (*Task, error) {
	for _, t := range p.Tasks {
		if t.ID == taskID {
			return t, nil
		}
	}
	return nil, NewNotFoundError("task %d not found in project %d", taskID, p.ID)
}

// RemoveTask removes the owned task with the given id, preserving the
// order of the remaining tasks.
// Returns a not-found error if no such task exists in this project.
func (p *Project) RemoveTask(taskID int) error {
	for i, t := range p.Tasks {
		if t.ID == taskID {
			p.Tasks = append(p.Tasks[:i], p.Tasks[i+1:]...)
			return nil
		}
	}
	return NewNotFoundError("task %d not found in project %d", taskID, p.ID)
}

// TaskCount returns the number of tasks owned by the project.
func (p *Project) TaskCount() int { return len(p.Tasks) }

// ProjectStats holds per-status task counts for one project.
// Todo, Doing and Done always sum to Total.
type ProjectStats struct {
	Total int `json:"total"`
	Todo  int `json:"todo"`
	Doing int `json:"doing"`
	Done  int `json:"done"`
}

// Stats aggregates the owned tasks by status. Pure; no side effects.
func (p *Project) Stats() ProjectStats {
	s := ProjectStats{Total: len(p.Tasks)}
	for _, t := range p.Tasks {
		switch t.Status {
		case StatusTodo:
			s.Todo++
		case StatusDoing:
			s.Doing++
		case StatusDone:
			s.Done++
		}
	}
	return s
}
