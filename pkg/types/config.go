package types

// Limits holds the store-wide maximum counts supplied by the
// configuration layer at store construction.
type Limits struct {
	MaxProjects int `json:"max_projects" yaml:"max_projects"`
	MaxTasks    int `json:"max_tasks" yaml:"max_tasks"`
}

// Validate checks that both limits are positive integers.
func (l Limits) Validate() error {
	if l.MaxProjects <= 0 {
		return NewValidationError("max projects must be positive, got %d", l.MaxProjects)
	}
	if l.MaxTasks <= 0 {
		return NewValidationError("max tasks must be positive, got %d", l.MaxTasks)
	}
	return nil
}
