package memory

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/todolist/pkg/types"
)

// newTestStore builds a store with generous limits.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.Limits{MaxProjects: 10, MaxTasks: 50})
	require.NoError(t, err)
	return s
}

func TestNewStoreRejectsInvalidLimits(t *testing.T) {
	_, err := NewStore(types.Limits{MaxProjects: 0, MaxTasks: 10})
	assert.ErrorIs(t, err, types.ErrValidation)

	_, err = NewStore(types.Limits{MaxProjects: 10, MaxTasks: -1})
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestCreateProject(t *testing.T) {
	s := newTestStore(t)

	p, err := s.CreateProject("Portfolio Website", "personal site")
	require.NoError(t, err)
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "Portfolio Website", p.Name)

	t.Run("duplicate name rejected", func(t *testing.T) {
		_, err := s.CreateProject("Portfolio Website", "again")
		assert.ErrorIs(t, err, types.ErrDuplicate)
		assert.Len(t, s.ListProjects(), 1, "store still contains exactly one project")
	})

	t.Run("duplicate check is case-sensitive", func(t *testing.T) {
		p2, err := s.CreateProject("portfolio website", "")
		require.NoError(t, err)
		assert.Equal(t, 2, p2.ID)
	})

	t.Run("validation failure creates nothing", func(t *testing.T) {
		before := len(s.ListProjects())
		_, err := s.CreateProject("   ", "")
		assert.ErrorIs(t, err, types.ErrValidation)
		assert.Len(t, s.ListProjects(), before)
	})
}

func TestCreateProjectLimit(t *testing.T) {
	s, err := NewStore(types.Limits{MaxProjects: 1, MaxTasks: 10})
	require.NoError(t, err)

	_, err = s.CreateProject("A", "")
	require.NoError(t, err)

	_, err = s.CreateProject("B", "")
	assert.ErrorIs(t, err, types.ErrLimitExceeded)

	projects := s.ListProjects()
	require.Len(t, projects, 1)
	assert.Equal(t, "A", projects[0].Name)
}

func TestGetProject(t *testing.T) {
	s := newTestStore(t)
	created, err := s.CreateProject("A", "")
	require.NoError(t, err)

	got, err := s.GetProject(created.ID)
	require.NoError(t, err)
	assert.Same(t, created, got)

	_, err = s.GetProject(999)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestListProjectsInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	assert.NotNil(t, s.ListProjects())
	assert.Empty(t, s.ListProjects())

	for _, name := range []string{"C", "A", "B"} {
		_, err := s.CreateProject(name, "")
		require.NoError(t, err)
	}

	var names []string
	for _, p := range s.ListProjects() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"C", "A", "B"}, names)
}

func TestUpdateProject(t *testing.T) {
	s := newTestStore(t)
	a, err := s.CreateProject("A", "old")
	require.NoError(t, err)
	_, err = s.CreateProject("B", "")
	require.NoError(t, err)

	t.Run("rename", func(t *testing.T) {
		got, err := s.UpdateProject(a.ID, "A2", "new")
		require.NoError(t, err)
		assert.Equal(t, "A2", got.Name)
		assert.Equal(t, "new", got.Description)
	})

	t.Run("rename back to a freed name", func(t *testing.T) {
		_, err := s.UpdateProject(a.ID, "A", "new")
		require.NoError(t, err)
	})

	t.Run("same name on itself is not a duplicate", func(t *testing.T) {
		_, err := s.UpdateProject(a.ID, "A", "newer")
		require.NoError(t, err)
	})

	t.Run("colliding with another project", func(t *testing.T) {
		_, err := s.UpdateProject(a.ID, "B", "")
		assert.ErrorIs(t, err, types.ErrDuplicate)
		assert.Equal(t, "A", a.Name, "failed update leaves the project untouched")
	})

	t.Run("blank name rejected", func(t *testing.T) {
		_, err := s.UpdateProject(a.ID, " ", "")
		assert.ErrorIs(t, err, types.ErrValidation)
		assert.Equal(t, "A", a.Name)
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := s.UpdateProject(999, "X", "")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestAddTask(t *testing.T) {
	s := newTestStore(t)
	p, err := s.CreateProject("A", "")
	require.NoError(t, err)

	deadline, err := types.ParseDeadline("2025-10-30")
	require.NoError(t, err)

	task, err := s.AddTask(p.ID, "Design homepage", "hero and nav", deadline)
	require.NoError(t, err)
	assert.Equal(t, 1, task.ID)
	assert.Equal(t, types.StatusTodo, task.Status)
	require.Len(t, p.Tasks, 1)
	assert.Same(t, task, p.Tasks[0])

	t.Run("unknown project", func(t *testing.T) {
		_, err := s.AddTask(999, "x", "", nil)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("blank title adds nothing", func(t *testing.T) {
		_, err := s.AddTask(p.ID, "  ", "", nil)
		assert.ErrorIs(t, err, types.ErrValidation)
		assert.Len(t, p.Tasks, 1)
	})

	t.Run("duplicate titles within a project are fine", func(t *testing.T) {
		again, err := s.AddTask(p.ID, "Design homepage", "", nil)
		require.NoError(t, err)
		assert.Equal(t, 2, again.ID)
	})
}

func TestAddTaskStoreWideLimit(t *testing.T) {
	// The task limit counts across all projects, not per project.
	s, err := NewStore(types.Limits{MaxProjects: 5, MaxTasks: 3})
	require.NoError(t, err)

	a, err := s.CreateProject("A", "")
	require.NoError(t, err)
	b, err := s.CreateProject("B", "")
	require.NoError(t, err)

	_, err = s.AddTask(a.ID, "t1", "", nil)
	require.NoError(t, err)
	_, err = s.AddTask(a.ID, "t2", "", nil)
	require.NoError(t, err)
	_, err = s.AddTask(b.ID, "t3", "", nil)
	require.NoError(t, err)

	_, err = s.AddTask(b.ID, "t4", "", nil)
	assert.ErrorIs(t, err, types.ErrLimitExceeded)
	assert.Equal(t, 3, s.Stats().Tasks)
}

func TestTaskIDsGloballyUnique(t *testing.T) {
	s := newTestStore(t)
	a, err := s.CreateProject("A", "")
	require.NoError(t, err)
	b, err := s.CreateProject("B", "")
	require.NoError(t, err)

	seen := map[int]bool{}
	for i := 0; i < 3; i++ {
		ta, err := s.AddTask(a.ID, fmt.Sprintf("a%d", i), "", nil)
		require.NoError(t, err)
		tb, err := s.AddTask(b.ID, fmt.Sprintf("b%d", i), "", nil)
		require.NoError(t, err)

		for _, id := range []int{ta.ID, tb.ID} {
			assert.False(t, seen[id], "task id %d reused", id)
			seen[id] = true
		}
	}
}

func TestUpdateTaskStatus(t *testing.T) {
	s := newTestStore(t)
	p, err := s.CreateProject("A", "")
	require.NoError(t, err)
	task, err := s.AddTask(p.ID, "t", "", nil)
	require.NoError(t, err)

	got, err := s.UpdateTaskStatus(p.ID, task.ID, types.StatusDoing)
	require.NoError(t, err)
	assert.Equal(t, types.StatusDoing, got.Status)

	t.Run("invalid status keeps prior state", func(t *testing.T) {
		_, err := s.UpdateTaskStatus(p.ID, task.ID, types.Status("blocked"))
		assert.ErrorIs(t, err, types.ErrValidation)
		assert.Equal(t, types.StatusDoing, task.Status)
	})

	t.Run("unknown task", func(t *testing.T) {
		_, err := s.UpdateTaskStatus(p.ID, 999, types.StatusDone)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := s.UpdateTaskStatus(999, task.ID, types.StatusDone)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestUpdateTask(t *testing.T) {
	s := newTestStore(t)
	p, err := s.CreateProject("A", "")
	require.NoError(t, err)
	task, err := s.AddTask(p.ID, "original", "desc", nil)
	require.NoError(t, err)

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		title := "renamed"
		got, err := s.UpdateTask(p.ID, task.ID, &title, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "renamed", got.Title)
		assert.Equal(t, "desc", got.Description)
		assert.Nil(t, got.Deadline)
	})

	t.Run("deadline update", func(t *testing.T) {
		deadline, err := types.ParseDeadline("2026-01-15")
		require.NoError(t, err)
		got, err := s.UpdateTask(p.ID, task.ID, nil, nil, deadline)
		require.NoError(t, err)
		assert.Equal(t, deadline, got.Deadline)
	})

	t.Run("blank title rejected without mutation", func(t *testing.T) {
		blank := "  "
		desc := "should not land"
		_, err := s.UpdateTask(p.ID, task.ID, &blank, &desc, nil)
		assert.ErrorIs(t, err, types.ErrValidation)
		assert.Equal(t, "renamed", task.Title)
		assert.Equal(t, "desc", task.Description)
	})
}

func TestDeleteTask(t *testing.T) {
	s, err := NewStore(types.Limits{MaxProjects: 5, MaxTasks: 2})
	require.NoError(t, err)
	p, err := s.CreateProject("A", "")
	require.NoError(t, err)

	t1, err := s.AddTask(p.ID, "t1", "", nil)
	require.NoError(t, err)
	_, err = s.AddTask(p.ID, "t2", "", nil)
	require.NoError(t, err)

	require.NoError(t, s.DeleteTask(p.ID, t1.ID))
	assert.ErrorIs(t, s.DeleteTask(p.ID, t1.ID), types.ErrNotFound)

	t.Run("frees limit headroom but not the id", func(t *testing.T) {
		t3, err := s.AddTask(p.ID, "t3", "", nil)
		require.NoError(t, err)
		assert.Equal(t, 3, t3.ID, "ids are never reused")
	})
}

func TestDeleteProjectCascades(t *testing.T) {
	s, err := NewStore(types.Limits{MaxProjects: 5, MaxTasks: 4})
	require.NoError(t, err)

	a, err := s.CreateProject("A", "")
	require.NoError(t, err)
	b, err := s.CreateProject("B", "")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = s.AddTask(a.ID, fmt.Sprintf("a%d", i), "", nil)
		require.NoError(t, err)
	}
	_, err = s.AddTask(b.ID, "b0", "", nil)
	require.NoError(t, err)

	require.NoError(t, s.DeleteProject(a.ID))

	_, err = s.GetProject(a.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Equal(t, 1, s.Stats().Tasks, "cascaded tasks leave the store-wide count")

	t.Run("freed name may be reused, id may not", func(t *testing.T) {
		again, err := s.CreateProject("A", "")
		require.NoError(t, err)
		assert.Equal(t, 3, again.ID)
	})

	t.Run("freed task headroom is usable", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			_, err := s.AddTask(b.ID, fmt.Sprintf("b%d", i+1), "", nil)
			require.NoError(t, err)
		}
		_, err := s.AddTask(b.ID, "over", "", nil)
		assert.ErrorIs(t, err, types.ErrLimitExceeded)
	})
}

func TestProjectStats(t *testing.T) {
	s := newTestStore(t)
	p, err := s.CreateProject("Portfolio Website", "")
	require.NoError(t, err)

	deadline, err := types.ParseDeadline("2025-10-30")
	require.NoError(t, err)
	task, err := s.AddTask(p.ID, "Design homepage", "", deadline)
	require.NoError(t, err)
	require.Equal(t, types.StatusTodo, task.Status)

	_, err = s.UpdateTaskStatus(p.ID, task.ID, types.StatusDoing)
	require.NoError(t, err)

	stats, err := s.ProjectStats(p.ID)
	require.NoError(t, err)
	assert.Equal(t, types.ProjectStats{Total: 1, Todo: 0, Doing: 1, Done: 0}, stats)

	_, err = s.ProjectStats(999)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestStoreStats(t *testing.T) {
	s := newTestStore(t)
	a, err := s.CreateProject("A", "")
	require.NoError(t, err)
	b, err := s.CreateProject("B", "")
	require.NoError(t, err)

	ta, err := s.AddTask(a.ID, "ta", "", nil)
	require.NoError(t, err)
	_, err = s.AddTask(b.ID, "tb1", "", nil)
	require.NoError(t, err)
	tb2, err := s.AddTask(b.ID, "tb2", "", nil)
	require.NoError(t, err)

	_, err = s.UpdateTaskStatus(a.ID, ta.ID, types.StatusDoing)
	require.NoError(t, err)
	_, err = s.UpdateTaskStatus(b.ID, tb2.ID, types.StatusDone)
	require.NoError(t, err)

	got := s.Stats()
	assert.Equal(t, StoreStats{
		Projects: 2,
		Tasks:    3,
		Todo:     1,
		Doing:    1,
		Done:     1,
		Limits:   s.Limits(),
	}, got)
	assert.Equal(t, got.Tasks, got.Todo+got.Doing+got.Done)
}

func TestAutocloseOverdue(t *testing.T) {
	s := newTestStore(t)
	p, err := s.CreateProject("A", "")
	require.NoError(t, err)

	now := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)
	past, err := types.ParseDeadline("2025-10-15")
	require.NoError(t, err)
	future, err := types.ParseDeadline("2025-12-01")
	require.NoError(t, err)

	overdue, err := s.AddTask(p.ID, "overdue", "", past)
	require.NoError(t, err)
	upcoming, err := s.AddTask(p.ID, "upcoming", "", future)
	require.NoError(t, err)
	noDeadline, err := s.AddTask(p.ID, "no deadline", "", nil)
	require.NoError(t, err)
	alreadyDone, err := s.AddTask(p.ID, "already done", "", past)
	require.NoError(t, err)
	_, err = s.UpdateTaskStatus(p.ID, alreadyDone.ID, types.StatusDone)
	require.NoError(t, err)

	closed := s.AutocloseOverdue(now)
	assert.Equal(t, 1, closed)

	assert.Equal(t, types.StatusDone, overdue.Status)
	require.NotNil(t, overdue.ClosedAt)
	assert.Equal(t, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), *overdue.ClosedAt)

	assert.Equal(t, types.StatusTodo, upcoming.Status)
	assert.Equal(t, types.StatusTodo, noDeadline.Status)
	assert.Nil(t, alreadyDone.ClosedAt, "tasks done before the sweep keep no closing date")

	t.Run("second pass with the same date is a no-op", func(t *testing.T) {
		assert.Equal(t, 0, s.AutocloseOverdue(now))
	})
}
