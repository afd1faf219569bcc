package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tareas/internal/models"
	"tareas/internal/service"
	"tareas/internal/storage/sqlite"
)

func newTestService(t *testing.T) *service.Service {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "tareas.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return service.New(store)
}

func createProject(t *testing.T, svc *service.Service, name string) models.Project {
	t.Helper()
	p, err := svc.CreateProject(context.Background(), service.CreateProjectInput{Name: name})
	require.NoError(t, err)
	return p
}

func createTask(t *testing.T, svc *service.Service, projectID int64, in service.CreateTaskInput) models.Task {
	t.Helper()
	task, err := svc.CreateTask(context.Background(), projectID, in)
	require.NoError(t, err)
	return task
}

func strPtr(s string) *string { return &s }

func TestCreateProjectTrimsAndReturnsRow(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, service.CreateProjectInput{Name: "  Alpha  "})
	require.NoError(t, err)
	assert.Positive(t, p.ID)
	assert.Equal(t, "Alpha", p.Name, "surrounding whitespace is trimmed before storing")
	assert.Nil(t, p.Description)
	assert.False(t, p.CreatedAt.IsZero())

	// Read-after-write: get yields the same non-derived fields.
	detail, err := svc.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, detail.Name)
	assert.Equal(t, p.CreatedAt, detail.CreatedAt)
	assert.Zero(t, detail.TaskCount)
}

func TestCreateProjectRejectsEmptyName(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateProject(context.Background(), service.CreateProjectInput{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, service.KindValidation, service.KindOf(err))
}

func TestCreateProjectDuplicateNameConflicts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	createProject(t, svc, "  Alpha  ")

	_, err := svc.CreateProject(ctx, service.CreateProjectInput{Name: "Alpha"})
	require.Error(t, err)
	assert.Equal(t, service.KindConflict, service.KindOf(err))

	// Names differing only by surrounding whitespace collide after trim.
	_, err = svc.CreateProject(ctx, service.CreateProjectInput{Name: " Alpha "})
	require.Error(t, err)
	assert.Equal(t, service.KindConflict, service.KindOf(err))
}

func TestUpdateProjectPatchSemantics(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, service.CreateProjectInput{
		Name:        "Alpha",
		Description: strPtr("keep me"),
	})
	require.NoError(t, err)

	// Empty patch leaves the row unchanged.
	same, err := svc.UpdateProject(ctx, p.ID, service.ProjectPatch{})
	require.NoError(t, err)
	assert.Equal(t, p, same)

	// Name-only patch keeps the description.
	renamed, err := svc.UpdateProject(ctx, p.ID, service.ProjectPatch{Name: strPtr("  Beta ")})
	require.NoError(t, err)
	assert.Equal(t, "Beta", renamed.Name)
	require.NotNil(t, renamed.Description)
	assert.Equal(t, "keep me", *renamed.Description)

	// Explicit null clears the description without touching the name.
	cleared, err := svc.UpdateProject(ctx, p.ID, service.ProjectPatch{Description: models.Null[string]()})
	require.NoError(t, err)
	assert.Equal(t, "Beta", cleared.Name)
	assert.Nil(t, cleared.Description)

	// Applying the same patch twice yields the same row.
	again, err := svc.UpdateProject(ctx, p.ID, service.ProjectPatch{Description: models.Null[string]()})
	require.NoError(t, err)
	assert.Equal(t, cleared, again)
}

func TestUpdateProjectDuplicateNameConflicts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	createProject(t, svc, "Alpha")
	beta := createProject(t, svc, "Beta")

	_, err := svc.UpdateProject(ctx, beta.ID, service.ProjectPatch{Name: strPtr("Alpha")})
	require.Error(t, err)
	assert.Equal(t, service.KindConflict, service.KindOf(err))

	// Renaming to its own current name is not a conflict.
	same, err := svc.UpdateProject(ctx, beta.ID, service.ProjectPatch{Name: strPtr("Beta")})
	require.NoError(t, err)
	assert.Equal(t, "Beta", same.Name)
}

func TestProjectNotFoundKinds(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetProject(ctx, 404)
	assert.Equal(t, service.KindNotFound, service.KindOf(err))

	_, err = svc.UpdateProject(ctx, 404, service.ProjectPatch{Name: strPtr("x")})
	assert.Equal(t, service.KindNotFound, service.KindOf(err))

	_, err = svc.DeleteProject(ctx, 404)
	assert.Equal(t, service.KindNotFound, service.KindOf(err))

	_, err = svc.ProjectSummary(ctx, 404)
	assert.Equal(t, service.KindNotFound, service.KindOf(err))

	_, err = svc.ListProjectTasks(ctx, 404, service.TaskListOptions{})
	assert.Equal(t, service.KindNotFound, service.KindOf(err))
}

func TestCreateTaskDefaults(t *testing.T) {
	svc := newTestService(t)
	p := createProject(t, svc, "Alpha")

	task := createTask(t, svc, p.ID, service.CreateTaskInput{Description: "  do the thing  "})
	assert.Equal(t, "do the thing", task.Description)
	assert.Equal(t, models.StatePending, task.State, "omitted state defaults to pending")
	assert.Equal(t, models.PriorityMedium, task.Priority, "omitted priority defaults to medium")
	assert.Equal(t, p.ID, task.ProjectID)
	assert.False(t, task.CreatedAt.IsZero())
}

func TestCreateTaskRejections(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	p := createProject(t, svc, "Alpha")

	_, err := svc.CreateTask(ctx, p.ID, service.CreateTaskInput{Description: "  "})
	assert.Equal(t, service.KindValidation, service.KindOf(err))

	_, err = svc.CreateTask(ctx, p.ID, service.CreateTaskInput{Description: "x", State: "cancelled"})
	assert.Equal(t, service.KindValidation, service.KindOf(err))

	_, err = svc.CreateTask(ctx, p.ID, service.CreateTaskInput{Description: "x", Priority: "urgent"})
	assert.Equal(t, service.KindValidation, service.KindOf(err))

	_, err = svc.CreateTask(ctx, 404, service.CreateTaskInput{Description: "x"})
	assert.Equal(t, service.KindBadReference, service.KindOf(err))
}

func TestUpdateTaskPatchSemantics(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	p := createProject(t, svc, "Alpha")
	task := createTask(t, svc, p.ID, service.CreateTaskInput{Description: "initial"})

	// Empty patch returns the current row unchanged.
	same, err := svc.UpdateTask(ctx, task.ID, service.TaskPatch{})
	require.NoError(t, err)
	assert.Equal(t, task, same)

	// Any state transition is allowed, including skipping in_progress.
	done, err := svc.UpdateTask(ctx, task.ID, service.TaskPatch{State: strPtr("done")})
	require.NoError(t, err)
	assert.Equal(t, models.StateDone, done.State)

	back, err := svc.UpdateTask(ctx, task.ID, service.TaskPatch{State: strPtr("pending")})
	require.NoError(t, err)
	assert.Equal(t, models.StatePending, back.State)

	// Idempotence: the same patch twice yields the same row.
	patch := service.TaskPatch{Description: strPtr(" polished "), Priority: strPtr("high")}
	first, err := svc.UpdateTask(ctx, task.ID, patch)
	require.NoError(t, err)
	second, err := svc.UpdateTask(ctx, task.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "polished", second.Description)

	_, err = svc.UpdateTask(ctx, task.ID, service.TaskPatch{Description: strPtr("  ")})
	assert.Equal(t, service.KindValidation, service.KindOf(err))

	_, err = svc.UpdateTask(ctx, 404, service.TaskPatch{})
	assert.Equal(t, service.KindNotFound, service.KindOf(err))
}

func TestMoveTaskBetweenProjects(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	a := createProject(t, svc, "A")
	b := createProject(t, svc, "B")
	task := createTask(t, svc, a.ID, service.CreateTaskInput{Description: "movable"})

	moved, err := svc.UpdateTask(ctx, task.ID, service.TaskPatch{ProjectID: &b.ID})
	require.NoError(t, err)
	assert.Equal(t, b.ID, moved.ProjectID)

	// Moving to a missing project fails and leaves the task unchanged.
	missing := int64(404)
	_, err = svc.UpdateTask(ctx, task.ID, service.TaskPatch{ProjectID: &missing})
	require.Error(t, err)
	assert.Equal(t, service.KindBadReference, service.KindOf(err))

	unchanged, err := svc.UpdateTask(ctx, task.ID, service.TaskPatch{})
	require.NoError(t, err)
	assert.Equal(t, b.ID, unchanged.ProjectID)
}

func TestListTasksScoping(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	a := createProject(t, svc, "A")
	createTask(t, svc, a.ID, service.CreateTaskInput{Description: "one"})
	createTask(t, svc, a.ID, service.CreateTaskInput{Description: "two", State: "done"})

	tasks, err := svc.ListTasks(ctx, service.TaskListOptions{})
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	tasks, err = svc.ListTasks(ctx, service.TaskListOptions{State: "done"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "two", tasks[0].Description)

	_, err = svc.ListTasks(ctx, service.TaskListOptions{Order: "sideways"})
	assert.Equal(t, service.KindValidation, service.KindOf(err))

	missing := int64(404)
	_, err = svc.ListTasks(ctx, service.TaskListOptions{ProjectID: &missing})
	assert.Equal(t, service.KindBadReference, service.KindOf(err))
}

func TestDeleteTask(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	p := createProject(t, svc, "Alpha")
	task := createTask(t, svc, p.ID, service.CreateTaskInput{Description: "gone soon"})

	require.NoError(t, svc.DeleteTask(ctx, task.ID))

	err := svc.DeleteTask(ctx, task.ID)
	assert.Equal(t, service.KindNotFound, service.KindOf(err))
}

func TestDeleteProjectReportsRemovedTasks(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	p := createProject(t, svc, "Alpha")
	createTask(t, svc, p.ID, service.CreateTaskInput{Description: "one"})
	createTask(t, svc, p.ID, service.CreateTaskInput{Description: "two"})

	removed, err := svc.DeleteProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	tasks, err := svc.ListTasks(ctx, service.TaskListOptions{})
	require.NoError(t, err)
	assert.Empty(t, tasks, "cascade leaves no orphan tasks")
}

func TestProjectSummaryFixture(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	a := createProject(t, svc, "A")

	createTask(t, svc, a.ID, service.CreateTaskInput{Description: "t1", State: "pending", Priority: "high"})
	createTask(t, svc, a.ID, service.CreateTaskInput{Description: "t2", State: "pending", Priority: "low"})
	createTask(t, svc, a.ID, service.CreateTaskInput{Description: "t3", State: "done", Priority: "medium"})

	summary, err := svc.ProjectSummary(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.Total)
	assert.Equal(t, int64(2), summary.ByState[models.StatePending])
	assert.Equal(t, int64(0), summary.ByState[models.StateInProgress])
	assert.Equal(t, int64(1), summary.ByState[models.StateDone])
	assert.Equal(t, int64(1), summary.ByPriority[models.PriorityLow])
	assert.Equal(t, int64(1), summary.ByPriority[models.PriorityMedium])
	assert.Equal(t, int64(1), summary.ByPriority[models.PriorityHigh])
}
