package service

import (
	"context"
	"errors"
	"fmt"

	"tareas/internal/models"
	"tareas/internal/storage/sqlite"
	"tareas/internal/validate"
)

// CreateTaskInput is the payload for a new task. State and Priority are
// the raw supplied strings; empty means omitted and takes the default.
type CreateTaskInput struct {
	Description string
	State       string
	Priority    string
}

// TaskPatch carries the independently present-or-absent update fields.
// Setting ProjectID moves the task to another project.
type TaskPatch struct {
	Description *string
	State       *string
	Priority    *string
	ProjectID   *int64
}

// TaskListOptions narrows a task listing with raw filter values; each is
// validated against its closed set before the query runs.
type TaskListOptions struct {
	ProjectID *int64
	State     string
	Priority  string
	Contains  string
	Order     string
}

// CreateTask validates and inserts a task under the given project. The
// project id comes from the URL, never from the body.
func (s *Service) CreateTask(ctx context.Context, projectID int64, in CreateTaskInput) (models.Task, error) {
	description, err := validate.TaskDescription(in.Description)
	if err != nil {
		return models.Task{}, validationError(err.Error())
	}
	state, err := validate.State(in.State)
	if err != nil {
		return models.Task{}, validationError(err.Error())
	}
	priority, err := validate.Priority(in.Priority)
	if err != nil {
		return models.Task{}, validationError(err.Error())
	}

	if _, err := s.store.ProjectByID(ctx, projectID); err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			return models.Task{}, badReferenceError("referenced project does not exist")
		}
		return models.Task{}, err
	}

	id, err := s.store.InsertTask(ctx, models.Task{
		Description: description,
		State:       state,
		Priority:    priority,
		ProjectID:   projectID,
		CreatedAt:   s.createdAt(),
	})
	if err != nil {
		if sqlite.IsForeignKeyViolation(err) {
			return models.Task{}, badReferenceError("referenced project does not exist")
		}
		return models.Task{}, err
	}

	task, err := s.store.TaskByID(ctx, id)
	if err != nil {
		return models.Task{}, fmt.Errorf("read inserted task: %w", err)
	}
	return task, nil
}

// ListProjectTasks lists the tasks of one project; the project must
// exist.
func (s *Service) ListProjectTasks(ctx context.Context, projectID int64, opts TaskListOptions) ([]models.Task, error) {
	if _, err := s.store.ProjectByID(ctx, projectID); err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			return nil, notFoundError("project not found")
		}
		return nil, err
	}
	opts.ProjectID = &projectID
	return s.listTasks(ctx, opts)
}

// ListTasks lists tasks across all projects. Scoping to a missing
// project is a bad reference.
func (s *Service) ListTasks(ctx context.Context, opts TaskListOptions) ([]models.Task, error) {
	if opts.ProjectID != nil {
		if _, err := s.store.ProjectByID(ctx, *opts.ProjectID); err != nil {
			if errors.Is(err, sqlite.ErrNotFound) {
				return nil, badReferenceError("referenced project does not exist")
			}
			return nil, err
		}
	}
	return s.listTasks(ctx, opts)
}

func (s *Service) listTasks(ctx context.Context, opts TaskListOptions) ([]models.Task, error) {
	filter := sqlite.TaskFilter{
		ProjectID: opts.ProjectID,
		Contains:  opts.Contains,
	}

	if opts.State != "" {
		state, err := validate.State(opts.State)
		if err != nil {
			return nil, validationError(err.Error())
		}
		filter.State = &state
	}
	if opts.Priority != "" {
		priority, err := validate.Priority(opts.Priority)
		if err != nil {
			return nil, validationError(err.Error())
		}
		filter.Priority = &priority
	}

	order, err := validate.Order(opts.Order)
	if err != nil {
		return nil, validationError(err.Error())
	}
	filter.Order = order

	return s.store.ListTasks(ctx, filter)
}

// UpdateTask applies a partial update; any state transition is allowed.
// An empty patch returns the current row unchanged.
func (s *Service) UpdateTask(ctx context.Context, id int64, patch TaskPatch) (models.Task, error) {
	current, err := s.store.TaskByID(ctx, id)
	if errors.Is(err, sqlite.ErrNotFound) {
		return models.Task{}, notFoundError("task not found")
	}
	if err != nil {
		return models.Task{}, err
	}

	if patch.Description == nil && patch.State == nil && patch.Priority == nil && patch.ProjectID == nil {
		return current, nil
	}

	if patch.Description != nil {
		description, err := validate.TaskDescription(*patch.Description)
		if err != nil {
			return models.Task{}, validationError(err.Error())
		}
		current.Description = description
	}
	if patch.State != nil {
		// An explicit empty string is not the create-time default.
		state := models.State(*patch.State)
		if !state.Valid() {
			return models.Task{}, validationError(fmt.Sprintf("invalid state %q, must be one of pending, in_progress, done", *patch.State))
		}
		current.State = state
	}
	if patch.Priority != nil {
		priority := models.Priority(*patch.Priority)
		if !priority.Valid() {
			return models.Task{}, validationError(fmt.Sprintf("invalid priority %q, must be one of low, medium, high", *patch.Priority))
		}
		current.Priority = priority
	}
	if patch.ProjectID != nil {
		if _, err := s.store.ProjectByID(ctx, *patch.ProjectID); err != nil {
			if errors.Is(err, sqlite.ErrNotFound) {
				return models.Task{}, badReferenceError("referenced project does not exist")
			}
			return models.Task{}, err
		}
		current.ProjectID = *patch.ProjectID
	}

	if err := s.store.UpdateTask(ctx, current); err != nil {
		if sqlite.IsForeignKeyViolation(err) {
			return models.Task{}, badReferenceError("referenced project does not exist")
		}
		if errors.Is(err, sqlite.ErrNotFound) {
			return models.Task{}, notFoundError("task not found")
		}
		return models.Task{}, err
	}

	task, err := s.store.TaskByID(ctx, id)
	if err != nil {
		return models.Task{}, fmt.Errorf("read updated task: %w", err)
	}
	return task, nil
}

// DeleteTask removes a task by id.
func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	err := s.store.DeleteTask(ctx, id)
	if errors.Is(err, sqlite.ErrNotFound) {
		return notFoundError("task not found")
	}
	return err
}
