package service

import (
	"context"
	"errors"
	"fmt"

	"tareas/internal/models"
	"tareas/internal/storage/sqlite"
	"tareas/internal/validate"
)

// CreateProjectInput is the payload for a new project.
type CreateProjectInput struct {
	Name        string
	Description *string
}

// ProjectPatch carries the independently present-or-absent update fields.
// Description distinguishes "omitted" from "set to null".
type ProjectPatch struct {
	Name        *string
	Description models.Optional[string]
}

// CreateProject validates and inserts a project, enforcing the unique
// name, and returns the freshly read row.
func (s *Service) CreateProject(ctx context.Context, in CreateProjectInput) (models.Project, error) {
	name, err := validate.ProjectName(in.Name)
	if err != nil {
		return models.Project{}, validationError(err.Error())
	}

	// Checked first for the nicer message; the UNIQUE constraint below is
	// the authoritative arbiter under concurrency.
	if _, err := s.store.ProjectByName(ctx, name); err == nil {
		return models.Project{}, conflictError("duplicate project name")
	} else if !errors.Is(err, sqlite.ErrNotFound) {
		return models.Project{}, fmt.Errorf("check project name: %w", err)
	}

	id, err := s.store.InsertProject(ctx, name, in.Description, s.createdAt())
	if err != nil {
		if sqlite.IsUniqueViolation(err) {
			return models.Project{}, conflictError("duplicate project name")
		}
		return models.Project{}, err
	}

	project, err := s.store.ProjectByID(ctx, id)
	if err != nil {
		return models.Project{}, fmt.Errorf("read inserted project: %w", err)
	}
	return project, nil
}

// ListProjects returns projects, optionally filtered by a
// case-insensitive name substring.
func (s *Service) ListProjects(ctx context.Context, nameContains string) ([]models.Project, error) {
	return s.store.ListProjects(ctx, nameContains)
}

// GetProject returns a project augmented with its live task count.
func (s *Service) GetProject(ctx context.Context, id int64) (models.ProjectDetail, error) {
	project, err := s.store.ProjectByID(ctx, id)
	if errors.Is(err, sqlite.ErrNotFound) {
		return models.ProjectDetail{}, notFoundError("project not found")
	}
	if err != nil {
		return models.ProjectDetail{}, err
	}

	count, err := s.store.CountTasks(ctx, id)
	if err != nil {
		return models.ProjectDetail{}, err
	}
	return models.ProjectDetail{Project: project, TaskCount: count}, nil
}

// UpdateProject applies a partial update. An empty patch returns the
// current row unchanged.
func (s *Service) UpdateProject(ctx context.Context, id int64, patch ProjectPatch) (models.Project, error) {
	current, err := s.store.ProjectByID(ctx, id)
	if errors.Is(err, sqlite.ErrNotFound) {
		return models.Project{}, notFoundError("project not found")
	}
	if err != nil {
		return models.Project{}, err
	}

	if patch.Name == nil && !patch.Description.Set {
		return current, nil
	}

	if patch.Name != nil {
		name, err := validate.ProjectName(*patch.Name)
		if err != nil {
			return models.Project{}, validationError(err.Error())
		}
		other, err := s.store.ProjectByName(ctx, name)
		if err == nil && other.ID != id {
			return models.Project{}, conflictError("duplicate project name")
		}
		if err != nil && !errors.Is(err, sqlite.ErrNotFound) {
			return models.Project{}, fmt.Errorf("check project name: %w", err)
		}
		current.Name = name
	}
	if patch.Description.Set {
		if patch.Description.Valid {
			desc := patch.Description.Value
			current.Description = &desc
		} else {
			current.Description = nil
		}
	}

	if err := s.store.UpdateProject(ctx, current); err != nil {
		if sqlite.IsUniqueViolation(err) {
			return models.Project{}, conflictError("duplicate project name")
		}
		if errors.Is(err, sqlite.ErrNotFound) {
			return models.Project{}, notFoundError("project not found")
		}
		return models.Project{}, err
	}

	project, err := s.store.ProjectByID(ctx, id)
	if err != nil {
		return models.Project{}, fmt.Errorf("read updated project: %w", err)
	}
	return project, nil
}

// DeleteProject removes a project and cascades to its tasks, returning
// the number of tasks removed.
func (s *Service) DeleteProject(ctx context.Context, id int64) (int64, error) {
	removed, err := s.store.DeleteProject(ctx, id)
	if errors.Is(err, sqlite.ErrNotFound) {
		return 0, notFoundError("project not found")
	}
	if err != nil {
		return 0, err
	}
	return removed, nil
}
