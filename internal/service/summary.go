package service

import (
	"context"
	"errors"

	"tareas/internal/models"
	"tareas/internal/storage/sqlite"
)

// ProjectSummary aggregates the tasks of one project; the project must
// exist.
func (s *Service) ProjectSummary(ctx context.Context, projectID int64) (models.ProjectSummary, error) {
	if _, err := s.store.ProjectByID(ctx, projectID); err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			return models.ProjectSummary{}, notFoundError("project not found")
		}
		return models.ProjectSummary{}, err
	}
	return s.store.ProjectSummary(ctx, projectID)
}

// GlobalSummary aggregates the whole store.
func (s *Service) GlobalSummary(ctx context.Context) (models.GlobalSummary, error) {
	return s.store.GlobalSummary(ctx)
}
