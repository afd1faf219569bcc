package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tareas/internal/models"
)

// ProjectSummary aggregates the tasks of one project. Every state and
// priority appears in the maps, zero-valued when absent.
func (s *Store) ProjectSummary(ctx context.Context, projectID int64) (models.ProjectSummary, error) {
	summary := models.ProjectSummary{
		ByState:    emptyStateCounts(),
		ByPriority: emptyPriorityCounts(),
	}

	rows, err := s.db.QueryxContext(ctx,
		`SELECT state, priority, COUNT(*) FROM tasks WHERE project_id = ? GROUP BY state, priority`,
		projectID)
	if err != nil {
		return models.ProjectSummary{}, fmt.Errorf("project summary: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			state    models.State
			priority models.Priority
			count    int64
		)
		if err := rows.Scan(&state, &priority, &count); err != nil {
			return models.ProjectSummary{}, fmt.Errorf("scan summary row: %w", err)
		}
		summary.Total += count
		summary.ByState[state] += count
		summary.ByPriority[priority] += count
	}
	return summary, rows.Err()
}

// GlobalSummary aggregates the whole store. The project with the most
// tasks breaks ties by ascending id and is nil when no project has any
// task.
func (s *Store) GlobalSummary(ctx context.Context) (models.GlobalSummary, error) {
	summary := models.GlobalSummary{
		TasksByState: emptyStateCounts(),
	}

	err := s.db.GetContext(ctx, &summary.ProjectCount, `SELECT COUNT(*) FROM projects`)
	if err != nil {
		return models.GlobalSummary{}, fmt.Errorf("count projects: %w", err)
	}
	err = s.db.GetContext(ctx, &summary.TaskCount, `SELECT COUNT(*) FROM tasks`)
	if err != nil {
		return models.GlobalSummary{}, fmt.Errorf("count tasks: %w", err)
	}

	rows, err := s.db.QueryxContext(ctx, `SELECT state, COUNT(*) FROM tasks GROUP BY state`)
	if err != nil {
		return models.GlobalSummary{}, fmt.Errorf("tasks by state: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			state models.State
			count int64
		)
		if err := rows.Scan(&state, &count); err != nil {
			return models.GlobalSummary{}, fmt.Errorf("scan state count: %w", err)
		}
		summary.TasksByState[state] = count
	}
	if err := rows.Err(); err != nil {
		return models.GlobalSummary{}, err
	}

	var top models.ProjectRef
	err = s.db.QueryRowxContext(ctx,
		`SELECT p.id, p.name, COUNT(t.id) AS task_count
         FROM projects p LEFT JOIN tasks t ON t.project_id = p.id
         GROUP BY p.id
         ORDER BY task_count DESC, p.id ASC
         LIMIT 1`).Scan(&top.ID, &top.Name, &top.TaskCount)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// No projects at all.
	case err != nil:
		return models.GlobalSummary{}, fmt.Errorf("project with most tasks: %w", err)
	case top.TaskCount > 0:
		summary.ProjectWithMostTasks = &top
	}

	return summary, nil
}

func emptyStateCounts() map[models.State]int64 {
	counts := make(map[models.State]int64, len(models.States))
	for _, s := range models.States {
		counts[s] = 0
	}
	return counts
}

func emptyPriorityCounts() map[models.Priority]int64 {
	counts := make(map[models.Priority]int64, len(models.Priorities))
	for _, p := range models.Priorities {
		counts[p] = 0
	}
	return counts
}
