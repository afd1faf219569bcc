package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tareas/internal/models"
)

const taskColumns = `id, description, state, priority, project_id, created_at`

// TaskFilter narrows a task listing. Nil fields are not applied; the
// equality filters commute. Contains matches the description
// case-insensitively. Order is "asc" or "desc" over created_at, with the
// id tie-break following the same direction.
type TaskFilter struct {
	ProjectID *int64
	State     *models.State
	Priority  *models.Priority
	Contains  string
	Order     string
}

// InsertTask persists a new task and returns its assigned id.
func (s *Store) InsertTask(ctx context.Context, t models.Task) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks(description, state, priority, project_id, created_at) VALUES(?, ?, ?, ?, ?)`,
		t.Description, t.State, t.Priority, t.ProjectID, formatTime(t.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("task id: %w", err)
	}
	return id, nil
}

// TaskByID fetches a single task or ErrNotFound.
func (s *Store) TaskByID(ctx context.Context, id int64) (models.Task, error) {
	row := s.db.QueryRowxContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// ListTasks returns tasks matching the filter, ordered by created_at.
func (s *Store) ListTasks(ctx context.Context, f TaskFilter) ([]models.Task, error) {
	var (
		conditions []string
		args       []any
	)
	if f.ProjectID != nil {
		conditions = append(conditions, "project_id = ?")
		args = append(args, *f.ProjectID)
	}
	if f.State != nil {
		conditions = append(conditions, "state = ?")
		args = append(args, *f.State)
	}
	if f.Priority != nil {
		conditions = append(conditions, "priority = ?")
		args = append(args, *f.Priority)
	}
	if f.Contains != "" {
		conditions = append(conditions, "LOWER(description) LIKE LOWER(?)")
		args = append(args, "%"+f.Contains+"%")
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	direction := "ASC"
	if f.Order == "desc" {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY created_at %s, id %s", direction, direction)

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// UpdateTask writes the full mutable column set of a task row, including
// project_id when the task moves to another project.
func (s *Store) UpdateTask(ctx context.Context, t models.Task) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET description = ?, state = ?, priority = ?, project_id = ? WHERE id = ?`,
		t.Description, t.State, t.Priority, t.ProjectID, t.ID)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTask removes a task by id or returns ErrNotFound.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTask(scan func(...any) error) (models.Task, error) {
	var (
		t         models.Task
		createdAt string
	)
	if err := scan(&t.ID, &t.Description, &t.State, &t.Priority, &t.ProjectID, &createdAt); err != nil {
		return models.Task{}, err
	}
	ts, err := parseTime(createdAt)
	if err != nil {
		return models.Task{}, err
	}
	t.CreatedAt = ts
	return t, nil
}
