package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tareas/internal/models"
)

const projectColumns = `id, name, description, created_at`

// InsertProject persists a new project and returns its assigned id.
func (s *Store) InsertProject(ctx context.Context, name string, description *string, createdAt time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO projects(name, description, created_at) VALUES(?, ?, ?)`,
		name, description, formatTime(createdAt))
	if err != nil {
		return 0, fmt.Errorf("insert project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("project id: %w", err)
	}
	return id, nil
}

// ProjectByID fetches a single project or ErrNotFound.
func (s *Store) ProjectByID(ctx context.Context, id int64) (models.Project, error) {
	row := s.db.QueryRowxContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Project{}, ErrNotFound
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// ProjectByName fetches a project by its exact stored name or ErrNotFound.
func (s *Store) ProjectByName(ctx context.Context, name string) (models.Project, error) {
	row := s.db.QueryRowxContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE name = ?`, name)
	p, err := scanProject(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Project{}, ErrNotFound
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("get project by name: %w", err)
	}
	return p, nil
}

// ListProjects returns projects ordered by ascending id, optionally
// filtered by a case-insensitive name substring.
func (s *Store) ListProjects(ctx context.Context, nameContains string) ([]models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	var args []any
	if nameContains != "" {
		query += ` WHERE LOWER(name) LIKE LOWER(?)`
		args = append(args, "%"+nameContains+"%")
	}
	query += ` ORDER BY id ASC`

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// UpdateProject writes the full mutable column set of a project row.
// Merging the patch into the current row is the service's job.
func (s *Store) UpdateProject(ctx context.Context, p models.Project) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, description = ? WHERE id = ?`,
		p.Name, p.Description, p.ID)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
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

// DeleteProject removes a project and, through the cascade, all of its
// tasks. The pre-delete task count is returned.
func (s *Store) DeleteProject(ctx context.Context, id int64) (int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin delete project: %w", err)
	}
	defer tx.Rollback()

	var removed int64
	err = tx.GetContext(ctx, &removed,
		`SELECT COUNT(*) FROM tasks WHERE project_id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("count project tasks: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete project: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, ErrNotFound
	}

	return removed, tx.Commit()
}

// CountTasks returns the number of live tasks owned by a project.
func (s *Store) CountTasks(ctx context.Context, projectID int64) (int64, error) {
	var n int64
	err := s.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM tasks WHERE project_id = ?`, projectID)
	if err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}

func scanProject(scan func(...any) error) (models.Project, error) {
	var (
		p         models.Project
		createdAt string
	)
	if err := scan(&p.ID, &p.Name, &p.Description, &createdAt); err != nil {
		return models.Project{}, err
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return models.Project{}, err
	}
	p.CreatedAt = t
	return p, nil
}
