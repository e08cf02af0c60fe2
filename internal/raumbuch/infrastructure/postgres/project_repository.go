package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"elektro-raumbuch/internal/raumbuch/domain"
)

// ProjectRepository is a Postgres implementation for projects.
type ProjectRepository struct {
	db DBTX
}

// NewProjectRepository constructs a repository.
func NewProjectRepository(db DBTX) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a project.
func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	if r == nil || r.db == nil {
		return errors.New("project repo: nil db")
	}
	if project == nil {
		return errors.New("project repo: nil project")
	}
	now := time.Now().UTC()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	project.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO projects (id, name, description, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5)`,
		project.ID, project.Name, nullIfEmpty(project.Description), project.CreatedAt, project.UpdatedAt)
	return err
}

// Get loads a project by id.
func (r *ProjectRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("project repo: nil db")
	}
	if id == "" {
		return nil, errors.New("project repo: empty id")
	}

	row := r.db.QueryRowContext(ctx, `
SELECT id, name, description, created_at, updated_at
FROM projects
WHERE id = $1
LIMIT 1`, id)
	return scanProject(row)
}

// List returns all projects, newest first.
func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("project repo: nil db")
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, description, created_at, updated_at
FROM projects
ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var (
			project     domain.Project
			description sql.NullString
		)
		if err := rows.Scan(&project.ID, &project.Name, &description, &project.CreatedAt, &project.UpdatedAt); err != nil {
			return nil, err
		}
		project.Description = description.String
		project.CreatedAt = project.CreatedAt.UTC()
		project.UpdatedAt = project.UpdatedAt.UTC()
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

// Update writes all mutable project fields.
func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	if r == nil || r.db == nil {
		return errors.New("project repo: nil db")
	}
	if project == nil {
		return errors.New("project repo: nil project")
	}
	project.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, `
UPDATE projects
SET name = $2, description = $3, updated_at = $4
WHERE id = $1`,
		project.ID, project.Name, nullIfEmpty(project.Description), project.UpdatedAt)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Delete removes a project; the schema cascades to all children.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errors.New("project repo: nil db")
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Counts returns per-project child counts for list views.
func (r *ProjectRepository) Counts(ctx context.Context, id string) (domain.ProjectCounts, error) {
	var counts domain.ProjectCounts
	if r == nil || r.db == nil {
		return counts, errors.New("project repo: nil db")
	}
	err := r.db.QueryRowContext(ctx, `
SELECT
	(SELECT COUNT(*) FROM zones WHERE project_id = $1),
	(SELECT COUNT(*) FROM trades WHERE project_id = $1),
	(SELECT COUNT(*) FROM devices WHERE project_id = $1)`, id).
		Scan(&counts.Zones, &counts.Trades, &counts.Devices)
	return counts, err
}

func scanProject(row *sql.Row) (*domain.Project, error) {
	var (
		project     domain.Project
		description sql.NullString
	)
	if err := row.Scan(&project.ID, &project.Name, &description, &project.CreatedAt, &project.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	project.Description = description.String
	project.CreatedAt = project.CreatedAt.UTC()
	project.UpdatedAt = project.UpdatedAt.UTC()
	return &project, nil
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
