package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"elektro-raumbuch/internal/raumbuch/domain"
)

// ConnectionRepository is a Postgres implementation for connections.
type ConnectionRepository struct {
	db DBTX
}

// NewConnectionRepository constructs a repository.
func NewConnectionRepository(db DBTX) *ConnectionRepository {
	return &ConnectionRepository{db: db}
}

// Create inserts a connection.
func (r *ConnectionRepository) Create(ctx context.Context, connection *domain.Connection) error {
	if r == nil || r.db == nil {
		return errors.New("connection repo: nil db")
	}
	if connection == nil {
		return errors.New("connection repo: nil connection")
	}
	now := time.Now().UTC()
	if connection.CreatedAt.IsZero() {
		connection.CreatedAt = now
	}
	connection.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO connections (id, project_id, name, code, voltage, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		connection.ID, connection.ProjectID, connection.Name, connection.Code,
		nullIfEmpty(connection.Voltage), connection.CreatedAt, connection.UpdatedAt)
	return err
}

// Get loads a connection by id.
func (r *ConnectionRepository) Get(ctx context.Context, id string) (*domain.Connection, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("connection repo: nil db")
	}
	if id == "" {
		return nil, errors.New("connection repo: empty id")
	}

	var (
		connection domain.Connection
		voltage    sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `
SELECT id, project_id, name, code, voltage, created_at, updated_at
FROM connections
WHERE id = $1
LIMIT 1`, id).Scan(&connection.ID, &connection.ProjectID, &connection.Name, &connection.Code,
		&voltage, &connection.CreatedAt, &connection.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	connection.Voltage = voltage.String
	connection.CreatedAt = connection.CreatedAt.UTC()
	connection.UpdatedAt = connection.UpdatedAt.UTC()
	return &connection, nil
}

// ListByProject returns a project's connections by name.
func (r *ConnectionRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Connection, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("connection repo: nil db")
	}
	if projectID == "" {
		return nil, errors.New("connection repo: empty project id")
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, project_id, name, code, voltage, created_at, updated_at
FROM connections
WHERE project_id = $1
ORDER BY name ASC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var connections []domain.Connection
	for rows.Next() {
		var (
			connection domain.Connection
			voltage    sql.NullString
		)
		if err := rows.Scan(&connection.ID, &connection.ProjectID, &connection.Name, &connection.Code,
			&voltage, &connection.CreatedAt, &connection.UpdatedAt); err != nil {
			return nil, err
		}
		connection.Voltage = voltage.String
		connection.CreatedAt = connection.CreatedAt.UTC()
		connection.UpdatedAt = connection.UpdatedAt.UTC()
		connections = append(connections, connection)
	}
	return connections, rows.Err()
}

// Update writes all mutable connection fields.
func (r *ConnectionRepository) Update(ctx context.Context, connection *domain.Connection) error {
	if r == nil || r.db == nil {
		return errors.New("connection repo: nil db")
	}
	if connection == nil {
		return errors.New("connection repo: nil connection")
	}
	connection.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, `
UPDATE connections
SET name = $2, code = $3, voltage = $4, updated_at = $5
WHERE id = $1`,
		connection.ID, connection.Name, connection.Code, nullIfEmpty(connection.Voltage), connection.UpdatedAt)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Delete removes a connection.
func (r *ConnectionRepository) Delete(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errors.New("connection repo: nil db")
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM connections WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}
