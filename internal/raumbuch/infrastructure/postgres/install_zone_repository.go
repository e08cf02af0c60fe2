package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"elektro-raumbuch/internal/raumbuch/domain"
)

// InstallZoneRepository is a Postgres implementation for install zones.
type InstallZoneRepository struct {
	db DBTX
}

// NewInstallZoneRepository constructs a repository.
func NewInstallZoneRepository(db DBTX) *InstallZoneRepository {
	return &InstallZoneRepository{db: db}
}

// Create inserts an install zone.
func (r *InstallZoneRepository) Create(ctx context.Context, installZone *domain.InstallZone) error {
	if r == nil || r.db == nil {
		return errors.New("install zone repo: nil db")
	}
	if installZone == nil {
		return errors.New("install zone repo: nil install zone")
	}
	now := time.Now().UTC()
	if installZone.CreatedAt.IsZero() {
		installZone.CreatedAt = now
	}
	installZone.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO install_zones (id, project_id, name, code, sort_order, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		installZone.ID, installZone.ProjectID, installZone.Name, installZone.Code,
		installZone.Order, installZone.CreatedAt, installZone.UpdatedAt)
	return err
}

// Get loads an install zone by id.
func (r *InstallZoneRepository) Get(ctx context.Context, id string) (*domain.InstallZone, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("install zone repo: nil db")
	}
	if id == "" {
		return nil, errors.New("install zone repo: empty id")
	}

	var installZone domain.InstallZone
	err := r.db.QueryRowContext(ctx, `
SELECT id, project_id, name, code, sort_order, created_at, updated_at
FROM install_zones
WHERE id = $1
LIMIT 1`, id).Scan(&installZone.ID, &installZone.ProjectID, &installZone.Name, &installZone.Code,
		&installZone.Order, &installZone.CreatedAt, &installZone.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	installZone.CreatedAt = installZone.CreatedAt.UTC()
	installZone.UpdatedAt = installZone.UpdatedAt.UTC()
	return &installZone, nil
}

// ListByProject returns a project's install zones in order.
func (r *InstallZoneRepository) ListByProject(ctx context.Context, projectID string) ([]domain.InstallZone, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("install zone repo: nil db")
	}
	if projectID == "" {
		return nil, errors.New("install zone repo: empty project id")
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, project_id, name, code, sort_order, created_at, updated_at
FROM install_zones
WHERE project_id = $1
ORDER BY sort_order ASC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var installZones []domain.InstallZone
	for rows.Next() {
		var installZone domain.InstallZone
		if err := rows.Scan(&installZone.ID, &installZone.ProjectID, &installZone.Name, &installZone.Code,
			&installZone.Order, &installZone.CreatedAt, &installZone.UpdatedAt); err != nil {
			return nil, err
		}
		installZone.CreatedAt = installZone.CreatedAt.UTC()
		installZone.UpdatedAt = installZone.UpdatedAt.UTC()
		installZones = append(installZones, installZone)
	}
	return installZones, rows.Err()
}

// Update writes all mutable install-zone fields.
func (r *InstallZoneRepository) Update(ctx context.Context, installZone *domain.InstallZone) error {
	if r == nil || r.db == nil {
		return errors.New("install zone repo: nil db")
	}
	if installZone == nil {
		return errors.New("install zone repo: nil install zone")
	}
	installZone.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, `
UPDATE install_zones
SET name = $2, code = $3, sort_order = $4, updated_at = $5
WHERE id = $1`,
		installZone.ID, installZone.Name, installZone.Code, installZone.Order, installZone.UpdatedAt)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Delete removes an install zone.
func (r *InstallZoneRepository) Delete(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errors.New("install zone repo: nil db")
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM install_zones WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// NextOrder returns max(sort_order)+1 within the project, 0 when empty.
func (r *InstallZoneRepository) NextOrder(ctx context.Context, projectID string) (int, error) {
	if r == nil || r.db == nil {
		return 0, errors.New("install zone repo: nil db")
	}
	return nextOrder(ctx, r.db, `SELECT MAX(sort_order) FROM install_zones WHERE project_id = $1`, projectID)
}
