package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"elektro-raumbuch/internal/raumbuch/domain"
)

// ZoneRepository is a Postgres implementation for zones.
type ZoneRepository struct {
	db DBTX
}

// NewZoneRepository constructs a repository.
func NewZoneRepository(db DBTX) *ZoneRepository {
	return &ZoneRepository{db: db}
}

// Create inserts a zone.
func (r *ZoneRepository) Create(ctx context.Context, zone *domain.Zone) error {
	if r == nil || r.db == nil {
		return errors.New("zone repo: nil db")
	}
	if zone == nil {
		return errors.New("zone repo: nil zone")
	}
	now := time.Now().UTC()
	if zone.CreatedAt.IsZero() {
		zone.CreatedAt = now
	}
	zone.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO zones (id, project_id, code, name, sort_order, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		zone.ID, zone.ProjectID, zone.Code, zone.Name, zone.Order, zone.CreatedAt, zone.UpdatedAt)
	return err
}

// Get loads a zone by id.
func (r *ZoneRepository) Get(ctx context.Context, id string) (*domain.Zone, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("zone repo: nil db")
	}
	if id == "" {
		return nil, errors.New("zone repo: empty id")
	}

	var zone domain.Zone
	err := r.db.QueryRowContext(ctx, `
SELECT id, project_id, code, name, sort_order, created_at, updated_at
FROM zones
WHERE id = $1
LIMIT 1`, id).Scan(&zone.ID, &zone.ProjectID, &zone.Code, &zone.Name, &zone.Order, &zone.CreatedAt, &zone.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	zone.CreatedAt = zone.CreatedAt.UTC()
	zone.UpdatedAt = zone.UpdatedAt.UTC()
	return &zone, nil
}

// ListByProject returns a project's zones in order.
func (r *ZoneRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Zone, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("zone repo: nil db")
	}
	if projectID == "" {
		return nil, errors.New("zone repo: empty project id")
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, project_id, code, name, sort_order, created_at, updated_at
FROM zones
WHERE project_id = $1
ORDER BY sort_order ASC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []domain.Zone
	for rows.Next() {
		var zone domain.Zone
		if err := rows.Scan(&zone.ID, &zone.ProjectID, &zone.Code, &zone.Name, &zone.Order, &zone.CreatedAt, &zone.UpdatedAt); err != nil {
			return nil, err
		}
		zone.CreatedAt = zone.CreatedAt.UTC()
		zone.UpdatedAt = zone.UpdatedAt.UTC()
		zones = append(zones, zone)
	}
	return zones, rows.Err()
}

// Update writes all mutable zone fields.
func (r *ZoneRepository) Update(ctx context.Context, zone *domain.Zone) error {
	if r == nil || r.db == nil {
		return errors.New("zone repo: nil db")
	}
	if zone == nil {
		return errors.New("zone repo: nil zone")
	}
	zone.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, `
UPDATE zones
SET code = $2, name = $3, sort_order = $4, updated_at = $5
WHERE id = $1`,
		zone.ID, zone.Code, zone.Name, zone.Order, zone.UpdatedAt)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Delete removes a zone; rooms below it cascade.
func (r *ZoneRepository) Delete(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errors.New("zone repo: nil db")
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM zones WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// NextOrder returns max(sort_order)+1 within the project, 0 when empty.
func (r *ZoneRepository) NextOrder(ctx context.Context, projectID string) (int, error) {
	if r == nil || r.db == nil {
		return 0, errors.New("zone repo: nil db")
	}
	return nextOrder(ctx, r.db, `SELECT MAX(sort_order) FROM zones WHERE project_id = $1`, projectID)
}

func nextOrder(ctx context.Context, db DBTX, query, parentID string) (int, error) {
	var max sql.NullInt64
	if err := db.QueryRowContext(ctx, query, parentID).Scan(&max); err != nil {
		return 0, err
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64) + 1, nil
}
