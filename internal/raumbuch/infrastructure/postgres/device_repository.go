package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"elektro-raumbuch/internal/raumbuch/domain"
)

// DeviceRepository is a Postgres implementation for catalog devices.
type DeviceRepository struct {
	db DBTX
}

// NewDeviceRepository constructs a repository.
func NewDeviceRepository(db DBTX) *DeviceRepository {
	return &DeviceRepository{db: db}
}

// Create inserts a device.
func (r *DeviceRepository) Create(ctx context.Context, device *domain.Device) error {
	if r == nil || r.db == nil {
		return errors.New("device repo: nil db")
	}
	if device == nil {
		return errors.New("device repo: nil device")
	}
	now := time.Now().UTC()
	if device.CreatedAt.IsZero() {
		device.CreatedAt = now
	}
	device.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO devices (id, project_id, name, description, code, trade_id, category_id, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		device.ID, device.ProjectID, device.Name, nullIfEmpty(device.Description), nullIfEmpty(device.Code),
		nullIfEmpty(device.TradeID), nullIfEmpty(device.CategoryID), device.CreatedAt, device.UpdatedAt)
	return err
}

// Get loads a device by id.
func (r *DeviceRepository) Get(ctx context.Context, id string) (*domain.Device, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("device repo: nil db")
	}
	if id == "" {
		return nil, errors.New("device repo: empty id")
	}

	row := r.db.QueryRowContext(ctx, `
SELECT id, project_id, name, description, code, trade_id, category_id, created_at, updated_at
FROM devices
WHERE id = $1
LIMIT 1`, id)

	device, err := scanDevice(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return device, nil
}

// ListByProject returns a project's device catalog, by name.
func (r *DeviceRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Device, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("device repo: nil db")
	}
	if projectID == "" {
		return nil, errors.New("device repo: empty project id")
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, project_id, name, description, code, trade_id, category_id, created_at, updated_at
FROM devices
WHERE project_id = $1
ORDER BY name ASC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var devices []domain.Device
	for rows.Next() {
		device, err := scanDevice(rows.Scan)
		if err != nil {
			return nil, err
		}
		devices = append(devices, *device)
	}
	return devices, rows.Err()
}

// Update writes all mutable device fields.
func (r *DeviceRepository) Update(ctx context.Context, device *domain.Device) error {
	if r == nil || r.db == nil {
		return errors.New("device repo: nil db")
	}
	if device == nil {
		return errors.New("device repo: nil device")
	}
	device.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, `
UPDATE devices
SET name = $2, description = $3, code = $4, trade_id = $5, category_id = $6, updated_at = $7
WHERE id = $1`,
		device.ID, device.Name, nullIfEmpty(device.Description), nullIfEmpty(device.Code),
		nullIfEmpty(device.TradeID), nullIfEmpty(device.CategoryID), device.UpdatedAt)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Delete removes a device from the catalog.
func (r *DeviceRepository) Delete(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errors.New("device repo: nil db")
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM devices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func scanDevice(scan func(dest ...any) error) (*domain.Device, error) {
	var (
		device      domain.Device
		description sql.NullString
		code        sql.NullString
		tradeID     sql.NullString
		categoryID  sql.NullString
	)
	if err := scan(&device.ID, &device.ProjectID, &device.Name, &description, &code,
		&tradeID, &categoryID, &device.CreatedAt, &device.UpdatedAt); err != nil {
		return nil, err
	}
	device.Description = description.String
	device.Code = code.String
	device.TradeID = tradeID.String
	device.CategoryID = categoryID.String
	device.CreatedAt = device.CreatedAt.UTC()
	device.UpdatedAt = device.UpdatedAt.UTC()
	return &device, nil
}
