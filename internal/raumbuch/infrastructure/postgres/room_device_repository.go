package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"elektro-raumbuch/internal/raumbuch/domain"
)

// RoomDeviceRepository is a Postgres implementation for room-device placements.
type RoomDeviceRepository struct {
	db DBTX
}

// NewRoomDeviceRepository constructs a repository.
func NewRoomDeviceRepository(db DBTX) *RoomDeviceRepository {
	return &RoomDeviceRepository{db: db}
}

// Create inserts a room-device placement.
func (r *RoomDeviceRepository) Create(ctx context.Context, roomDevice *domain.RoomDevice) error {
	if r == nil || r.db == nil {
		return errors.New("room device repo: nil db")
	}
	if roomDevice == nil {
		return errors.New("room device repo: nil room device")
	}
	now := time.Now().UTC()
	if roomDevice.CreatedAt.IsZero() {
		roomDevice.CreatedAt = now
	}
	roomDevice.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO room_devices (
	id, room_id, device_id, designation, code, total_code,
	trade_id, category_id, connection_id, install_zone_id,
	cable_type, target, quantity, sort_order, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		roomDevice.ID, roomDevice.RoomID, nullIfEmpty(roomDevice.DeviceID), roomDevice.Designation,
		nullIfEmpty(roomDevice.Code), nullIfEmpty(roomDevice.TotalCode),
		nullIfEmpty(roomDevice.TradeID), nullIfEmpty(roomDevice.CategoryID),
		nullIfEmpty(roomDevice.ConnectionID), nullIfEmpty(roomDevice.InstallZoneID),
		nullIfEmpty(roomDevice.CableType), nullIfEmpty(roomDevice.Target),
		roomDevice.Quantity, roomDevice.Order, roomDevice.CreatedAt, roomDevice.UpdatedAt)
	return err
}

// Get loads a room device by id.
func (r *RoomDeviceRepository) Get(ctx context.Context, id string) (*domain.RoomDevice, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("room device repo: nil db")
	}
	if id == "" {
		return nil, errors.New("room device repo: empty id")
	}

	row := r.db.QueryRowContext(ctx, selectRoomDevice+` WHERE id = $1 LIMIT 1`, id)
	roomDevice, err := scanRoomDevice(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return roomDevice, nil
}

// ListByRoom returns a room's placements in order.
func (r *RoomDeviceRepository) ListByRoom(ctx context.Context, roomID string) ([]domain.RoomDevice, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("room device repo: nil db")
	}
	if roomID == "" {
		return nil, errors.New("room device repo: empty room id")
	}

	rows, err := r.db.QueryContext(ctx, selectRoomDevice+` WHERE room_id = $1 ORDER BY sort_order ASC`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RoomDevice
	for rows.Next() {
		roomDevice, err := scanRoomDevice(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *roomDevice)
	}
	return result, rows.Err()
}

// Update writes all mutable room-device fields.
func (r *RoomDeviceRepository) Update(ctx context.Context, roomDevice *domain.RoomDevice) error {
	if r == nil || r.db == nil {
		return errors.New("room device repo: nil db")
	}
	if roomDevice == nil {
		return errors.New("room device repo: nil room device")
	}
	roomDevice.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, `
UPDATE room_devices
SET device_id = $2, designation = $3, code = $4, total_code = $5,
	trade_id = $6, category_id = $7, connection_id = $8, install_zone_id = $9,
	cable_type = $10, target = $11, quantity = $12, sort_order = $13, updated_at = $14
WHERE id = $1`,
		roomDevice.ID, nullIfEmpty(roomDevice.DeviceID), roomDevice.Designation,
		nullIfEmpty(roomDevice.Code), nullIfEmpty(roomDevice.TotalCode),
		nullIfEmpty(roomDevice.TradeID), nullIfEmpty(roomDevice.CategoryID),
		nullIfEmpty(roomDevice.ConnectionID), nullIfEmpty(roomDevice.InstallZoneID),
		nullIfEmpty(roomDevice.CableType), nullIfEmpty(roomDevice.Target),
		roomDevice.Quantity, roomDevice.Order, roomDevice.UpdatedAt)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Delete removes a room-device placement.
func (r *RoomDeviceRepository) Delete(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errors.New("room device repo: nil db")
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM room_devices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// NextOrder returns max(sort_order)+1 within the room, 0 when empty.
func (r *RoomDeviceRepository) NextOrder(ctx context.Context, roomID string) (int, error) {
	if r == nil || r.db == nil {
		return 0, errors.New("room device repo: nil db")
	}
	return nextOrder(ctx, r.db, `SELECT MAX(sort_order) FROM room_devices WHERE room_id = $1`, roomID)
}

const selectRoomDevice = `
SELECT id, room_id, device_id, designation, code, total_code,
	trade_id, category_id, connection_id, install_zone_id,
	cable_type, target, quantity, sort_order, created_at, updated_at
FROM room_devices`

func scanRoomDevice(scan func(dest ...any) error) (*domain.RoomDevice, error) {
	var (
		roomDevice    domain.RoomDevice
		deviceID      sql.NullString
		code          sql.NullString
		totalCode     sql.NullString
		tradeID       sql.NullString
		categoryID    sql.NullString
		connectionID  sql.NullString
		installZoneID sql.NullString
		cableType     sql.NullString
		target        sql.NullString
	)
	if err := scan(&roomDevice.ID, &roomDevice.RoomID, &deviceID, &roomDevice.Designation, &code, &totalCode,
		&tradeID, &categoryID, &connectionID, &installZoneID,
		&cableType, &target, &roomDevice.Quantity, &roomDevice.Order,
		&roomDevice.CreatedAt, &roomDevice.UpdatedAt); err != nil {
		return nil, err
	}
	roomDevice.DeviceID = deviceID.String
	roomDevice.Code = code.String
	roomDevice.TotalCode = totalCode.String
	roomDevice.TradeID = tradeID.String
	roomDevice.CategoryID = categoryID.String
	roomDevice.ConnectionID = connectionID.String
	roomDevice.InstallZoneID = installZoneID.String
	roomDevice.CableType = cableType.String
	roomDevice.Target = target.String
	roomDevice.CreatedAt = roomDevice.CreatedAt.UTC()
	roomDevice.UpdatedAt = roomDevice.UpdatedAt.UTC()
	return &roomDevice, nil
}
