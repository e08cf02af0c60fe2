package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"elektro-raumbuch/internal/raumbuch/domain"
)

// RoomRepository is a Postgres implementation for rooms.
type RoomRepository struct {
	db DBTX
}

// NewRoomRepository constructs a repository.
func NewRoomRepository(db DBTX) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create inserts a room.
func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	if r == nil || r.db == nil {
		return errors.New("room repo: nil db")
	}
	if room == nil {
		return errors.New("room repo: nil room")
	}
	now := time.Now().UTC()
	if room.CreatedAt.IsZero() {
		room.CreatedAt = now
	}
	room.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO rooms (id, zone_id, code, number, name, sort_order, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		room.ID, room.ZoneID, room.Code, room.Number, room.Name, room.Order, room.CreatedAt, room.UpdatedAt)
	return err
}

// Get loads a room by id.
func (r *RoomRepository) Get(ctx context.Context, id string) (*domain.Room, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("room repo: nil db")
	}
	if id == "" {
		return nil, errors.New("room repo: empty id")
	}

	var room domain.Room
	err := r.db.QueryRowContext(ctx, `
SELECT id, zone_id, code, number, name, sort_order, created_at, updated_at
FROM rooms
WHERE id = $1
LIMIT 1`, id).Scan(&room.ID, &room.ZoneID, &room.Code, &room.Number, &room.Name, &room.Order, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	room.CreatedAt = room.CreatedAt.UTC()
	room.UpdatedAt = room.UpdatedAt.UTC()
	return &room, nil
}

// ListByZone returns a zone's rooms in order.
func (r *RoomRepository) ListByZone(ctx context.Context, zoneID string) ([]domain.Room, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("room repo: nil db")
	}
	if zoneID == "" {
		return nil, errors.New("room repo: empty zone id")
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, zone_id, code, number, name, sort_order, created_at, updated_at
FROM rooms
WHERE zone_id = $1
ORDER BY sort_order ASC`, zoneID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Room
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.ZoneID, &room.Code, &room.Number, &room.Name, &room.Order, &room.CreatedAt, &room.UpdatedAt); err != nil {
			return nil, err
		}
		room.CreatedAt = room.CreatedAt.UTC()
		room.UpdatedAt = room.UpdatedAt.UTC()
		result = append(result, room)
	}
	return result, rows.Err()
}

// Update writes all mutable room fields.
func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	if r == nil || r.db == nil {
		return errors.New("room repo: nil db")
	}
	if room == nil {
		return errors.New("room repo: nil room")
	}
	room.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, `
UPDATE rooms
SET code = $2, number = $3, name = $4, sort_order = $5, updated_at = $6
WHERE id = $1`,
		room.ID, room.Code, room.Number, room.Name, room.Order, room.UpdatedAt)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Delete removes a room; its room-devices cascade.
func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errors.New("room repo: nil db")
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// NextOrder returns max(sort_order)+1 within the zone, 0 when empty.
func (r *RoomRepository) NextOrder(ctx context.Context, zoneID string) (int, error) {
	if r == nil || r.db == nil {
		return 0, errors.New("room repo: nil db")
	}
	return nextOrder(ctx, r.db, `SELECT MAX(sort_order) FROM rooms WHERE zone_id = $1`, zoneID)
}
