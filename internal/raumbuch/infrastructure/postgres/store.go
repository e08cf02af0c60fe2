package postgres

import (
	"context"
	"database/sql"
	"errors"

	"elektro-raumbuch/internal/raumbuch/domain"
)

// Store wires all entity repositories over one *sql.DB and opens
// transactions spanning the full set.
type Store struct {
	db *sql.DB
}

// NewStore constructs a store.
func NewStore(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("postgres store: nil db")
	}
	return &Store{db: db}, nil
}

// Repos returns repositories bound to the underlying connection pool.
func (s *Store) Repos() domain.Repositories {
	return newRepositories(s.db)
}

// RunInTx runs fn with repositories bound to a single transaction.
// Any error from fn rolls the transaction back.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	if s == nil || s.db == nil {
		return errors.New("postgres store: nil db")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(ctx, newRepositories(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func newRepositories(db DBTX) domain.Repositories {
	return domain.Repositories{
		Projects:     NewProjectRepository(db),
		Zones:        NewZoneRepository(db),
		Rooms:        NewRoomRepository(db),
		Devices:      NewDeviceRepository(db),
		RoomDevices:  NewRoomDeviceRepository(db),
		Trades:       NewTradeRepository(db),
		Categories:   NewCategoryRepository(db),
		Connections:  NewConnectionRepository(db),
		InstallZones: NewInstallZoneRepository(db),
	}
}
