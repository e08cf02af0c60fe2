package domain

import "context"

// Repositories bundles every entity repository over one storage handle.
// Inside RunInTx all repositories share the same transaction.
type Repositories struct {
	Projects     ProjectRepository
	Zones        ZoneRepository
	Rooms        RoomRepository
	Devices      DeviceRepository
	RoomDevices  RoomDeviceRepository
	Trades       TradeRepository
	Categories   CategoryRepository
	Connections  ConnectionRepository
	InstallZones InstallZoneRepository
}

// Store exposes the repository set and atomic multi-entity writes.
type Store interface {
	Repos() Repositories
	RunInTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
