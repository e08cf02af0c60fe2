package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"elektro-raumbuch/internal/raumbuch/domain"
)

// Store is an in-memory implementation of every raumbuch repository,
// used by unit tests and demo mode. RunInTx gives rollback semantics by
// snapshotting the maps; transactions are serialized, which is enough
// for a store that never backs concurrent imports.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	seq          int
	projectSeq   map[string]int
	projects     map[string]domain.Project
	zones        map[string]domain.Zone
	rooms        map[string]domain.Room
	devices      map[string]domain.Device
	roomDevices  map[string]domain.RoomDevice
	trades       map[string]domain.Trade
	categories   map[string]domain.Category
	connections  map[string]domain.Connection
	installZones map[string]domain.InstallZone
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{
		projectSeq:   make(map[string]int),
		projects:     make(map[string]domain.Project),
		zones:        make(map[string]domain.Zone),
		rooms:        make(map[string]domain.Room),
		devices:      make(map[string]domain.Device),
		roomDevices:  make(map[string]domain.RoomDevice),
		trades:       make(map[string]domain.Trade),
		categories:   make(map[string]domain.Category),
		connections:  make(map[string]domain.Connection),
		installZones: make(map[string]domain.InstallZone),
	}
}

// Repos returns repositories bound to this store.
func (s *Store) Repos() domain.Repositories {
	return domain.Repositories{
		Projects:     projectRepo{s},
		Zones:        zoneRepo{s},
		Rooms:        roomRepo{s},
		Devices:      deviceRepo{s},
		RoomDevices:  roomDeviceRepo{s},
		Trades:       tradeRepo{s},
		Categories:   categoryRepo{s},
		Connections:  connectionRepo{s},
		InstallZones: installZoneRepo{s},
	}
}

// RunInTx runs fn against the store, restoring the pre-transaction state
// when fn returns an error.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snapshot := s.clone()
	if err := fn(ctx, s.Repos()); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

type state struct {
	seq          int
	projectSeq   map[string]int
	projects     map[string]domain.Project
	zones        map[string]domain.Zone
	rooms        map[string]domain.Room
	devices      map[string]domain.Device
	roomDevices  map[string]domain.RoomDevice
	trades       map[string]domain.Trade
	categories   map[string]domain.Category
	connections  map[string]domain.Connection
	installZones map[string]domain.InstallZone
}

func (s *Store) clone() state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return state{
		seq:          s.seq,
		projectSeq:   copyMap(s.projectSeq),
		projects:     copyMap(s.projects),
		zones:        copyMap(s.zones),
		rooms:        copyMap(s.rooms),
		devices:      copyMap(s.devices),
		roomDevices:  copyMap(s.roomDevices),
		trades:       copyMap(s.trades),
		categories:   copyMap(s.categories),
		connections:  copyMap(s.connections),
		installZones: copyMap(s.installZones),
	}
}

func (s *Store) restore(snapshot state) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq = snapshot.seq
	s.projectSeq = snapshot.projectSeq
	s.projects = snapshot.projects
	s.zones = snapshot.zones
	s.rooms = snapshot.rooms
	s.devices = snapshot.devices
	s.roomDevices = snapshot.roomDevices
	s.trades = snapshot.trades
	s.categories = snapshot.categories
	s.connections = snapshot.connections
	s.installZones = snapshot.installZones
}

func copyMap[V any](src map[string]V) map[string]V {
	dst := make(map[string]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func stamp(createdAt *time.Time, updatedAt *time.Time) {
	now := time.Now().UTC()
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}

func sortByOrder[T any](items []T, order func(T) int) {
	sort.SliceStable(items, func(i, j int) bool { return order(items[i]) < order(items[j]) })
}
