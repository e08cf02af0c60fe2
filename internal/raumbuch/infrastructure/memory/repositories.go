package memory

import (
	"context"
	"errors"
	"sort"

	"elektro-raumbuch/internal/raumbuch/domain"
)

type projectRepo struct{ s *Store }

func (r projectRepo) Create(_ context.Context, project *domain.Project) error {
	if project == nil {
		return errors.New("memory: nil project")
	}
	stamp(&project.CreatedAt, &project.UpdatedAt)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.seq++
	r.s.projectSeq[project.ID] = r.s.seq
	r.s.projects[project.ID] = *project
	return nil
}

func (r projectRepo) Get(_ context.Context, id string) (*domain.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	project, ok := r.s.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &project, nil
}

func (r projectRepo) List(_ context.Context) ([]domain.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	projects := make([]domain.Project, 0, len(r.s.projects))
	for _, project := range r.s.projects {
		projects = append(projects, project)
	}
	// Newest first, insertion sequence as the tie-break.
	sort.SliceStable(projects, func(i, j int) bool {
		return r.s.projectSeq[projects[i].ID] > r.s.projectSeq[projects[j].ID]
	})
	return projects, nil
}

func (r projectRepo) Update(_ context.Context, project *domain.Project) error {
	if project == nil {
		return errors.New("memory: nil project")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[project.ID]; !ok {
		return domain.ErrNotFound
	}
	stamp(&project.CreatedAt, &project.UpdatedAt)
	r.s.projects[project.ID] = *project
	return nil
}

func (r projectRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.projects, id)
	delete(r.s.projectSeq, id)
	for zoneID, zone := range r.s.zones {
		if zone.ProjectID == id {
			r.s.deleteZoneLocked(zoneID)
		}
	}
	for tradeID, trade := range r.s.trades {
		if trade.ProjectID == id {
			r.s.deleteTradeLocked(tradeID)
		}
	}
	for deviceID, device := range r.s.devices {
		if device.ProjectID == id {
			delete(r.s.devices, deviceID)
		}
	}
	for connectionID, connection := range r.s.connections {
		if connection.ProjectID == id {
			delete(r.s.connections, connectionID)
		}
	}
	for installZoneID, installZone := range r.s.installZones {
		if installZone.ProjectID == id {
			delete(r.s.installZones, installZoneID)
		}
	}
	return nil
}

func (r projectRepo) Counts(_ context.Context, id string) (domain.ProjectCounts, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var counts domain.ProjectCounts
	for _, zone := range r.s.zones {
		if zone.ProjectID == id {
			counts.Zones++
		}
	}
	for _, trade := range r.s.trades {
		if trade.ProjectID == id {
			counts.Trades++
		}
	}
	for _, device := range r.s.devices {
		if device.ProjectID == id {
			counts.Devices++
		}
	}
	return counts, nil
}

// deleteZoneLocked removes a zone with its rooms and their placements.
func (s *Store) deleteZoneLocked(zoneID string) {
	delete(s.zones, zoneID)
	for roomID, room := range s.rooms {
		if room.ZoneID == zoneID {
			s.deleteRoomLocked(roomID)
		}
	}
}

func (s *Store) deleteRoomLocked(roomID string) {
	delete(s.rooms, roomID)
	for roomDeviceID, roomDevice := range s.roomDevices {
		if roomDevice.RoomID == roomID {
			delete(s.roomDevices, roomDeviceID)
		}
	}
}

func (s *Store) deleteTradeLocked(tradeID string) {
	delete(s.trades, tradeID)
	for categoryID, category := range s.categories {
		if category.TradeID == tradeID {
			delete(s.categories, categoryID)
		}
	}
}

type zoneRepo struct{ s *Store }

func (r zoneRepo) Create(_ context.Context, zone *domain.Zone) error {
	if zone == nil {
		return errors.New("memory: nil zone")
	}
	stamp(&zone.CreatedAt, &zone.UpdatedAt)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.zones[zone.ID] = *zone
	return nil
}

func (r zoneRepo) Get(_ context.Context, id string) (*domain.Zone, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	zone, ok := r.s.zones[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &zone, nil
}

func (r zoneRepo) ListByProject(_ context.Context, projectID string) ([]domain.Zone, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var zones []domain.Zone
	for _, zone := range r.s.zones {
		if zone.ProjectID == projectID {
			zones = append(zones, zone)
		}
	}
	sortByOrder(zones, func(z domain.Zone) int { return z.Order })
	return zones, nil
}

func (r zoneRepo) Update(_ context.Context, zone *domain.Zone) error {
	if zone == nil {
		return errors.New("memory: nil zone")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.zones[zone.ID]; !ok {
		return domain.ErrNotFound
	}
	stamp(&zone.CreatedAt, &zone.UpdatedAt)
	r.s.zones[zone.ID] = *zone
	return nil
}

func (r zoneRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.zones[id]; !ok {
		return domain.ErrNotFound
	}
	r.s.deleteZoneLocked(id)
	return nil
}

func (r zoneRepo) NextOrder(_ context.Context, projectID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	next := 0
	for _, zone := range r.s.zones {
		if zone.ProjectID == projectID && zone.Order >= next {
			next = zone.Order + 1
		}
	}
	return next, nil
}

type roomRepo struct{ s *Store }

func (r roomRepo) Create(_ context.Context, room *domain.Room) error {
	if room == nil {
		return errors.New("memory: nil room")
	}
	stamp(&room.CreatedAt, &room.UpdatedAt)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.rooms[room.ID] = *room
	return nil
}

func (r roomRepo) Get(_ context.Context, id string) (*domain.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	room, ok := r.s.rooms[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &room, nil
}

func (r roomRepo) ListByZone(_ context.Context, zoneID string) ([]domain.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rooms []domain.Room
	for _, room := range r.s.rooms {
		if room.ZoneID == zoneID {
			rooms = append(rooms, room)
		}
	}
	sortByOrder(rooms, func(rm domain.Room) int { return rm.Order })
	return rooms, nil
}

func (r roomRepo) Update(_ context.Context, room *domain.Room) error {
	if room == nil {
		return errors.New("memory: nil room")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.rooms[room.ID]; !ok {
		return domain.ErrNotFound
	}
	stamp(&room.CreatedAt, &room.UpdatedAt)
	r.s.rooms[room.ID] = *room
	return nil
}

func (r roomRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.rooms[id]; !ok {
		return domain.ErrNotFound
	}
	r.s.deleteRoomLocked(id)
	return nil
}

func (r roomRepo) NextOrder(_ context.Context, zoneID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	next := 0
	for _, room := range r.s.rooms {
		if room.ZoneID == zoneID && room.Order >= next {
			next = room.Order + 1
		}
	}
	return next, nil
}

type deviceRepo struct{ s *Store }

func (r deviceRepo) Create(_ context.Context, device *domain.Device) error {
	if device == nil {
		return errors.New("memory: nil device")
	}
	stamp(&device.CreatedAt, &device.UpdatedAt)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.devices[device.ID] = *device
	return nil
}

func (r deviceRepo) Get(_ context.Context, id string) (*domain.Device, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	device, ok := r.s.devices[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &device, nil
}

func (r deviceRepo) ListByProject(_ context.Context, projectID string) ([]domain.Device, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var devices []domain.Device
	for _, device := range r.s.devices {
		if device.ProjectID == projectID {
			devices = append(devices, device)
		}
	}
	sort.SliceStable(devices, func(i, j int) bool { return devices[i].Name < devices[j].Name })
	return devices, nil
}

func (r deviceRepo) Update(_ context.Context, device *domain.Device) error {
	if device == nil {
		return errors.New("memory: nil device")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.devices[device.ID]; !ok {
		return domain.ErrNotFound
	}
	stamp(&device.CreatedAt, &device.UpdatedAt)
	r.s.devices[device.ID] = *device
	return nil
}

func (r deviceRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.devices[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.devices, id)
	// Placements keep their designation but lose the catalog link,
	// mirroring ON DELETE SET NULL.
	for roomDeviceID, roomDevice := range r.s.roomDevices {
		if roomDevice.DeviceID == id {
			roomDevice.DeviceID = ""
			r.s.roomDevices[roomDeviceID] = roomDevice
		}
	}
	return nil
}

type roomDeviceRepo struct{ s *Store }

func (r roomDeviceRepo) Create(_ context.Context, roomDevice *domain.RoomDevice) error {
	if roomDevice == nil {
		return errors.New("memory: nil room device")
	}
	stamp(&roomDevice.CreatedAt, &roomDevice.UpdatedAt)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.roomDevices[roomDevice.ID] = *roomDevice
	return nil
}

func (r roomDeviceRepo) Get(_ context.Context, id string) (*domain.RoomDevice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	roomDevice, ok := r.s.roomDevices[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &roomDevice, nil
}

func (r roomDeviceRepo) ListByRoom(_ context.Context, roomID string) ([]domain.RoomDevice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var roomDevices []domain.RoomDevice
	for _, roomDevice := range r.s.roomDevices {
		if roomDevice.RoomID == roomID {
			roomDevices = append(roomDevices, roomDevice)
		}
	}
	sortByOrder(roomDevices, func(rd domain.RoomDevice) int { return rd.Order })
	return roomDevices, nil
}

func (r roomDeviceRepo) Update(_ context.Context, roomDevice *domain.RoomDevice) error {
	if roomDevice == nil {
		return errors.New("memory: nil room device")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.roomDevices[roomDevice.ID]; !ok {
		return domain.ErrNotFound
	}
	stamp(&roomDevice.CreatedAt, &roomDevice.UpdatedAt)
	r.s.roomDevices[roomDevice.ID] = *roomDevice
	return nil
}

func (r roomDeviceRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.roomDevices[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.roomDevices, id)
	return nil
}

func (r roomDeviceRepo) NextOrder(_ context.Context, roomID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	next := 0
	for _, roomDevice := range r.s.roomDevices {
		if roomDevice.RoomID == roomID && roomDevice.Order >= next {
			next = roomDevice.Order + 1
		}
	}
	return next, nil
}

type tradeRepo struct{ s *Store }

func (r tradeRepo) Create(_ context.Context, trade *domain.Trade) error {
	if trade == nil {
		return errors.New("memory: nil trade")
	}
	stamp(&trade.CreatedAt, &trade.UpdatedAt)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.trades[trade.ID] = *trade
	return nil
}

func (r tradeRepo) Get(_ context.Context, id string) (*domain.Trade, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	trade, ok := r.s.trades[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &trade, nil
}

func (r tradeRepo) ListByProject(_ context.Context, projectID string) ([]domain.Trade, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var trades []domain.Trade
	for _, trade := range r.s.trades {
		if trade.ProjectID == projectID {
			trades = append(trades, trade)
		}
	}
	sortByOrder(trades, func(t domain.Trade) int { return t.Order })
	return trades, nil
}

func (r tradeRepo) Update(_ context.Context, trade *domain.Trade) error {
	if trade == nil {
		return errors.New("memory: nil trade")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.trades[trade.ID]; !ok {
		return domain.ErrNotFound
	}
	stamp(&trade.CreatedAt, &trade.UpdatedAt)
	r.s.trades[trade.ID] = *trade
	return nil
}

func (r tradeRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.trades[id]; !ok {
		return domain.ErrNotFound
	}
	r.s.deleteTradeLocked(id)
	return nil
}

func (r tradeRepo) NextOrder(_ context.Context, projectID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	next := 0
	for _, trade := range r.s.trades {
		if trade.ProjectID == projectID && trade.Order >= next {
			next = trade.Order + 1
		}
	}
	return next, nil
}

type categoryRepo struct{ s *Store }

func (r categoryRepo) Create(_ context.Context, category *domain.Category) error {
	if category == nil {
		return errors.New("memory: nil category")
	}
	stamp(&category.CreatedAt, &category.UpdatedAt)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.categories[category.ID] = *category
	return nil
}

func (r categoryRepo) Get(_ context.Context, id string) (*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	category, ok := r.s.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &category, nil
}

func (r categoryRepo) ListByTrade(_ context.Context, tradeID string) ([]domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var categories []domain.Category
	for _, category := range r.s.categories {
		if category.TradeID == tradeID {
			categories = append(categories, category)
		}
	}
	sortByOrder(categories, func(c domain.Category) int { return c.Order })
	return categories, nil
}

func (r categoryRepo) Update(_ context.Context, category *domain.Category) error {
	if category == nil {
		return errors.New("memory: nil category")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[category.ID]; !ok {
		return domain.ErrNotFound
	}
	stamp(&category.CreatedAt, &category.UpdatedAt)
	r.s.categories[category.ID] = *category
	return nil
}

func (r categoryRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.categories, id)
	return nil
}

func (r categoryRepo) NextOrder(_ context.Context, tradeID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	next := 0
	for _, category := range r.s.categories {
		if category.TradeID == tradeID && category.Order >= next {
			next = category.Order + 1
		}
	}
	return next, nil
}

type connectionRepo struct{ s *Store }

func (r connectionRepo) Create(_ context.Context, connection *domain.Connection) error {
	if connection == nil {
		return errors.New("memory: nil connection")
	}
	stamp(&connection.CreatedAt, &connection.UpdatedAt)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.connections[connection.ID] = *connection
	return nil
}

func (r connectionRepo) Get(_ context.Context, id string) (*domain.Connection, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	connection, ok := r.s.connections[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &connection, nil
}

func (r connectionRepo) ListByProject(_ context.Context, projectID string) ([]domain.Connection, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var connections []domain.Connection
	for _, connection := range r.s.connections {
		if connection.ProjectID == projectID {
			connections = append(connections, connection)
		}
	}
	sort.SliceStable(connections, func(i, j int) bool { return connections[i].Name < connections[j].Name })
	return connections, nil
}

func (r connectionRepo) Update(_ context.Context, connection *domain.Connection) error {
	if connection == nil {
		return errors.New("memory: nil connection")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.connections[connection.ID]; !ok {
		return domain.ErrNotFound
	}
	stamp(&connection.CreatedAt, &connection.UpdatedAt)
	r.s.connections[connection.ID] = *connection
	return nil
}

func (r connectionRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.connections[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.connections, id)
	return nil
}

type installZoneRepo struct{ s *Store }

func (r installZoneRepo) Create(_ context.Context, installZone *domain.InstallZone) error {
	if installZone == nil {
		return errors.New("memory: nil install zone")
	}
	stamp(&installZone.CreatedAt, &installZone.UpdatedAt)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.installZones[installZone.ID] = *installZone
	return nil
}

func (r installZoneRepo) Get(_ context.Context, id string) (*domain.InstallZone, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	installZone, ok := r.s.installZones[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &installZone, nil
}

func (r installZoneRepo) ListByProject(_ context.Context, projectID string) ([]domain.InstallZone, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var installZones []domain.InstallZone
	for _, installZone := range r.s.installZones {
		if installZone.ProjectID == projectID {
			installZones = append(installZones, installZone)
		}
	}
	sortByOrder(installZones, func(iz domain.InstallZone) int { return iz.Order })
	return installZones, nil
}

func (r installZoneRepo) Update(_ context.Context, installZone *domain.InstallZone) error {
	if installZone == nil {
		return errors.New("memory: nil install zone")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.installZones[installZone.ID]; !ok {
		return domain.ErrNotFound
	}
	stamp(&installZone.CreatedAt, &installZone.UpdatedAt)
	r.s.installZones[installZone.ID] = *installZone
	return nil
}

func (r installZoneRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.installZones[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.installZones, id)
	return nil
}

func (r installZoneRepo) NextOrder(_ context.Context, projectID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	next := 0
	for _, installZone := range r.s.installZones {
		if installZone.ProjectID == projectID && installZone.Order >= next {
			next = installZone.Order + 1
		}
	}
	return next, nil
}
