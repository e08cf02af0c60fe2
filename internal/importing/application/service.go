package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"elektro-raumbuch/internal/observability/metrics"
	"elektro-raumbuch/internal/raumbuch/domain"
)

// ErrEmptyProjectName is returned when the caller provides no project name.
var ErrEmptyProjectName = errors.New("import: empty project name")

// Stats counts entities actually created by one import, not rows processed.
type Stats struct {
	Zones        int `json:"zones"`
	Rooms        int `json:"rooms"`
	Devices      int `json:"devices"`
	Trades       int `json:"trades"`
	Categories   int `json:"categories"`
	Connections  int `json:"connections"`
	InstallZones int `json:"installZones"`
}

// Result is the import outcome.
type Result struct {
	ProjectID string `json:"projectId"`
	Stats     Stats  `json:"stats"`
}

// Service runs the room-book import pipeline: one worksheet plus a
// project name in, a fully populated project graph out. The whole
// materialization runs in a single transaction, so a failure partway
// leaves no partial project behind.
type Service struct {
	store  domain.Store
	cfg    Config
	logger *zap.Logger
}

// NewService constructs a Service.
func NewService(store domain.Store, cfg Config, logger *zap.Logger) (*Service, error) {
	if store == nil {
		return nil, errors.New("import service: nil store")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, cfg: cfg, logger: logger}, nil
}

// ImportExcel parses the workbook and materializes the project graph.
// The worksheet check happens before any write.
func (s *Service) ImportExcel(ctx context.Context, fileBytes []byte, projectName, description string) (*Result, error) {
	if projectName == "" {
		return nil, ErrEmptyProjectName
	}

	rows, err := ParseSheet(fileBytes, s.cfg)
	if err != nil {
		return nil, err
	}
	if description == "" {
		description = "Imported from Excel: " + time.Now().UTC().Format(time.RFC3339)
	}

	result := &Result{}
	skipped := 0
	err = s.store.RunInTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		project := &domain.Project{
			ID:          uuid.NewString(),
			Name:        projectName,
			Description: description,
		}
		if err := project.Validate(); err != nil {
			return err
		}
		if err := repos.Projects.Create(ctx, project); err != nil {
			return err
		}
		result.ProjectID = project.ID

		lookups, err := materializeMetadata(ctx, repos, project.ID, rows, &result.Stats)
		if err != nil {
			return err
		}
		skipped, err = materializeGraph(ctx, repos, project.ID, rows, lookups, &result.Stats)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.AddImportRowsSkipped(skipped)
	metrics.AddEntitiesCreated("zone", result.Stats.Zones)
	metrics.AddEntitiesCreated("room", result.Stats.Rooms)
	metrics.AddEntitiesCreated("device", result.Stats.Devices)
	metrics.AddEntitiesCreated("trade", result.Stats.Trades)
	metrics.AddEntitiesCreated("category", result.Stats.Categories)
	metrics.AddEntitiesCreated("connection", result.Stats.Connections)
	metrics.AddEntitiesCreated("install_zone", result.Stats.InstallZones)

	s.logger.Info("room book imported",
		zap.String("project_id", result.ProjectID),
		zap.Int("rows", len(rows)),
		zap.Int("rows_skipped", skipped),
		zap.Int("zones", result.Stats.Zones),
		zap.Int("rooms", result.Stats.Rooms),
		zap.Int("devices", result.Stats.Devices),
	)
	return result, nil
}

// lookupTables map sheet names onto created entity ids. They live for
// one import invocation only.
type lookupTables struct {
	trades       map[string]string
	categories   map[string]string
	connections  map[string]string
	installZones map[string]string
}

// materializeMetadata creates one record per distinct trade, category,
// connection and install-zone name, in first-seen order.
func materializeMetadata(ctx context.Context, repos domain.Repositories, projectID string, rows []Row, stats *Stats) (*lookupTables, error) {
	tradeNames := distinct(rows, func(r Row) string { return r.Trade })
	categoryNames := distinct(rows, func(r Row) string { return r.Category })
	connectionNames := distinct(rows, func(r Row) string { return r.Connection })
	installZoneNames := distinct(rows, func(r Row) string { return r.InstallZone })

	lookups := &lookupTables{
		trades:       make(map[string]string, len(tradeNames)),
		categories:   make(map[string]string, len(categoryNames)),
		connections:  make(map[string]string, len(connectionNames)),
		installZones: make(map[string]string, len(installZoneNames)),
	}

	codes := newCodeSet()
	order := 1
	for _, name := range tradeNames {
		trade := &domain.Trade{
			ID:        uuid.NewString(),
			ProjectID: projectID,
			Name:      name,
			Code:      codes.next(name),
			Order:     order,
		}
		if err := repos.Trades.Create(ctx, trade); err != nil {
			return nil, err
		}
		lookups.trades[name] = trade.ID
		stats.Trades++
		order++
	}

	// Categories hang off the first created trade; the sheet carries no
	// per-trade ownership. Without any trade they are dropped.
	var firstTradeID string
	if len(tradeNames) > 0 {
		firstTradeID = lookups.trades[tradeNames[0]]
	}
	codes = newCodeSet()
	order = 1
	for _, name := range categoryNames {
		if firstTradeID == "" {
			continue
		}
		category := &domain.Category{
			ID:      uuid.NewString(),
			TradeID: firstTradeID,
			Name:    name,
			Code:    codes.next(name),
			Order:   order,
		}
		if err := repos.Categories.Create(ctx, category); err != nil {
			return nil, err
		}
		lookups.categories[name] = category.ID
		stats.Categories++
		order++
	}

	codes = newCodeSet()
	for _, name := range connectionNames {
		connection := &domain.Connection{
			ID:        uuid.NewString(),
			ProjectID: projectID,
			Name:      name,
			Code:      codes.next(name),
		}
		if err := repos.Connections.Create(ctx, connection); err != nil {
			return nil, err
		}
		lookups.connections[name] = connection.ID
		stats.Connections++
	}

	codes = newCodeSet()
	order = 1
	for _, name := range installZoneNames {
		installZone := &domain.InstallZone{
			ID:        uuid.NewString(),
			ProjectID: projectID,
			Name:      name,
			Code:      codes.next(name),
			Order:     order,
		}
		if err := repos.InstallZones.Create(ctx, installZone); err != nil {
			return nil, err
		}
		lookups.installZones[name] = installZone.ID
		stats.InstallZones++
		order++
	}

	return lookups, nil
}

// materializeGraph walks the rows in order, creating zones, rooms,
// catalog devices and placements. Returns the number of skipped rows.
func materializeGraph(ctx context.Context, repos domain.Repositories, projectID string, rows []Row, lookups *lookupTables, stats *Stats) (int, error) {
	zoneIDs := make(map[string]string)
	roomIDs := make(map[string]string)
	deviceIDs := make(map[string]string)

	zoneOrder := 1
	roomOrder := 1
	placementOrder := 1
	skipped := 0

	for _, row := range rows {
		if row.Zone == "" || row.RoomName == "" {
			skipped++
			continue
		}

		if _, seen := zoneIDs[row.Zone]; !seen {
			code := row.ZoneNumber
			if code == "" {
				code = upperPrefix(row.Zone, 3)
			}
			zone := &domain.Zone{
				ID:        uuid.NewString(),
				ProjectID: projectID,
				Code:      code,
				Name:      row.Zone,
				Order:     zoneOrder,
			}
			if err := repos.Zones.Create(ctx, zone); err != nil {
				return skipped, err
			}
			zoneIDs[row.Zone] = zone.ID
			stats.Zones++
			zoneOrder++
		}

		roomKey := row.Zone + ":" + row.RoomCode
		if row.RoomCode == "" {
			roomKey = row.Zone + ":" + row.RoomName
		}
		if _, seen := roomIDs[roomKey]; !seen {
			code := row.RoomCode
			if code == "" {
				code = upperPrefix(row.RoomName, 3)
			}
			number := row.RoomNumber
			if number == 0 {
				number = roomOrder
			}
			room := &domain.Room{
				ID:     uuid.NewString(),
				ZoneID: zoneIDs[row.Zone],
				Code:   code,
				Number: number,
				Name:   row.RoomName,
				Order:  roomOrder,
			}
			if err := repos.Rooms.Create(ctx, room); err != nil {
				return skipped, err
			}
			roomIDs[roomKey] = room.ID
			stats.Rooms++
			roomOrder++
		}

		if row.Designation == "" {
			continue
		}

		if _, seen := deviceIDs[row.Designation]; !seen {
			code := row.Code
			if code == "" {
				code = upperPrefix(row.Designation, 5)
			}
			device := &domain.Device{
				ID:         uuid.NewString(),
				ProjectID:  projectID,
				Name:       row.Designation,
				Code:       code,
				TradeID:    lookups.trades[row.Trade],
				CategoryID: lookups.categories[row.Category],
			}
			if err := repos.Devices.Create(ctx, device); err != nil {
				return skipped, err
			}
			deviceIDs[row.Designation] = device.ID
			stats.Devices++
		}

		quantity := row.Quantity
		if quantity < 1 {
			quantity = 1
		}
		placement := &domain.RoomDevice{
			ID:            uuid.NewString(),
			RoomID:        roomIDs[roomKey],
			DeviceID:      deviceIDs[row.Designation],
			Designation:   row.Designation,
			Code:          row.Code,
			TotalCode:     row.TotalCode,
			TradeID:       lookups.trades[row.Trade],
			CategoryID:    lookups.categories[row.Category],
			ConnectionID:  lookups.connections[row.Connection],
			InstallZoneID: lookups.installZones[row.InstallZone],
			CableType:     row.CableType,
			Target:        row.Target,
			Quantity:      quantity,
			Order:         placementOrder,
		}
		if err := repos.RoomDevices.Create(ctx, placement); err != nil {
			return skipped, err
		}
		placementOrder++
	}
	return skipped, nil
}

// distinct collects non-empty values in first-seen order.
func distinct(rows []Row, pick func(Row) string) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, row := range rows {
		value := pick(row)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		values = append(values, value)
	}
	return values
}
