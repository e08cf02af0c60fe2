package application

import (
	"context"
	"errors"

	"elektro-raumbuch/internal/raumbuch/domain"
)

// RoomBook is the fully resolved project tree used by the exporters.
// Lookup ids on placements are resolved to display names so renderers
// never touch the repositories.
type RoomBook struct {
	Project domain.Project
	Zones   []RoomBookZone
}

// RoomBookZone is a zone with its rooms.
type RoomBookZone struct {
	Zone  domain.Zone
	Rooms []RoomBookRoom
}

// RoomBookRoom is a room with its placement lines.
type RoomBookRoom struct {
	Room  domain.Room
	Lines []RoomBookLine
}

// RoomBookLine is one placement with resolved reference names.
type RoomBookLine struct {
	Placement       domain.RoomDevice
	DeviceName      string
	TradeName       string
	CategoryName    string
	ConnectionName  string
	InstallZoneName string
}

// ExportService assembles room books for rendering.
type ExportService struct {
	repos domain.Repositories
}

// NewExportService constructs a service.
func NewExportService(repos domain.Repositories) (*ExportService, error) {
	if repos.Projects == nil {
		return nil, errors.New("export service: nil repositories")
	}
	return &ExportService{repos: repos}, nil
}

// BuildRoomBook loads the whole project tree with resolved names.
func (s *ExportService) BuildRoomBook(ctx context.Context, projectID string) (*RoomBook, error) {
	project, err := s.repos.Projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	deviceNames, err := s.deviceNames(ctx, projectID)
	if err != nil {
		return nil, err
	}
	tradeNames, categoryNames, err := s.tradeAndCategoryNames(ctx, projectID)
	if err != nil {
		return nil, err
	}
	connectionNames, err := s.connectionNames(ctx, projectID)
	if err != nil {
		return nil, err
	}
	installZoneNames, err := s.installZoneNames(ctx, projectID)
	if err != nil {
		return nil, err
	}

	zones, err := s.repos.Zones.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	book := &RoomBook{Project: *project, Zones: make([]RoomBookZone, 0, len(zones))}
	for _, zone := range zones {
		rooms, err := s.repos.Rooms.ListByZone(ctx, zone.ID)
		if err != nil {
			return nil, err
		}
		bookZone := RoomBookZone{Zone: zone, Rooms: make([]RoomBookRoom, 0, len(rooms))}
		for _, room := range rooms {
			placements, err := s.repos.RoomDevices.ListByRoom(ctx, room.ID)
			if err != nil {
				return nil, err
			}
			bookRoom := RoomBookRoom{Room: room, Lines: make([]RoomBookLine, 0, len(placements))}
			for _, placement := range placements {
				bookRoom.Lines = append(bookRoom.Lines, RoomBookLine{
					Placement:       placement,
					DeviceName:      deviceNames[placement.DeviceID],
					TradeName:       tradeNames[placement.TradeID],
					CategoryName:    categoryNames[placement.CategoryID],
					ConnectionName:  connectionNames[placement.ConnectionID],
					InstallZoneName: installZoneNames[placement.InstallZoneID],
				})
			}
			bookZone.Rooms = append(bookZone.Rooms, bookRoom)
		}
		book.Zones = append(book.Zones, bookZone)
	}
	return book, nil
}

func (s *ExportService) deviceNames(ctx context.Context, projectID string) (map[string]string, error) {
	devices, err := s.repos.Devices.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(devices))
	for _, device := range devices {
		names[device.ID] = device.Name
	}
	return names, nil
}

func (s *ExportService) tradeAndCategoryNames(ctx context.Context, projectID string) (map[string]string, map[string]string, error) {
	trades, err := s.repos.Trades.ListByProject(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	tradeNames := make(map[string]string, len(trades))
	categoryNames := make(map[string]string)
	for _, trade := range trades {
		tradeNames[trade.ID] = trade.Name
		categories, err := s.repos.Categories.ListByTrade(ctx, trade.ID)
		if err != nil {
			return nil, nil, err
		}
		for _, category := range categories {
			categoryNames[category.ID] = category.Name
		}
	}
	return tradeNames, categoryNames, nil
}

func (s *ExportService) connectionNames(ctx context.Context, projectID string) (map[string]string, error) {
	connections, err := s.repos.Connections.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(connections))
	for _, connection := range connections {
		names[connection.ID] = connection.Name
	}
	return names, nil
}

func (s *ExportService) installZoneNames(ctx context.Context, projectID string) (map[string]string, error) {
	installZones, err := s.repos.InstallZones.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(installZones))
	for _, installZone := range installZones {
		names[installZone.ID] = installZone.Name
	}
	return names, nil
}
