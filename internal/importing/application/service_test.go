package application

import (
	"context"
	"errors"
	"testing"

	"elektro-raumbuch/internal/raumbuch/domain"
	"elektro-raumbuch/internal/raumbuch/infrastructure/memory"
)

func newTestService(t *testing.T, store domain.Store) *Service {
	t.Helper()
	service, err := NewService(store, DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return service
}

func TestImportTwoRowsSharedRoom(t *testing.T) {
	store := memory.NewStore()
	service := newTestService(t, store)

	header := []string{"Zone", "Raum", "Bezeichnung", "Gewerk"}
	fileBytes := buildWorkbook(t, "Raumbuch", header, [][]any{
		{"EG", "Wohnzimmer", "Steckdose", "Elektro"},
		{"EG", "Wohnzimmer", "Lichtschalter", "Elektro"},
	})

	result, err := service.ImportExcel(context.Background(), fileBytes, "Neubau", "")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	want := Stats{Zones: 1, Rooms: 1, Devices: 2, Trades: 1}
	if result.Stats != want {
		t.Fatalf("stats = %+v, want %+v", result.Stats, want)
	}

	ctx := context.Background()
	repos := store.Repos()
	project, err := repos.Projects.Get(ctx, result.ProjectID)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if project.Name != "Neubau" {
		t.Fatalf("project name = %q", project.Name)
	}
	if project.Description == "" {
		t.Fatal("expected a default description")
	}

	zones, err := repos.Zones.ListByProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("list zones: %v", err)
	}
	if len(zones) != 1 || zones[0].Name != "EG" || zones[0].Order != 1 {
		t.Fatalf("zones = %+v", zones)
	}
	rooms, err := repos.Rooms.ListByZone(ctx, zones[0].ID)
	if err != nil {
		t.Fatalf("list rooms: %v", err)
	}
	if len(rooms) != 1 || rooms[0].Name != "Wohnzimmer" {
		t.Fatalf("rooms = %+v", rooms)
	}
	placements, err := repos.RoomDevices.ListByRoom(ctx, rooms[0].ID)
	if err != nil {
		t.Fatalf("list placements: %v", err)
	}
	if len(placements) != 2 {
		t.Fatalf("expected 2 placements, got %d", len(placements))
	}
	for i, placement := range placements {
		if placement.Quantity != 1 {
			t.Fatalf("placement quantity = %d, want 1", placement.Quantity)
		}
		if placement.Order != i+1 {
			t.Fatalf("placement order = %d, want %d", placement.Order, i+1)
		}
		if placement.TradeID == "" {
			t.Fatal("placement missing trade link")
		}
	}
}

func TestImportMissingWorksheetLeavesNoProject(t *testing.T) {
	store := memory.NewStore()
	service := newTestService(t, store)

	fileBytes := buildWorkbook(t, "Tabelle1", []string{"Zone", "Raum"}, [][]any{
		{"EG", "Flur"},
	})

	_, err := service.ImportExcel(context.Background(), fileBytes, "Neubau", "")
	if !errors.Is(err, ErrMissingWorksheet) {
		t.Fatalf("expected ErrMissingWorksheet, got %v", err)
	}

	projects, err := store.Repos().Projects.List(context.Background())
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if len(projects) != 0 {
		t.Fatalf("expected no projects, got %d", len(projects))
	}
}

func TestImportEmptyProjectName(t *testing.T) {
	service := newTestService(t, memory.NewStore())
	_, err := service.ImportExcel(context.Background(), nil, "", "")
	if !errors.Is(err, ErrEmptyProjectName) {
		t.Fatalf("expected ErrEmptyProjectName, got %v", err)
	}
}

func TestImportSkipsIncompleteRows(t *testing.T) {
	store := memory.NewStore()
	service := newTestService(t, store)

	header := []string{"Zone", "Raum", "Bezeichnung"}
	fileBytes := buildWorkbook(t, "Raumbuch", header, [][]any{
		{"EG", "", "Steckdose"},
		{"", "Flur", "Steckdose"},
		{"OG", "Bad", "Spiegelleuchte"},
	})

	result, err := service.ImportExcel(context.Background(), fileBytes, "Altbau", "")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Stats.Zones != 1 || result.Stats.Rooms != 1 || result.Stats.Devices != 1 {
		t.Fatalf("stats = %+v", result.Stats)
	}
}

func TestImportRoomWithoutDevices(t *testing.T) {
	store := memory.NewStore()
	service := newTestService(t, store)

	header := []string{"Zone", "Raum", "Bezeichnung"}
	fileBytes := buildWorkbook(t, "Raumbuch", header, [][]any{
		{"EG", "Abstellraum", ""},
	})

	result, err := service.ImportExcel(context.Background(), fileBytes, "Altbau", "")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Stats.Zones != 1 || result.Stats.Rooms != 1 {
		t.Fatalf("stats = %+v", result.Stats)
	}
	if result.Stats.Devices != 0 {
		t.Fatalf("expected no devices, got %d", result.Stats.Devices)
	}
}

func TestImportTradeCodeCollisions(t *testing.T) {
	store := memory.NewStore()
	service := newTestService(t, store)

	header := []string{"Zone", "Raum", "Bezeichnung", "Gewerk"}
	fileBytes := buildWorkbook(t, "Raumbuch", header, [][]any{
		{"EG", "Flur", "Steckdose", "Elektro"},
		{"EG", "Flur", "Taster", "Elektrik"},
		{"EG", "Flur", "Dimmer", "Elektronik"},
	})

	result, err := service.ImportExcel(context.Background(), fileBytes, "Neubau", "")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	trades, err := store.Repos().Trades.ListByProject(context.Background(), result.ProjectID)
	if err != nil {
		t.Fatalf("list trades: %v", err)
	}
	codes := make(map[string]string, len(trades))
	for _, trade := range trades {
		codes[trade.Name] = trade.Code
	}
	wantCodes := map[string]string{"Elektro": "ELE", "Elektrik": "EL1", "Elektronik": "EL2"}
	for name, want := range wantCodes {
		if codes[name] != want {
			t.Fatalf("trade %s code = %q, want %q", name, codes[name], want)
		}
	}
}

func TestImportCategoriesNeedATrade(t *testing.T) {
	store := memory.NewStore()
	service := newTestService(t, store)

	header := []string{"Zone", "Raum", "Bezeichnung", "Kategorie"}
	fileBytes := buildWorkbook(t, "Raumbuch", header, [][]any{
		{"EG", "Flur", "Steckdose", "Installation"},
	})

	result, err := service.ImportExcel(context.Background(), fileBytes, "Neubau", "")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Stats.Categories != 0 {
		t.Fatalf("expected categories to be dropped without a trade, got %d", result.Stats.Categories)
	}
}

func TestImportQuantityColumn(t *testing.T) {
	store := memory.NewStore()
	service := newTestService(t, store)

	header := []string{"Zone", "Raum", "Bezeichnung", "Menge"}
	fileBytes := buildWorkbook(t, "Raumbuch", header, [][]any{
		{"EG", "Flur", "Steckdose", 4},
		{"EG", "Flur", "Taster", ""},
	})

	result, err := service.ImportExcel(context.Background(), fileBytes, "Neubau", "")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	ctx := context.Background()
	repos := store.Repos()
	zones, err := repos.Zones.ListByProject(ctx, result.ProjectID)
	if err != nil {
		t.Fatalf("list zones: %v", err)
	}
	rooms, err := repos.Rooms.ListByZone(ctx, zones[0].ID)
	if err != nil {
		t.Fatalf("list rooms: %v", err)
	}
	placements, err := repos.RoomDevices.ListByRoom(ctx, rooms[0].ID)
	if err != nil {
		t.Fatalf("list placements: %v", err)
	}
	if len(placements) != 2 {
		t.Fatalf("expected 2 placements, got %d", len(placements))
	}
	byName := make(map[string]int, len(placements))
	for _, placement := range placements {
		byName[placement.Designation] = placement.Quantity
	}
	if byName["Steckdose"] != 4 {
		t.Fatalf("Steckdose quantity = %d, want 4", byName["Steckdose"])
	}
	if byName["Taster"] != 1 {
		t.Fatalf("Taster quantity = %d, want 1", byName["Taster"])
	}
}

func TestImportZoneCodeFromNumber(t *testing.T) {
	store := memory.NewStore()
	service := newTestService(t, store)

	header := []string{"Zone", "Zonennr.", "Raum"}
	fileBytes := buildWorkbook(t, "Raumbuch", header, [][]any{
		{"Erdgeschoss", "01", "Flur"},
		{"Obergeschoss", "", "Bad"},
	})

	result, err := service.ImportExcel(context.Background(), fileBytes, "Neubau", "")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	zones, err := store.Repos().Zones.ListByProject(context.Background(), result.ProjectID)
	if err != nil {
		t.Fatalf("list zones: %v", err)
	}
	codes := make(map[string]string, len(zones))
	for _, zone := range zones {
		codes[zone.Name] = zone.Code
	}
	if codes["Erdgeschoss"] != "01" {
		t.Fatalf("Erdgeschoss code = %q, want 01", codes["Erdgeschoss"])
	}
	if codes["Obergeschoss"] != "OBE" {
		t.Fatalf("Obergeschoss code = %q, want OBE", codes["Obergeschoss"])
	}
}

var errPlacementWrite = errors.New("placement write failed")

// failingPlacements rejects every write, standing in for a storage
// failure late in the pipeline.
type failingPlacements struct{}

func (failingPlacements) Create(context.Context, *domain.RoomDevice) error { return errPlacementWrite }
func (failingPlacements) Get(context.Context, string) (*domain.RoomDevice, error) {
	return nil, errPlacementWrite
}
func (failingPlacements) ListByRoom(context.Context, string) ([]domain.RoomDevice, error) {
	return nil, errPlacementWrite
}
func (failingPlacements) Update(context.Context, *domain.RoomDevice) error { return errPlacementWrite }
func (failingPlacements) Delete(context.Context, string) error             { return errPlacementWrite }
func (failingPlacements) NextOrder(context.Context, string) (int, error)   { return 0, errPlacementWrite }

// brokenStore swaps the placement repository inside the transaction so
// the import fails after projects, metadata and rooms were written.
type brokenStore struct {
	inner domain.Store
}

func (s *brokenStore) Repos() domain.Repositories { return s.inner.Repos() }

func (s *brokenStore) RunInTx(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	return s.inner.RunInTx(ctx, func(ctx context.Context, repos domain.Repositories) error {
		repos.RoomDevices = failingPlacements{}
		return fn(ctx, repos)
	})
}

func TestImportFailureRollsBackEverything(t *testing.T) {
	store := memory.NewStore()
	service := newTestService(t, &brokenStore{inner: store})

	header := []string{"Zone", "Raum", "Bezeichnung", "Gewerk"}
	fileBytes := buildWorkbook(t, "Raumbuch", header, [][]any{
		{"EG", "Flur", "Steckdose", "Elektro"},
	})

	_, err := service.ImportExcel(context.Background(), fileBytes, "Neubau", "")
	if !errors.Is(err, errPlacementWrite) {
		t.Fatalf("expected placement write error, got %v", err)
	}

	projects, err := store.Repos().Projects.List(context.Background())
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if len(projects) != 0 {
		t.Fatalf("expected rollback to leave no projects, got %d", len(projects))
	}
}
