package application

import (
	"context"
	"errors"
	"testing"

	"elektro-raumbuch/internal/raumbuch/domain"
	"elektro-raumbuch/internal/raumbuch/infrastructure/memory"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func seedProject(t *testing.T, repos domain.Repositories) *domain.Project {
	t.Helper()
	service, err := NewProjectService(repos.Projects)
	if err != nil {
		t.Fatalf("new project service: %v", err)
	}
	project, err := service.Create(context.Background(), CreateProjectInput{Name: "Neubau"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return project
}

func TestProjectCreateRequiresName(t *testing.T) {
	repos := memory.NewStore().Repos()
	service, err := NewProjectService(repos.Projects)
	if err != nil {
		t.Fatalf("new project service: %v", err)
	}
	if _, err := service.Create(context.Background(), CreateProjectInput{}); err == nil {
		t.Fatal("expected validation error for empty name")
	}
}

func TestProjectUpdatePartial(t *testing.T) {
	repos := memory.NewStore().Repos()
	service, err := NewProjectService(repos.Projects)
	if err != nil {
		t.Fatalf("new project service: %v", err)
	}
	ctx := context.Background()
	project, err := service.Create(ctx, CreateProjectInput{Name: "Neubau", Description: "EFH"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := service.Update(ctx, project.ID, UpdateProjectInput{Description: strPtr("EFH mit Keller")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Neubau" {
		t.Fatalf("name changed unexpectedly: %q", updated.Name)
	}
	if updated.Description != "EFH mit Keller" {
		t.Fatalf("description = %q", updated.Description)
	}
}

func TestProjectListCounts(t *testing.T) {
	repos := memory.NewStore().Repos()
	ctx := context.Background()
	project := seedProject(t, repos)

	zones, err := NewZoneService(repos.Zones)
	if err != nil {
		t.Fatalf("new zone service: %v", err)
	}
	if _, err := zones.Create(ctx, CreateZoneInput{ProjectID: project.ID, Name: "EG"}); err != nil {
		t.Fatalf("create zone: %v", err)
	}

	service, err := NewProjectService(repos.Projects)
	if err != nil {
		t.Fatalf("new project service: %v", err)
	}
	summaries, err := service.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 project, got %d", len(summaries))
	}
	if summaries[0].Counts.Zones != 1 {
		t.Fatalf("zone count = %d, want 1", summaries[0].Counts.Zones)
	}
}

func TestZoneOrderDefaultsToNextFreeSlot(t *testing.T) {
	repos := memory.NewStore().Repos()
	ctx := context.Background()
	project := seedProject(t, repos)

	service, err := NewZoneService(repos.Zones)
	if err != nil {
		t.Fatalf("new zone service: %v", err)
	}

	first, err := service.Create(ctx, CreateZoneInput{ProjectID: project.ID, Name: "EG"})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if first.Order != 0 {
		t.Fatalf("first order = %d, want 0", first.Order)
	}
	second, err := service.Create(ctx, CreateZoneInput{ProjectID: project.ID, Name: "OG"})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if second.Order != 1 {
		t.Fatalf("second order = %d, want 1", second.Order)
	}
	third, err := service.Create(ctx, CreateZoneInput{ProjectID: project.ID, Name: "DG", Order: intPtr(7)})
	if err != nil {
		t.Fatalf("create third: %v", err)
	}
	if third.Order != 7 {
		t.Fatalf("explicit order = %d, want 7", third.Order)
	}
	fourth, err := service.Create(ctx, CreateZoneInput{ProjectID: project.ID, Name: "KG"})
	if err != nil {
		t.Fatalf("create fourth: %v", err)
	}
	if fourth.Order != 8 {
		t.Fatalf("order after gap = %d, want 8", fourth.Order)
	}
}

func TestZoneUpdateUnknownID(t *testing.T) {
	repos := memory.NewStore().Repos()
	service, err := NewZoneService(repos.Zones)
	if err != nil {
		t.Fatalf("new zone service: %v", err)
	}
	_, err = service.Update(context.Background(), "missing", UpdateZoneInput{Name: strPtr("EG")})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRoomDeviceQuantityDefaultsToOne(t *testing.T) {
	repos := memory.NewStore().Repos()
	ctx := context.Background()
	project := seedProject(t, repos)

	zones, err := NewZoneService(repos.Zones)
	if err != nil {
		t.Fatalf("new zone service: %v", err)
	}
	zone, err := zones.Create(ctx, CreateZoneInput{ProjectID: project.ID, Name: "EG"})
	if err != nil {
		t.Fatalf("create zone: %v", err)
	}
	roomService, err := NewRoomService(repos.Rooms)
	if err != nil {
		t.Fatalf("new room service: %v", err)
	}
	room, err := roomService.Create(ctx, CreateRoomInput{ZoneID: zone.ID, Name: "Flur"})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}

	service, err := NewRoomDeviceService(repos.RoomDevices)
	if err != nil {
		t.Fatalf("new room device service: %v", err)
	}
	placement, err := service.Create(ctx, CreateRoomDeviceInput{RoomID: room.ID, Designation: "Steckdose"})
	if err != nil {
		t.Fatalf("create placement: %v", err)
	}
	if placement.Quantity != 1 {
		t.Fatalf("quantity = %d, want 1", placement.Quantity)
	}

	updated, err := service.Update(ctx, placement.ID, UpdateRoomDeviceInput{Quantity: intPtr(3)})
	if err != nil {
		t.Fatalf("update placement: %v", err)
	}
	if updated.Quantity != 3 {
		t.Fatalf("updated quantity = %d, want 3", updated.Quantity)
	}
}

func TestTradeOrderAndCategoryScope(t *testing.T) {
	repos := memory.NewStore().Repos()
	ctx := context.Background()
	project := seedProject(t, repos)

	trades, err := NewTradeService(repos.Trades)
	if err != nil {
		t.Fatalf("new trade service: %v", err)
	}
	trade, err := trades.Create(ctx, CreateTradeInput{ProjectID: project.ID, Name: "Elektro", Code: "ELE"})
	if err != nil {
		t.Fatalf("create trade: %v", err)
	}
	if trade.Order != 0 {
		t.Fatalf("trade order = %d, want 0", trade.Order)
	}

	categories, err := NewCategoryService(repos.Categories)
	if err != nil {
		t.Fatalf("new category service: %v", err)
	}
	if _, err := categories.Create(ctx, CreateCategoryInput{TradeID: trade.ID, Name: "Installation", Code: "INS"}); err != nil {
		t.Fatalf("create category: %v", err)
	}
	listed, err := categories.ListByTrade(ctx, trade.ID)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(listed) != 1 || listed[0].Name != "Installation" {
		t.Fatalf("categories = %+v", listed)
	}
}
