package integration_test

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	importapp "elektro-raumbuch/internal/importing/application"
	"elektro-raumbuch/internal/raumbuch/infrastructure/postgres"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func TestImportExcel_Postgres(t *testing.T) {
	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		t.Skip("PG_DSN not set")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := applyMigrations(db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	ctx := context.Background()
	_, _ = db.ExecContext(ctx, "DELETE FROM projects WHERE name = $1", "integration-import")

	store, err := postgres.NewStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	service, err := importapp.NewService(store, importapp.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := service.ImportExcel(ctx, roomBookBytes(t), "integration-import", "")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Stats.Zones != 1 || result.Stats.Rooms != 1 || result.Stats.Devices != 2 {
		t.Fatalf("stats = %+v", result.Stats)
	}

	repos := store.Repos()
	zones, err := repos.Zones.ListByProject(ctx, result.ProjectID)
	if err != nil {
		t.Fatalf("list zones: %v", err)
	}
	if len(zones) != 1 || zones[0].Name != "EG" {
		t.Fatalf("zones = %+v", zones)
	}
	rooms, err := repos.Rooms.ListByZone(ctx, zones[0].ID)
	if err != nil {
		t.Fatalf("list rooms: %v", err)
	}
	if len(rooms) != 1 {
		t.Fatalf("rooms = %+v", rooms)
	}
	placements, err := repos.RoomDevices.ListByRoom(ctx, rooms[0].ID)
	if err != nil {
		t.Fatalf("list placements: %v", err)
	}
	if len(placements) != 2 {
		t.Fatalf("expected 2 placements, got %d", len(placements))
	}

	// Cascades must take the whole graph with the project.
	if err := repos.Projects.Delete(ctx, result.ProjectID); err != nil {
		t.Fatalf("delete project: %v", err)
	}
	leftover, err := repos.Zones.ListByProject(ctx, result.ProjectID)
	if err != nil {
		t.Fatalf("list zones after delete: %v", err)
	}
	if len(leftover) != 0 {
		t.Fatalf("expected cascade delete, got %d zones", len(leftover))
	}
}

func applyMigrations(db *sql.DB) error {
	root := projectRoot()
	files := []string{
		filepath.Join(root, "migrations", "001_init.sql"),
		filepath.Join(root, "migrations", "002_audit.sql"),
	}
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if _, err := db.Exec(string(content)); err != nil {
			return err
		}
	}
	return nil
}

func projectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return filepath.Clean(filepath.Join(dir, "..", "..", ".."))
}

func roomBookBytes(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "Raumbuch")
	cells := map[string]any{
		"A1": "Raumbuch Export",
		"A3": "Zone", "B3": "Raum", "C3": "Bezeichnung", "D3": "Gewerk",
		"A4": "EG", "B4": "Wohnzimmer", "C4": "Steckdose", "D4": "Elektro",
		"A5": "EG", "B5": "Wohnzimmer", "C5": "Lichtschalter", "D5": "Elektro",
	}
	for cell, value := range cells {
		if err := f.SetCellValue("Raumbuch", cell, value); err != nil {
			t.Fatalf("set cell: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}
