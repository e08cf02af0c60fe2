package application

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, sheetName string, header []string, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetName)

	// Two banner rows precede the header, matching source documents.
	if err := f.SetCellValue(sheetName, "A1", "Raumbuch Export"); err != nil {
		t.Fatalf("set banner: %v", err)
	}
	for i, label := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 3)
		if err != nil {
			t.Fatalf("header cell: %v", err)
		}
		if err := f.SetCellValue(sheetName, cell, label); err != nil {
			t.Fatalf("set header: %v", err)
		}
	}
	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+4)
			if err != nil {
				t.Fatalf("data cell: %v", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestParseSheetMissingWorksheet(t *testing.T) {
	fileBytes := buildWorkbook(t, "Tabelle1", []string{"Zone"}, nil)
	_, err := ParseSheet(fileBytes, DefaultConfig())
	if !errors.Is(err, ErrMissingWorksheet) {
		t.Fatalf("expected ErrMissingWorksheet, got %v", err)
	}
}

func TestParseSheetColumnMapping(t *testing.T) {
	header := []string{"Zone", "Zonennr.", "Raumcode", "Raumnr.", "Raum", "Bezeichnung", "Geräte/Gewerke", "Kategorie", "Verbindung", "Leitungsart", "Ziel", "Code", "Gesamtcode", "Installationszone", "Menge", "Notizen"}
	fileBytes := buildWorkbook(t, "Raumbuch", header, [][]any{
		{"EG", 1, "WZ", 101, "Wohnzimmer", "Steckdose", "Elektro", "Installation", "230V", "NYM-J 3x1,5", "UV1", "STE", "EG.WZ.STE", "Wand unten", 3, "ignore me"},
	})

	rows, err := ParseSheet(fileBytes, DefaultConfig())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.Zone != "EG" || row.ZoneNumber != "1" {
		t.Fatalf("zone mapping wrong: %+v", row)
	}
	if row.RoomCode != "WZ" || row.RoomNumber != 101 || row.RoomName != "Wohnzimmer" {
		t.Fatalf("room mapping wrong: %+v", row)
	}
	if row.Designation != "Steckdose" || row.Trade != "Elektro" || row.Category != "Installation" {
		t.Fatalf("device mapping wrong: %+v", row)
	}
	if row.Connection != "230V" || row.CableType != "NYM-J 3x1,5" || row.Target != "UV1" {
		t.Fatalf("wiring mapping wrong: %+v", row)
	}
	if row.Code != "STE" || row.TotalCode != "EG.WZ.STE" || row.InstallZone != "Wand unten" {
		t.Fatalf("code mapping wrong: %+v", row)
	}
	if row.Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", row.Quantity)
	}
}

func TestParseSheetCompositeTradeFallback(t *testing.T) {
	header := []string{"Zone", "Raum", "Bezeichnung", "Geräte/Gewerke"}
	fileBytes := buildWorkbook(t, "Raumbuch", header, [][]any{
		{"EG", "Flur", "Taster", "KNX - Taster"},
	})

	rows, err := ParseSheet(fileBytes, DefaultConfig())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Trade != "KNX" {
		t.Fatalf("expected composite trade KNX, got %q", rows[0].Trade)
	}
}

func TestParseSheetExplicitTradeWins(t *testing.T) {
	header := []string{"Zone", "Raum", "Gewerk", "Geräte/Gewerke"}
	fileBytes := buildWorkbook(t, "Raumbuch", header, [][]any{
		{"EG", "Flur", "Beleuchtung", "KNX-Taster"},
	})

	rows, err := ParseSheet(fileBytes, DefaultConfig())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rows[0].Trade != "Beleuchtung" {
		t.Fatalf("expected Beleuchtung, got %q", rows[0].Trade)
	}
}

func TestParseSheetSkipsBlankLines(t *testing.T) {
	header := []string{"Zone", "Raum"}
	fileBytes := buildWorkbook(t, "Raumbuch", header, [][]any{
		{"EG", "Flur"},
		{"", ""},
		{"OG", "Bad"},
	})

	rows, err := ParseSheet(fileBytes, DefaultConfig())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
}
