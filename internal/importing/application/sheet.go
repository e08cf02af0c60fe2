package application

import (
	"bytes"
	"errors"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrMissingWorksheet is returned when the workbook lacks the required
// worksheet. It is detected before any persistence write.
var ErrMissingWorksheet = errors.New("import: required worksheet not found")

// Row is one parsed worksheet line. Absent columns stay zero-valued.
type Row struct {
	Zone        string
	ZoneNumber  string
	RoomCode    string
	RoomNumber  int
	RoomName    string
	Designation string
	Trade       string
	Category    string
	Connection  string
	CableType   string
	Target      string
	Code        string
	TotalCode   string
	InstallZone string
	Quantity    int
}

// Recognized German header labels. Anything else is ignored.
const (
	headerZone        = "Zone"
	headerZoneNumber  = "Zonennr."
	headerRoomCode    = "Raumcode"
	headerRoomNumber  = "Raumnr."
	headerRoomName    = "Raum"
	headerDesignation = "Bezeichnung"
	headerTradeDevice = "Geräte/Gewerke"
	headerTrade       = "Gewerk"
	headerCategory    = "Kategorie"
	headerConnection  = "Verbindung"
	headerCableType   = "Leitungsart"
	headerTarget      = "Ziel"
	headerCode        = "Code"
	headerTotalCode   = "Gesamtcode"
	headerInstallZone = "Installationszone"
	headerQuantity    = "Menge"
)

// ParseSheet opens the workbook, verifies the configured worksheet
// exists and parses its rows. The first cfg.HeaderSkipRows rows are
// banner rows; the row after them is the header.
func ParseSheet(fileBytes []byte, cfg Config) ([]Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(fileBytes))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	index, err := f.GetSheetIndex(cfg.SheetName)
	if err != nil {
		return nil, err
	}
	if index < 0 {
		return nil, ErrMissingWorksheet
	}

	cells, err := f.GetRows(cfg.SheetName)
	if err != nil {
		return nil, err
	}
	if len(cells) <= cfg.HeaderSkipRows {
		return nil, nil
	}

	header := cells[cfg.HeaderSkipRows]
	columns := make(map[int]string, len(header))
	for i, label := range header {
		columns[i] = strings.TrimSpace(label)
	}

	rows := make([]Row, 0, len(cells)-cfg.HeaderSkipRows-1)
	for _, line := range cells[cfg.HeaderSkipRows+1:] {
		row := Row{}
		empty := true
		var tradeDevice string
		for i, raw := range line {
			value := strings.TrimSpace(raw)
			if value == "" {
				continue
			}
			empty = false
			switch columns[i] {
			case headerZone:
				row.Zone = value
			case headerZoneNumber:
				row.ZoneNumber = value
			case headerRoomCode:
				row.RoomCode = value
			case headerRoomNumber:
				row.RoomNumber = parseInt(value)
			case headerRoomName:
				row.RoomName = value
			case headerDesignation:
				row.Designation = value
			case headerTrade:
				row.Trade = value
			case headerTradeDevice:
				tradeDevice = value
			case headerCategory:
				row.Category = value
			case headerConnection:
				row.Connection = value
			case headerCableType:
				row.CableType = value
			case headerTarget:
				row.Target = value
			case headerCode:
				row.Code = value
			case headerTotalCode:
				row.TotalCode = value
			case headerInstallZone:
				row.InstallZone = value
			case headerQuantity:
				row.Quantity = parseInt(value)
			}
		}
		if empty {
			continue
		}
		if row.Trade == "" && tradeDevice != "" {
			row.Trade = tradeFromComposite(tradeDevice)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// tradeFromComposite derives a trade name from a combined
// "Gewerk-Gerät" value by taking the segment before the first dash.
func tradeFromComposite(value string) string {
	if i := strings.Index(value, "-"); i > 0 {
		return strings.TrimSpace(value[:i])
	}
	return value
}

func parseInt(value string) int {
	if parsed, err := strconv.Atoi(value); err == nil {
		return parsed
	}
	if parsed, err := strconv.ParseFloat(value, 64); err == nil {
		return int(parsed)
	}
	return 0
}
