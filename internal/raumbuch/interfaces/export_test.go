package interfaces

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"elektro-raumbuch/internal/raumbuch/application"
	"elektro-raumbuch/internal/raumbuch/domain"
)

func sampleRoomBook() *application.RoomBook {
	return &application.RoomBook{
		Project: domain.Project{ID: "p1", Name: "Neubau", Description: "EFH"},
		Zones: []application.RoomBookZone{
			{
				Zone: domain.Zone{ID: "z1", ProjectID: "p1", Code: "EG", Name: "Erdgeschoss", Order: 1},
				Rooms: []application.RoomBookRoom{
					{
						Room: domain.Room{ID: "r1", ZoneID: "z1", Code: "WZ", Number: 101, Name: "Wohnzimmer", Order: 1},
						Lines: []application.RoomBookLine{
							{
								Placement: domain.RoomDevice{
									ID:          "rd1",
									RoomID:      "r1",
									Designation: "Steckdose",
									Code:        "STE",
									TotalCode:   "EG.WZ.STE",
									Target:      "UV1",
									Quantity:    3,
									Order:       1,
								},
								DeviceName:      "Steckdose",
								TradeName:       "Elektro",
								CategoryName:    "Installation",
								ConnectionName:  "230V",
								InstallZoneName: "Wand unten",
							},
						},
					},
				},
			},
		},
	}
}

func TestBuildRoomBookXLSX(t *testing.T) {
	payload, err := BuildRoomBookXLSX(sampleRoomBook())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	title, err := f.GetCellValue("Raumbuch", "A1")
	if err != nil {
		t.Fatalf("read title: %v", err)
	}
	if title != "Neubau" {
		t.Fatalf("title = %q", title)
	}
	header, err := f.GetCellValue("Raumbuch", "A3")
	if err != nil {
		t.Fatalf("read header: %v", err)
	}
	if header != "Zone" {
		t.Fatalf("header = %q", header)
	}
	designation, err := f.GetCellValue("Raumbuch", "F4")
	if err != nil {
		t.Fatalf("read line: %v", err)
	}
	if designation != "Steckdose" {
		t.Fatalf("designation = %q", designation)
	}
	quantity, err := f.GetCellValue("Raumbuch", "P4")
	if err != nil {
		t.Fatalf("read quantity: %v", err)
	}
	if quantity != "3" {
		t.Fatalf("quantity = %q", quantity)
	}
}

func TestBuildRoomBookPDF(t *testing.T) {
	payload, err := BuildRoomBookPDF(sampleRoomBook())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !bytes.HasPrefix(payload, []byte("%PDF")) {
		t.Fatalf("payload does not look like a PDF: %q", payload[:8])
	}
}
