package interfaces

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"elektro-raumbuch/internal/raumbuch/application"
)

// roomBookColumns are the export headers, matching the import layout.
var roomBookColumns = []string{
	"Zone", "Zonennr.", "Raumcode", "Raumnr.", "Raum",
	"Bezeichnung", "Gerät", "Gewerk", "Kategorie", "Verbindung",
	"Leitungsart", "Ziel", "Code", "Gesamtcode", "Installationszone", "Menge",
}

// BuildRoomBookXLSX renders a project room book as a workbook.
func BuildRoomBookXLSX(book *application.RoomBook) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Raumbuch"
	f.SetSheetName("Sheet1", sheet)

	_ = f.SetCellValue(sheet, "A1", book.Project.Name)
	if book.Project.Description != "" {
		_ = f.SetCellValue(sheet, "A2", book.Project.Description)
	}

	for i, column := range roomBookColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 3)
		if err != nil {
			return nil, err
		}
		_ = f.SetCellValue(sheet, cell, column)
	}

	row := 4
	for _, zone := range book.Zones {
		for _, room := range zone.Rooms {
			for _, line := range room.Lines {
				values := []any{
					zone.Zone.Name,
					zone.Zone.Code,
					room.Room.Code,
					room.Room.Number,
					room.Room.Name,
					line.Placement.Designation,
					line.DeviceName,
					line.TradeName,
					line.CategoryName,
					line.ConnectionName,
					line.Placement.CableType,
					line.Placement.Target,
					line.Placement.Code,
					line.Placement.TotalCode,
					line.InstallZoneName,
					line.Placement.Quantity,
				}
				for i, value := range values {
					cell, err := excelize.CoordinatesToCellName(i+1, row)
					if err != nil {
						return nil, err
					}
					_ = f.SetCellValue(sheet, cell, value)
				}
				row++
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildRoomBookPDF renders a project room book as a PDF.
func BuildRoomBookPDF(book *application.RoomBook) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, book.Project.Name)
	pdf.Ln(10)
	if book.Project.Description != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(0, 6, book.Project.Description)
		pdf.Ln(8)
	}

	for _, zone := range book.Zones {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 7, fmt.Sprintf("%s (%s)", zone.Zone.Name, zone.Zone.Code))
		pdf.Ln(8)

		for _, room := range zone.Rooms {
			pdf.SetFont("Arial", "B", 10)
			pdf.Cell(0, 6, fmt.Sprintf("%d  %s", room.Room.Number, room.Room.Name))
			pdf.Ln(7)

			pdf.SetFont("Arial", "B", 8)
			pdf.CellFormat(70, 5, "Bezeichnung", "1", 0, "L", false, 0, "")
			pdf.CellFormat(35, 5, "Gewerk", "1", 0, "L", false, 0, "")
			pdf.CellFormat(35, 5, "Kategorie", "1", 0, "L", false, 0, "")
			pdf.CellFormat(35, 5, "Verbindung", "1", 0, "L", false, 0, "")
			pdf.CellFormat(35, 5, "Ziel", "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 5, "Gesamtcode", "1", 0, "L", false, 0, "")
			pdf.CellFormat(15, 5, "Menge", "1", 0, "R", false, 0, "")
			pdf.Ln(-1)

			pdf.SetFont("Arial", "", 8)
			for _, line := range room.Lines {
				pdf.CellFormat(70, 5, line.Placement.Designation, "1", 0, "L", false, 0, "")
				pdf.CellFormat(35, 5, line.TradeName, "1", 0, "L", false, 0, "")
				pdf.CellFormat(35, 5, line.CategoryName, "1", 0, "L", false, 0, "")
				pdf.CellFormat(35, 5, line.ConnectionName, "1", 0, "L", false, 0, "")
				pdf.CellFormat(35, 5, line.Placement.Target, "1", 0, "L", false, 0, "")
				pdf.CellFormat(30, 5, line.Placement.TotalCode, "1", 0, "L", false, 0, "")
				pdf.CellFormat(15, 5, fmt.Sprintf("%d", line.Placement.Quantity), "1", 0, "R", false, 0, "")
				pdf.Ln(-1)
			}
			pdf.Ln(3)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
