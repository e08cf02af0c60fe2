package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xuri/excelize/v2"

	importapp "elektro-raumbuch/internal/importing/application"
	"elektro-raumbuch/internal/raumbuch/infrastructure/memory"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	service, err := importapp.NewService(memory.NewStore(), importapp.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	handler, err := NewHandler(service, 10<<20, nil)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return handler
}

func roomBookBytes(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "Raumbuch")
	cells := map[string]any{
		"A1": "Raumbuch Export",
		"A3": "Zone", "B3": "Raum", "C3": "Bezeichnung", "D3": "Gewerk",
		"A4": "EG", "B4": "Wohnzimmer", "C4": "Steckdose", "D4": "Elektro",
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

func multipartUpload(t *testing.T, projectName, filename string, fileBytes []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if projectName != "" {
		if err := writer.WriteField("projectName", projectName); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(fileBytes); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &body, writer.FormDataContentType()
}

func TestImportUploadSuccess(t *testing.T) {
	handler := newTestHandler(t)
	body, contentType := multipartUpload(t, "Neubau", "raumbuch.xlsx", roomBookBytes(t))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import/excel", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp successBody
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "import completed" || resp.ProjectID == "" {
		t.Fatalf("response = %+v", resp)
	}
	if resp.Stats.Zones != 1 || resp.Stats.Rooms != 1 || resp.Stats.Devices != 1 || resp.Stats.Trades != 1 {
		t.Fatalf("stats = %+v", resp.Stats)
	}
}

func TestImportUploadMissingProjectName(t *testing.T) {
	handler := newTestHandler(t)
	body, contentType := multipartUpload(t, "", "raumbuch.xlsx", roomBookBytes(t))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import/excel", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestImportUploadMissingFile(t *testing.T) {
	handler := newTestHandler(t)
	body, contentType := multipartUpload(t, "Neubau", "", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import/excel", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestImportUploadWrongFileType(t *testing.T) {
	handler := newTestHandler(t)
	body, contentType := multipartUpload(t, "Neubau", "raumbuch.csv", []byte("Zone;Raum\n"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import/excel", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestImportUploadMissingWorksheet(t *testing.T) {
	handler := newTestHandler(t)

	f := excelize.NewFile()
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	body, contentType := multipartUpload(t, "Neubau", "raumbuch.xlsx", buf.Bytes())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import/excel", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestImportUploadMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/import/excel", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}
