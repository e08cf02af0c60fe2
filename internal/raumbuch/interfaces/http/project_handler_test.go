package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"elektro-raumbuch/internal/raumbuch/application"
	"elektro-raumbuch/internal/raumbuch/domain"
	"elektro-raumbuch/internal/raumbuch/infrastructure/memory"
)

func newProjectHandler(t *testing.T) (*ProjectHandler, domain.Repositories) {
	t.Helper()
	repos := memory.NewStore().Repos()
	service, err := application.NewProjectService(repos.Projects)
	if err != nil {
		t.Fatalf("new project service: %v", err)
	}
	exporter, err := application.NewExportService(repos)
	if err != nil {
		t.Fatalf("new export service: %v", err)
	}
	handler, err := NewProjectHandler(service, exporter, nil)
	if err != nil {
		t.Fatalf("new project handler: %v", err)
	}
	return handler, repos
}

func TestProjectCreateAndGet(t *testing.T) {
	handler, _ := newProjectHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", strings.NewReader(`{"name":"Neubau","description":"EFH"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" || created.Name != "Neubau" || created.Description != "EFH" {
		t.Fatalf("created = %+v", created)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/projects/"+created.ID, nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
}

func TestProjectGetUnknownID(t *testing.T) {
	handler, _ := newProjectHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/missing", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "not_found" {
		t.Fatalf("error code = %q", body.Error)
	}
}

func TestProjectCreateInvalidJSON(t *testing.T) {
	handler, _ := newProjectHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestProjectListWithCounts(t *testing.T) {
	handler, repos := newProjectHandler(t)
	ctx := context.Background()

	projects, err := application.NewProjectService(repos.Projects)
	if err != nil {
		t.Fatalf("new project service: %v", err)
	}
	project, err := projects.Create(ctx, application.CreateProjectInput{Name: "Neubau"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	zones, err := application.NewZoneService(repos.Zones)
	if err != nil {
		t.Fatalf("new zone service: %v", err)
	}
	if _, err := zones.Create(ctx, application.CreateZoneInput{ProjectID: project.ID, Name: "EG"}); err != nil {
		t.Fatalf("create zone: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var listed []struct {
		Name   string `json:"name"`
		Counts struct {
			Zones int `json:"zones"`
		} `json:"counts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listed) != 1 || listed[0].Counts.Zones != 1 {
		t.Fatalf("listed = %+v", listed)
	}
}

func TestProjectUpdateAndDelete(t *testing.T) {
	handler, repos := newProjectHandler(t)
	ctx := context.Background()

	projects, err := application.NewProjectService(repos.Projects)
	if err != nil {
		t.Fatalf("new project service: %v", err)
	}
	project, err := projects.Create(ctx, application.CreateProjectInput{Name: "Neubau"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/projects/"+project.ID, strings.NewReader(`{"name":"Umbau"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", rec.Code, rec.Body.String())
	}
	updated, err := repos.Projects.Get(ctx, project.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if updated.Name != "Umbau" {
		t.Fatalf("name = %q", updated.Name)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/projects/"+project.ID, nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if _, err := repos.Projects.Get(ctx, project.ID); err == nil {
		t.Fatal("expected project to be gone")
	}
}

func TestProjectExportXLSX(t *testing.T) {
	handler, repos := newProjectHandler(t)
	ctx := context.Background()

	projects, err := application.NewProjectService(repos.Projects)
	if err != nil {
		t.Fatalf("new project service: %v", err)
	}
	project, err := projects.Create(ctx, application.CreateProjectInput{Name: "Neubau"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/"+project.ID+"/export.xlsx", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("content type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "raumbuch.xlsx") {
		t.Fatalf("content disposition = %q", cd)
	}
	if rec.Body.Len() == 0 {
		t.Fatal("expected workbook bytes")
	}
}

func TestProjectExportUnknownProject(t *testing.T) {
	handler, _ := newProjectHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/missing/export.pdf", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
