package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"elektro-raumbuch/internal/audit"
	"elektro-raumbuch/internal/observability/metrics"
	"elektro-raumbuch/internal/raumbuch/application"
	"elektro-raumbuch/internal/raumbuch/interfaces"
)

// ProjectHandler serves project endpoints, including room-book exports.
type ProjectHandler struct {
	service     *application.ProjectService
	exporter    *application.ExportService
	auditLogger audit.Logger
}

// NewProjectHandler constructs a ProjectHandler.
func NewProjectHandler(service *application.ProjectService, exporter *application.ExportService, auditLogger audit.Logger) (*ProjectHandler, error) {
	if service == nil {
		return nil, errors.New("project handler: nil service")
	}
	if exporter == nil {
		return nil, errors.New("project handler: nil exporter")
	}
	return &ProjectHandler{service: service, exporter: exporter, auditLogger: auditLogger}, nil
}

// ServeHTTP routes project requests.
func (h *ProjectHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/v1/projects" {
		switch r.Method {
		case http.MethodGet:
			h.handleList(w, r)
		case http.MethodPost:
			h.handleCreate(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	if !strings.HasPrefix(r.URL.Path, "/api/v1/projects/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/projects/")
	parts := strings.Split(path, "/")
	if len(parts) < 1 || parts[0] == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	projectID := parts[0]

	if len(parts) == 2 && r.Method == http.MethodGet {
		switch parts[1] {
		case "export.xlsx":
			h.handleExport(w, r, projectID, "xlsx")
			return
		case "export.pdf":
			h.handleExport(w, r, projectID, "pdf")
			return
		}
	}

	if len(parts) != 1 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, projectID)
	case http.MethodPut, http.MethodPatch:
		h.handleUpdate(w, r, projectID)
	case http.MethodDelete:
		h.handleDelete(w, r, projectID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *ProjectHandler) handleList(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.List(r.Context())
	if err != nil {
		respondReadError(w, err)
		return
	}
	views := make([]projectSummaryView, 0, len(summaries))
	for _, summary := range summaries {
		views = append(views, toProjectSummaryView(summary))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *ProjectHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input application.CreateProjectInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}
	project, err := h.service.Create(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProjectView(project))
	h.logAudit(r, project.ID, "project.create", map[string]any{"name": project.Name})
}

func (h *ProjectHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	project, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondReadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectView(project))
}

func (h *ProjectHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var input application.UpdateProjectInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}
	project, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectView(project))
	h.logAudit(r, id, "project.update", map[string]any{"name": project.Name})
}

func (h *ProjectHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	h.logAudit(r, id, "project.delete", nil)
}

func (h *ProjectHandler) handleExport(w http.ResponseWriter, r *http.Request, id, format string) {
	start := time.Now()
	book, err := h.exporter.BuildRoomBook(r.Context(), id)
	if err != nil {
		metrics.ObserveExport(format, "error", time.Since(start))
		respondReadError(w, err)
		return
	}

	var payload []byte
	var contentType, filename string
	switch format {
	case "xlsx":
		payload, err = interfaces.BuildRoomBookXLSX(book)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = "raumbuch.xlsx"
	case "pdf":
		payload, err = interfaces.BuildRoomBookPDF(book)
		contentType = "application/pdf"
		filename = "raumbuch.pdf"
	default:
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		metrics.ObserveExport(format, "error", time.Since(start))
		respondError(w, http.StatusInternalServerError, "internal", "export failed")
		return
	}

	metrics.ObserveExport(format, "success", time.Since(start))
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(payload)
}

func (h *ProjectHandler) logAudit(r *http.Request, projectID, action string, meta map[string]any) {
	logAudit(h.auditLogger, r, action, "project", projectID, projectID, meta)
}
