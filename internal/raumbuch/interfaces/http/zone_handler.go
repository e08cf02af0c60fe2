package http

import (
	"errors"
	"net/http"
	"strings"

	"elektro-raumbuch/internal/audit"
	"elektro-raumbuch/internal/raumbuch/application"
)

// ZoneHandler serves zone endpoints. Collection queries filter by
// project_id.
type ZoneHandler struct {
	service     *application.ZoneService
	auditLogger audit.Logger
}

// NewZoneHandler constructs a ZoneHandler.
func NewZoneHandler(service *application.ZoneService, auditLogger audit.Logger) (*ZoneHandler, error) {
	if service == nil {
		return nil, errors.New("zone handler: nil service")
	}
	return &ZoneHandler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP routes zone requests.
func (h *ZoneHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/v1/zones" {
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

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/zones/")
	if id == "" || strings.Contains(id, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, id)
	case http.MethodPut, http.MethodPatch:
		h.handleUpdate(w, r, id)
	case http.MethodDelete:
		h.handleDelete(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *ZoneHandler) handleList(w http.ResponseWriter, r *http.Request) {
	projectID := r.URL.Query().Get("project_id")
	if projectID == "" {
		respondError(w, http.StatusBadRequest, "bad_request", "project_id is required")
		return
	}
	zones, err := h.service.ListByProject(r.Context(), projectID)
	if err != nil {
		respondReadError(w, err)
		return
	}
	views := make([]zoneView, 0, len(zones))
	for i := range zones {
		views = append(views, toZoneView(&zones[i]))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *ZoneHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input application.CreateZoneInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}
	zone, err := h.service.Create(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toZoneView(zone))
	logAudit(h.auditLogger, r, "zone.create", "zone", zone.ID, zone.ProjectID, map[string]any{"name": zone.Name})
}

func (h *ZoneHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	zone, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondReadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toZoneView(zone))
}

func (h *ZoneHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var input application.UpdateZoneInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}
	zone, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toZoneView(zone))
	logAudit(h.auditLogger, r, "zone.update", "zone", zone.ID, zone.ProjectID, map[string]any{"name": zone.Name})
}

func (h *ZoneHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logAudit(h.auditLogger, r, "zone.delete", "zone", id, "", nil)
}
