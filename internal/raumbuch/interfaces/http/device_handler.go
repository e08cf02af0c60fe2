package http

import (
	"errors"
	"net/http"
	"strings"

	"elektro-raumbuch/internal/audit"
	"elektro-raumbuch/internal/raumbuch/application"
)

// DeviceHandler serves catalog-device endpoints.
type DeviceHandler struct {
	service     *application.DeviceService
	auditLogger audit.Logger
}

// NewDeviceHandler constructs a DeviceHandler.
func NewDeviceHandler(service *application.DeviceService, auditLogger audit.Logger) (*DeviceHandler, error) {
	if service == nil {
		return nil, errors.New("device handler: nil service")
	}
	return &DeviceHandler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP routes device requests.
func (h *DeviceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/v1/devices" {
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

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/devices/")
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

func (h *DeviceHandler) handleList(w http.ResponseWriter, r *http.Request) {
	projectID := r.URL.Query().Get("project_id")
	if projectID == "" {
		respondError(w, http.StatusBadRequest, "bad_request", "project_id is required")
		return
	}
	devices, err := h.service.ListByProject(r.Context(), projectID)
	if err != nil {
		respondReadError(w, err)
		return
	}
	views := make([]deviceView, 0, len(devices))
	for i := range devices {
		views = append(views, toDeviceView(&devices[i]))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *DeviceHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input application.CreateDeviceInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}
	device, err := h.service.Create(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDeviceView(device))
	logAudit(h.auditLogger, r, "device.create", "device", device.ID, device.ProjectID, map[string]any{"name": device.Name})
}

func (h *DeviceHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	device, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondReadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDeviceView(device))
}

func (h *DeviceHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var input application.UpdateDeviceInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}
	device, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDeviceView(device))
	logAudit(h.auditLogger, r, "device.update", "device", device.ID, device.ProjectID, map[string]any{"name": device.Name})
}

func (h *DeviceHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logAudit(h.auditLogger, r, "device.delete", "device", id, "", nil)
}
