package http

import (
	"errors"
	"net/http"
	"strings"

	"elektro-raumbuch/internal/audit"
	"elektro-raumbuch/internal/raumbuch/application"
)

// RoomDeviceHandler serves placement endpoints. Collection queries
// filter by room_id.
type RoomDeviceHandler struct {
	service     *application.RoomDeviceService
	auditLogger audit.Logger
}

// NewRoomDeviceHandler constructs a RoomDeviceHandler.
func NewRoomDeviceHandler(service *application.RoomDeviceService, auditLogger audit.Logger) (*RoomDeviceHandler, error) {
	if service == nil {
		return nil, errors.New("room device handler: nil service")
	}
	return &RoomDeviceHandler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP routes placement requests.
func (h *RoomDeviceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/v1/room-devices" {
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

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/room-devices/")
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

func (h *RoomDeviceHandler) handleList(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room_id")
	if roomID == "" {
		respondError(w, http.StatusBadRequest, "bad_request", "room_id is required")
		return
	}
	placements, err := h.service.ListByRoom(r.Context(), roomID)
	if err != nil {
		respondReadError(w, err)
		return
	}
	views := make([]roomDeviceView, 0, len(placements))
	for i := range placements {
		views = append(views, toRoomDeviceView(&placements[i]))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *RoomDeviceHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input application.CreateRoomDeviceInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}
	placement, err := h.service.Create(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRoomDeviceView(placement))
	logAudit(h.auditLogger, r, "room_device.create", "room_device", placement.ID, "", map[string]any{"designation": placement.Designation})
}

func (h *RoomDeviceHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	placement, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondReadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomDeviceView(placement))
}

func (h *RoomDeviceHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var input application.UpdateRoomDeviceInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}
	placement, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomDeviceView(placement))
	logAudit(h.auditLogger, r, "room_device.update", "room_device", placement.ID, "", map[string]any{"designation": placement.Designation})
}

func (h *RoomDeviceHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logAudit(h.auditLogger, r, "room_device.delete", "room_device", id, "", nil)
}
