package http

import (
	"errors"
	"net/http"
	"strings"

	"elektro-raumbuch/internal/audit"
	"elektro-raumbuch/internal/raumbuch/application"
)

// RoomHandler serves room endpoints. Collection queries filter by zone_id.
type RoomHandler struct {
	service     *application.RoomService
	auditLogger audit.Logger
}

// NewRoomHandler constructs a RoomHandler.
func NewRoomHandler(service *application.RoomService, auditLogger audit.Logger) (*RoomHandler, error) {
	if service == nil {
		return nil, errors.New("room handler: nil service")
	}
	return &RoomHandler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP routes room requests.
func (h *RoomHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/v1/rooms" {
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

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/rooms/")
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

func (h *RoomHandler) handleList(w http.ResponseWriter, r *http.Request) {
	zoneID := r.URL.Query().Get("zone_id")
	if zoneID == "" {
		respondError(w, http.StatusBadRequest, "bad_request", "zone_id is required")
		return
	}
	rooms, err := h.service.ListByZone(r.Context(), zoneID)
	if err != nil {
		respondReadError(w, err)
		return
	}
	views := make([]roomView, 0, len(rooms))
	for i := range rooms {
		views = append(views, toRoomView(&rooms[i]))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *RoomHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input application.CreateRoomInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}
	room, err := h.service.Create(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRoomView(room))
	logAudit(h.auditLogger, r, "room.create", "room", room.ID, "", map[string]any{"name": room.Name})
}

func (h *RoomHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	room, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondReadError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomView(room))
}

func (h *RoomHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var input application.UpdateRoomInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}
	room, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomView(room))
	logAudit(h.auditLogger, r, "room.update", "room", room.ID, "", map[string]any{"name": room.Name})
}

func (h *RoomHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logAudit(h.auditLogger, r, "room.delete", "room", id, "", nil)
}
