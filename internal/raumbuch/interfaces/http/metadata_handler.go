package http

import (
	"errors"
	"net/http"
	"strings"

	"elektro-raumbuch/internal/audit"
	"elektro-raumbuch/internal/raumbuch/application"
)

// The metadata handlers back the admin UI's generic manager screens.
// They share routing shape: collection with a parent filter, item by id.

func itemID(path, prefix string) (string, bool) {
	id := strings.TrimPrefix(path, prefix)
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

// TradeHandler serves trade endpoints.
type TradeHandler struct {
	service     *application.TradeService
	auditLogger audit.Logger
}

// NewTradeHandler constructs a TradeHandler.
func NewTradeHandler(service *application.TradeService, auditLogger audit.Logger) (*TradeHandler, error) {
	if service == nil {
		return nil, errors.New("trade handler: nil service")
	}
	return &TradeHandler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP routes trade requests.
func (h *TradeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/v1/trades" {
		switch r.Method {
		case http.MethodGet:
			projectID := r.URL.Query().Get("project_id")
			if projectID == "" {
				respondError(w, http.StatusBadRequest, "bad_request", "project_id is required")
				return
			}
			trades, err := h.service.ListByProject(r.Context(), projectID)
			if err != nil {
				respondReadError(w, err)
				return
			}
			views := make([]tradeView, 0, len(trades))
			for i := range trades {
				views = append(views, toTradeView(&trades[i]))
			}
			writeJSON(w, http.StatusOK, views)
		case http.MethodPost:
			var input application.CreateTradeInput
			if err := decodeJSON(r, &input); err != nil {
				respondError(w, http.StatusBadRequest, "bad_request", "invalid json")
				return
			}
			trade, err := h.service.Create(r.Context(), input)
			if err != nil {
				respondServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, toTradeView(trade))
			logAudit(h.auditLogger, r, "trade.create", "trade", trade.ID, trade.ProjectID, map[string]any{"name": trade.Name})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	id, ok := itemID(r.URL.Path, "/api/v1/trades/")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	switch r.Method {
	case http.MethodGet:
		trade, err := h.service.Get(r.Context(), id)
		if err != nil {
			respondReadError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTradeView(trade))
	case http.MethodPut, http.MethodPatch:
		var input application.UpdateTradeInput
		if err := decodeJSON(r, &input); err != nil {
			respondError(w, http.StatusBadRequest, "bad_request", "invalid json")
			return
		}
		trade, err := h.service.Update(r.Context(), id, input)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTradeView(trade))
		logAudit(h.auditLogger, r, "trade.update", "trade", trade.ID, trade.ProjectID, map[string]any{"name": trade.Name})
	case http.MethodDelete:
		if err := h.service.Delete(r.Context(), id); err != nil {
			respondServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		logAudit(h.auditLogger, r, "trade.delete", "trade", id, "", nil)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// CategoryHandler serves category endpoints.
type CategoryHandler struct {
	service     *application.CategoryService
	auditLogger audit.Logger
}

// NewCategoryHandler constructs a CategoryHandler.
func NewCategoryHandler(service *application.CategoryService, auditLogger audit.Logger) (*CategoryHandler, error) {
	if service == nil {
		return nil, errors.New("category handler: nil service")
	}
	return &CategoryHandler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP routes category requests.
func (h *CategoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/v1/categories" {
		switch r.Method {
		case http.MethodGet:
			tradeID := r.URL.Query().Get("trade_id")
			if tradeID == "" {
				respondError(w, http.StatusBadRequest, "bad_request", "trade_id is required")
				return
			}
			categories, err := h.service.ListByTrade(r.Context(), tradeID)
			if err != nil {
				respondReadError(w, err)
				return
			}
			views := make([]categoryView, 0, len(categories))
			for i := range categories {
				views = append(views, toCategoryView(&categories[i]))
			}
			writeJSON(w, http.StatusOK, views)
		case http.MethodPost:
			var input application.CreateCategoryInput
			if err := decodeJSON(r, &input); err != nil {
				respondError(w, http.StatusBadRequest, "bad_request", "invalid json")
				return
			}
			category, err := h.service.Create(r.Context(), input)
			if err != nil {
				respondServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, toCategoryView(category))
			logAudit(h.auditLogger, r, "category.create", "category", category.ID, "", map[string]any{"name": category.Name})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	id, ok := itemID(r.URL.Path, "/api/v1/categories/")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	switch r.Method {
	case http.MethodGet:
		category, err := h.service.Get(r.Context(), id)
		if err != nil {
			respondReadError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCategoryView(category))
	case http.MethodPut, http.MethodPatch:
		var input application.UpdateCategoryInput
		if err := decodeJSON(r, &input); err != nil {
			respondError(w, http.StatusBadRequest, "bad_request", "invalid json")
			return
		}
		category, err := h.service.Update(r.Context(), id, input)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCategoryView(category))
		logAudit(h.auditLogger, r, "category.update", "category", category.ID, "", map[string]any{"name": category.Name})
	case http.MethodDelete:
		if err := h.service.Delete(r.Context(), id); err != nil {
			respondServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		logAudit(h.auditLogger, r, "category.delete", "category", id, "", nil)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// ConnectionHandler serves connection endpoints.
type ConnectionHandler struct {
	service     *application.ConnectionService
	auditLogger audit.Logger
}

// NewConnectionHandler constructs a ConnectionHandler.
func NewConnectionHandler(service *application.ConnectionService, auditLogger audit.Logger) (*ConnectionHandler, error) {
	if service == nil {
		return nil, errors.New("connection handler: nil service")
	}
	return &ConnectionHandler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP routes connection requests.
func (h *ConnectionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/v1/connections" {
		switch r.Method {
		case http.MethodGet:
			projectID := r.URL.Query().Get("project_id")
			if projectID == "" {
				respondError(w, http.StatusBadRequest, "bad_request", "project_id is required")
				return
			}
			connections, err := h.service.ListByProject(r.Context(), projectID)
			if err != nil {
				respondReadError(w, err)
				return
			}
			views := make([]connectionView, 0, len(connections))
			for i := range connections {
				views = append(views, toConnectionView(&connections[i]))
			}
			writeJSON(w, http.StatusOK, views)
		case http.MethodPost:
			var input application.CreateConnectionInput
			if err := decodeJSON(r, &input); err != nil {
				respondError(w, http.StatusBadRequest, "bad_request", "invalid json")
				return
			}
			connection, err := h.service.Create(r.Context(), input)
			if err != nil {
				respondServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, toConnectionView(connection))
			logAudit(h.auditLogger, r, "connection.create", "connection", connection.ID, connection.ProjectID, map[string]any{"name": connection.Name})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	id, ok := itemID(r.URL.Path, "/api/v1/connections/")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	switch r.Method {
	case http.MethodGet:
		connection, err := h.service.Get(r.Context(), id)
		if err != nil {
			respondReadError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toConnectionView(connection))
	case http.MethodPut, http.MethodPatch:
		var input application.UpdateConnectionInput
		if err := decodeJSON(r, &input); err != nil {
			respondError(w, http.StatusBadRequest, "bad_request", "invalid json")
			return
		}
		connection, err := h.service.Update(r.Context(), id, input)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toConnectionView(connection))
		logAudit(h.auditLogger, r, "connection.update", "connection", connection.ID, connection.ProjectID, map[string]any{"name": connection.Name})
	case http.MethodDelete:
		if err := h.service.Delete(r.Context(), id); err != nil {
			respondServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		logAudit(h.auditLogger, r, "connection.delete", "connection", id, "", nil)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// InstallZoneHandler serves install-zone endpoints.
type InstallZoneHandler struct {
	service     *application.InstallZoneService
	auditLogger audit.Logger
}

// NewInstallZoneHandler constructs an InstallZoneHandler.
func NewInstallZoneHandler(service *application.InstallZoneService, auditLogger audit.Logger) (*InstallZoneHandler, error) {
	if service == nil {
		return nil, errors.New("install zone handler: nil service")
	}
	return &InstallZoneHandler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP routes install-zone requests.
func (h *InstallZoneHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/v1/install-zones" {
		switch r.Method {
		case http.MethodGet:
			projectID := r.URL.Query().Get("project_id")
			if projectID == "" {
				respondError(w, http.StatusBadRequest, "bad_request", "project_id is required")
				return
			}
			installZones, err := h.service.ListByProject(r.Context(), projectID)
			if err != nil {
				respondReadError(w, err)
				return
			}
			views := make([]installZoneView, 0, len(installZones))
			for i := range installZones {
				views = append(views, toInstallZoneView(&installZones[i]))
			}
			writeJSON(w, http.StatusOK, views)
		case http.MethodPost:
			var input application.CreateInstallZoneInput
			if err := decodeJSON(r, &input); err != nil {
				respondError(w, http.StatusBadRequest, "bad_request", "invalid json")
				return
			}
			installZone, err := h.service.Create(r.Context(), input)
			if err != nil {
				respondServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, toInstallZoneView(installZone))
			logAudit(h.auditLogger, r, "install_zone.create", "install_zone", installZone.ID, installZone.ProjectID, map[string]any{"name": installZone.Name})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	id, ok := itemID(r.URL.Path, "/api/v1/install-zones/")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	switch r.Method {
	case http.MethodGet:
		installZone, err := h.service.Get(r.Context(), id)
		if err != nil {
			respondReadError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toInstallZoneView(installZone))
	case http.MethodPut, http.MethodPatch:
		var input application.UpdateInstallZoneInput
		if err := decodeJSON(r, &input); err != nil {
			respondError(w, http.StatusBadRequest, "bad_request", "invalid json")
			return
		}
		installZone, err := h.service.Update(r.Context(), id, input)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toInstallZoneView(installZone))
		logAudit(h.auditLogger, r, "install_zone.update", "install_zone", installZone.ID, installZone.ProjectID, map[string]any{"name": installZone.Name})
	case http.MethodDelete:
		if err := h.service.Delete(r.Context(), id); err != nil {
			respondServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		logAudit(h.auditLogger, r, "install_zone.delete", "install_zone", id, "", nil)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
