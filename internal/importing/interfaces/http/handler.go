package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"elektro-raumbuch/internal/audit"
	"elektro-raumbuch/internal/auth"
	importapp "elektro-raumbuch/internal/importing/application"
	"elektro-raumbuch/internal/observability/metrics"
)

// Handler serves the Excel upload endpoint.
type Handler struct {
	service     *importapp.Service
	maxUpload   int64
	auditLogger audit.Logger
}

// NewHandler constructs a Handler.
func NewHandler(service *importapp.Service, maxUpload int64, auditLogger audit.Logger) (*Handler, error) {
	if service == nil {
		return nil, errors.New("import handler: nil service")
	}
	if maxUpload <= 0 {
		return nil, errors.New("import handler: invalid max upload size")
	}
	return &Handler{service: service, maxUpload: maxUpload, auditLogger: auditLogger}, nil
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type successBody struct {
	Message   string          `json:"message"`
	ProjectID string          `json:"projectId"`
	Stats     importapp.Stats `json:"stats"`
}

// ServeHTTP handles POST /api/v1/import/excel.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/v1/import/excel" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		metrics.IncImportError("bad_upload")
		respondError(w, http.StatusBadRequest, "bad_request", "invalid multipart upload")
		return
	}

	projectName := strings.TrimSpace(r.FormValue("projectName"))
	if projectName == "" {
		metrics.IncImportError("missing_project_name")
		respondError(w, http.StatusBadRequest, "bad_request", "projectName is required")
		return
	}
	description := strings.TrimSpace(r.FormValue("description"))

	file, header, err := r.FormFile("file")
	if err != nil {
		metrics.IncImportError("missing_file")
		respondError(w, http.StatusBadRequest, "bad_request", "file is required")
		return
	}
	defer file.Close()

	if !allowedExcelFile(header.Filename, header.Header.Get("Content-Type")) {
		metrics.IncImportError("wrong_file_type")
		respondError(w, http.StatusBadRequest, "bad_request", "file must be an Excel workbook (.xlsx, .xls, .xlsm)")
		return
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		metrics.IncImportError("read_failed")
		respondError(w, http.StatusBadRequest, "bad_request", "could not read upload")
		return
	}

	start := time.Now()
	result, err := h.service.ImportExcel(r.Context(), fileBytes, projectName, description)
	if err != nil {
		metrics.ObserveImport("error", time.Since(start))
		if errors.Is(err, importapp.ErrMissingWorksheet) || errors.Is(err, importapp.ErrEmptyProjectName) {
			respondError(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	metrics.ObserveImport("success", time.Since(start))

	writeJSON(w, http.StatusCreated, successBody{
		Message:   "import completed",
		ProjectID: result.ProjectID,
		Stats:     result.Stats,
	})
	h.logAudit(r, result.ProjectID, header.Filename, result.Stats)
}

func allowedExcelFile(filename, contentType string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls", ".xlsm":
	default:
		return false
	}
	if contentType == "" {
		return true
	}
	switch contentType {
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/vnd.ms-excel",
		"application/vnd.ms-excel.sheet.macroenabled.12",
		"application/vnd.ms-excel.sheet.macroEnabled.12",
		"application/octet-stream":
		return true
	}
	return false
}

func (h *Handler) logAudit(r *http.Request, projectID, filename string, stats importapp.Stats) {
	if h.auditLogger == nil {
		return
	}
	payload, _ := json.Marshal(map[string]any{"filename": filename, "stats": stats})
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       "import.excel",
		ResourceType: "project",
		ResourceID:   projectID,
		ProjectID:    projectID,
		Metadata:     payload,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: code, Message: message})
}
