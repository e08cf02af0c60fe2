package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"elektro-raumbuch/internal/audit"
	"elektro-raumbuch/internal/auth"
	importapp "elektro-raumbuch/internal/importing/application"
	importhttp "elektro-raumbuch/internal/importing/interfaces/http"
	"elektro-raumbuch/internal/observability/logging"
	"elektro-raumbuch/internal/observability/metrics"
	"elektro-raumbuch/internal/raumbuch/application"
	"elektro-raumbuch/internal/raumbuch/infrastructure/postgres"
	raumbuchhttp "elektro-raumbuch/internal/raumbuch/interfaces/http"
)

func main() {
	cfg := loadConfig()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, "elektro-raumbuch")
	if err != nil {
		os.Stderr.WriteString("logger init error: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("db open error", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("db ping error", zap.Error(err))
	}

	metrics.Init(db, logger)
	auditRepo := audit.NewRepository(db)

	store, err := postgres.NewStore(db)
	if err != nil {
		logger.Fatal("store error", zap.Error(err))
	}
	repos := store.Repos()

	projectService, err := application.NewProjectService(repos.Projects)
	if err != nil {
		logger.Fatal("project service error", zap.Error(err))
	}
	zoneService, err := application.NewZoneService(repos.Zones)
	if err != nil {
		logger.Fatal("zone service error", zap.Error(err))
	}
	roomService, err := application.NewRoomService(repos.Rooms)
	if err != nil {
		logger.Fatal("room service error", zap.Error(err))
	}
	deviceService, err := application.NewDeviceService(repos.Devices)
	if err != nil {
		logger.Fatal("device service error", zap.Error(err))
	}
	roomDeviceService, err := application.NewRoomDeviceService(repos.RoomDevices)
	if err != nil {
		logger.Fatal("room device service error", zap.Error(err))
	}
	tradeService, err := application.NewTradeService(repos.Trades)
	if err != nil {
		logger.Fatal("trade service error", zap.Error(err))
	}
	categoryService, err := application.NewCategoryService(repos.Categories)
	if err != nil {
		logger.Fatal("category service error", zap.Error(err))
	}
	connectionService, err := application.NewConnectionService(repos.Connections)
	if err != nil {
		logger.Fatal("connection service error", zap.Error(err))
	}
	installZoneService, err := application.NewInstallZoneService(repos.InstallZones)
	if err != nil {
		logger.Fatal("install zone service error", zap.Error(err))
	}
	exportService, err := application.NewExportService(repos)
	if err != nil {
		logger.Fatal("export service error", zap.Error(err))
	}

	importCfg, err := importapp.LoadConfig()
	if err != nil {
		logger.Fatal("import config error", zap.Error(err))
	}
	importService, err := importapp.NewService(store, importCfg, logger)
	if err != nil {
		logger.Fatal("import service error", zap.Error(err))
	}

	projectHandler, err := raumbuchhttp.NewProjectHandler(projectService, exportService, auditRepo)
	if err != nil {
		logger.Fatal("project handler error", zap.Error(err))
	}
	zoneHandler, err := raumbuchhttp.NewZoneHandler(zoneService, auditRepo)
	if err != nil {
		logger.Fatal("zone handler error", zap.Error(err))
	}
	roomHandler, err := raumbuchhttp.NewRoomHandler(roomService, auditRepo)
	if err != nil {
		logger.Fatal("room handler error", zap.Error(err))
	}
	deviceHandler, err := raumbuchhttp.NewDeviceHandler(deviceService, auditRepo)
	if err != nil {
		logger.Fatal("device handler error", zap.Error(err))
	}
	roomDeviceHandler, err := raumbuchhttp.NewRoomDeviceHandler(roomDeviceService, auditRepo)
	if err != nil {
		logger.Fatal("room device handler error", zap.Error(err))
	}
	tradeHandler, err := raumbuchhttp.NewTradeHandler(tradeService, auditRepo)
	if err != nil {
		logger.Fatal("trade handler error", zap.Error(err))
	}
	categoryHandler, err := raumbuchhttp.NewCategoryHandler(categoryService, auditRepo)
	if err != nil {
		logger.Fatal("category handler error", zap.Error(err))
	}
	connectionHandler, err := raumbuchhttp.NewConnectionHandler(connectionService, auditRepo)
	if err != nil {
		logger.Fatal("connection handler error", zap.Error(err))
	}
	installZoneHandler, err := raumbuchhttp.NewInstallZoneHandler(installZoneService, auditRepo)
	if err != nil {
		logger.Fatal("install zone handler error", zap.Error(err))
	}
	importHandler, err := importhttp.NewHandler(importService, importCfg.MaxUploadSize, auditRepo)
	if err != nil {
		logger.Fatal("import handler error", zap.Error(err))
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/projects", projectHandler)
	mux.Handle("/api/v1/projects/", projectHandler)
	mux.Handle("/api/v1/zones", zoneHandler)
	mux.Handle("/api/v1/zones/", zoneHandler)
	mux.Handle("/api/v1/rooms", roomHandler)
	mux.Handle("/api/v1/rooms/", roomHandler)
	mux.Handle("/api/v1/devices", deviceHandler)
	mux.Handle("/api/v1/devices/", deviceHandler)
	mux.Handle("/api/v1/room-devices", roomDeviceHandler)
	mux.Handle("/api/v1/room-devices/", roomDeviceHandler)
	mux.Handle("/api/v1/trades", tradeHandler)
	mux.Handle("/api/v1/trades/", tradeHandler)
	mux.Handle("/api/v1/categories", categoryHandler)
	mux.Handle("/api/v1/categories/", categoryHandler)
	mux.Handle("/api/v1/connections", connectionHandler)
	mux.Handle("/api/v1/connections/", connectionHandler)
	mux.Handle("/api/v1/install-zones", installZoneHandler)
	mux.Handle("/api/v1/install-zones/", installZoneHandler)
	mux.Handle("/api/v1/import/excel", importHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var handler http.Handler = mux
	if cfg.JWTSecret != "" {
		policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil)
		handler = auth.NewMiddleware([]byte(cfg.JWTSecret), policy).Wrap(handler)
	} else {
		logger.Warn("no JWT secret configured, API is unauthenticated")
	}

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(handler, logger)}
	logger.Info("http listening", zap.String("addr", cfg.HTTPAddr))
	logger.Fatal("server stopped", zap.Error(server.ListenAndServe()))
}

type config struct {
	DatabaseURL string
	HTTPAddr    string
	JWTSecret   string
	LogLevel    string
	LogFormat   string
}

func loadConfig() config {
	cfg := config{
		DatabaseURL: getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:    getenvDefault("HTTP_ADDR", ":8080"),
		JWTSecret:   getenvDefault("AUTH_JWT_SECRET", getenvDefault("JWT_SECRET", "")),
		LogLevel:    getenvDefault("LOG_LEVEL", "info"),
		LogFormat:   getenvDefault("LOG_FORMAT", "json"),
	}
	if cfg.DatabaseURL == "" {
		os.Stderr.WriteString("DATABASE_URL or PG_DSN is required\n")
		os.Exit(1)
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func loggingMiddleware(next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", resp.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
