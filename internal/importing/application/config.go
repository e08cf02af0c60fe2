package application

import (
	"errors"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	defaultSheetName     = "Raumbuch"
	defaultHeaderSkip    = 2
	defaultMaxUploadSize = 10 << 20
)

// Config defines import pipeline configuration.
type Config struct {
	SheetName      string `yaml:"sheet_name"`
	HeaderSkipRows int    `yaml:"header_skip_rows"`
	MaxUploadSize  int64  `yaml:"max_upload_size"`
}

// LoadConfig loads config from yaml or env. The header offset is
// configurable because source documents disagree on how many banner
// rows precede the header.
func LoadConfig() (Config, error) {
	cfg := Config{
		SheetName:      getenvDefault("IMPORT_SHEET_NAME", defaultSheetName),
		HeaderSkipRows: getenvIntDefault("IMPORT_HEADER_SKIP_ROWS", defaultHeaderSkip),
		MaxUploadSize:  int64(getenvIntDefault("IMPORT_MAX_UPLOAD_SIZE", defaultMaxUploadSize)),
	}

	if path := os.Getenv("IMPORT_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.SheetName == "" {
		cfg.SheetName = defaultSheetName
	}
	if cfg.HeaderSkipRows < 0 {
		return cfg, errors.New("import config: negative header skip")
	}
	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = defaultMaxUploadSize
	}
	return cfg, nil
}

// DefaultConfig returns the built-in defaults without env or file lookups.
func DefaultConfig() Config {
	return Config{
		SheetName:      defaultSheetName,
		HeaderSkipRows: defaultHeaderSkip,
		MaxUploadSize:  defaultMaxUploadSize,
	}
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
