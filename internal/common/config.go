package common

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/os-report/constants"
)

// Config holds all application configuration
type Config struct {
	Batch  BatchConfig
	Report ReportConfig
	Rules  RulesConfig
}

// BatchConfig holds input and validation-override configuration
type BatchConfig struct {
	Dir          string
	MaxTextPages int
	// IgnoreSignature and IgnoreDescription force the matching report column
	// to OK, for batches known to be exempt from those checks.
	IgnoreSignature   bool
	IgnoreDescription bool
}

// ReportConfig holds output configuration
type ReportConfig struct {
	XLSXPath   string
	SQLitePath string
}

// RulesConfig points at an optional JSON rules file
type RulesConfig struct {
	File string
}

// LoadDotEnv loads KEY=value pairs from path into the environment. Variables
// already set win, and a missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return NewAppError(CodeConfig, "load "+path, err)
	}
	return nil
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Batch: BatchConfig{
			Dir:               getEnv("OS_DIR", "."),
			MaxTextPages:      getEnvAsInt("OS_MAX_TEXT_PAGES", 3),
			IgnoreSignature:   getEnvAsBool("OS_IGNORE_SIGNATURE", false),
			IgnoreDescription: getEnvAsBool("OS_IGNORE_DESCRIPTION", false),
		},
		Report: ReportConfig{
			XLSXPath:   getEnv("OS_REPORT_FILE", constants.DefaultReportFile),
			SQLitePath: getEnv("OS_SQLITE_PATH", ""),
		},
		Rules: RulesConfig{
			File: getEnv("OS_RULES_FILE", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator().
		Field("OS_DIR", c.Batch.Dir, Required, ExistingDir).
		Field("OS_REPORT_FILE", c.Report.XLSXPath, Required).
		Field("OS_MAX_TEXT_PAGES", c.Batch.MaxTextPages, Positive)
	if v.HasErrors() {
		return NewAppError(CodeConfig, "invalid configuration", errors.Join(ErrInvalidInput, v.Error()))
	}
	return nil
}
