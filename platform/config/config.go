// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// EmailConfig provides settings for SMTP email sending.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	GetAppBaseURL() string
}

// NotificationConfig provides settings for notification handlers.
type NotificationConfig interface {
	GetAppBaseURL() string
}

// MinIOConfig provides settings for MinIO S3-compatible storage.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinioBucketAssignmentReports() string
	IsMinIOEnabled() bool
}

// SchedulerConfig provides settings for the background task runner.
type SchedulerConfig interface {
	GetRedisURL() string
	GetSchedulerConcurrency() int
	GetCycleInterval() time.Duration
	GetExportInterval() time.Duration
}

// SimulationConfig provides settings for the synthetic lead generator.
type SimulationConfig interface {
	GetSimulationInterval() time.Duration
	GetLeadsMin() int
	GetLeadsMax() int
	GetInitialAssignmentStatus() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                          string
	HTTPAddr                     string
	DatabaseURL                  string
	JWTAccessSecret              string
	CORSAllowAll                 bool
	CORSOrigins                  []string
	CORSAllowCreds               bool
	AppBaseURL                   string
	EmailEnabled                 bool
	SMTPHost                     string
	SMTPPort                     int
	SMTPUsername                 string
	SMTPPassword                 string
	EmailFromName                string
	EmailFromAddress             string
	MinIOEndpoint                string
	MinIOAccessKey               string
	MinIOSecretKey               string
	MinIOUseSSL                  bool
	MinioBucketAssignmentReports string
	RedisURL                     string
	SchedulerConcurrency         int
	CycleInterval                time.Duration
	ExportInterval               time.Duration
	SimulationInterval           time.Duration
	LeadsMin                     int
	LeadsMax                     int
	InitialAssignmentStatus      string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// EmailConfig implementation
func (c *Config) GetEmailEnabled() bool       { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }
func (c *Config) GetAppBaseURL() string       { return c.AppBaseURL }

// MinIOConfig implementation
func (c *Config) GetMinIOEndpoint() string  { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool      { return c.MinIOUseSSL }
func (c *Config) GetMinioBucketAssignmentReports() string {
	return c.MinioBucketAssignmentReports
}
func (c *Config) IsMinIOEnabled() bool { return c.MinIOEndpoint != "" }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string                { return c.RedisURL }
func (c *Config) GetSchedulerConcurrency() int       { return c.SchedulerConcurrency }
func (c *Config) GetCycleInterval() time.Duration    { return c.CycleInterval }
func (c *Config) GetExportInterval() time.Duration   { return c.ExportInterval }

// SimulationConfig implementation
func (c *Config) GetSimulationInterval() time.Duration { return c.SimulationInterval }
func (c *Config) GetLeadsMin() int                     { return c.LeadsMin }
func (c *Config) GetLeadsMax() int                     { return c.LeadsMax }
func (c *Config) GetInitialAssignmentStatus() string   { return c.InitialAssignmentStatus }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	smtpHost := getEnv("SMTP_HOST", "")
	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "true"), "true")

	cfg := &Config{
		Env:                          getEnv("APP_ENV", "development"),
		HTTPAddr:                     getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:                  getEnv("DATABASE_URL", ""),
		JWTAccessSecret:              getEnv("JWT_ACCESS_SECRET", ""),
		CORSAllowAll:                 corsAllowAll,
		CORSOrigins:                  corsOrigins,
		CORSAllowCreds:               strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		AppBaseURL:                   getEnv("APP_BASE_URL", "http://localhost:4200"),
		EmailEnabled:                 emailEnabled && smtpHost != "",
		SMTPHost:                     smtpHost,
		SMTPPort:                     mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:                 getEnv("SMTP_USERNAME", ""),
		SMTPPassword:                 getEnv("SMTP_PASSWORD", ""),
		EmailFromName:                getEnv("EMAIL_FROM_NAME", "Lead Management"),
		EmailFromAddress:             getEnv("EMAIL_FROM_ADDRESS", ""),
		MinIOEndpoint:                getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:               getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:               getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:                  strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinioBucketAssignmentReports: getEnv("MINIO_BUCKET_ASSIGNMENT_REPORTS", "assignment-reports"),
		RedisURL:                     getEnv("REDIS_URL", "redis://localhost:6379/0"),
		SchedulerConcurrency:         mustInt(getEnv("SCHEDULER_CONCURRENCY", "5")),
		CycleInterval:                mustDuration(getEnv("ASSIGNMENT_CYCLE_INTERVAL", "1m")),
		ExportInterval:               mustDuration(getEnv("ASSIGNMENT_EXPORT_INTERVAL", "24h")),
		SimulationInterval:           mustDuration(getEnv("SIMULATION_INTERVAL", "30s")),
		LeadsMin:                     mustInt(getEnv("LEADS_MIN", "1")),
		LeadsMax:                     mustInt(getEnv("LEADS_MAX", "5")),
		InitialAssignmentStatus:      getEnv("INITIAL_ASSIGNMENT_STATUS", "Pending"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.EmailEnabled && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when email is enabled")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if cfg.CycleInterval <= 0 {
		return nil, fmt.Errorf("ASSIGNMENT_CYCLE_INTERVAL must be a positive duration")
	}
	if cfg.SimulationInterval <= 0 {
		return nil, fmt.Errorf("SIMULATION_INTERVAL must be a positive duration")
	}
	if cfg.LeadsMin < 1 || cfg.LeadsMax < cfg.LeadsMin {
		return nil, fmt.Errorf("LEADS_MIN and LEADS_MAX must satisfy 1 <= min <= max")
	}
	if strings.TrimSpace(cfg.InitialAssignmentStatus) == "" {
		return nil, fmt.Errorf("INITIAL_ASSIGNMENT_STATUS cannot be blank")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
