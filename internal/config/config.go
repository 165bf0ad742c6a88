package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DataDir         string
	DatabaseURI     string
	StaffKeyHash    string
	SessionSecret   string
	SessionTTL      time.Duration
	LogChannelURL   string
	CatalogPath     string
	AuditQueueSize  int
	AuditWorkers    int
	ShutdownTimeout time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultDataDir         = "./data"
	defaultSessionSecret   = "change-me-in-production"
	defaultSessionTTL      = 12 * time.Hour
	defaultAuditQueueSize  = 64
	defaultAuditWorkers    = 2
	defaultShutdownTimeout = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DataDir:         getString(lookup, "DATA_DIR", defaultDataDir),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		StaffKeyHash:    getString(lookup, "STAFF_KEY_HASH", ""),
		SessionSecret:   getString(lookup, "SESSION_SECRET", defaultSessionSecret),
		SessionTTL:      getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		LogChannelURL:   getString(lookup, "LOG_CHANNEL_URL", ""),
		CatalogPath:     getString(lookup, "CATALOG_FILE", ""),
		AuditQueueSize:  getInt(lookup, "AUDIT_QUEUE_SIZE", defaultAuditQueueSize),
		AuditWorkers:    getInt(lookup, "AUDIT_WORKERS", defaultAuditWorkers),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("loyaltybot", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		sessionTTLStr      = cfg.SessionTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "Directory for the JSON record sets")
	fs.StringVar(&cfg.DatabaseURI, "database", cfg.DatabaseURI, "PostgreSQL DSN; file store is used when empty")
	fs.StringVar(&cfg.StaffKeyHash, "staff-key-hash", cfg.StaffKeyHash, "bcrypt hash of the staff key")
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Secret for signing staff session tokens")
	fs.StringVar(&cfg.LogChannelURL, "log-channel", cfg.LogChannelURL, "Webhook URL for audit records")
	fs.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "YAML file overriding the built-in catalog")
	fs.IntVar(&cfg.AuditQueueSize, "audit-queue", cfg.AuditQueueSize, "Audit record queue capacity")
	fs.IntVar(&cfg.AuditWorkers, "audit-workers", cfg.AuditWorkers, "Number of audit publisher workers")
	fs.StringVar(&sessionTTLStr, "session-ttl", sessionTTLStr, "Staff session token lifetime")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SessionTTL, err = time.ParseDuration(sessionTTLStr); err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if hashFile, ok := lookup("STAFF_KEY_HASH_FILE"); ok && hashFile != "" {
		content, err := os.ReadFile(hashFile)
		if err != nil {
			return nil, fmt.Errorf("read staff key hash file: %w", err)
		}
		cfg.StaffKeyHash = string(content)
	}

	if cfg.AuditQueueSize <= 0 {
		cfg.AuditQueueSize = defaultAuditQueueSize
	}

	if cfg.AuditWorkers <= 0 {
		cfg.AuditWorkers = defaultAuditWorkers
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" && cfg.DataDir == "" {
		return nil, fmt.Errorf("either a data directory or a database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
