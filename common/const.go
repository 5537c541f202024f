package common

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// AppName is shown to users and passed to notification sinks as the
	// source identity.
	AppName = "Reminder"

	// DefaultPollInterval is the scheduler polling cadence.
	DefaultPollInterval = time.Second

	// DefaultDialTimeout bounds connection attempts to the daemon.
	DefaultDialTimeout = 2 * time.Second

	// DefaultSocketName is the Unix socket file name under os.TempDir.
	DefaultSocketName = "reminder.sock"
)

// Store backends.
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

// SocketPath returns the Unix control socket path, honouring SocketPathEnv.
func SocketPath() string {
	if path := os.Getenv(SocketPathEnv); path != "" {
		return path
	}
	return filepath.Join(os.TempDir(), DefaultSocketName)
}

// PollInterval returns the polling cadence from PollIntervalEnv, or the
// default when unset or invalid.
func PollInterval() time.Duration {
	if v := os.Getenv(PollIntervalEnv); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return DefaultPollInterval
}

// StoreKind returns the configured store backend.
func StoreKind() string {
	if v := os.Getenv(StoreEnv); v != "" {
		return v
	}
	return StoreJSON
}
