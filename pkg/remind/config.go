package remind

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigDirEnv overrides the default configuration directory.
const ConfigDirEnv = "REMINDER_CONFIG_DIR"

const (
	taskFileName   = "config.json"
	sqliteFileName = "tasks.db"
	logFileName    = "error.log"
	pidFileName    = "daemon.pid"
)

// ConfigDir is the absolute path of the reminder configuration directory.
var ConfigDir string

func init() {
	dir := os.Getenv(ConfigDirEnv)
	if dir == "" {
		var err error
		dir, err = defaultConfigDir()
		if err != nil {
			dir = filepath.Join(os.TempDir(), "reminder")
		}
	}
	// The fallback keeps the package importable on hosts without a
	// writable home; commands report the real error when they touch files.
	_ = initConfigDir(dir)
}

func defaultConfigDir() (string, error) {
	cdr, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cdr, "reminder"), nil
}

// initConfigDir sets dir as the configuration directory, falling back to a
// directory under os.TempDir when dir cannot be created.
func initConfigDir(dir string) error {
	err := setConfigDir(dir)
	if err == nil {
		return nil
	}
	fallback := filepath.Join(os.TempDir(), "reminder")
	if ferr := setConfigDir(fallback); ferr != nil {
		return fmt.Errorf("config dir %q: %w (fallback: %v)", dir, err, ferr)
	}
	return nil
}

func setConfigDir(dir string) error {
	if dir == "" {
		return errors.New("config dir is empty")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return err
	}
	ConfigDir = abs
	return nil
}

// SetConfigDir sets the configuration directory, creating it if needed.
func SetConfigDir(dir string) error {
	return setConfigDir(dir)
}

// TaskFile returns the path of the JSON task file.
func TaskFile() string { return filepath.Join(ConfigDir, taskFileName) }

// SQLiteFile returns the path of the SQLite task database.
func SQLiteFile() string { return filepath.Join(ConfigDir, sqliteFileName) }

// LogFile returns the path of the error log written by the daemon.
func LogFile() string { return filepath.Join(ConfigDir, logFileName) }

// PidFile returns the path of the daemon pid file.
func PidFile() string { return filepath.Join(ConfigDir, pidFileName) }
