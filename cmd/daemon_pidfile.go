package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/waw666waw666/reminder/pkg/remind"
)

// ErrDaemonRunning is returned when the pid file names a live process.
var ErrDaemonRunning = errors.New("daemon is already running")

// getPidFilePath returns the path to the daemon PID file.
func getPidFilePath() string {
	return remind.PidFile()
}

// WritePidFile writes the current process ID to the PID file.
func WritePidFile() error {
	pid := os.Getpid()
	return os.WriteFile(getPidFilePath(), []byte(strconv.Itoa(pid)), 0644)
}

// ReadPidFile reads and returns the PID from the PID file.
func ReadPidFile() (int, error) {
	data, err := os.ReadFile(getPidFilePath())
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID in file: %w", err)
	}
	if pid <= 0 {
		return 0, fmt.Errorf("invalid PID: %d", pid)
	}
	return pid, nil
}

// RemovePidFile removes the PID file.
func RemovePidFile() error {
	err := os.Remove(getPidFilePath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// CleanupStalePidFile removes a PID file left behind by a daemon that is no
// longer alive. It returns ErrDaemonRunning if the recorded process exists.
func CleanupStalePidFile() error {
	pid, err := ReadPidFile()
	switch {
	case os.IsNotExist(err):
		return nil
	case err != nil:
		// unreadable content cannot belong to a live daemon
		return RemovePidFile()
	}
	if isProcessRunning(pid) {
		return fmt.Errorf("%w (PID %d)", ErrDaemonRunning, pid)
	}
	return RemovePidFile()
}

// acquirePidFile claims the PID file for this process.
func acquirePidFile() error {
	if err := CleanupStalePidFile(); err != nil {
		return err
	}
	return WritePidFile()
}
