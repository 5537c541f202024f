//go:build windows

package cmd

import (
	"fmt"
	"os"
	"time"
)

const (
	killWait         = 5 * time.Second
	killPollInterval = 100 * time.Millisecond
)

// killDaemon terminates the daemon named by the pid file. Windows has no
// deliverable SIGTERM, so this is only reached when the stop request over
// the pipe failed; the pid file is removed on the daemon's behalf.
func killDaemon(pid int) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return RemovePidFile()
	}
	defer proc.Release()
	if err := proc.Kill(); err != nil {
		return fmt.Errorf("kill daemon (PID %d): %w", pid, err)
	}
	if !waitForExit(pid, killWait) {
		return fmt.Errorf("daemon (PID %d) is still running", pid)
	}
	return RemovePidFile()
}
