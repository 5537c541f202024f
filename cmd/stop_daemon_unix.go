//go:build !windows

package cmd

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"
)

const (
	shutdownTimeout  = 5 * time.Second
	killWait         = time.Second
	killPollInterval = 100 * time.Millisecond
)

// killDaemon asks the daemon named by the pid file to shut down with
// SIGTERM. A daemon still alive after shutdownTimeout gets SIGKILL, and
// since it cannot clean up after itself its pid file is removed here.
func killDaemon(pid int) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("find daemon process %d: %w", pid, err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		if errors.Is(err, os.ErrProcessDone) || errors.Is(err, syscall.ESRCH) {
			return RemovePidFile()
		}
		return fmt.Errorf("signal daemon (PID %d): %w", pid, err)
	}
	if waitForExit(pid, shutdownTimeout) {
		return nil
	}

	fmt.Printf("Daemon did not exit within %s, sending SIGKILL\n", shutdownTimeout)
	if err := proc.Signal(syscall.SIGKILL); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("kill daemon (PID %d): %w", pid, err)
	}
	if !waitForExit(pid, killWait) {
		return fmt.Errorf("daemon (PID %d) is still running", pid)
	}
	return RemovePidFile()
}
