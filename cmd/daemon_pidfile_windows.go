//go:build windows

package cmd

import (
	"golang.org/x/sys/windows"
)

// isProcessRunning reports whether a process with the given PID exists.
// The process is opened with SYNCHRONIZE, the smallest useful access right.
func isProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	handle, err := windows.OpenProcess(windows.SYNCHRONIZE, false, uint32(pid))
	if err != nil {
		return false
	}
	defer windows.CloseHandle(handle)
	// An exited process stays openable while any handle to it is held.
	event, err := windows.WaitForSingleObject(handle, 0)
	return err == nil && event == uint32(windows.WAIT_TIMEOUT)
}
