// Package autostart registers the daemon to start at user login.
package autostart

import (
	"errors"
	"strings"
)

// ErrUnsupported is returned on platforms without an autostart mechanism.
var ErrUnsupported = errors.New("autostart is not supported on this platform")

// EntryName identifies the autostart entry.
const EntryName = "ReminderManager"

// Command returns the command line started at login for the binary exe.
func Command(exe string) string {
	if strings.ContainsAny(exe, " \t") {
		exe = `"` + exe + `"`
	}
	return exe + " daemon"
}

// Enable registers exe to run the daemon at login.
func Enable(exe string) error {
	return enable(exe)
}

// Disable removes the login entry. Removing a missing entry is not an error.
func Disable() error {
	return disable()
}

// Enabled reports whether a login entry exists.
func Enabled() (bool, error) {
	return enabled()
}
