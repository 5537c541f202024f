//go:build windows

package server

import (
	"fmt"
	"net"

	"github.com/Microsoft/go-winio"
	"github.com/waw666waw666/reminder/common"
)

// pipeSecurityDescriptor grants full control to SYSTEM, the built-in
// Administrators and the user running the daemon.
const pipeSecurityDescriptor = "D:(A;;GA;;;SY)(A;;GA;;;BA)(A;;GA;;;CO)"

// createListener creates the control pipe with restricted access.
func (s *Server) createListener() (net.Listener, error) {
	path := common.PipePath()
	l, err := winio.ListenPipe(path, &winio.PipeConfig{
		SecurityDescriptor: pipeSecurityDescriptor,
	})
	if err != nil {
		return nil, fmt.Errorf("error listening on %s: %w", path, err)
	}
	s.log.Info("listening on %s", path)
	return l, nil
}

// cleanupSocket has nothing to do: the pipe disappears with its last handle.
func cleanupSocket() error {
	return nil
}
