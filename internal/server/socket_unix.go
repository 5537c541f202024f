//go:build !windows

package server

import (
	"fmt"
	"net"
	"os"

	"github.com/waw666waw666/reminder/common"
)

// socketMode allows only the owner to connect.
const socketMode os.FileMode = 0700

// createListener creates the Unix control socket, replacing a stale socket
// file left by a crashed daemon.
func (s *Server) createListener() (net.Listener, error) {
	socketPath := common.SocketPath()
	_ = os.Remove(socketPath)
	l, err := net.ListenUnix("unix", &net.UnixAddr{
		Name: socketPath,
		Net:  "unix",
	})
	if err != nil {
		return nil, fmt.Errorf("error listening on %s: %w", socketPath, err)
	}
	if err := os.Chmod(socketPath, socketMode); err != nil {
		l.Close()
		return nil, fmt.Errorf("error restricting %s: %w", socketPath, err)
	}
	s.log.Info("listening on %s", socketPath)
	return l, nil
}

// cleanupSocket removes the socket file. A missing file is not an error.
func cleanupSocket() error {
	if err := os.Remove(common.SocketPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
