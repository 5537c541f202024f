//go:build !windows

package remindcli

import (
	"net"

	"github.com/waw666waw666/reminder/common"
)

// dialFunc is replaced in tests.
var dialFunc = net.DialTimeout

// dial connects to the daemon's Unix socket.
func dial() (net.Conn, error) {
	socketPath := common.SocketPath()
	debugLog("Attempting connection via Unix socket at %s", socketPath)
	conn, err := dialFunc("unix", socketPath, common.DefaultDialTimeout)
	if err != nil {
		return nil, err
	}
	debugLog("Successfully connected via Unix socket")
	return conn, nil
}
