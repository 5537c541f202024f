//go:build windows

package remindcli

import (
	"context"
	"net"
	"time"

	"github.com/Microsoft/go-winio"
	"github.com/waw666waw666/reminder/common"
)

// dialPipeFunc is a variable that points to the actual dialPipe implementation.
// This allows tests to mock the pipe dialing behavior.
var dialPipeFunc = dialPipeImpl

// dialPipeImpl dials a named pipe, giving up after timeout.
func dialPipeImpl(path string, timeout time.Duration) (net.Conn, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return winio.DialPipeContext(ctx, path)
}

// dial connects to the daemon's named pipe.
func dial() (net.Conn, error) {
	pipePath := common.PipePath()
	debugLog("Attempting connection via named pipe at %s", pipePath)
	conn, err := dialPipeFunc(pipePath, common.DefaultDialTimeout)
	if err != nil {
		return nil, err
	}
	debugLog("Successfully connected via named pipe")
	return conn, nil
}
