// Package remindcli is the client side of the daemon control socket.
package remindcli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
)

// ErrUnreachable is returned by NewClient when no daemon is listening.
var ErrUnreachable = errors.New("reminder daemon is not running")

// Error codes returned by the daemon.
const (
	CodeTaskNotFound  = jrpc2.Code(-32001)
	CodeNoScheduler   = jrpc2.Code(-32002)
	CodeInvalidParams = jrpc2.Code(-32602)
)

// Client is a connection to the daemon.
type Client struct {
	conn net.Conn
	rpc  *jrpc2.Client
}

// NewClient connects to the daemon's control socket. The error wraps
// ErrUnreachable when nothing is listening.
func NewClient() (*Client, error) {
	conn, err := dial()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return NewClientConn(conn), nil
}

// NewClientConn wraps an established connection.
func NewClientConn(conn net.Conn) *Client {
	return &Client{
		conn: conn,
		rpc:  jrpc2.NewClient(channel.Line(conn, conn), nil),
	}
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.rpc.Close()
}

func (c *Client) call(ctx context.Context, method string, params, result any) error {
	debugLog("calling %s", method)
	if err := c.rpc.CallResult(ctx, method, params, result); err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	return nil
}

// Code returns the JSON-RPC error code carried by err, or 0.
func Code(err error) jrpc2.Code {
	var e *jrpc2.Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

// IsNotFound reports whether the daemon rejected a call for an unknown task.
func IsNotFound(err error) bool { return Code(err) == CodeTaskNotFound }

// IsInvalidParams reports whether the daemon rejected the call's input.
func IsInvalidParams(err error) bool { return Code(err) == CodeInvalidParams }

// Message returns the daemon's error text without the method prefix.
func Message(err error) string {
	var e *jrpc2.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func isDisconnect(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrClosedPipe) ||
		strings.Contains(err.Error(), "closed")
}
