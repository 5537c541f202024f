//go:build linux

package notify

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	dbusDest   = "org.freedesktop.Notifications"
	dbusPath   = dbus.ObjectPath("/org/freedesktop/Notifications")
	dbusMethod = dbusDest + ".Notify"

	// -1 lets the notification server pick the expiry.
	dbusDefaultTimeout = int32(-1)
)

// busObject is the part of dbus.BusObject used here.
type busObject interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// DBusNotifier sends notifications to the freedesktop notification server
// on the session bus.
type DBusNotifier struct {
	conn *dbus.Conn
	obj  busObject
}

// NewDBusNotifier connects to the session bus.
func NewDBusNotifier() (*DBusNotifier, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &DBusNotifier{conn: conn, obj: conn.Object(dbusDest, dbusPath)}, nil
}

func (n *DBusNotifier) Notify(ctx context.Context, title, body, source string) error {
	// app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout
	call := n.obj.CallWithContext(ctx, dbusMethod, 0,
		source, uint32(0), "", title, body,
		[]string{}, map[string]dbus.Variant{}, dbusDefaultTimeout,
	)
	if call.Err != nil {
		return fmt.Errorf("dbus notify: %w", call.Err)
	}
	return nil
}

// Close closes the session bus connection.
func (n *DBusNotifier) Close() error {
	if n.conn == nil {
		return nil
	}
	err := n.conn.Close()
	n.conn = nil
	return err
}

func newPlatformNotifier() (Notifier, error) {
	return NewDBusNotifier()
}
