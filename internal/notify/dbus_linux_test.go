//go:build linux

package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
)

type fakeBusObject struct {
	method string
	args   []interface{}
	err    error
}

func (f *fakeBusObject) CallWithContext(_ context.Context, method string, _ dbus.Flags, args ...interface{}) *dbus.Call {
	f.method = method
	f.args = args
	return &dbus.Call{Err: f.err}
}

func TestDBusNotifier_Arguments(t *testing.T) {
	obj := &fakeBusObject{}
	n := &DBusNotifier{obj: obj}

	if err := n.Notify(context.Background(), "Drink water", "Time to drink water!", "Reminder"); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if obj.method != "org.freedesktop.Notifications.Notify" {
		t.Errorf("method = %q", obj.method)
	}
	if len(obj.args) != 8 {
		t.Fatalf("expected 8 args, got %d", len(obj.args))
	}
	if obj.args[0] != "Reminder" || obj.args[3] != "Drink water" || obj.args[4] != "Time to drink water!" {
		t.Errorf("unexpected args: %v", obj.args)
	}
	if _, ok := obj.args[1].(uint32); !ok {
		t.Errorf("replaces_id must be uint32, got %T", obj.args[1])
	}
	if _, ok := obj.args[7].(int32); !ok {
		t.Errorf("expire_timeout must be int32, got %T", obj.args[7])
	}
}

func TestDBusNotifier_Error(t *testing.T) {
	n := &DBusNotifier{obj: &fakeBusObject{err: errors.New("no server")}}
	if err := n.Notify(context.Background(), "a", "b", "c"); err == nil {
		t.Fatal("expected error")
	}
	if err := n.Close(); err != nil {
		t.Fatalf("Close without conn: %v", err)
	}
}
