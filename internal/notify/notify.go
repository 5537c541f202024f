// Package notify delivers reminder notifications to the desktop.
//
// Every sink implements Notifier. Default picks the platform sink and falls
// back to writing the notification to the logger when the desktop cannot be
// reached, so the daemon keeps running on headless hosts.
package notify

import (
	"context"
	"errors"
	"io"

	"github.com/waw666waw666/reminder/pkg/logger"
)

// ErrUnsupported is returned when no desktop sink exists for the platform.
var ErrUnsupported = errors.New("desktop notifications are not supported on this platform")

// Notifier shows a notification. source identifies the sending application.
type Notifier interface {
	Notify(ctx context.Context, title, body, source string) error
}

// Func adapts a function to Notifier.
type Func func(ctx context.Context, title, body, source string) error

func (f Func) Notify(ctx context.Context, title, body, source string) error {
	return f(ctx, title, body, source)
}

// LogNotifier writes notifications to a logger instead of the desktop.
type LogNotifier struct {
	log logger.Logger
}

// NewLogNotifier returns a sink that logs every notification at info level.
func NewLogNotifier(l logger.Logger) *LogNotifier {
	return &LogNotifier{log: l}
}

func (n *LogNotifier) Notify(_ context.Context, title, body, source string) error {
	n.log.Info("notification from %s: %s: %s", source, title, body)
	return nil
}

// Default returns the platform notifier, or a LogNotifier when the platform
// sink cannot be initialised.
func Default(l logger.Logger) Notifier {
	n, err := newPlatformNotifier()
	if err != nil {
		l.Warning("desktop notifications unavailable, logging instead: %v", err)
		return NewLogNotifier(l)
	}
	return n
}

// Close releases n if it holds resources.
func Close(n Notifier) error {
	if c, ok := n.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

var (
	_ Notifier = Func(nil)
	_ Notifier = (*LogNotifier)(nil)
)
