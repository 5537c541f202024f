package scheduler

import (
	"errors"
	"time"

	"github.com/waw666waw666/reminder/pkg/remind"
)

// Defaults applied by New for zero Config fields.
const (
	DefaultPollInterval  = time.Second
	DefaultInboxSize     = 256
	DefaultNotifyTimeout = 30 * time.Second
	DefaultSource        = "Reminder"

	// Used when a task reaches the sink without text.
	DefaultTitle   = "Reminder"
	DefaultContent = "Time's up!"
)

var (
	// ErrAlreadyRunning is returned by Start when the loop is running.
	ErrAlreadyRunning = errors.New("scheduler is already running")

	// ErrStopped is returned by Start after Stop, and by Status once the
	// loop has exited.
	ErrStopped = errors.New("scheduler is stopped")
)

// Config holds the scheduler settings.
type Config struct {
	// PollInterval is the cadence of the poll cycle.
	PollInterval time.Duration

	// InboxSize is the channel buffer for manual triggers. Submissions
	// beyond it spill into an unbounded overflow queue.
	InboxSize int

	// NotifyTimeout bounds a single notification call.
	NotifyTimeout time.Duration

	// Source is passed to the notifier as the sending application.
	Source string

	// Now returns the current time. Tests inject a fake clock.
	Now func() time.Time
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.InboxSize <= 0 {
		c.InboxSize = DefaultInboxSize
	}
	if c.NotifyTimeout <= 0 {
		c.NotifyTimeout = DefaultNotifyTimeout
	}
	if c.Source == "" {
		c.Source = DefaultSource
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// Status is a read-only view of one task in the live list.
type Status struct {
	Task remind.Task
	// LastFired is the last natural fire, or the first observation.
	LastFired time.Time
	// Observed is false until the task has been seen by a poll cycle.
	Observed bool
}

// NextDue returns when the task becomes due, or the zero time if the task
// has not been observed yet.
func (s Status) NextDue() time.Time {
	if !s.Observed {
		return time.Time{}
	}
	return s.LastFired.Add(s.Task.Period())
}
