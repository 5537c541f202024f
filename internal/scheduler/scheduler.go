package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/waw666waw666/reminder/internal/notify"
	"github.com/waw666waw666/reminder/pkg/logger"
	"github.com/waw666waw666/reminder/pkg/remind"
)

type state int

const (
	stateIdle state = iota
	stateRunning
	stateStopped
)

// Scheduler tracks the live task list and fires notifications when tasks
// become due. ReplaceTasks, Trigger, Status and Stop are safe to call from
// any goroutine.
type Scheduler struct {
	cfg  Config
	sink notify.Notifier
	log  logger.Logger

	mu     sync.RWMutex
	tasks  []remind.Task
	state  state
	cancel context.CancelFunc

	inbox   *inbox
	queries chan chan []Status
	done    chan struct{}

	// lastFired is only touched by the loop goroutine.
	lastFired map[remind.ID]time.Time
}

// New creates a scheduler that delivers through sink and logs to l.
// The loop does not run until Start is called.
func New(cfg Config, sink notify.Notifier, l logger.Logger) *Scheduler {
	cfg = cfg.withDefaults()
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &Scheduler{
		cfg:       cfg,
		sink:      sink,
		log:       l,
		inbox:     newInbox(cfg.InboxSize),
		queries:   make(chan chan []Status),
		done:      make(chan struct{}),
		lastFired: make(map[remind.ID]time.Time),
	}
}

// ReplaceTasks swaps the live task list used from the next poll cycle on.
// A cycle already in progress finishes with the list it started with.
func (s *Scheduler) ReplaceTasks(tasks []remind.Task) {
	live := make([]remind.Task, len(tasks))
	copy(live, tasks)
	s.mu.Lock()
	s.tasks = live
	s.mu.Unlock()
}

// Trigger queues a task to be fired on the next poll cycle regardless of
// its schedule. It never blocks and does not change when the task next
// fires on its own.
func (s *Scheduler) Trigger(t remind.Task) {
	s.inbox.push(t)
}

// Start runs the poll loop until ctx is cancelled or Stop is called. The
// first cycle runs immediately. A scheduler cannot be restarted.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case stateRunning:
		s.mu.Unlock()
		return ErrAlreadyRunning
	case stateStopped:
		s.mu.Unlock()
		return ErrStopped
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.state = stateRunning
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		s.state = stateStopped
		s.mu.Unlock()
		close(s.done)
		s.log.Info("scheduler stopped")
	}()

	s.log.Info("scheduler started, polling every %s", s.cfg.PollInterval)

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	s.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case reply := <-s.queries:
			reply <- s.snapshot()
		case <-ticker.C:
			if ctx.Err() != nil {
				return nil
			}
			s.poll(ctx)
		}
	}
}

// Stop ends the loop and waits for it to exit. No notification is sent
// after Stop returns. Calling Stop before Start prevents Start from running.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	switch s.state {
	case stateIdle:
		s.state = stateStopped
		close(s.done)
		s.mu.Unlock()
		return
	case stateRunning:
		cancel := s.cancel
		s.mu.Unlock()
		cancel()
	default:
		s.mu.Unlock()
	}
	<-s.done
}

// Done is closed once the scheduler has stopped.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

// PollInterval returns the effective polling cadence.
func (s *Scheduler) PollInterval() time.Duration {
	return s.cfg.PollInterval
}

// Status returns one entry per task in the live list, in list order. The
// loop goroutine answers between cycles.
func (s *Scheduler) Status(ctx context.Context) ([]Status, error) {
	reply := make(chan []Status, 1)
	select {
	case s.queries <- reply:
	case <-s.done:
		return nil, ErrStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case st := <-reply:
		return st, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Scheduler) liveTasks() []remind.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasks
}

// poll runs one cycle: evaluate every live task, forget tasks that left
// the list, then fire the queued manual triggers.
func (s *Scheduler) poll(ctx context.Context) {
	now := s.cfg.Now()
	tasks := s.liveTasks()

	seen := make(map[remind.ID]struct{}, len(tasks))
	for _, t := range tasks {
		seen[t.ID] = struct{}{}
		last, ok := s.lastFired[t.ID]
		if !ok {
			s.lastFired[t.ID] = now
			continue
		}
		if now.Sub(last) >= t.Period() {
			s.fire(ctx, t, "due")
			// Reset even when delivery failed.
			s.lastFired[t.ID] = now
		}
	}
	for id := range s.lastFired {
		if _, ok := seen[id]; !ok {
			delete(s.lastFired, id)
		}
	}

	for _, t := range s.inbox.drain() {
		s.fire(ctx, t, "manual")
	}
}

// fire delivers one notification. Errors and panics from the sink are
// logged and swallowed.
func (s *Scheduler) fire(ctx context.Context, t remind.Task, reason string) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("notification for task %s panicked: %v", t.ID, r)
		}
	}()

	title, body := t.Title, t.Content
	if title == "" {
		title = DefaultTitle
	}
	if body == "" {
		body = DefaultContent
	}

	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.NotifyTimeout)
	defer cancel()
	if err := s.sink.Notify(nctx, title, body, s.cfg.Source); err != nil {
		s.log.Error("failed to send %s notification for task %s: %v", reason, t.ID, err)
		return
	}
	s.log.Info("sent %s notification for task %s (%s)", reason, t.ID, title)
}

func (s *Scheduler) snapshot() []Status {
	tasks := s.liveTasks()
	out := make([]Status, 0, len(tasks))
	for _, t := range tasks {
		last, ok := s.lastFired[t.ID]
		out = append(out, Status{Task: t, LastFired: last, Observed: ok})
	}
	return out
}
