// Package api implements the task operations behind the control socket and
// the offline command line path.
package api

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/waw666waw666/reminder/internal/scheduler"
	"github.com/waw666waw666/reminder/internal/store"
	"github.com/waw666waw666/reminder/pkg/logger"
	"github.com/waw666waw666/reminder/pkg/remind"
)

// ErrNoScheduler is returned by operations that need a running daemon.
var ErrNoScheduler = errors.New("scheduler is not running")

// Scheduler is the part of the scheduler the api drives.
type Scheduler interface {
	ReplaceTasks(tasks []remind.Task)
	Trigger(t remind.Task)
	Status(ctx context.Context) ([]scheduler.Status, error)
	PollInterval() time.Duration
}

// Api serializes every read-modify-write of the task list. Each successful
// write is saved to the store before the scheduler sees the new list.
type Api struct {
	log   logger.Logger
	store store.Store
	sched Scheduler
	now   func() time.Time

	mu    sync.Mutex
	tasks []remind.Task
}

// NewApi creates the service. sched may be nil when no daemon runs in this
// process; scheduler-only operations then return ErrNoScheduler.
func NewApi(l logger.Logger, st store.Store, sched Scheduler) *Api {
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &Api{
		log:   l,
		store: st,
		sched: sched,
		now:   time.Now,
	}
}

// Load reads the store, drops tasks that would break the scheduler and
// pushes the rest to it.
func (s *Api) Load(ctx context.Context) ([]remind.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loaded, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	tasks := make([]remind.Task, 0, len(loaded))
	for _, t := range loaded {
		if err := t.Validate(); err != nil {
			s.log.Warning("skipping stored task %q: %v", t.ID, err)
			continue
		}
		if remind.Index(tasks, t.ID) >= 0 {
			s.log.Warning("skipping stored task %q: duplicate id", t.ID)
			continue
		}
		tasks = append(tasks, t)
	}
	s.tasks = tasks
	s.push()
	s.log.Info("loaded %d task(s)", len(tasks))
	return s.copyTasks(), nil
}

// List returns the current task list.
func (s *Api) List(_ context.Context) []remind.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyTasks()
}

// Close releases the store.
func (s *Api) Close() error {
	return s.store.Close()
}

// commit saves tasks and, on success, makes them the live list.
func (s *Api) commit(ctx context.Context, tasks []remind.Task) error {
	if err := s.store.Save(ctx, tasks); err != nil {
		return err
	}
	s.tasks = tasks
	s.push()
	return nil
}

func (s *Api) push() {
	if s.sched != nil {
		s.sched.ReplaceTasks(s.tasks)
	}
}

func (s *Api) copyTasks() []remind.Task {
	out := make([]remind.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}
