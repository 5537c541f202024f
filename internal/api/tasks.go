package api

import (
	"context"
	"strings"
	"time"

	"github.com/waw666waw666/reminder/common"
	"github.com/waw666waw666/reminder/pkg/remind"
)

// Add validates p and appends a new task with a fresh id.
func (s *Api) Add(ctx context.Context, p *common.TaskParams) (remind.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := remind.Task{
		ID:      s.nextID(),
		Title:   strings.TrimSpace(p.Title),
		Content: strings.TrimSpace(p.Content),
	}
	iv, err := remind.ParseInterval(p.Interval)
	if err != nil {
		return remind.Task{}, err
	}
	t.Interval = iv
	if err := t.Validate(); err != nil {
		return remind.Task{}, err
	}

	if err := s.commit(ctx, remind.Upsert(s.tasks, t)); err != nil {
		return remind.Task{}, err
	}
	s.log.Info("added task %s (%s, every %g min)", t.ID, t.Title, t.Interval)
	return t, nil
}

// Edit replaces the task with p.ID. Empty fields in p keep their value.
func (s *Api) Edit(ctx context.Context, p *common.EditParams) (remind.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := remind.Index(s.tasks, p.ID)
	if i < 0 {
		return remind.Task{}, remind.ErrNotFound
	}
	t := s.tasks[i]
	if v := strings.TrimSpace(p.Title); v != "" {
		t.Title = v
	}
	if v := strings.TrimSpace(p.Content); v != "" {
		t.Content = v
	}
	if v := strings.TrimSpace(p.Interval); v != "" {
		iv, err := remind.ParseInterval(v)
		if err != nil {
			return remind.Task{}, err
		}
		t.Interval = iv
	}
	if err := t.Validate(); err != nil {
		return remind.Task{}, err
	}

	if err := s.commit(ctx, remind.Upsert(s.tasks, t)); err != nil {
		return remind.Task{}, err
	}
	s.log.Info("edited task %s", t.ID)
	return t, nil
}

// Delete removes the task with id.
func (s *Api) Delete(ctx context.Context, id remind.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, ok := remind.Remove(s.tasks, id)
	if !ok {
		return remind.ErrNotFound
	}
	if err := s.commit(ctx, tasks); err != nil {
		return err
	}
	s.log.Info("deleted task %s", id)
	return nil
}

// Trigger queues the task with id to fire on the next poll cycle.
func (s *Api) Trigger(_ context.Context, id remind.ID) (remind.Task, error) {
	if s.sched == nil {
		return remind.Task{}, ErrNoScheduler
	}

	s.mu.Lock()
	i := remind.Index(s.tasks, id)
	if i < 0 {
		s.mu.Unlock()
		return remind.Task{}, remind.ErrNotFound
	}
	t := s.tasks[i]
	s.mu.Unlock()

	s.sched.Trigger(t)
	return t, nil
}

// nextID returns a creation-time id that is not taken yet.
func (s *Api) nextID() remind.ID {
	now := s.now()
	id := remind.NewID(now)
	for remind.Index(s.tasks, id) >= 0 {
		now = now.Add(time.Millisecond)
		id = remind.NewID(now)
	}
	return id
}
