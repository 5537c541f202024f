package api

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waw666waw666/reminder/common"
	"github.com/waw666waw666/reminder/internal/scheduler"
	"github.com/waw666waw666/reminder/internal/store"
	"github.com/waw666waw666/reminder/pkg/logger"
	"github.com/waw666waw666/reminder/pkg/remind"
)

type fakeScheduler struct {
	mu        sync.Mutex
	replaced  [][]remind.Task
	triggered []remind.Task
	status    []scheduler.Status
	statusErr error
}

func (f *fakeScheduler) ReplaceTasks(tasks []remind.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replaced = append(f.replaced, tasks)
}

func (f *fakeScheduler) Trigger(t remind.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.triggered = append(f.triggered, t)
}

func (f *fakeScheduler) Status(context.Context) ([]scheduler.Status, error) {
	return f.status, f.statusErr
}

func (f *fakeScheduler) PollInterval() time.Duration { return time.Second }

func (f *fakeScheduler) live() []remind.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.replaced) == 0 {
		return nil
	}
	return f.replaced[len(f.replaced)-1]
}

// failingStore wraps a store and fails every Save once armed.
type failingStore struct {
	store.Store
	fail bool
}

func (f *failingStore) Save(ctx context.Context, tasks []remind.Task) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.Store.Save(ctx, tasks)
}

const taskPath = "/cfg/config.json"

func newTestApi(t *testing.T) (*Api, *fakeScheduler, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	sched := &fakeScheduler{}
	a := NewApi(logger.NewMockLogger(), store.NewFileStore(fs, taskPath, nil), sched)
	a.now = func() time.Time { return time.UnixMilli(1700000000000) }
	_, err := a.Load(context.Background())
	require.NoError(t, err)
	return a, sched, fs
}

func TestLoad_FiltersInvalidAndDuplicateTasks(t *testing.T) {
	fs := afero.NewMemMapFs()
	doc := `{"tasks": [
		{"id": "1", "title": "ok", "content": "c", "interval": 5},
		{"id": "2", "title": "", "content": "c", "interval": 5},
		{"id": "3", "title": "zero", "content": "c", "interval": 0},
		{"id": "1", "title": "dup", "content": "c", "interval": 5},
		{"id": "4", "title": "also ok", "content": "c", "interval": 0.5}
	]}`
	require.NoError(t, afero.WriteFile(fs, taskPath, []byte(doc), 0o644))
	l := logger.NewMockLogger()
	sched := &fakeScheduler{}
	a := NewApi(l, store.NewFileStore(fs, taskPath, nil), sched)

	tasks, err := a.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, remind.ID("1"), tasks[0].ID)
	assert.Equal(t, remind.ID("4"), tasks[1].ID)
	assert.Equal(t, tasks, sched.live())
	assert.Len(t, l.WarningCalls(), 3)
}

func TestAdd(t *testing.T) {
	a, sched, fs := newTestApi(t)
	ctx := context.Background()

	task, err := a.Add(ctx, &common.TaskParams{Title: " Drink water ", Content: "Time to drink water!", Interval: "0.1"})
	require.NoError(t, err)
	assert.Equal(t, remind.ID("1700000000000"), task.ID)
	assert.Equal(t, "Drink water", task.Title)
	assert.Equal(t, 0.1, task.Interval)
	assert.Equal(t, []remind.Task{task}, sched.live())

	// Same millisecond: the id must still be unique.
	second, err := a.Add(ctx, &common.TaskParams{Title: "b", Content: "c", Interval: "2"})
	require.NoError(t, err)
	assert.Equal(t, remind.ID("1700000000001"), second.ID)

	reloaded, err := store.NewFileStore(fs, taskPath, nil).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []remind.Task{task, second}, reloaded)
}

func TestAdd_Validation(t *testing.T) {
	a, sched, _ := newTestApi(t)
	tests := []struct {
		name  string
		p     common.TaskParams
		field string
	}{
		{"empty title", common.TaskParams{Title: " ", Content: "c", Interval: "1"}, "title"},
		{"empty content", common.TaskParams{Title: "t", Content: "", Interval: "1"}, "content"},
		{"non-numeric interval", common.TaskParams{Title: "t", Content: "c", Interval: "soon"}, "interval"},
		{"zero interval", common.TaskParams{Title: "t", Content: "c", Interval: "0"}, "interval"},
		{"negative interval", common.TaskParams{Title: "t", Content: "c", Interval: "-3"}, "interval"},
		{"nan interval", common.TaskParams{Title: "t", Content: "c", Interval: "NaN"}, "interval"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Add(context.Background(), &tt.p)
			var verr *remind.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
	assert.Empty(t, a.List(context.Background()))
	assert.Len(t, sched.replaced, 1, "rejected edits must not reach the scheduler")
}

func TestEdit(t *testing.T) {
	a, sched, _ := newTestApi(t)
	ctx := context.Background()
	orig, err := a.Add(ctx, &common.TaskParams{Title: "a", Content: "b", Interval: "5"})
	require.NoError(t, err)

	edited, err := a.Edit(ctx, &common.EditParams{ID: orig.ID, TaskParams: common.TaskParams{Interval: "10"}})
	require.NoError(t, err)
	assert.Equal(t, remind.Task{ID: orig.ID, Title: "a", Content: "b", Interval: 10}, edited)
	assert.Equal(t, []remind.Task{edited}, sched.live())

	_, err = a.Edit(ctx, &common.EditParams{ID: "missing", TaskParams: common.TaskParams{Title: "x"}})
	assert.ErrorIs(t, err, remind.ErrNotFound)

	_, err = a.Edit(ctx, &common.EditParams{ID: orig.ID, TaskParams: common.TaskParams{Interval: "-1"}})
	assert.True(t, remind.IsValidation(err))
	assert.Equal(t, []remind.Task{edited}, a.List(ctx))
}

func TestDelete(t *testing.T) {
	a, sched, _ := newTestApi(t)
	ctx := context.Background()
	first, err := a.Add(ctx, &common.TaskParams{Title: "a", Content: "b", Interval: "5"})
	require.NoError(t, err)
	second, err := a.Add(ctx, &common.TaskParams{Title: "c", Content: "d", Interval: "5"})
	require.NoError(t, err)

	require.NoError(t, a.Delete(ctx, first.ID))
	assert.Equal(t, []remind.Task{second}, a.List(ctx))
	assert.Equal(t, []remind.Task{second}, sched.live())

	assert.ErrorIs(t, a.Delete(ctx, first.ID), remind.ErrNotFound)
}

func TestSaveFailureKeepsPreviousList(t *testing.T) {
	fs := afero.NewMemMapFs()
	st := &failingStore{Store: store.NewFileStore(fs, taskPath, nil)}
	sched := &fakeScheduler{}
	a := NewApi(nil, st, sched)
	ctx := context.Background()
	_, err := a.Load(ctx)
	require.NoError(t, err)

	task, err := a.Add(ctx, &common.TaskParams{Title: "a", Content: "b", Interval: "1"})
	require.NoError(t, err)

	st.fail = true
	_, err = a.Add(ctx, &common.TaskParams{Title: "c", Content: "d", Interval: "1"})
	require.Error(t, err)
	require.Error(t, a.Delete(ctx, task.ID))

	assert.Equal(t, []remind.Task{task}, a.List(ctx))
	assert.Equal(t, []remind.Task{task}, sched.live())
}

func TestTrigger(t *testing.T) {
	a, sched, _ := newTestApi(t)
	ctx := context.Background()
	task, err := a.Add(ctx, &common.TaskParams{Title: "a", Content: "b", Interval: "5"})
	require.NoError(t, err)

	got, err := a.Trigger(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task, got)
	assert.Equal(t, []remind.Task{task}, sched.triggered)

	_, err = a.Trigger(ctx, "nope")
	assert.ErrorIs(t, err, remind.ErrNotFound)
}

func TestOfflineMode(t *testing.T) {
	a := NewApi(nil, store.NewFileStore(afero.NewMemMapFs(), taskPath, nil), nil)
	ctx := context.Background()
	_, err := a.Load(ctx)
	require.NoError(t, err)

	task, err := a.Add(ctx, &common.TaskParams{Title: "a", Content: "b", Interval: "5"})
	require.NoError(t, err)

	_, err = a.Trigger(ctx, task.ID)
	assert.ErrorIs(t, err, ErrNoScheduler)
	_, err = a.Status(ctx)
	assert.ErrorIs(t, err, ErrNoScheduler)
}

func TestStatus(t *testing.T) {
	a, sched, _ := newTestApi(t)
	last := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	task := remind.Task{ID: "1", Title: "a", Content: "b", Interval: 0.1}
	sched.status = []scheduler.Status{
		{Task: task, LastFired: last, Observed: true},
		{Task: remind.Task{ID: "2", Title: "c", Content: "d", Interval: 1}},
	}

	res, err := a.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Second, res.PollInterval)
	require.Len(t, res.Items, 2)
	assert.Equal(t, last.Add(6*time.Second), res.Items[0].NextDue)
	assert.False(t, res.Items[1].Observed)
	assert.True(t, res.Items[1].NextDue.IsZero())

	sched.statusErr = scheduler.ErrStopped
	_, err = a.Status(context.Background())
	assert.ErrorIs(t, err, scheduler.ErrStopped)
}
