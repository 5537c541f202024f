package server

import (
	"context"
	"errors"
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/spf13/afero"
	"github.com/waw666waw666/reminder/common"
	"github.com/waw666waw666/reminder/internal/api"
	"github.com/waw666waw666/reminder/internal/notify"
	"github.com/waw666waw666/reminder/internal/scheduler"
	"github.com/waw666waw666/reminder/internal/store"
	"github.com/waw666waw666/reminder/pkg/remind"
)

type sinkRecorder struct {
	mu     sync.Mutex
	titles []string
}

func (r *sinkRecorder) notifier() notify.Notifier {
	return notify.Func(func(_ context.Context, title, _, _ string) error {
		r.mu.Lock()
		r.titles = append(r.titles, title)
		r.mu.Unlock()
		return nil
	})
}

func (r *sinkRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.titles)
}

type testEnv struct {
	srv      *Server
	client   *jrpc2.Client
	sink     *sinkRecorder
	stopped  chan struct{}
	stopOnce sync.Once
}

func newTestEnv(t *testing.T, withScheduler bool) *testEnv {
	t.Helper()
	env := &testEnv{sink: &sinkRecorder{}, stopped: make(chan struct{})}

	var sched api.Scheduler
	if withScheduler {
		s := scheduler.New(scheduler.Config{PollInterval: 10 * time.Millisecond}, env.sink.notifier(), nil)
		ctx, cancel := context.WithCancel(context.Background())
		go s.Start(ctx)
		t.Cleanup(func() {
			cancel()
			s.Stop()
		})
		sched = s
	}

	a := api.NewApi(nil, store.NewFileStore(afero.NewMemMapFs(), "/cfg/config.json", nil), sched)
	if _, err := a.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	env.srv = NewServer(nil, a, &Config{Version: "1.2.3", Commit: "abc"}, func() {
		env.stopOnce.Do(func() { close(env.stopped) })
	})

	srvConn, cliConn := net.Pipe()
	go env.srv.ServeConn(srvConn)
	env.client = jrpc2.NewClient(channel.Line(cliConn, cliConn), nil)
	t.Cleanup(func() { env.client.Close() })
	return env
}

func (e *testEnv) call(t *testing.T, method string, params, result any) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return e.client.CallResult(ctx, method, params, result)
}

func rpcCode(err error) jrpc2.Code {
	var e *jrpc2.Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t, false)
	var res common.VersionResult
	if err := env.call(t, common.MethodVersion, nil, &res); err != nil {
		t.Fatalf("call: %v", err)
	}
	if res.Version != "1.2.3" || res.Commit != "abc" {
		t.Fatalf("unexpected version: %+v", res)
	}
}

func TestTaskLifecycle(t *testing.T) {
	env := newTestEnv(t, true)

	var added common.TaskResult
	err := env.call(t, common.MethodAdd, &common.TaskParams{
		Title: "Drink water", Content: "Time to drink water!", Interval: "0.1",
	}, &added)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.Task.ID == "" || added.Task.Interval != 0.1 {
		t.Fatalf("unexpected task: %+v", added.Task)
	}

	var edited common.TaskResult
	err = env.call(t, common.MethodEdit, &common.EditParams{
		ID: added.Task.ID, TaskParams: common.TaskParams{Title: "Hydrate"},
	}, &edited)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.Task.Title != "Hydrate" || edited.Task.Content != added.Task.Content {
		t.Fatalf("unexpected edit result: %+v", edited.Task)
	}

	var list common.ListResult
	if err := env.call(t, common.MethodList, nil, &list); err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Tasks) != 1 || list.Tasks[0].Title != "Hydrate" {
		t.Fatalf("unexpected list: %+v", list.Tasks)
	}

	var triggered common.TaskResult
	if err := env.call(t, common.MethodTrigger, &common.IDParams{ID: added.Task.ID}, &triggered); err != nil {
		t.Fatalf("trigger: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for env.sink.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("manual trigger never reached the sink")
		}
		time.Sleep(5 * time.Millisecond)
	}

	var status common.StatusResult
	if err := env.call(t, common.MethodStatus, nil, &status); err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.PollInterval != 10*time.Millisecond || len(status.Items) != 1 {
		t.Fatalf("unexpected status: %+v", status)
	}

	var ok bool
	if err := env.call(t, common.MethodDelete, &common.IDParams{ID: added.Task.ID}, &ok); err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	if err := env.call(t, common.MethodList, nil, &list); err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Tasks) != 0 {
		t.Fatalf("expected empty list, got %+v", list.Tasks)
	}
}

func TestErrorCodes(t *testing.T) {
	env := newTestEnv(t, false)
	var res common.TaskResult
	var ok bool

	tests := []struct {
		name   string
		method string
		params any
		result any
		want   jrpc2.Code
	}{
		{"invalid interval", common.MethodAdd, &common.TaskParams{Title: "a", Content: "b", Interval: "0"}, &res, codeInvalidParams},
		{"missing title", common.MethodAdd, &common.TaskParams{Content: "b", Interval: "1"}, &res, codeInvalidParams},
		{"edit missing id", common.MethodEdit, &common.EditParams{}, &res, codeInvalidParams},
		{"edit unknown", common.MethodEdit, &common.EditParams{ID: "42"}, &res, codeTaskNotFound},
		{"delete unknown", common.MethodDelete, &common.IDParams{ID: "42"}, &ok, codeTaskNotFound},
		{"trigger without scheduler", common.MethodTrigger, &common.IDParams{ID: "42"}, &res, codeNoScheduler},
		{"status without scheduler", common.MethodStatus, nil, &common.StatusResult{}, codeNoScheduler},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := env.call(t, tt.method, tt.params, tt.result)
			if got := rpcCode(err); got != tt.want {
				t.Fatalf("code = %v, want %v (err: %v)", got, tt.want, err)
			}
		})
	}
}

func TestDaemonStop(t *testing.T) {
	env := newTestEnv(t, false)
	var ok bool
	if err := env.call(t, common.MethodShutdown, nil, &ok); err != nil || !ok {
		t.Fatalf("daemon.stop: %v %v", ok, err)
	}
	select {
	case <-env.stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown callback not invoked")
	}
}

func TestRPCError(t *testing.T) {
	plain := errors.New("disk full")
	if rpcError(plain) != plain {
		t.Fatal("unmapped errors must pass through")
	}
	if got := rpcCode(rpcError(&remind.ValidationError{Field: "title", Reason: "must not be empty"})); got != codeInvalidParams {
		t.Fatalf("code = %v", got)
	}
}

func TestShutdownIdempotent(t *testing.T) {
	t.Setenv(common.SocketPathEnv, filepath.Join(t.TempDir(), "none.sock"))
	t.Setenv(common.PipeNameEnv, "reminder-test-none")
	s := NewServer(nil, nil, nil, nil)
	if err := s.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if err := s.Shutdown(); err != nil {
		t.Fatalf("second Shutdown: %v", err)
	}
}
