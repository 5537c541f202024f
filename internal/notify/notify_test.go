package notify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/waw666waw666/reminder/pkg/logger"
)

func TestFunc(t *testing.T) {
	var got string
	n := Func(func(_ context.Context, title, body, source string) error {
		got = fmt.Sprintf("%s|%s|%s", title, body, source)
		return nil
	})
	if err := n.Notify(context.Background(), "t", "b", "s"); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if got != "t|b|s" {
		t.Fatalf("got %q", got)
	}
}

func TestLogNotifier(t *testing.T) {
	l := logger.NewMockLogger()
	n := NewLogNotifier(l)
	if err := n.Notify(context.Background(), "Drink water", "Time to drink water!", "Reminder"); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	calls := l.InfoCalls()
	if len(calls) != 1 || !strings.Contains(calls[0], "Drink water: Time to drink water!") {
		t.Fatalf("InfoCalls = %v", calls)
	}
}

func TestDefaultNeverNil(t *testing.T) {
	n := Default(logger.NewNopLogger())
	if n == nil {
		t.Fatal("Default returned nil")
	}
	_ = Close(n)
}

func TestCloseWithoutCloser(t *testing.T) {
	if err := Close(NewLogNotifier(logger.NewNopLogger())); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

// fakeExecCommand re-runs the test binary as a stand-in for the notification
// program, following the os/exec helper-process pattern.
func fakeExecCommand(exit int) func(ctx context.Context, name string, args ...string) *exec.Cmd {
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = []string{"GO_WANT_HELPER_PROCESS=1", fmt.Sprintf("HELPER_EXIT=%d", exit)}
		return cmd
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	if os.Getenv(envTitle) != "Stretch" || os.Getenv(envBody) != "Stand up" || os.Getenv(envSource) != "Reminder" {
		fmt.Fprint(os.Stderr, "missing notification environment")
		os.Exit(3)
	}
	if os.Getenv("HELPER_EXIT") != "0" {
		fmt.Fprint(os.Stderr, "toast failed")
		os.Exit(1)
	}
	os.Exit(0)
}

func TestScriptNotifier_PassesTextThroughEnvironment(t *testing.T) {
	orig := execCommand
	defer func() { execCommand = orig }()
	execCommand = fakeExecCommand(0)

	for _, n := range []*ScriptNotifier{NewToastNotifier(), NewAppleScriptNotifier()} {
		if err := n.Notify(context.Background(), "Stretch", "Stand up", "Reminder"); err != nil {
			t.Errorf("%s: Notify: %v", n.name, err)
		}
	}
}

func TestScriptNotifier_ReportsFailure(t *testing.T) {
	orig := execCommand
	defer func() { execCommand = orig }()
	execCommand = fakeExecCommand(1)

	err := NewToastNotifier().Notify(context.Background(), "Stretch", "Stand up", "Reminder")
	if err == nil {
		t.Fatal("expected error")
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *exec.ExitError, got %T", err)
	}
	if !strings.Contains(err.Error(), "toast failed") {
		t.Errorf("stderr not included: %v", err)
	}
}
