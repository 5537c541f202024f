//go:build windows

package common

import "testing"

func TestPipePath(t *testing.T) {
	t.Setenv(PipeNameEnv, "")
	if got := PipePath(); got != DefaultPipePath() {
		t.Errorf("PipePath() = %q; want %q", got, DefaultPipePath())
	}

	t.Setenv(PipeNameEnv, "custom")
	if got := PipePath(); got != `\\.\pipe\custom` {
		t.Errorf("PipePath() = %q", got)
	}

	t.Setenv(PipeNameEnv, `\\.\pipe\full`)
	if got := PipePath(); got != `\\.\pipe\full` {
		t.Errorf("PipePath() = %q", got)
	}
}
