package cmd

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

// captureOutput runs f with os.Stdout and os.Stderr redirected to pipes and
// returns what was written to each.
func captureOutput(f func()) (stdout, stderr string) {
	oldOut, oldErr := os.Stdout, os.Stderr
	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()
	os.Stdout, os.Stderr = wOut, wErr

	outc := make(chan string)
	errc := make(chan string)
	drain := func(r *os.File, c chan<- string) {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		r.Close()
		c <- buf.String()
	}
	go drain(rOut, outc)
	go drain(rErr, errc)

	defer func() {
		os.Stdout, os.Stderr = oldOut, oldErr
	}()
	f()
	wOut.Close()
	wErr.Close()
	return <-outc, <-errc
}

func assertContains(t *testing.T, output, expected string) {
	t.Helper()
	if !strings.Contains(output, expected) {
		t.Errorf("expected output to contain %q, got:\n%s", expected, output)
	}
}

func assertNotContains(t *testing.T, output, notExpected string) {
	t.Helper()
	if strings.Contains(output, notExpected) {
		t.Errorf("expected output to NOT contain %q, got:\n%s", notExpected, output)
	}
}

func assertContainsAll(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, exp := range expected {
		assertContains(t, output, exp)
	}
}

// assertErrorFormat checks for "reminder: <cmd>[<action>]:".
func assertErrorFormat(t *testing.T, output, cmd, action string) {
	t.Helper()
	assertContains(t, output, "reminder: "+cmd+"["+action+"]:")
}

func assertLineCount(t *testing.T, output string, minLines int) {
	t.Helper()
	if n := len(strings.Split(strings.TrimSpace(output), "\n")); n < minLines {
		t.Errorf("expected at least %d lines, got %d:\n%s", minLines, n, output)
	}
}
