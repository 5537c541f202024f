//go:build windows

package logger

import "testing"

type fakeEventLog struct {
	events []uint32
	msgs   []string
	closed bool
}

func (f *fakeEventLog) record(eid uint32, msg string) error {
	f.events = append(f.events, eid)
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeEventLog) Info(eid uint32, msg string) error    { return f.record(eid, msg) }
func (f *fakeEventLog) Warning(eid uint32, msg string) error { return f.record(eid, msg) }
func (f *fakeEventLog) Error(eid uint32, msg string) error   { return f.record(eid, msg) }
func (f *fakeEventLog) Close() error                         { f.closed = true; return nil }

func TestEventLogger_EventIDs(t *testing.T) {
	w := &fakeEventLog{}
	l := NewEventLoggerWithWriter(w)

	l.Info("started %d", 1)
	l.Warning("warn")
	l.Error("boom: %v", "x")

	want := []uint32{EventIDInfo, EventIDWarning, EventIDError}
	for i, eid := range want {
		if w.events[i] != eid {
			t.Errorf("event %d id = %d, want %d", i, w.events[i], eid)
		}
	}
	if w.msgs[0] != "started 1" || w.msgs[2] != "boom: x" {
		t.Errorf("unexpected messages: %v", w.msgs)
	}
}

func TestEventLogger_CloseTwice(t *testing.T) {
	w := &fakeEventLog{}
	l := NewEventLoggerWithWriter(w)
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !w.closed {
		t.Fatal("writer not closed")
	}
	if err := l.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
