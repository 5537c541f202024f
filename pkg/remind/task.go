// Package remind holds the reminder data model shared by the daemon, the
// task stores and the command line client.
package remind

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ID identifies a task. New ids are the creation time in Unix milliseconds,
// but any non-empty string is accepted when loading.
type ID string

// NewID returns an id derived from the given creation time.
func NewID(now time.Time) ID {
	return ID(strconv.FormatInt(now.UnixMilli(), 10))
}

// UnmarshalJSON accepts both JSON strings and JSON numbers so task files
// edited by hand keep working.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("task id must be a string or a number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Task is a repeating reminder.
type Task struct {
	ID      ID     `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	// Interval is the repeat interval in minutes.
	Interval float64 `json:"interval"`
}

// MaxInterval is the largest interval in minutes that fits a time.Duration.
const MaxInterval = float64(math.MaxInt64) / float64(time.Minute)

// Period returns the interval as a duration. Intervals too large for a
// duration saturate at the maximum duration.
func (t Task) Period() time.Duration {
	d := t.Interval * float64(time.Minute)
	if d >= float64(math.MaxInt64) || math.IsNaN(d) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(d)
}

// Validate reports the first invalid field of t.
func (t Task) Validate() error {
	switch {
	case t.ID == "":
		return &ValidationError{Field: "id", Reason: "must not be empty"}
	case strings.TrimSpace(t.Title) == "":
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	case strings.TrimSpace(t.Content) == "":
		return &ValidationError{Field: "content", Reason: "must not be empty"}
	}
	return validInterval(t.Interval)
}

// ParseInterval parses an interval in minutes as typed by a user.
func ParseInterval(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &ValidationError{Field: "interval", Reason: "must be a number"}
	}
	if err := validInterval(v); err != nil {
		return 0, err
	}
	return v, nil
}

func validInterval(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ValidationError{Field: "interval", Reason: "must be a finite number"}
	}
	if v <= 0 {
		return &ValidationError{Field: "interval", Reason: "must be greater than 0"}
	}
	if v >= MaxInterval {
		return &ValidationError{Field: "interval", Reason: "too large"}
	}
	return nil
}

// Index returns the position of the task with the given id, or -1.
func Index(tasks []Task, id ID) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Upsert replaces the task with the same id or appends t. The input slice
// is not modified.
func Upsert(tasks []Task, t Task) []Task {
	out := make([]Task, len(tasks), len(tasks)+1)
	copy(out, tasks)
	if i := Index(out, t.ID); i >= 0 {
		out[i] = t
		return out
	}
	return append(out, t)
}

// Remove returns tasks without the one with the given id and whether it
// was present. The input slice is not modified.
func Remove(tasks []Task, id ID) ([]Task, bool) {
	out := make([]Task, 0, len(tasks))
	found := false
	for _, t := range tasks {
		if t.ID == id {
			found = true
			continue
		}
		out = append(out, t)
	}
	return out, found
}
