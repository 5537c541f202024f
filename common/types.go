package common

import (
	"time"

	"github.com/waw666waw666/reminder/pkg/remind"
)

// JSON-RPC method names served by the daemon.
const (
	MethodVersion  = "system.getVersion"
	MethodList     = "task.list"
	MethodAdd      = "task.add"
	MethodEdit     = "task.edit"
	MethodDelete   = "task.delete"
	MethodTrigger  = "task.trigger"
	MethodStatus   = "scheduler.status"
	MethodShutdown = "daemon.stop"
)

// TaskParams carries the editable fields of a task. Interval is the raw
// user input so validation happens in one place on the daemon side.
type TaskParams struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Interval string `json:"interval"`
}

// EditParams identifies the task to edit. Empty fields keep their value.
type EditParams struct {
	ID remind.ID `json:"id"`
	TaskParams
}

// IDParams is the input of methods addressing a single task.
type IDParams struct {
	ID remind.ID `json:"id"`
}

// TaskResult is the response of add and edit.
type TaskResult struct {
	Task remind.Task `json:"task"`
}

// ListResult is the response of task.list.
type ListResult struct {
	Tasks []remind.Task `json:"tasks"`
}

// StatusItem describes one tracked task.
type StatusItem struct {
	Task      remind.Task `json:"task"`
	LastFired time.Time   `json:"last_fired,omitempty"`
	NextDue   time.Time   `json:"next_due,omitempty"`
	Observed  bool        `json:"observed"`
}

// StatusResult is the response of scheduler.status.
type StatusResult struct {
	PollInterval time.Duration `json:"poll_interval"`
	Items        []StatusItem  `json:"items"`
}

// VersionResult is the response of system.getVersion.
type VersionResult struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildType string `json:"build_type,omitempty"`
}
