// Package store persists the reminder task list.
package store

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/waw666waw666/reminder/common"
	"github.com/waw666waw666/reminder/pkg/logger"
	"github.com/waw666waw666/reminder/pkg/remind"
)

// Store is a durable, ordered list of task definitions.
type Store interface {
	// Load returns the current list. A missing or unreadable list is
	// reported as an empty one where the backend can recover.
	Load(ctx context.Context) ([]remind.Task, error)
	// Save replaces the whole list.
	Save(ctx context.Context, tasks []remind.Task) error
	Close() error
}

// Open returns the backend named by kind, rooted in the configuration
// directory. An empty kind selects the JSON file store.
func Open(kind string, fs afero.Fs, l logger.Logger) (Store, error) {
	switch kind {
	case "", common.StoreJSON:
		return NewFileStore(fs, remind.TaskFile(), l), nil
	case common.StoreSQLite:
		return OpenSQLStore(remind.SQLiteFile(), l)
	default:
		return nil, fmt.Errorf("unknown store %q (want %s or %s)", kind, common.StoreJSON, common.StoreSQLite)
	}
}
