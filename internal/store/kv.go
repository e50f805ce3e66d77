package store

import (
	"errors"
	"fmt"
)

// Well-known keys, one per entity kind.
const (
	KeyTasks            = "tasks"
	KeyNotes            = "notes"
	KeyProjects         = "projects"
	KeyFolders          = "folders"
	KeyHabits           = "habits"
	KeyPomodoroSessions = "pomodoroSessions"
	KeyCalendarEvents   = "calendarEvents"
	KeySettings         = "settings"
)

// ErrNotFound is returned by Get when nothing is stored under the key.
var ErrNotFound = errors.New("store: key not found")

// KV is the durable key-value contract the repositories persist through.
// Put overwrites the whole value.
type KV interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Keys() ([]string, error)
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendDisk   = "disk"
)

// Open returns the KV for the named backend. For sqlite, path is the
// database file; for disk, the base directory.
func Open(backend, path string) (KV, error) {
	switch backend {
	case "", BackendSQLite:
		return New(path)
	case BackendDisk:
		return NewDisk(path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
