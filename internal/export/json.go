package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/focusboard/internal/hub"
)

type jsonExport struct {
	ExportedAt string         `json:"exported_at"`
	Counts     map[string]int `json:"counts"`
	Data       hub.Snapshot   `json:"data"`
}

// SnapshotToJSON writes every collection as one pretty-printed document.
func SnapshotToJSON(snap hub.Snapshot, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Counts: map[string]int{
			"tasks":            len(snap.Tasks),
			"notes":            len(snap.Notes),
			"folders":          len(snap.Folders),
			"projects":         len(snap.Projects),
			"habits":           len(snap.Habits),
			"pomodoroSessions": len(snap.PomodoroSessions),
			"calendarEvents":   len(snap.CalendarEvents),
		},
		Data: snap,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
