package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/focusboard/internal/hub"
)

func ptr(s string) *string { return &s }

func sampleSnapshot() hub.Snapshot {
	created := time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)
	return hub.Snapshot{
		Tasks: []hub.Task{
			{ID: "t1", Text: "Write report", Completed: true, ProjectID: ptr("p1"),
				DueDate: "2024-01-05", Category: hub.CategoryWork, Priority: hub.PriorityHigh, CreatedAt: created},
			{ID: "t2", Text: "Buy milk", Category: hub.CategoryPersonal, Priority: hub.PriorityNone, CreatedAt: created},
			{ID: "t3", Text: "Orphan", ProjectID: ptr("gone"), Category: hub.CategoryNone, Priority: hub.PriorityLow, CreatedAt: created},
		},
		Projects: []hub.Project{{ID: "p1", Name: "Quarterly"}},
		Notes:    []hub.Note{{ID: "n1", Title: "Report notes", Content: "q3", CreatedAt: created}},
		Habits: []hub.Habit{{ID: "h1", Name: "Read", Streak: 1,
			Completions: map[string]bool{"2024-01-03": true}, CreatedAt: created}},
		PomodoroSessions: []hub.PomodoroSession{{Date: "2024-01-03", Duration: 25}, {Date: "2024-01-03", Duration: 90}},
		CalendarEvents:   []hub.CalendarEvent{{ID: "e1", Title: "Dentist", Date: "2024-01-05"}},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	return records
}

// ============================================================
// CSV
// ============================================================

func TestTasksToCSV(t *testing.T) {
	snap := sampleSnapshot()
	path := filepath.Join(t.TempDir(), "tasks.csv")

	if err := TasksToCSV(snap.Tasks, snap.Projects, path); err != nil {
		t.Fatalf("TasksToCSV: %v", err)
	}
	records := readCSV(t, path)

	if len(records) != 4 {
		t.Fatalf("expected 4 rows (1 header + 3 data), got %d", len(records))
	}
	for i, h := range taskHeader {
		if records[0][i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}

	row := records[1]
	if row[0] != "t1" || row[1] != "Write report" || row[2] != "Quarterly" {
		t.Fatalf("unexpected first row %v", row)
	}
	if row[3] != "Work" || row[4] != "High" || row[5] != "2024-01-05" || row[6] != "true" {
		t.Fatalf("unexpected first row %v", row)
	}
	if _, err := time.Parse(time.RFC3339, row[7]); err != nil {
		t.Fatalf("created is not RFC3339: %q", row[7])
	}

	if records[2][2] != "" {
		t.Fatalf("task without project should have empty project, got %q", records[2][2])
	}
	if records[3][2] != "" {
		t.Fatalf("dangling project should export empty, got %q", records[3][2])
	}
}

func TestTasksToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := TasksToCSV(nil, nil, path); err != nil {
		t.Fatal(err)
	}
	if records := readCSV(t, path); len(records) != 1 {
		t.Fatalf("expected header only, got %d rows", len(records))
	}
}

func TestTasksToCSVSpecialCharacters(t *testing.T) {
	tasks := []hub.Task{{ID: "t1", Text: `call "Bob", then Alice`, ProjectID: ptr("p1")}}
	projects := []hub.Project{{ID: "p1", Name: "Home, sweet"}}
	path := filepath.Join(t.TempDir(), "special.csv")

	if err := TasksToCSV(tasks, projects, path); err != nil {
		t.Fatal(err)
	}
	records := readCSV(t, path)
	if records[1][1] != `call "Bob", then Alice` {
		t.Fatalf("text mangled: %q", records[1][1])
	}
	if records[1][2] != "Home, sweet" {
		t.Fatalf("project mangled: %q", records[1][2])
	}
}

func TestTasksToCSVBadPath(t *testing.T) {
	if err := TasksToCSV(nil, nil, "/nonexistent/dir/file.csv"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestSessionsToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.csv")
	if err := SessionsToCSV(sampleSnapshot().PomodoroSessions, path); err != nil {
		t.Fatal(err)
	}
	records := readCSV(t, path)
	if len(records) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(records))
	}
	if got := records[2]; got[0] != "2024-01-03" || got[1] != "90" || got[2] != "01:30" {
		t.Fatalf("unexpected row %v", got)
	}
}

// ============================================================
// JSON
// ============================================================

func TestSnapshotToJSON(t *testing.T) {
	snap := sampleSnapshot()
	path := filepath.Join(t.TempDir(), "snapshot.json")

	if err := SnapshotToJSON(snap, path); err != nil {
		t.Fatalf("SnapshotToJSON: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, err := time.Parse(time.RFC3339, result.ExportedAt); err != nil {
		t.Fatalf("exported_at is not RFC3339: %q", result.ExportedAt)
	}
	if result.Counts["tasks"] != 3 || result.Counts["pomodoroSessions"] != 2 || result.Counts["folders"] != 0 {
		t.Fatalf("unexpected counts %v", result.Counts)
	}
	if len(result.Data.Tasks) != 3 || result.Data.Tasks[0].Text != "Write report" {
		t.Fatalf("tasks not exported: %+v", result.Data.Tasks)
	}
	if !result.Data.Habits[0].Completions["2024-01-03"] {
		t.Fatal("habit completions not exported")
	}
	if !strings.Contains(string(data), `"pomodoroSessions"`) {
		t.Fatal("collections should use their storage key names")
	}
}

func TestSnapshotToJSONPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretty.json")
	if err := SnapshotToJSON(hub.Snapshot{}, path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "\n  ") {
		t.Fatal("JSON should be pretty-printed")
	}
}

func TestSnapshotToJSONBadPath(t *testing.T) {
	if err := SnapshotToJSON(hub.Snapshot{}, "/nonexistent/dir/file.json"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		mins int
		want string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{25, "00:25"},
		{60, "01:00"},
		{90, "01:30"},
		{1500, "25:00"},
	}
	for _, tt := range tests {
		if got := formatMinutes(tt.mins); got != tt.want {
			t.Errorf("formatMinutes(%d) = %q, want %q", tt.mins, got, tt.want)
		}
	}
}
