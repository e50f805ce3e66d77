package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/sadopc/focusboard/internal/hub"
	"github.com/sadopc/focusboard/internal/store"
)

// newTestConfig writes a config file pointing the store and log at a temp
// directory and returns its path.
func newTestConfig(t *testing.T, backend string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "data")
	if backend == store.BackendSQLite {
		path = filepath.Join(dir, "focusboard.db")
	}
	body := fmt.Sprintf("store:\n  backend: %s\n  path: %s\nlog:\n  file: %s\n",
		backend, path, filepath.Join(dir, "focusboard.log"))

	cfg := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfg, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func execute(cfg string, args ...string) (string, error) {
	color.NoColor = true
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--config", cfg))
	err := cmd.Execute()
	return out.String(), err
}

func mustExecute(t *testing.T, cfg string, args ...string) string {
	t.Helper()
	out, err := execute(cfg, args...)
	if err != nil {
		t.Fatalf("%s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

// addedID extracts the id from "added <kind> <id>".
func addedID(t *testing.T, out string) string {
	t.Helper()
	fields := strings.Fields(out)
	if len(fields) != 3 || fields[0] != "added" {
		t.Fatalf("unexpected add output %q", out)
	}
	return fields[2]
}

// ============================================================
// Add / list
// ============================================================

func TestAddListTasks(t *testing.T) {
	for _, backend := range []string{store.BackendSQLite, store.BackendDisk} {
		t.Run(backend, func(t *testing.T) {
			cfg := newTestConfig(t, backend)

			pid := addedID(t, mustExecute(t, cfg, "add", "project", "Launch"))
			mustExecute(t, cfg, "add", "task", "Write", "report", "--priority", "High", "--project", pid)
			mustExecute(t, cfg, "add", "task", "Call", "bank", "--due", "2024-01-05", "--category", "Personal")

			out := mustExecute(t, cfg, "list", "tasks")
			for _, want := range []string{"Write report", "High", "Launch", "Call bank", "2024-01-05", "Personal"} {
				if !strings.Contains(out, want) {
					t.Errorf("list tasks missing %q:\n%s", want, out)
				}
			}

			out = mustExecute(t, cfg, "list", "projects")
			if !strings.Contains(out, "Launch") || !strings.Contains(out, "0/1") {
				t.Errorf("unexpected project listing:\n%s", out)
			}
		})
	}
}

func TestAddTaskValidation(t *testing.T) {
	cfg := newTestConfig(t, store.BackendSQLite)

	if _, err := execute(cfg, "add", "task"); err == nil {
		t.Fatal("expected error for missing task text")
	}
	if _, err := execute(cfg, "add", "task", "x", "--due", "tomorrow"); err == nil {
		t.Fatal("expected error for bad due date")
	}
	if _, err := execute(cfg, "add", "task", "x", "--category", "chores"); !errors.Is(err, hub.ErrUnknownValue) {
		t.Fatalf("expected ErrUnknownValue for unknown category, got %v", err)
	}
	if _, err := execute(cfg, "add", "task", "x", "--priority", "urgent"); !errors.Is(err, hub.ErrUnknownValue) {
		t.Fatalf("expected ErrUnknownValue for unknown priority, got %v", err)
	}
	_, err := execute(cfg, "add", "task", "x", "--project", "nope")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown project, got %v", err)
	}

	out := mustExecute(t, cfg, "list", "tasks")
	if !strings.Contains(out, "no tasks") {
		t.Fatalf("rejected adds must not be stored:\n%s", out)
	}
}

func TestAddNoteRequiresContent(t *testing.T) {
	cfg := newTestConfig(t, store.BackendSQLite)
	if _, err := execute(cfg, "add", "note", "Empty"); err == nil {
		t.Fatal("expected error without --content")
	}

	fid := addedID(t, mustExecute(t, cfg, "add", "folder", "Work"))
	mustExecute(t, cfg, "add", "note", "Standup", "--content", "ship it", "--folder", fid)

	out := mustExecute(t, cfg, "list", "notes")
	if !strings.Contains(out, "Standup") || !strings.Contains(out, "Work") {
		t.Fatalf("unexpected note listing:\n%s", out)
	}
	out = mustExecute(t, cfg, "list", "folders")
	if !strings.Contains(out, "Work") || !strings.Contains(out, "1") {
		t.Fatalf("unexpected folder listing:\n%s", out)
	}
}

func TestAddTaskCategoryAnyCase(t *testing.T) {
	cfg := newTestConfig(t, store.BackendSQLite)
	mustExecute(t, cfg, "add", "task", "Ship", "--category", "work", "--priority", "HIGH")

	out := mustExecute(t, cfg, "list", "tasks")
	if !strings.Contains(out, "Work") || !strings.Contains(out, "High") {
		t.Fatalf("category and priority should be normalized:\n%s", out)
	}
}

func TestDeletedFolderListsUnfiled(t *testing.T) {
	cfg := newTestConfig(t, store.BackendSQLite)
	gone := addedID(t, mustExecute(t, cfg, "add", "folder", "Old"))
	mustExecute(t, cfg, "add", "folder", "Work")
	mustExecute(t, cfg, "add", "note", "Standup", "--content", "ship it", "--folder", gone)
	mustExecute(t, cfg, "rm", "folder", gone)

	out := mustExecute(t, cfg, "list", "folders")
	var unfiled string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Unfiled") {
			unfiled = line
		}
	}
	if fields := strings.Fields(unfiled); len(fields) == 0 || fields[len(fields)-1] != "1" {
		t.Fatalf("note of a deleted folder should count as unfiled:\n%s", out)
	}
	if strings.Contains(out, "Old") {
		t.Fatalf("deleted folder still listed:\n%s", out)
	}
}

func TestAddEvent(t *testing.T) {
	cfg := newTestConfig(t, store.BackendSQLite)
	mustExecute(t, cfg, "add", "event", "Dentist", "--on", "2024-03-12")
	mustExecute(t, cfg, "add", "event", "Review", "--on", "2024-01-02")

	out := mustExecute(t, cfg, "list", "events")
	if strings.Index(out, "Review") > strings.Index(out, "Dentist") {
		t.Fatalf("events should be listed by date:\n%s", out)
	}

	out = mustExecute(t, cfg, "list", "events", "--on", "2024-03-12")
	if !strings.Contains(out, "Dentist") || strings.Contains(out, "Review") {
		t.Fatalf("--on should keep only that day:\n%s", out)
	}
	out = mustExecute(t, cfg, "list", "events", "--on", "2024-03-13")
	if !strings.Contains(out, "no events") {
		t.Fatalf("expected no events:\n%s", out)
	}
	if _, err := execute(cfg, "list", "events", "--on", "March"); err == nil {
		t.Fatal("expected error for bad --on date")
	}

	if _, err := execute(cfg, "add", "event", "Bad", "--on", "12/03/2024"); err == nil {
		t.Fatal("expected error for bad date")
	}
}

// ============================================================
// Mutations
// ============================================================

func TestDoneToggles(t *testing.T) {
	cfg := newTestConfig(t, store.BackendSQLite)
	id := addedID(t, mustExecute(t, cfg, "add", "task", "Write", "report"))

	out := mustExecute(t, cfg, "done", id)
	if !strings.Contains(out, "completed Write report") {
		t.Fatalf("unexpected output %q", out)
	}
	out = mustExecute(t, cfg, "list", "tasks", "--active")
	if !strings.Contains(out, "no tasks") {
		t.Fatalf("completed task should be hidden with --active:\n%s", out)
	}

	out = mustExecute(t, cfg, "done", id)
	if !strings.Contains(out, "reopened") {
		t.Fatalf("second toggle should reopen, got %q", out)
	}
}

func TestDoneUnknownTask(t *testing.T) {
	cfg := newTestConfig(t, store.BackendSQLite)
	_, err := execute(cfg, "done", "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	cfg := newTestConfig(t, store.BackendSQLite)
	id := addedID(t, mustExecute(t, cfg, "add", "habit", "Read"))

	mustExecute(t, cfg, "rm", "habit", id)
	out := mustExecute(t, cfg, "list", "habits")
	if !strings.Contains(out, "no habits") {
		t.Fatalf("habit should be gone:\n%s", out)
	}

	if _, err := execute(cfg, "rm", "widget", id); err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if _, err := execute(cfg, "rm", "habit", id); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for removed habit, got %v", err)
	}
}

func TestHabitCheck(t *testing.T) {
	cfg := newTestConfig(t, store.BackendSQLite)
	id := addedID(t, mustExecute(t, cfg, "add", "habit", "Read"))

	mustExecute(t, cfg, "habit", "check", id, "--date", "2024-01-01")
	out := mustExecute(t, cfg, "habit", "check", id, "--date", "2024-01-02")
	if !strings.Contains(out, "checked Read on 2024-01-02, streak 2") {
		t.Fatalf("unexpected output %q", out)
	}

	out = mustExecute(t, cfg, "habit", "check", id, "--date", "2024-01-02")
	if !strings.Contains(out, "unchecked") || !strings.Contains(out, "streak 0") {
		t.Fatalf("second check should clear the day, got %q", out)
	}

	if _, err := execute(cfg, "habit", "check", id, "--date", "Jan 2"); err == nil {
		t.Fatal("expected error for bad date")
	}
}

// ============================================================
// Sessions, stats, search, export
// ============================================================

func TestSessionLogAndStats(t *testing.T) {
	cfg := newTestConfig(t, store.BackendSQLite)
	mustExecute(t, cfg, "session", "log", "--minutes", "30", "--date", "2024-01-02")
	mustExecute(t, cfg, "session", "log", "--date", "2024-01-02")

	out := mustExecute(t, cfg, "list", "sessions")
	if !strings.Contains(out, "30") || !strings.Contains(out, "25") {
		t.Fatalf("unexpected sessions:\n%s", out)
	}

	if _, err := execute(cfg, "session", "log", "--minutes", "-5"); err == nil {
		t.Fatal("expected error for negative minutes")
	}

	out = mustExecute(t, cfg, "stats")
	for _, want := range []string{"Focus sessions", "Focus minutes", "55", "Stored keys", "pomodoroSessions"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats missing %q:\n%s", want, out)
		}
	}
}

func TestSearch(t *testing.T) {
	cfg := newTestConfig(t, store.BackendSQLite)
	mustExecute(t, cfg, "add", "task", "Write", "report")
	mustExecute(t, cfg, "add", "task", "Buy", "milk")
	mustExecute(t, cfg, "add", "note", "REPORT", "ideas", "--content", "outline")
	mustExecute(t, cfg, "add", "note", "Groceries", "--content", "print the report")

	out := mustExecute(t, cfg, "search", "report")
	if !strings.Contains(out, "Write report") || !strings.Contains(out, "REPORT ideas") {
		t.Fatalf("expected task and note hits:\n%s", out)
	}
	if strings.Contains(out, "Buy milk") || strings.Contains(out, "Groceries") {
		t.Fatalf("unexpected hit:\n%s", out)
	}

	out = mustExecute(t, cfg, "search", "nothing-matches")
	if !strings.Contains(out, "no matches") {
		t.Fatalf("expected no matches:\n%s", out)
	}
}

func TestExport(t *testing.T) {
	cfg := newTestConfig(t, store.BackendSQLite)
	mustExecute(t, cfg, "add", "task", "Write", "report")
	mustExecute(t, cfg, "add", "habit", "Read")

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "all.json")
	mustExecute(t, cfg, "export", "--format", "json", "--out", jsonPath)

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Counts map[string]int `json:"counts"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Counts["tasks"] != 1 || got.Counts["habits"] != 1 {
		t.Fatalf("unexpected counts %v", got.Counts)
	}

	csvPath := filepath.Join(dir, "tasks.csv")
	mustExecute(t, cfg, "export", "--format", "CSV", "--out", csvPath)
	if _, err := os.Stat(csvPath); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(cfg, "export", "--format", "xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

// ============================================================
// Misc
// ============================================================

func TestVersion(t *testing.T) {
	out, err := execute(newTestConfig(t, store.BackendSQLite), "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "focusboard dev") {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestUnknownBackend(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	body := fmt.Sprintf("store:\n  backend: postgres\nlog:\n  file: %s\n", filepath.Join(dir, "log"))
	if err := os.WriteFile(cfg, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(cfg, "list", "tasks"); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestMissingConfigFile(t *testing.T) {
	_, err := execute(filepath.Join(t.TempDir(), "nope.yaml"), "list", "tasks")
	if err == nil {
		t.Fatal("an explicit config file that does not exist is an error")
	}
}
