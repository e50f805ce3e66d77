package hub

import (
	"errors"
	"testing"
)

func TestStreak(t *testing.T) {
	tests := []struct {
		name        string
		completions map[string]bool
		anchor      string
		want        int
	}{
		{"empty", map[string]bool{}, "2024-01-03", 0},
		{"anchor only", map[string]bool{"2024-01-03": true}, "2024-01-03", 1},
		{"three days", map[string]bool{"2024-01-01": true, "2024-01-02": true, "2024-01-03": true}, "2024-01-03", 3},
		{"gap", map[string]bool{"2024-01-01": true, "2024-01-03": true}, "2024-01-03", 1},
		{"false breaks", map[string]bool{"2024-01-02": false, "2024-01-03": true}, "2024-01-03", 1},
		{"ignores future", map[string]bool{"2024-01-02": true, "2024-01-03": true}, "2024-01-02", 1},
		{"month boundary", map[string]bool{"2024-02-29": true, "2024-03-01": true}, "2024-03-01", 2},
		{"bad anchor", map[string]bool{"2024-01-03": true}, "03/01/2024", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Streak(tt.completions, tt.anchor); got != tt.want {
				t.Errorf("Streak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestToggleHabitUnmarksAnchor(t *testing.T) {
	h := newTestHub(t, newTestKV(t))
	habit, _ := h.Habits.Add("Read")
	for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		h.Habits.Toggle(habit.ID, d)
	}
	if got, _ := h.Habits.Get(habit.ID); got.Streak != 3 {
		t.Fatalf("expected streak 3, got %d", got.Streak)
	}

	h.Habits.Toggle(habit.ID, "2024-01-03")
	got, _ := h.Habits.Get(habit.ID)
	if got.Completions["2024-01-03"] {
		t.Fatal("toggle should clear the mark")
	}
	if got.Streak != 0 {
		t.Fatalf("expected streak 0, got %d", got.Streak)
	}
}

func TestToggleHabitAnchorsAtToggledDate(t *testing.T) {
	h := newTestHub(t, newTestKV(t))
	habit, _ := h.Habits.Add("Run")
	h.Habits.Toggle(habit.ID, "2024-01-01")

	h.Habits.Toggle(habit.ID, "2024-01-02")
	got, _ := h.Habits.Get(habit.ID)
	if got.Completions["2024-01-03"] {
		t.Fatal("2024-01-03 should be unmarked")
	}
	if got.Streak != 2 {
		t.Fatalf("expected streak 2, got %d", got.Streak)
	}
}

func TestToggleHabitStoresFalse(t *testing.T) {
	kv := newTestKV(t)
	h := newTestHub(t, kv)
	habit, _ := h.Habits.Add("Stretch")
	h.Habits.Toggle(habit.ID, "2024-01-03")
	h.Habits.Toggle(habit.ID, "2024-01-03")

	got, _ := Open(kv).Habits.Get(habit.ID)
	v, ok := got.Completions["2024-01-03"]
	if !ok || v {
		t.Fatalf("unmarked date should be stored as false, got %v (present %v)", v, ok)
	}
}

func TestToggleHabitDoesNotShareMap(t *testing.T) {
	h := newTestHub(t, newTestKV(t))
	habit, _ := h.Habits.Add("Read")
	before, _ := h.Habits.Get(habit.ID)

	h.Habits.Toggle(habit.ID, "2024-01-03")
	if before.Completions["2024-01-03"] {
		t.Fatal("earlier copy should not observe the toggle")
	}
}

func TestHabitCopiesAreIsolated(t *testing.T) {
	kv := newTestKV(t)
	h := newTestHub(t, kv)
	habit, _ := h.Habits.Add("Read")
	h.Habits.Toggle(habit.ID, "2024-01-03")

	h.Habits.All()[0].Completions["2024-01-02"] = true
	got, _ := h.Habits.Get(habit.ID)
	got.Completions["2024-01-01"] = true

	again, _ := h.Habits.Get(habit.ID)
	if len(again.Completions) != 1 || !again.Completions["2024-01-03"] {
		t.Fatalf("returned maps must not alias stored state, got %v", again.Completions)
	}
	if snap := h.Snapshot(); len(snap.Habits[0].Completions) != 1 {
		t.Fatalf("snapshot picked up outside writes: %v", snap.Habits[0].Completions)
	}
}

func TestToggleHabitInvalidDate(t *testing.T) {
	h := newTestHub(t, newTestKV(t))
	habit, _ := h.Habits.Add("Read")
	if err := h.Habits.Toggle(habit.ID, "yesterday"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if _, err := h.Habits.Add("  "); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}
