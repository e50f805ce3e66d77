package hub

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestAddTask(t *testing.T) {
	h := newTestHub(t, newTestKV(t))

	a, err := h.Tasks.Add(TaskInput{Text: "Write report", Category: CategoryWork, Priority: PriorityHigh})
	if err != nil {
		t.Fatal(err)
	}
	b, err := h.Tasks.Add(TaskInput{Text: "Buy milk"})
	if err != nil {
		t.Fatal(err)
	}

	if h.Tasks.Len() != 2 {
		t.Fatalf("expected 2 tasks, got %d", h.Tasks.Len())
	}
	if a.ID == b.ID {
		t.Fatal("task ids must be unique")
	}
	if a.Completed {
		t.Error("new task should not be completed")
	}
	if b.Category != CategoryNone || b.Priority != PriorityNone {
		t.Errorf("expected None defaults, got %s/%s", b.Category, b.Priority)
	}
	if got := h.Tasks.All(); got[0].ID != a.ID || got[1].ID != b.ID {
		t.Error("tasks should keep insertion order")
	}
}

func TestAddTaskBlankIsNoop(t *testing.T) {
	kv := newTestKV(t)
	h := newTestHub(t, kv)

	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := h.Tasks.Add(TaskInput{Text: text}); !errors.Is(err, ErrEmpty) {
			t.Errorf("Add(%q) err = %v, want ErrEmpty", text, err)
		}
	}
	if h.Tasks.Len() != 0 {
		t.Fatal("blank add should not change the collection")
	}
	if keys, _ := kv.Keys(); len(keys) != 0 {
		t.Fatalf("blank add should not write, got keys %v", keys)
	}
}

func TestAddTaskValidatesDueDate(t *testing.T) {
	h := newTestHub(t, newTestKV(t))
	if _, err := h.Tasks.Add(TaskInput{Text: "x", DueDate: "tomorrow"}); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	task, err := h.Tasks.Add(TaskInput{Text: "x", DueDate: "2024-01-10"})
	if err != nil || task.DueDate != "2024-01-10" {
		t.Fatalf("valid due date rejected: %v", err)
	}
}

func TestAddTaskUnknownCategory(t *testing.T) {
	h := newTestHub(t, newTestKV(t))
	task, _ := h.Tasks.Add(TaskInput{Text: "x", Category: "Hobby", Priority: "Critical"})
	if task.Category != CategoryNone || task.Priority != PriorityNone {
		t.Fatalf("unknown values should map to None, got %s/%s", task.Category, task.Priority)
	}
}

func TestToggleTask(t *testing.T) {
	h := newTestHub(t, newTestKV(t))
	h.Tasks.Add(TaskInput{Text: "first"})
	task, _ := h.Tasks.Add(TaskInput{Text: "second", Category: CategoryUrgent})

	before, _ := json.Marshal(h.Tasks.All())
	if err := h.Tasks.Toggle(task.ID); err != nil {
		t.Fatal(err)
	}

	got, _ := h.Tasks.Get(task.ID)
	if !got.Completed {
		t.Fatal("toggle should complete the task")
	}
	got.Completed = false
	if got != task {
		t.Errorf("toggle changed more than completed: %+v", got)
	}

	h.Tasks.Toggle(task.ID)
	after, _ := json.Marshal(h.Tasks.All())
	if string(before) != string(after) {
		t.Errorf("double toggle should restore state\nbefore %s\nafter  %s", before, after)
	}
}

func TestToggleUnknownTask(t *testing.T) {
	h := newTestHub(t, newTestKV(t))
	h.Tasks.Add(TaskInput{Text: "a"})
	before := h.Tasks.All()

	if err := h.Tasks.Toggle("missing"); err != nil {
		t.Fatal(err)
	}
	if after := h.Tasks.All(); after[0] != before[0] {
		t.Fatal("unknown toggle should not change anything")
	}
}

func TestUpdateTask(t *testing.T) {
	h := newTestHub(t, newTestKV(t))
	p, _ := h.Projects.Add("Home")
	task, _ := h.Tasks.Add(TaskInput{Text: "old"})
	h.Tasks.Toggle(task.ID)

	err := h.Tasks.Update(task.ID, TaskInput{Text: "new", ProjectID: &p.ID, Priority: PriorityLow})
	if err != nil {
		t.Fatal(err)
	}
	got, _ := h.Tasks.Get(task.ID)
	if got.Text != "new" || got.Priority != PriorityLow || h.Projects.Name(got.ProjectID) != "Home" {
		t.Errorf("update not applied: %+v", got)
	}
	if !got.Completed || !got.CreatedAt.Equal(task.CreatedAt) {
		t.Error("update should keep completion and creation time")
	}

	if err := h.Tasks.Update(task.ID, TaskInput{Text: " "}); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestDeleteTask(t *testing.T) {
	h := newTestHub(t, newTestKV(t))
	a, _ := h.Tasks.Add(TaskInput{Text: "a"})
	b, _ := h.Tasks.Add(TaskInput{Text: "b"})
	c, _ := h.Tasks.Add(TaskInput{Text: "c"})

	if err := h.Tasks.Delete(b.ID); err != nil {
		t.Fatal(err)
	}
	got := h.Tasks.All()
	if len(got) != 2 || got[0].ID != a.ID || got[1].ID != c.ID {
		t.Fatalf("delete should keep relative order, got %+v", got)
	}

	if err := h.Tasks.Delete("missing"); err != nil {
		t.Fatal(err)
	}
	if h.Tasks.Len() != 2 {
		t.Fatal("unknown delete should be a no-op")
	}
}

func TestDeletedProjectLeavesDanglingRef(t *testing.T) {
	h := newTestHub(t, newTestKV(t))
	p, _ := h.Projects.Add("Gone")
	task, _ := h.Tasks.Add(TaskInput{Text: "x", ProjectID: &p.ID})

	h.Projects.Delete(p.ID)

	got, _ := h.Tasks.Get(task.ID)
	if got.ProjectID == nil || *got.ProjectID != p.ID {
		t.Fatal("task reference should be left in place")
	}
	if name := h.Projects.Name(got.ProjectID); name != "" {
		t.Fatalf("dangling ref should resolve to no project, got %q", name)
	}
}

// ============================================================
// Tasks from text
// ============================================================

func TestAddLines(t *testing.T) {
	h := newTestHub(t, newTestKV(t))
	added, err := h.Tasks.AddLines("- buy milk\n\n  * call bank \n[ ] file taxes\nplain line\n")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"buy milk", "call bank", "file taxes", "plain line"}
	got := h.Tasks.All()
	if len(added) != len(want) || len(got) != len(want) {
		t.Fatalf("expected %d tasks, added %d stored %d", len(want), len(added), len(got))
	}
	for i, text := range want {
		if got[i].Text != text {
			t.Errorf("task %d = %q, want %q", i, got[i].Text, text)
		}
		if got[i].ProjectID != nil || got[i].Category != CategoryNone {
			t.Errorf("task %d should use defaults: %+v", i, got[i])
		}
	}
}

func TestAddLinesBlank(t *testing.T) {
	h := newTestHub(t, newTestKV(t))
	for _, text := range []string{"", "\n  \n", "- \n[ ] "} {
		if _, err := h.Tasks.AddLines(text); !errors.Is(err, ErrEmpty) {
			t.Errorf("AddLines(%q) err = %v, want ErrEmpty", text, err)
		}
	}
	if h.Tasks.Len() != 0 {
		t.Fatal("blank text should add nothing")
	}
}

func TestParseCategoryAndPriority(t *testing.T) {
	categories := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"Work", CategoryWork, false},
		{"work", CategoryWork, false},
		{" URGENT ", CategoryUrgent, false},
		{"", CategoryNone, false},
		{"chores", CategoryNone, true},
	}
	for _, tt := range categories {
		got, err := ParseCategory(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseCategory(%q) = %s, %v", tt.in, got, err)
		}
		if tt.wantErr && !errors.Is(err, ErrUnknownValue) {
			t.Errorf("ParseCategory(%q) err should wrap ErrUnknownValue", tt.in)
		}
	}

	if got, err := ParsePriority("high"); err != nil || got != PriorityHigh {
		t.Errorf("ParsePriority(high) = %s, %v", got, err)
	}
	if _, err := ParsePriority("P1"); !errors.Is(err, ErrUnknownValue) {
		t.Errorf("ParsePriority(P1) err = %v, want ErrUnknownValue", err)
	}
}
