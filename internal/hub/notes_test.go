package hub

import (
	"errors"
	"testing"
)

func TestAddNotePrepends(t *testing.T) {
	h := newTestHub(t, newTestKV(t))
	first, _ := h.Notes.Add(NoteInput{Title: "one", Content: "a"})
	second, _ := h.Notes.Add(NoteInput{Title: "two", Content: "b"})

	got := h.Notes.All()
	if len(got) != 2 || got[0].ID != second.ID || got[1].ID != first.ID {
		t.Fatalf("newest note should come first, got %+v", got)
	}
}

func TestAddNoteRequiresTitleAndContent(t *testing.T) {
	h := newTestHub(t, newTestKV(t))
	tests := []NoteInput{
		{Title: "", Content: "body"},
		{Title: "title", Content: "  "},
		{},
	}
	for _, in := range tests {
		if _, err := h.Notes.Add(in); !errors.Is(err, ErrEmpty) {
			t.Errorf("Add(%+v) err = %v, want ErrEmpty", in, err)
		}
	}
	if h.Notes.Len() != 0 {
		t.Fatal("rejected notes should not be stored")
	}
}

func TestUpdateNote(t *testing.T) {
	kv := newTestKV(t)
	h := newTestHub(t, kv)
	n, _ := h.Notes.Add(NoteInput{Title: "t", Content: "c"})

	if err := h.Notes.Update(n.ID, "t2", "c2"); err != nil {
		t.Fatal(err)
	}
	got, _ := Open(kv).Notes.Get(n.ID)
	if got.Title != "t2" || got.Content != "c2" || !got.CreatedAt.Equal(n.CreatedAt) {
		t.Fatalf("update not persisted: %+v", got)
	}

	if err := h.Notes.Update(n.ID, "t3", " "); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	if got, _ := h.Notes.Get(n.ID); got.Title != "t2" {
		t.Fatalf("rejected update applied: %+v", got)
	}
}

func TestMoveNoteBetweenFolders(t *testing.T) {
	h := newTestHub(t, newTestKV(t))
	f, _ := h.Folders.Add("Ideas")
	n, _ := h.Notes.Add(NoteInput{Title: "t", Content: "c"})
	h.Notes.Add(NoteInput{Title: "other", Content: "c"})

	if got := h.Notes.InFolder(nil); len(got) != 2 {
		t.Fatalf("expected 2 unfiled notes, got %d", len(got))
	}

	h.Notes.Move(n.ID, &f.ID)
	if got := h.Notes.InFolder(&f.ID); len(got) != 1 || got[0].ID != n.ID {
		t.Fatalf("note not moved into folder: %+v", got)
	}
	if got := h.Notes.InFolder(nil); len(got) != 1 {
		t.Fatalf("expected 1 unfiled note, got %d", len(got))
	}

	h.Notes.Move(n.ID, nil)
	if got := h.Notes.InFolder(&f.ID); len(got) != 0 {
		t.Fatal("note should be unfiled again")
	}
}

func TestDeleteNote(t *testing.T) {
	h := newTestHub(t, newTestKV(t))
	a, _ := h.Notes.Add(NoteInput{Title: "a", Content: "a"})
	b, _ := h.Notes.Add(NoteInput{Title: "b", Content: "b"})

	h.Notes.Delete(a.ID)
	got := h.Notes.All()
	if len(got) != 1 || got[0].ID != b.ID {
		t.Fatalf("unexpected notes after delete: %+v", got)
	}
}

func TestDeletedFolderLeavesNoteUnfiled(t *testing.T) {
	h := newTestHub(t, newTestKV(t))
	f, _ := h.Folders.Add("Work")
	n, _ := h.Notes.Add(NoteInput{Title: "t", Content: "c", FolderID: &f.ID})

	h.Folders.Delete(f.ID)

	got, _ := h.Notes.Get(n.ID)
	if got.FolderID == nil || *got.FolderID != f.ID {
		t.Fatal("folder delete should not rewrite notes")
	}
	if unfiled := h.Notes.InFolder(nil); len(unfiled) != 1 || unfiled[0].ID != n.ID {
		t.Fatalf("note of a deleted folder should be unfiled, got %+v", unfiled)
	}
	if in := h.Notes.InFolder(&f.ID); len(in) != 0 {
		t.Fatalf("deleted folder should hold nothing, got %+v", in)
	}
	if NoteFolder(got, h.Folders.All()) != nil {
		t.Fatal("dangling folder should resolve to nil")
	}
}

// ============================================================
// Folders, projects, events, sessions
// ============================================================

func TestFoldersAndProjects(t *testing.T) {
	h := newTestHub(t, newTestKV(t))

	if _, err := h.Folders.Add(" "); !errors.Is(err, ErrEmpty) {
		t.Errorf("blank folder: %v", err)
	}
	if _, err := h.Projects.Add(""); !errors.Is(err, ErrEmpty) {
		t.Errorf("blank project: %v", err)
	}

	f, _ := h.Folders.Add("Inbox")
	p, _ := h.Projects.Add("Work")
	h.Folders.Rename(f.ID, "Archive")
	h.Projects.Rename(p.ID, "Job")

	if got, _ := h.Folders.Get(f.ID); got.Name != "Archive" {
		t.Errorf("folder rename failed: %+v", got)
	}
	if h.Projects.Name(&p.ID) != "Job" {
		t.Errorf("project rename failed")
	}
	if h.Projects.Name(nil) != "" {
		t.Error("nil project ref should have no name")
	}

	h.Folders.Delete(f.ID)
	h.Projects.Delete(p.ID)
	if h.Folders.Len() != 0 || h.Projects.Len() != 0 {
		t.Fatal("delete failed")
	}
}

func TestEvents(t *testing.T) {
	h := newTestHub(t, newTestKV(t))

	if _, err := h.Events.Add("Dentist", "soon"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
	if _, err := h.Events.Add("", "2024-01-05"); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}

	a, _ := h.Events.Add("Dentist", "2024-01-05")
	h.Events.Add("Standup", "2024-01-06")
	b, _ := h.Events.Add("Lunch", "2024-01-05")

	on := h.Events.On("2024-01-05")
	if len(on) != 2 || on[0].ID != a.ID || on[1].ID != b.ID {
		t.Fatalf("unexpected events on date: %+v", on)
	}

	h.Events.Delete(a.ID)
	if len(h.Events.On("2024-01-05")) != 1 {
		t.Fatal("event not deleted")
	}
}

func TestSessionsAppendOnly(t *testing.T) {
	kv := newTestKV(t)
	h := newTestHub(t, kv)

	if err := h.Sessions.Log(PomodoroSession{Date: "2024-01-03", Duration: 0}); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("expected ErrInvalidDuration, got %v", err)
	}
	if err := h.Sessions.Log(PomodoroSession{Date: "01/03/2024", Duration: 25}); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}

	h.Sessions.Log(PomodoroSession{Date: "2024-01-02", Duration: 25})
	h.Sessions.Log(PomodoroSession{Date: "2024-01-03", Duration: 50})

	got := Open(kv).Sessions.All()
	if len(got) != 2 || got[0].Date != "2024-01-02" || got[1].Duration != 50 {
		t.Fatalf("unexpected session log: %+v", got)
	}
}
