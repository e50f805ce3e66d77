package hub

type NoteInput struct {
	Title     string
	Content   string
	ProjectID *string
	FolderID  *string
}

// Notes are kept most-recent-first.
type Notes struct {
	r *repo[Note]
	h *Hub
}

func (n *Notes) All() []Note                { return n.r.all() }
func (n *Notes) Len() int                   { return len(n.r.items) }
func (n *Notes) Get(id string) (Note, bool) { return n.r.get(id) }

// InFolder returns the notes filed under folderID; a nil folderID selects
// unfiled notes, including those whose folder was deleted.
func (n *Notes) InFolder(folderID *string) []Note {
	folders := n.h.Folders.r.items
	var out []Note
	for _, note := range n.r.items {
		if sameRef(NoteFolder(note, folders), folderID) {
			out = append(out, note)
		}
	}
	return out
}

func (n *Notes) Add(in NoteInput) (Note, error) {
	if blank(in.Title) || blank(in.Content) {
		return Note{}, ErrEmpty
	}
	note := Note{
		ID:        n.h.newID(),
		Title:     in.Title,
		Content:   in.Content,
		CreatedAt: n.h.now().UTC(),
		ProjectID: in.ProjectID,
		FolderID:  in.FolderID,
	}
	if err := n.r.commit(prependItem(n.r.items, note)); err != nil {
		return note, err
	}
	return note, nil
}

func (n *Notes) Update(id, title, content string) error {
	if blank(title) || blank(content) {
		return ErrEmpty
	}
	return n.r.replace(id, func(note Note) Note {
		note.Title = title
		note.Content = content
		return note
	})
}

// Move files the note under folderID, or unfiles it when folderID is nil.
func (n *Notes) Move(id string, folderID *string) error {
	return n.r.replace(id, func(note Note) Note {
		note.FolderID = folderID
		return note
	})
}

func (n *Notes) Delete(id string) error {
	return n.r.remove(id)
}

// NoteFolder returns the id of the folder note is filed under, or nil when
// the note is unfiled or its folder no longer exists.
func NoteFolder(note Note, folders []Folder) *string {
	if note.FolderID == nil {
		return nil
	}
	for _, f := range folders {
		if f.ID == *note.FolderID {
			return note.FolderID
		}
	}
	return nil
}

func sameRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
