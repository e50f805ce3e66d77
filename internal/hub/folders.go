package hub

type Folders struct {
	r *repo[Folder]
	h *Hub
}

func (f *Folders) All() []Folder                { return f.r.all() }
func (f *Folders) Len() int                     { return len(f.r.items) }
func (f *Folders) Get(id string) (Folder, bool) { return f.r.get(id) }

func (f *Folders) Add(name string) (Folder, error) {
	if blank(name) {
		return Folder{}, ErrEmpty
	}
	folder := Folder{ID: f.h.newID(), Name: name}
	if err := f.r.commit(appendItem(f.r.items, folder)); err != nil {
		return folder, err
	}
	return folder, nil
}

func (f *Folders) Rename(id, name string) error {
	if blank(name) {
		return ErrEmpty
	}
	return f.r.replace(id, func(folder Folder) Folder {
		folder.Name = name
		return folder
	})
}

// Delete removes the folder only; notes that referenced it keep the dangling
// id and are shown as unfiled.
func (f *Folders) Delete(id string) error {
	return f.r.remove(id)
}
