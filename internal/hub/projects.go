package hub

type Projects struct {
	r *repo[Project]
	h *Hub
}

func (p *Projects) All() []Project                { return p.r.all() }
func (p *Projects) Len() int                      { return len(p.r.items) }
func (p *Projects) Get(id string) (Project, bool) { return p.r.get(id) }

func (p *Projects) Add(name string) (Project, error) {
	if blank(name) {
		return Project{}, ErrEmpty
	}
	project := Project{ID: p.h.newID(), Name: name}
	if err := p.r.commit(appendItem(p.r.items, project)); err != nil {
		return project, err
	}
	return project, nil
}

func (p *Projects) Rename(id, name string) error {
	if blank(name) {
		return ErrEmpty
	}
	return p.r.replace(id, func(project Project) Project {
		project.Name = name
		return project
	})
}

// Delete removes the project only. Tasks and notes keep their projectId and
// are treated as unassigned.
func (p *Projects) Delete(id string) error {
	return p.r.remove(id)
}

// Name resolves a project reference, returning "" for nil or dangling ids.
func (p *Projects) Name(id *string) string {
	if id == nil {
		return ""
	}
	if project, ok := p.r.get(*id); ok {
		return project.Name
	}
	return ""
}
