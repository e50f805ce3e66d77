package hub

import "strings"

type TaskInput struct {
	Text      string
	ProjectID *string
	DueDate   string
	Category  Category
	Priority  Priority
}

// Tasks keeps insertion order.
type Tasks struct {
	r *repo[Task]
	h *Hub
}

func (t *Tasks) All() []Task                { return t.r.all() }
func (t *Tasks) Len() int                   { return len(t.r.items) }
func (t *Tasks) Get(id string) (Task, bool) { return t.r.get(id) }

func (t *Tasks) Add(in TaskInput) (Task, error) {
	if blank(in.Text) {
		return Task{}, ErrEmpty
	}
	if err := checkDue(in.DueDate); err != nil {
		return Task{}, err
	}
	task := Task{
		ID:        t.h.newID(),
		Text:      in.Text,
		ProjectID: in.ProjectID,
		DueDate:   in.DueDate,
		Category:  orCategory(in.Category),
		Priority:  orPriority(in.Priority),
		CreatedAt: t.h.now().UTC(),
	}
	if err := t.r.commit(appendItem(t.r.items, task)); err != nil {
		return task, err
	}
	return task, nil
}

// AddLines adds one task per non-blank line of text, dropping a leading
// bullet and an unchecked "[ ] " box. It returns ErrEmpty when no line holds
// any text. On a save error the tasks added so far are returned with it.
func (t *Tasks) AddLines(text string) ([]Task, error) {
	var added []Task
	for _, line := range strings.Split(text, "\n") {
		line = trimListMarker(line)
		if line == "" {
			continue
		}
		task, err := t.Add(TaskInput{Text: line})
		if err != nil {
			return added, err
		}
		added = append(added, task)
	}
	if len(added) == 0 {
		return nil, ErrEmpty
	}
	return added, nil
}

func trimListMarker(line string) string {
	line = strings.TrimSpace(line)
	for _, bullet := range []string{"-", "*"} {
		if line == bullet || strings.HasPrefix(line, bullet+" ") {
			line = strings.TrimSpace(line[len(bullet):])
			break
		}
	}
	if line == "[ ]" || strings.HasPrefix(line, "[ ] ") {
		line = strings.TrimSpace(line[len("[ ]"):])
	}
	return line
}

// Toggle flips Completed. Unknown ids are ignored.
func (t *Tasks) Toggle(id string) error {
	return t.r.replace(id, func(task Task) Task {
		task.Completed = !task.Completed
		return task
	})
}

// Update rewrites the editable fields, keeping id, completion and creation time.
func (t *Tasks) Update(id string, in TaskInput) error {
	if blank(in.Text) {
		return ErrEmpty
	}
	if err := checkDue(in.DueDate); err != nil {
		return err
	}
	return t.r.replace(id, func(task Task) Task {
		task.Text = in.Text
		task.ProjectID = in.ProjectID
		task.DueDate = in.DueDate
		task.Category = orCategory(in.Category)
		task.Priority = orPriority(in.Priority)
		return task
	})
}

func (t *Tasks) Delete(id string) error {
	return t.r.remove(id)
}

func checkDue(due string) error {
	if due == "" {
		return nil
	}
	_, err := ParseDate(due)
	return err
}

func orCategory(c Category) Category {
	for _, known := range Categories {
		if c == known {
			return c
		}
	}
	return CategoryNone
}

func orPriority(p Priority) Priority {
	for _, known := range Priorities {
		if p == known {
			return p
		}
	}
	return PriorityNone
}
