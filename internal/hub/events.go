package hub

type Events struct {
	r *repo[CalendarEvent]
	h *Hub
}

func (e *Events) All() []CalendarEvent                { return e.r.all() }
func (e *Events) Len() int                            { return len(e.r.items) }
func (e *Events) Get(id string) (CalendarEvent, bool) { return e.r.get(id) }

func (e *Events) Add(title, date string) (CalendarEvent, error) {
	if blank(title) {
		return CalendarEvent{}, ErrEmpty
	}
	if _, err := ParseDate(date); err != nil {
		return CalendarEvent{}, err
	}
	ev := CalendarEvent{ID: e.h.newID(), Title: title, Date: date}
	if err := e.r.commit(appendItem(e.r.items, ev)); err != nil {
		return ev, err
	}
	return ev, nil
}

func (e *Events) Delete(id string) error {
	return e.r.remove(id)
}

// On returns the events dated date, in insertion order.
func (e *Events) On(date string) []CalendarEvent {
	var out []CalendarEvent
	for _, ev := range e.r.items {
		if ev.Date == date {
			out = append(out, ev)
		}
	}
	return out
}
