package hub

type Habits struct {
	r *repo[Habit]
	h *Hub
}

// All returns copies whose Completions maps are not shared with the
// repository.
func (hb *Habits) All() []Habit {
	out := hb.r.all()
	for i := range out {
		out[i] = out[i].clone()
	}
	return out
}

func (hb *Habits) Len() int { return len(hb.r.items) }

func (hb *Habits) Get(id string) (Habit, bool) {
	habit, ok := hb.r.get(id)
	if !ok {
		return habit, false
	}
	return habit.clone(), true
}

func (hb *Habits) Add(name string) (Habit, error) {
	if blank(name) {
		return Habit{}, ErrEmpty
	}
	habit := Habit{
		ID:          hb.h.newID(),
		Name:        name,
		Completions: map[string]bool{},
		CreatedAt:   hb.h.now().UTC(),
	}
	if err := hb.r.commit(appendItem(hb.r.items, habit)); err != nil {
		return habit, err
	}
	return habit, nil
}

// Toggle flips the completion mark for date and recomputes the streak
// anchored at that date.
func (hb *Habits) Toggle(id, date string) error {
	if _, err := ParseDate(date); err != nil {
		return err
	}
	return hb.r.replace(id, func(habit Habit) Habit {
		habit = habit.clone()
		habit.Completions[date] = !habit.Completions[date]
		habit.Streak = Streak(habit.Completions, date)
		return habit
	})
}

func (hb *Habits) Delete(id string) error {
	return hb.r.remove(id)
}

// Streak counts consecutive completed days walking backward from anchor,
// inclusive. It never looks past the anchor.
func Streak(completions map[string]bool, anchor string) int {
	d, err := ParseDate(anchor)
	if err != nil {
		return 0
	}
	streak := 0
	for completions[d.Format(DateLayout)] {
		streak++
		d = d.AddDate(0, 0, -1)
	}
	return streak
}

func (h Habit) clone() Habit {
	completions := make(map[string]bool, len(h.Completions)+1)
	for k, v := range h.Completions {
		completions[k] = v
	}
	h.Completions = completions
	return h
}
