package hub

import "sort"

// Stats is the dashboard projection. It is recomputed on every call.
type Stats struct {
	TotalTasks      int
	CompletedTasks  int
	CompletionRatio float64
	ByCategory      map[Category]int
	ByPriority      map[Priority]int
	Overdue         int
	DueToday        int

	SessionCount int
	FocusMinutes int
	MinutesToday int
	Days         []DayFocus

	Habits     []HabitStreak
	BestStreak int

	Projects        []ProjectProgress
	UnassignedTasks int
}

type DayFocus struct {
	Date     string
	Sessions int
	Minutes  int
}

type HabitStreak struct {
	ID        string
	Name      string
	Streak    int
	DoneToday bool
}

type ProjectProgress struct {
	ID        string
	Name      string
	Total     int
	Completed int
	Ratio     float64
}

func ratio(done, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total)
}

// ComputeStats aggregates a snapshot as of today (YYYY-MM-DD). Tasks whose
// projectId is nil or points at a deleted project count as unassigned.
func ComputeStats(s Snapshot, today string) Stats {
	st := Stats{
		ByCategory: map[Category]int{},
		ByPriority: map[Priority]int{},
	}

	progress := make(map[string]*ProjectProgress, len(s.Projects))
	for _, p := range s.Projects {
		st.Projects = append(st.Projects, ProjectProgress{ID: p.ID, Name: p.Name})
	}
	for i := range st.Projects {
		progress[st.Projects[i].ID] = &st.Projects[i]
	}

	for _, t := range s.Tasks {
		st.TotalTasks++
		if t.Completed {
			st.CompletedTasks++
		}
		st.ByCategory[orCategory(t.Category)]++
		st.ByPriority[orPriority(t.Priority)]++

		if !t.Completed && t.DueDate != "" {
			switch {
			case t.DueDate < today:
				st.Overdue++
			case t.DueDate == today:
				st.DueToday++
			}
		}

		var pp *ProjectProgress
		if t.ProjectID != nil {
			pp = progress[*t.ProjectID]
		}
		if pp == nil {
			st.UnassignedTasks++
			continue
		}
		pp.Total++
		if t.Completed {
			pp.Completed++
		}
	}
	st.CompletionRatio = ratio(st.CompletedTasks, st.TotalTasks)
	for i := range st.Projects {
		st.Projects[i].Ratio = ratio(st.Projects[i].Completed, st.Projects[i].Total)
	}

	days := map[string]*DayFocus{}
	for _, ps := range s.PomodoroSessions {
		st.SessionCount++
		st.FocusMinutes += ps.Duration
		if ps.Date == today {
			st.MinutesToday += ps.Duration
		}
		d, ok := days[ps.Date]
		if !ok {
			d = &DayFocus{Date: ps.Date}
			days[ps.Date] = d
		}
		d.Sessions++
		d.Minutes += ps.Duration
	}
	for _, d := range days {
		st.Days = append(st.Days, *d)
	}
	sort.Slice(st.Days, func(i, j int) bool { return st.Days[i].Date < st.Days[j].Date })

	for _, h := range s.Habits {
		st.Habits = append(st.Habits, HabitStreak{
			ID:        h.ID,
			Name:      h.Name,
			Streak:    h.Streak,
			DoneToday: h.Completions[today],
		})
		if h.Streak > st.BestStreak {
			st.BestStreak = h.Streak
		}
	}

	return st
}

// LastDays returns the focus totals for the n days ending at today, oldest
// first, with zero entries for days without sessions.
func (st Stats) LastDays(today string, n int) []DayFocus {
	end, err := ParseDate(today)
	if err != nil || n <= 0 {
		return nil
	}
	byDate := make(map[string]DayFocus, len(st.Days))
	for _, d := range st.Days {
		byDate[d.Date] = d
	}
	out := make([]DayFocus, 0, n)
	for i := n - 1; i >= 0; i-- {
		date := end.AddDate(0, 0, -i).Format(DateLayout)
		d, ok := byDate[date]
		if !ok {
			d = DayFocus{Date: date}
		}
		out = append(out, d)
	}
	return out
}
