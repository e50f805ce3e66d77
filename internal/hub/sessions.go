package hub

// Sessions is the append-only pomodoro log.
type Sessions struct {
	r *repo[PomodoroSession]
}

func (s *Sessions) All() []PomodoroSession { return s.r.all() }
func (s *Sessions) Len() int               { return len(s.r.items) }

func (s *Sessions) Log(session PomodoroSession) error {
	if _, err := ParseDate(session.Date); err != nil {
		return err
	}
	if session.Duration <= 0 {
		return ErrInvalidDuration
	}
	return s.r.commit(appendItem(s.r.items, session))
}
