package hub

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the persisted calendar-day format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

type Category string

const (
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
	CategoryUrgent   Category = "Urgent"
	CategoryNone     Category = "None"
)

var Categories = []Category{CategoryWork, CategoryPersonal, CategoryUrgent, CategoryNone}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
	PriorityNone   Priority = "None"
)

var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow, PriorityNone}

// ParseCategory matches s against the known categories ignoring case. An
// empty s is CategoryNone.
func ParseCategory(s string) (Category, error) {
	return parseEnum(s, Categories, CategoryNone)
}

// ParsePriority matches s against the known priorities ignoring case. An
// empty s is PriorityNone.
func ParsePriority(s string) (Priority, error) {
	return parseEnum(s, Priorities, PriorityNone)
}

func parseEnum[T ~string](s string, known []T, empty T) (T, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return empty, nil
	}
	for _, v := range known {
		if strings.EqualFold(s, string(v)) {
			return v, nil
		}
	}
	return empty, fmt.Errorf("%w %q, want one of %s", ErrUnknownValue, s, joinEnum(known))
}

func joinEnum[T ~string](values []T) string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return strings.Join(out, ", ")
}

type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	ProjectID *string   `json:"projectId"`
	DueDate   string    `json:"dueDate,omitempty"`
	Category  Category  `json:"category"`
	Priority  Priority  `json:"priority"`
	CreatedAt time.Time `json:"createdAt"`
}

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	ProjectID *string   `json:"projectId"`
	FolderID  *string   `json:"folderId"`
}

type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Habit struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Completions map[string]bool `json:"completions"` // keyed by YYYY-MM-DD
	Streak      int             `json:"streak"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type PomodoroSession struct {
	Date     string `json:"date"`     // YYYY-MM-DD
	Duration int    `json:"duration"` // minutes
}

type CalendarEvent struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
}

// Settings holds pomodoro durations, in minutes.
type Settings struct {
	WorkMinutes             int `json:"workMinutes"`
	BreakMinutes            int `json:"breakMinutes"`
	LongBreakMinutes        int `json:"longBreakMinutes"`
	SessionsBeforeLongBreak int `json:"sessionsBeforeLongBreak"`
}

func DefaultSettings() Settings {
	return Settings{
		WorkMinutes:             25,
		BreakMinutes:            5,
		LongBreakMinutes:        15,
		SessionsBeforeLongBreak: 4,
	}
}

// Snapshot is a read-only copy of every collection.
type Snapshot struct {
	Tasks            []Task            `json:"tasks"`
	Notes            []Note            `json:"notes"`
	Folders          []Folder          `json:"folders"`
	Projects         []Project         `json:"projects"`
	Habits           []Habit           `json:"habits"`
	PomodoroSessions []PomodoroSession `json:"pomodoroSessions"`
	CalendarEvents   []CalendarEvent   `json:"calendarEvents"`
}

func taskID(t Task) string           { return t.ID }
func noteID(n Note) string           { return n.ID }
func folderID(f Folder) string       { return f.ID }
func projectID(p Project) string     { return p.ID }
func habitID(h Habit) string         { return h.ID }
func eventID(e CalendarEvent) string { return e.ID }
