// Package hub owns the application state: one repository per entity kind,
// each mirrored to a key in the KV store and rewritten in full on every
// mutation.
package hub

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/focusboard/internal/store"
)

var (
	// ErrEmpty is returned by Add when a required text field is blank.
	// The collection is left unchanged.
	ErrEmpty = errors.New("required text is empty")

	ErrInvalidDate     = errors.New("invalid date, want YYYY-MM-DD")
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrInvalidSettings = errors.New("settings values must be positive")
	ErrUnknownValue    = errors.New("unknown value")
)

// Hub is the top-level state container handed to every view.
type Hub struct {
	kv    store.KV
	log   *slog.Logger
	now   func() time.Time
	newID func() string

	Tasks    *Tasks
	Notes    *Notes
	Folders  *Folders
	Projects *Projects
	Habits   *Habits
	Sessions *Sessions
	Events   *Events
	Settings *SettingsRepo
}

type Option func(*Hub)

func WithLogger(l *slog.Logger) Option {
	return func(h *Hub) { h.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(h *Hub) { h.now = now }
}

func WithIDs(newID func() string) Option {
	return func(h *Hub) { h.newID = newID }
}

// Open builds a Hub over kv and loads every collection from it.
func Open(kv store.KV, opts ...Option) *Hub {
	h := &Hub{
		kv:    kv,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(h)
	}

	h.Tasks = &Tasks{r: newRepo(kv, h.log, store.KeyTasks, taskID), h: h}
	h.Notes = &Notes{r: newRepo(kv, h.log, store.KeyNotes, noteID), h: h}
	h.Folders = &Folders{r: newRepo(kv, h.log, store.KeyFolders, folderID), h: h}
	h.Projects = &Projects{r: newRepo(kv, h.log, store.KeyProjects, projectID), h: h}
	h.Habits = &Habits{r: newRepo(kv, h.log, store.KeyHabits, habitID), h: h}
	h.Sessions = &Sessions{r: newRepo(kv, h.log, store.KeyPomodoroSessions, func(PomodoroSession) string { return "" })}
	h.Events = &Events{r: newRepo(kv, h.log, store.KeyCalendarEvents, eventID), h: h}
	h.Settings = &SettingsRepo{kv: kv, log: h.log}

	h.Reload()
	return h
}

// Reload re-reads every collection from the store.
func (h *Hub) Reload() {
	h.Tasks.r.load()
	h.Notes.r.load()
	h.Folders.r.load()
	h.Projects.r.load()
	h.Habits.r.load()
	h.Sessions.r.load()
	h.Events.r.load()
	h.Settings.load()
	h.log.Info("state loaded",
		slog.Int("tasks", h.Tasks.Len()),
		slog.Int("notes", h.Notes.Len()),
		slog.Int("habits", h.Habits.Len()),
	)
}

// StoredKeys lists the keys that currently hold a value in the store.
func (h *Hub) StoredKeys() ([]string, error) {
	keys, err := h.kv.Keys()
	if err != nil {
		return nil, fmt.Errorf("list stored keys: %w", err)
	}
	return keys, nil
}

func (h *Hub) Close() error {
	return h.kv.Close()
}

func (h *Hub) Now() time.Time {
	return h.now()
}

// Today returns the current local date as YYYY-MM-DD.
func (h *Hub) Today() string {
	return h.now().Format(DateLayout)
}

func (h *Hub) Snapshot() Snapshot {
	return Snapshot{
		Tasks:            h.Tasks.All(),
		Notes:            h.Notes.All(),
		Folders:          h.Folders.All(),
		Projects:         h.Projects.All(),
		Habits:           h.Habits.All(),
		PomodoroSessions: h.Sessions.All(),
		CalendarEvents:   h.Events.All(),
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ParseDate validates a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}
