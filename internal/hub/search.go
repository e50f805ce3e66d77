package hub

import "strings"

type ResultKind string

const (
	ResultTask ResultKind = "task"
	ResultNote ResultKind = "note"
)

type SearchResult struct {
	Kind      ResultKind
	ID        string
	Text      string
	Completed bool
}

// Search matches query case-insensitively as a substring of task text and
// note titles. Tasks come first, then notes, each in collection
// order. A blank query matches nothing.
func Search(query string, tasks []Task, notes []Note) []SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []SearchResult
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Text), q) {
			out = append(out, SearchResult{Kind: ResultTask, ID: t.ID, Text: t.Text, Completed: t.Completed})
		}
	}
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), q) {
			out = append(out, SearchResult{Kind: ResultNote, ID: n.ID, Text: n.Title})
		}
	}
	return out
}
