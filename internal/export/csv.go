package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/focusboard/internal/hub"
)

var taskHeader = []string{"ID", "Task", "Project", "Category", "Priority", "Due", "Completed", "Created"}

// TasksToCSV writes one row per task. Tasks without a project, or whose
// project was deleted, get an empty Project column.
func TasksToCSV(tasks []hub.Task, projects []hub.Project, path string) error {
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}

	return writeCSV(path, taskHeader, len(tasks), func(i int) []string {
		t := tasks[i]
		project := ""
		if t.ProjectID != nil {
			project = names[*t.ProjectID]
		}
		return []string{
			t.ID,
			t.Text,
			project,
			string(t.Category),
			string(t.Priority),
			t.DueDate,
			strconv.FormatBool(t.Completed),
			t.CreatedAt.Local().Format(time.RFC3339),
		}
	})
}

var sessionHeader = []string{"Date", "Minutes", "Duration"}

func SessionsToCSV(sessions []hub.PomodoroSession, path string) error {
	return writeCSV(path, sessionHeader, len(sessions), func(i int) []string {
		s := sessions[i]
		return []string{s.Date, strconv.Itoa(s.Duration), formatMinutes(s.Duration)}
	})
}

func writeCSV(path string, header []string, n int, row func(int) []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := w.Write(row(i)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// formatMinutes renders minutes as HH:MM.
func formatMinutes(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}
