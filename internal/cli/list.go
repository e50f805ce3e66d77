package cli

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sadopc/focusboard/internal/hub"
)

type listTaskOptions struct {
	Active bool
}

func addList(topLevel *cobra.Command, o *rootOptions) {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "get"},
		Short:   "List stored items",
		Example: `
focusboard list tasks --active
focusboard list habits
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addListTasks(cmd, o)
	addListCmd(cmd, o, "notes", listNotes)
	addListCmd(cmd, o, "projects", listProjects)
	addListCmd(cmd, o, "folders", listFolders)
	addListCmd(cmd, o, "habits", listHabits)
	addListEvents(cmd, o)
	addListCmd(cmd, o, "sessions", listSessions)

	topLevel.AddCommand(cmd)
}

func addListCmd(topLevel *cobra.Command, o *rootOptions, noun string, list func(*cobra.Command, *hub.Hub)) {
	cmd := &cobra.Command{
		Use:   noun,
		Short: "List " + noun,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(func(e *env) error {
				list(cmd, e.hub)
				return nil
			})
		},
	}
	topLevel.AddCommand(cmd)
}

func addListTasks(topLevel *cobra.Command, o *rootOptions) {
	lo := &listTaskOptions{}
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(func(e *env) error {
				listTasks(cmd, e.hub, lo.Active)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&lo.Active, "active", false, "Only show tasks that are not completed.")
	topLevel.AddCommand(cmd)
}

func listTasks(cmd *cobra.Command, h *hub.Hub, activeOnly bool) {
	today := h.Today()
	tbl := newTable("ID", "", "TASK", "PROJECT", "CATEGORY", "PRIORITY", "DUE")
	for _, t := range h.Tasks.All() {
		if activeOnly && t.Completed {
			continue
		}
		due := t.DueDate
		if due != "" && !t.Completed {
			switch {
			case due < today:
				due = red.Sprint(due)
			case due == today:
				due = yellow.Sprint(due)
			}
		}
		tbl.AddRow(t.ID, check(t.Completed), t.Text, h.Projects.Name(t.ProjectID), t.Category, t.Priority, due)
	}
	printTable(cmd.OutOrStdout(), tbl, "no tasks")
}

func listNotes(cmd *cobra.Command, h *hub.Hub) {
	tbl := newTable("ID", "TITLE", "FOLDER", "CREATED")
	folders := h.Folders.All()
	names := map[string]string{}
	for _, f := range folders {
		names[f.ID] = f.Name
	}
	for _, n := range h.Notes.All() {
		folder := ""
		if id := hub.NoteFolder(n, folders); id != nil {
			folder = names[*id]
		}
		tbl.AddRow(n.ID, n.Title, folder, humanize.Time(n.CreatedAt))
	}
	printTable(cmd.OutOrStdout(), tbl, "no notes")
}

func listProjects(cmd *cobra.Command, h *hub.Hub) {
	stats := hub.ComputeStats(h.Snapshot(), h.Today())
	tbl := newTable("ID", "PROJECT", "DONE", "PROGRESS")
	for _, p := range stats.Projects {
		tbl.AddRow(p.ID, p.Name, fmt.Sprintf("%d/%d", p.Completed, p.Total), fmt.Sprintf("%.0f%%", p.Ratio*100))
	}
	printTable(cmd.OutOrStdout(), tbl, "no projects")
}

func listFolders(cmd *cobra.Command, h *hub.Hub) {
	tbl := newTable("ID", "FOLDER", "NOTES")
	for _, f := range h.Folders.All() {
		id := f.ID
		tbl.AddRow(f.ID, f.Name, len(h.Notes.InFolder(&id)))
	}
	if unfiled := len(h.Notes.InFolder(nil)); unfiled > 0 && h.Folders.Len() > 0 {
		tbl.AddRow("", faint.Sprint("Unfiled"), unfiled)
	}
	printTable(cmd.OutOrStdout(), tbl, "no folders")
}

func listHabits(cmd *cobra.Command, h *hub.Hub) {
	today := h.Today()
	tbl := newTable("ID", "HABIT", "STREAK", "TODAY")
	for _, hb := range h.Habits.All() {
		tbl.AddRow(hb.ID, hb.Name, hb.Streak, check(hb.Completions[today]))
	}
	printTable(cmd.OutOrStdout(), tbl, "no habits")
}

func addListEvents(topLevel *cobra.Command, o *rootOptions) {
	oo := &onOptions{}
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List calendar events",
		Example: `
focusboard list events
focusboard list events --on 2024-03-12
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(func(e *env) error {
				return listEvents(cmd, e.hub, oo.On)
			})
		},
	}
	cmd.Flags().StringVar(&oo.On, "on", "", `Only show events on this date, example: --on="2024-02-28".`)
	topLevel.AddCommand(cmd)
}

func listEvents(cmd *cobra.Command, h *hub.Hub, on string) error {
	var events []hub.CalendarEvent
	if on != "" {
		if _, err := hub.ParseDate(on); err != nil {
			return err
		}
		events = h.Events.On(on)
	} else {
		events = h.Events.All()
		sort.SliceStable(events, func(i, j int) bool { return events[i].Date < events[j].Date })
	}

	tbl := newTable("ID", "DATE", "EVENT")
	for _, ev := range events {
		tbl.AddRow(ev.ID, ev.Date, ev.Title)
	}
	printTable(cmd.OutOrStdout(), tbl, "no events")
	return nil
}

func listSessions(cmd *cobra.Command, h *hub.Hub) {
	tbl := newTable("DATE", "MINUTES")
	for _, s := range h.Sessions.All() {
		tbl.AddRow(s.Date, s.Duration)
	}
	printTable(cmd.OutOrStdout(), tbl, "no sessions")
}
