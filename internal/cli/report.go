package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/focusboard/internal/export"
	"github.com/sadopc/focusboard/internal/hub"
)

func addStats(topLevel *cobra.Command, o *rootOptions) {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the dashboard summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(func(e *env) error {
				today := e.hub.Today()
				st := hub.ComputeStats(e.hub.Snapshot(), today)

				tbl := newTable()
				tbl.AddRow("Tasks", fmt.Sprintf("%d/%d done (%.0f%%)", st.CompletedTasks, st.TotalTasks, st.CompletionRatio*100))
				tbl.AddRow("Overdue", st.Overdue)
				tbl.AddRow("Due today", st.DueToday)
				for _, c := range hub.Categories {
					if n := st.ByCategory[c]; n > 0 {
						tbl.AddRow("  "+string(c), n)
					}
				}
				for _, p := range hub.Priorities {
					if n := st.ByPriority[p]; n > 0 {
						tbl.AddRow("  !"+string(p), n)
					}
				}
				tbl.AddRow("Focus sessions", st.SessionCount)
				tbl.AddRow("Focus minutes", st.FocusMinutes)
				tbl.AddRow("Focus today", st.MinutesToday)
				tbl.AddRow("Best streak", st.BestStreak)
				tbl.AddRow("Unassigned tasks", st.UnassignedTasks)

				keys, err := e.hub.StoredKeys()
				if err != nil {
					return err
				}
				tbl.AddRow("Stored keys", strings.Join(keys, ", "))

				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintln(w, bold.Sprint("Summary for "+today))
				_, _ = fmt.Fprintln(w, tbl)
				return nil
			})
		},
	}
	topLevel.AddCommand(cmd)
}

func addSearch(topLevel *cobra.Command, o *rootOptions) {
	var query string
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search task text and note titles",
		Example: `
focusboard search report
`,
		Args: requireText("query", &query),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(func(e *env) error {
				tbl := newTable("KIND", "ID", "TEXT", "")
				for _, r := range hub.Search(query, e.hub.Tasks.All(), e.hub.Notes.All()) {
					done := ""
					if r.Kind == hub.ResultTask {
						done = check(r.Completed)
					}
					tbl.AddRow(r.Kind, r.ID, r.Text, done)
				}
				printTable(cmd.OutOrStdout(), tbl, "no matches")
				return nil
			})
		},
	}
	topLevel.AddCommand(cmd)
}

type exportOptions struct {
	Format string
	Out    string
}

func addExport(topLevel *cobra.Command, o *rootOptions) {
	eo := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks as CSV or everything as JSON",
		Example: `
focusboard export --format csv --out tasks.csv
focusboard export --format json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := strings.ToLower(eo.Format)
			if format != "csv" && format != "json" {
				return errors.New(`--format must be "csv" or "json"`)
			}
			return o.run(func(e *env) error {
				snap := e.hub.Snapshot()
				path := eo.Out
				if path == "" {
					path = fmt.Sprintf("focusboard-%s.%s", e.hub.Today(), format)
				}

				var err error
				if format == "csv" {
					err = export.TasksToCSV(snap.Tasks, snap.Projects, path)
				} else {
					err = export.SnapshotToJSON(snap, path)
				}
				if err != nil {
					return err
				}
				if abs, aerr := filepath.Abs(path); aerr == nil {
					path = abs
				}
				e.log.Info("exported", "format", format, "path", path)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", path)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&eo.Format, "format", "csv", `Export format, "csv" (tasks) or "json" (everything).`)
	cmd.Flags().StringVar(&eo.Out, "out", "", "Output file. Defaults to focusboard-<date>.<format> in the current directory.")
	topLevel.AddCommand(cmd)
}
