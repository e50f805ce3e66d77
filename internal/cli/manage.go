package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/focusboard/internal/hub"
)

// removers maps an entity kind to its existence check and delete call.
var removers = map[string]struct {
	exists func(h *hub.Hub, id string) bool
	remove func(h *hub.Hub, id string) error
}{
	"task": {
		func(h *hub.Hub, id string) bool { return found(h.Tasks.Get(id)) },
		func(h *hub.Hub, id string) error { return h.Tasks.Delete(id) },
	},
	"note": {
		func(h *hub.Hub, id string) bool { return found(h.Notes.Get(id)) },
		func(h *hub.Hub, id string) error { return h.Notes.Delete(id) },
	},
	"project": {
		func(h *hub.Hub, id string) bool { return found(h.Projects.Get(id)) },
		func(h *hub.Hub, id string) error { return h.Projects.Delete(id) },
	},
	"folder": {
		func(h *hub.Hub, id string) bool { return found(h.Folders.Get(id)) },
		func(h *hub.Hub, id string) error { return h.Folders.Delete(id) },
	},
	"habit": {
		func(h *hub.Hub, id string) bool { return found(h.Habits.Get(id)) },
		func(h *hub.Hub, id string) error { return h.Habits.Delete(id) },
	},
	"event": {
		func(h *hub.Hub, id string) bool { return found(h.Events.Get(id)) },
		func(h *hub.Hub, id string) error { return h.Events.Delete(id) },
	},
}

func found[T any](_ T, ok bool) bool { return ok }

func removeKinds() []string {
	kinds := make([]string, 0, len(removers))
	for k := range removers {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

func addDone(topLevel *cobra.Command, o *rootOptions) {
	cmd := &cobra.Command{
		Use:     "done <task id>",
		Aliases: []string{"complete", "toggle"},
		Short:   "Toggle a task between open and completed",
		Example: `
focusboard done 4f6c2a1e-...
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return o.run(func(e *env) error {
				if _, ok := e.hub.Tasks.Get(id); !ok {
					return notFound("task", id)
				}
				if err := e.hub.Tasks.Toggle(id); err != nil {
					return err
				}
				task, _ := e.hub.Tasks.Get(id)
				state := "reopened"
				if task.Completed {
					state = green.Sprint("completed")
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", state, task.Text)
				return nil
			})
		},
	}
	topLevel.AddCommand(cmd)
}

func addRemove(topLevel *cobra.Command, o *rootOptions) {
	kinds := removeKinds()

	cmd := &cobra.Command{
		Use:       "rm <kind> <id>",
		Aliases:   []string{"delete"},
		Short:     "Delete an item",
		Long:      "Delete an item. Kind is one of: " + strings.Join(kinds, ", ") + ".",
		ValidArgs: kinds,
		Example: `
focusboard rm task 4f6c2a1e-...
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("requires a kind and an id")
			}
			if _, ok := removers[args[0]]; !ok {
				return fmt.Errorf("unknown kind %q, want one of %s", args[0], strings.Join(kinds, ", "))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id := args[0], args[1]
			r := removers[kind]
			return o.run(func(e *env) error {
				if !r.exists(e.hub, id) {
					return notFound(kind, id)
				}
				if err := r.remove(e.hub, id); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s %s\n", kind, id)
				return nil
			})
		},
	}
	topLevel.AddCommand(cmd)
}

func addHabit(topLevel *cobra.Command, o *rootOptions) {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Work with habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	oo := &onOptions{}
	checkCmd := &cobra.Command{
		Use:   "check <habit id>",
		Short: "Toggle a habit's completion for a day",
		Example: `
focusboard habit check 4f6c2a1e-... --date 2024-03-12
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return o.run(func(e *env) error {
				if _, ok := e.hub.Habits.Get(id); !ok {
					return notFound("habit", id)
				}
				date := oo.On
				if date == "" {
					date = e.hub.Today()
				}
				if err := e.hub.Habits.Toggle(id, date); err != nil {
					return err
				}
				habit, _ := e.hub.Habits.Get(id)
				mark := "unchecked"
				if habit.Completions[date] {
					mark = green.Sprint("checked")
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s, streak %d\n", mark, habit.Name, date, habit.Streak)
				return nil
			})
		},
	}
	checkCmd.Flags().StringVar(&oo.On, "date", "", `Day to toggle, example: --date="2024-02-28". Defaults to today.`)
	cmd.AddCommand(checkCmd)

	topLevel.AddCommand(cmd)
}

type sessionOptions struct {
	Minutes int
	On      string
}

func addSession(topLevel *cobra.Command, o *rootOptions) {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Work with focus sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	so := &sessionOptions{}
	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Record a finished focus session",
		Example: `
focusboard session log --minutes 25
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(func(e *env) error {
				minutes := so.Minutes
				if minutes == 0 {
					minutes = e.hub.Settings.Get().WorkMinutes
				}
				date := so.On
				if date == "" {
					date = e.hub.Today()
				}
				if err := e.hub.Sessions.Log(hub.PomodoroSession{Date: date, Duration: minutes}); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged %d minutes on %s\n", minutes, date)
				return nil
			})
		},
	}
	logCmd.Flags().IntVar(&so.Minutes, "minutes", 0, "Session length. Defaults to the configured work duration.")
	logCmd.Flags().StringVar(&so.On, "date", "", `Session date, example: --date="2024-02-28". Defaults to today.`)
	cmd.AddCommand(logCmd)

	topLevel.AddCommand(cmd)
}
