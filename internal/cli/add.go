package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/focusboard/internal/hub"
)

type taskOptions struct {
	Project  string
	Due      string
	Category string
	Priority string
}

type noteOptions struct {
	Content string
	Folder  string
	Project string
}

type onOptions struct {
	On string
}

func addAdd(topLevel *cobra.Command, o *rootOptions) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add something",
		Example: `
focusboard add task call the bank
focusboard add note standup --content "ship it"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTask(cmd, o)
	addNote(cmd, o)
	addNamed(cmd, o, "project", func(h *hub.Hub, name string) (string, error) {
		p, err := h.Projects.Add(name)
		return p.ID, err
	})
	addNamed(cmd, o, "folder", func(h *hub.Hub, name string) (string, error) {
		f, err := h.Folders.Add(name)
		return f.ID, err
	})
	addNamed(cmd, o, "habit", func(h *hub.Hub, name string) (string, error) {
		hb, err := h.Habits.Add(name)
		return hb.ID, err
	})
	addEvent(cmd, o)

	topLevel.AddCommand(cmd)
}

// requireText joins args into the single text argument most add commands take.
func requireText(what string, dst *string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < 1 {
			return fmt.Errorf("requires a %s", what)
		}
		*dst = strings.Join(args, " ")
		return nil
	}
}

func addTask(topLevel *cobra.Command, o *rootOptions) {
	to := &taskOptions{}
	var text string

	cmd := &cobra.Command{
		Use:   "task <text>",
		Short: "Add a task",
		Example: `
focusboard add task do this task
focusboard add task file taxes --due 2024-04-15 --category Personal --priority High
`,
		Args: requireText("task", &text),
		RunE: func(cmd *cobra.Command, _ []string) error {
			category, err := hub.ParseCategory(to.Category)
			if err != nil {
				return fmt.Errorf("--category: %w", err)
			}
			priority, err := hub.ParsePriority(to.Priority)
			if err != nil {
				return fmt.Errorf("--priority: %w", err)
			}
			return o.run(func(e *env) error {
				in := hub.TaskInput{
					Text:     text,
					DueDate:  to.Due,
					Category: category,
					Priority: priority,
				}
				if to.Project != "" {
					if _, ok := e.hub.Projects.Get(to.Project); !ok {
						return notFound("project", to.Project)
					}
					in.ProjectID = &to.Project
				}
				task, err := e.hub.Tasks.Add(in)
				if err != nil {
					return err
				}
				printAdded(cmd, "task", task.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&to.Project, "project", "", "Project id to file the task under.")
	cmd.Flags().StringVar(&to.Due, "due", "", `Due date, example: --due="2024-02-28".`)
	cmd.Flags().StringVar(&to.Category, "category", string(hub.CategoryNone), "One of Work, Personal, Urgent, None, in any case.")
	cmd.Flags().StringVar(&to.Priority, "priority", string(hub.PriorityNone), "One of High, Medium, Low, None, in any case.")

	topLevel.AddCommand(cmd)
}

func addNote(topLevel *cobra.Command, o *rootOptions) {
	no := &noteOptions{}
	var title string

	cmd := &cobra.Command{
		Use:   "note <title>",
		Short: "Add a note",
		Example: `
focusboard add note meeting --content "agenda: budget"
`,
		Args: requireText("note title", &title),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(no.Content) == "" {
				return errors.New("a note needs --content")
			}
			return o.run(func(e *env) error {
				in := hub.NoteInput{Title: title, Content: no.Content}
				if no.Folder != "" {
					if _, ok := e.hub.Folders.Get(no.Folder); !ok {
						return notFound("folder", no.Folder)
					}
					in.FolderID = &no.Folder
				}
				if no.Project != "" {
					in.ProjectID = &no.Project
				}
				note, err := e.hub.Notes.Add(in)
				if err != nil {
					return err
				}
				printAdded(cmd, "note", note.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&no.Content, "content", "", "Note body.")
	cmd.Flags().StringVar(&no.Folder, "folder", "", "Folder id to file the note under.")
	cmd.Flags().StringVar(&no.Project, "project", "", "Project id to link the note to.")

	topLevel.AddCommand(cmd)
}

// addNamed registers an add command for entities that only carry a name.
func addNamed(topLevel *cobra.Command, o *rootOptions, kind string, add func(*hub.Hub, string) (string, error)) {
	var name string

	cmd := &cobra.Command{
		Use:   kind + " <name>",
		Short: "Add a " + kind,
		Args:  requireText(kind+" name", &name),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(func(e *env) error {
				id, err := add(e.hub, name)
				if err != nil {
					return err
				}
				printAdded(cmd, kind, id)
				return nil
			})
		},
	}
	topLevel.AddCommand(cmd)
}

func addEvent(topLevel *cobra.Command, o *rootOptions) {
	oo := &onOptions{}
	var title string

	cmd := &cobra.Command{
		Use:   "event <title>",
		Short: "Add a calendar event",
		Example: `
focusboard add event dentist --on 2024-03-12
`,
		Args: requireText("event title", &title),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(func(e *env) error {
				date := oo.On
				if date == "" {
					date = e.hub.Today()
				}
				ev, err := e.hub.Events.Add(title, date)
				if err != nil {
					return err
				}
				printAdded(cmd, "event", ev.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&oo.On, "on", "", `Event date, example: --on="2024-02-28". Defaults to today.`)

	topLevel.AddCommand(cmd)
}
