package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/focusboard/internal/hub"
)

const (
	paneFolders = iota
	paneNotes
)

// Folder rows before the user's folders.
const (
	folderAll = iota
	folderUnfiled
	folderFixedRows
)

type notesModel struct {
	hub    *hub.Hub
	width  int
	height int

	notes        []hub.Note
	folders      []hub.Folder
	folderCursor int
	cursor       int
	pane         int

	pendingFocus string

	formActive bool
	form       *huh.Form
	formType   string // "note", "edit", "folder", "rename_folder", "move"
	editingID  string

	// Form field pointers (survive value copies)
	formTitle   *string
	formContent *string
	formFolder  *string
}

func newNotesModel(h *hub.Hub) notesModel {
	title, content, folder := "", "", ""
	return notesModel{
		hub:         h,
		pane:        paneNotes,
		formTitle:   &title,
		formContent: &content,
		formFolder:  &folder,
	}
}

func (n *notesModel) setSize(w, h int) {
	n.width = w
	n.height = h
}

type notesDataMsg struct {
	notes   []hub.Note
	folders []hub.Folder
}

func (n notesModel) refresh() tea.Cmd {
	notes := n.hub.Notes.All()
	folders := n.hub.Folders.All()
	return func() tea.Msg {
		return notesDataMsg{notes: notes, folders: folders}
	}
}

// selectedFolder returns the folder filter: all is true for the "All" row;
// otherwise id is nil for "Unfiled" or points at a folder id.
func (n notesModel) selectedFolder() (id *string, all bool) {
	switch {
	case n.folderCursor == folderAll:
		return nil, true
	case n.folderCursor == folderUnfiled:
		return nil, false
	case n.folderCursor-folderFixedRows < len(n.folders):
		return strPtr(n.folders[n.folderCursor-folderFixedRows].ID), false
	}
	return nil, true
}

func (n notesModel) visible() []hub.Note {
	id, all := n.selectedFolder()
	if all {
		return n.notes
	}
	var out []hub.Note
	for _, note := range n.notes {
		folder := hub.NoteFolder(note, n.folders)
		if (id == nil && folder == nil) || (id != nil && folder != nil && *folder == *id) {
			out = append(out, note)
		}
	}
	return out
}

func (n notesModel) selected() (hub.Note, bool) {
	v := n.visible()
	if n.cursor < 0 || n.cursor >= len(v) {
		return hub.Note{}, false
	}
	return v[n.cursor], true
}

// focus selects the note with id under the "All" folder.
func (n notesModel) focus(id string) notesModel {
	n.folderCursor = folderAll
	n.pane = paneNotes
	n.pendingFocus = id
	for i, note := range n.notes {
		if note.ID == id {
			n.cursor = i
			n.pendingFocus = ""
		}
	}
	return n
}

func (n notesModel) update(msg tea.Msg) (notesModel, tea.Cmd) {
	if n.formActive && n.form != nil {
		return n.updateForm(msg)
	}

	switch msg := msg.(type) {
	case notesDataMsg:
		n.notes = msg.notes
		n.folders = msg.folders
		if n.pendingFocus != "" {
			n = n.focus(n.pendingFocus)
		}
		n.folderCursor = clamp(n.folderCursor, 0, folderFixedRows+len(n.folders)-1)
		n.cursor = clamp(n.cursor, 0, max(0, len(n.visible())-1))
		return n, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			n.pane = paneFolders
		case key.Matches(msg, keys.Right):
			n.pane = paneNotes
		case key.Matches(msg, keys.Up):
			if n.pane == paneFolders && n.folderCursor > 0 {
				n.folderCursor--
				n.cursor = 0
			} else if n.pane == paneNotes && n.cursor > 0 {
				n.cursor--
			}
		case key.Matches(msg, keys.Down):
			if n.pane == paneFolders && n.folderCursor < folderFixedRows+len(n.folders)-1 {
				n.folderCursor++
				n.cursor = 0
			} else if n.pane == paneNotes && n.cursor < len(n.visible())-1 {
				n.cursor++
			}
		case key.Matches(msg, keys.New):
			return n.showNoteForm(nil)
		case key.Matches(msg, keys.NewFolder):
			return n.showFolderForm("folder", "")
		case key.Matches(msg, keys.Edit):
			if n.pane == paneFolders {
				if f, ok := n.currentFolder(); ok {
					n.editingID = f.ID
					return n.showFolderForm("rename_folder", f.Name)
				}
			} else if note, ok := n.selected(); ok {
				return n.showNoteForm(&note)
			}
		case key.Matches(msg, keys.ToTasks):
			if note, ok := n.selected(); ok && n.pane == paneNotes {
				return n, n.addTasksFrom(note)
			}
		case key.Matches(msg, keys.Move):
			if note, ok := n.selected(); ok && n.pane == paneNotes {
				return n.showMoveForm(note)
			}
		case key.Matches(msg, keys.Delete):
			if n.pane == paneFolders {
				if f, ok := n.currentFolder(); ok {
					return n, tea.Batch(errCmd(n.hub.Folders.Delete(f.ID)), n.refresh())
				}
			} else if note, ok := n.selected(); ok {
				return n, tea.Batch(errCmd(n.hub.Notes.Delete(note.ID)), n.refresh())
			}
		}
	}
	return n, nil
}

// addTasksFrom turns each line of the note's content into a task.
func (n notesModel) addTasksFrom(note hub.Note) tea.Cmd {
	added, err := n.hub.Tasks.AddLines(note.Content)
	if err != nil {
		return errCmd(err)
	}
	noun := "tasks"
	if len(added) == 1 {
		noun = "task"
	}
	return statusCmd(fmt.Sprintf("Added %d %s from %q", len(added), noun, note.Title))
}

func (n notesModel) currentFolder() (hub.Folder, bool) {
	i := n.folderCursor - folderFixedRows
	if i < 0 || i >= len(n.folders) {
		return hub.Folder{}, false
	}
	return n.folders[i], true
}

func (n notesModel) folderOptions() []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("Unfiled", "")}
	for _, f := range n.folders {
		opts = append(opts, huh.NewOption(f.Name, f.ID))
	}
	return opts
}

func (n notesModel) showNoteForm(note *hub.Note) (notesModel, tea.Cmd) {
	if note == nil {
		*n.formTitle = ""
		*n.formContent = ""
		*n.formFolder = ""
		if id, all := n.selectedFolder(); !all && id != nil {
			*n.formFolder = *id
		}
		n.formType = "note"
		n.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Title").Value(n.formTitle),
				huh.NewText().Title("Content").Value(n.formContent),
				huh.NewSelect[string]().Title("Folder").Options(n.folderOptions()...).Value(n.formFolder),
			),
		).WithShowHelp(true).WithShowErrors(true)
	} else {
		*n.formTitle = note.Title
		*n.formContent = note.Content
		n.formType = "edit"
		n.editingID = note.ID
		n.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Title").Value(n.formTitle),
				huh.NewText().Title("Content").Value(n.formContent),
			),
		).WithShowHelp(true).WithShowErrors(true)
	}

	n.formActive = true
	return n, n.form.Init()
}

func (n notesModel) showFolderForm(formType, initial string) (notesModel, tea.Cmd) {
	*n.formTitle = initial
	n.formType = formType
	n.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Folder Name").Value(n.formTitle),
		),
	).WithShowHelp(true).WithShowErrors(true)

	n.formActive = true
	return n, n.form.Init()
}

func (n notesModel) showMoveForm(note hub.Note) (notesModel, tea.Cmd) {
	*n.formFolder = ""
	if folder := hub.NoteFolder(note, n.folders); folder != nil {
		*n.formFolder = *folder
	}
	n.formType = "move"
	n.editingID = note.ID
	n.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Move to folder").Options(n.folderOptions()...).Value(n.formFolder),
		),
	).WithShowHelp(true).WithShowErrors(true)

	n.formActive = true
	return n, n.form.Init()
}

func (n notesModel) updateForm(msg tea.Msg) (notesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			n.formActive = false
			n.form = nil
			return n, nil
		}
	}

	form, cmd := n.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		n.form = f
	}

	if n.form.State == huh.StateCompleted {
		n.formActive = false
		var folderID *string
		if *n.formFolder != "" {
			folderID = strPtr(*n.formFolder)
		}

		var err error
		switch n.formType {
		case "note":
			_, err = n.hub.Notes.Add(hub.NoteInput{
				Title:    strings.TrimSpace(*n.formTitle),
				Content:  *n.formContent,
				FolderID: folderID,
			})
			n.cursor = 0
		case "edit":
			err = n.hub.Notes.Update(n.editingID, *n.formTitle, *n.formContent)
		case "move":
			err = n.hub.Notes.Move(n.editingID, folderID)
		case "folder":
			_, err = n.hub.Folders.Add(strings.TrimSpace(*n.formTitle))
		case "rename_folder":
			err = n.hub.Folders.Rename(n.editingID, strings.TrimSpace(*n.formTitle))
		}
		return n, tea.Batch(errCmd(err), n.refresh())
	}

	return n, cmd
}

func (n notesModel) view() string {
	w := n.width - 4
	if n.formActive && n.form != nil {
		titles := map[string]string{
			"note":          "New Note",
			"edit":          "Edit Note",
			"folder":        "New Folder",
			"rename_folder": "Rename Folder",
			"move":          "Move Note",
		}
		title := titleStyle.Render(titles[n.formType])
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", n.form.View()))
	}

	folderWidth := clamp(w/4, 16, 28)
	left := n.renderFolders(folderWidth)
	right := n.renderNotes(w - folderWidth - 4)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (n notesModel) renderFolders(w int) string {
	style := panelStyle
	if n.pane == paneFolders {
		style = activePanelStyle
	}

	counts := map[string]int{}
	unfiled := 0
	for _, note := range n.notes {
		if folder := hub.NoteFolder(note, n.folders); folder == nil {
			unfiled++
		} else {
			counts[*folder]++
		}
	}

	labels := []string{fmt.Sprintf("All (%d)", len(n.notes)), fmt.Sprintf("Unfiled (%d)", unfiled)}
	for _, f := range n.folders {
		labels = append(labels, fmt.Sprintf("%s (%d)", f.Name, counts[f.ID]))
	}

	rows := []string{titleStyle.Render("Folders"), ""}
	for i, label := range labels {
		cursor := "  "
		item := normalItemStyle
		if i == n.folderCursor {
			cursor = "> "
			item = selectedItemStyle
		}
		rows = append(rows, item.Render(cursor+truncate(label, w-8)))
	}
	rows = append(rows, "", mutedStyle.Render("f: new  r: rename"))
	return style.Width(w).Render(strings.Join(rows, "\n"))
}

func (n notesModel) renderNotes(w int) string {
	style := panelStyle
	if n.pane == paneNotes {
		style = activePanelStyle
	}

	title := titleStyle.Render("Notes")
	visible := n.visible()
	if len(visible) == 0 {
		return style.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", mutedStyle.Render("No notes here. Press n to write one."),
		))
	}

	rows := []string{title, ""}
	start, end := listWindow(len(visible), n.cursor, max(3, (n.height-10)/2))
	for i := start; i < end; i++ {
		note := visible[i]
		cursor := "  "
		item := normalItemStyle
		if i == n.cursor {
			cursor = "> "
			item = selectedItemStyle
		}
		when := mutedStyle.Render(humanize.Time(note.CreatedAt))
		rows = append(rows, fmt.Sprintf("%s %s", item.Render(cursor+truncate(note.Title, w-30)), when))
	}

	if note, ok := n.selected(); ok {
		body := lipgloss.NewStyle().Width(w - 6).Foreground(colorFg).Render(note.Content)
		rows = append(rows, "", mutedStyle.Render(strings.Repeat("─", max(1, w-6))), body)
	}

	rows = append(rows, "", mutedStyle.Render("n: new  r: edit  m: move  t: to tasks  d: delete  ←/→: pane"))
	return style.Width(w).Render(strings.Join(rows, "\n"))
}
