package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/focal/internal/store"
)

// dialog is one modal overlay. Each variant carries exactly the state it
// needs. update returns the dialog to keep showing: itself to stay open,
// another variant to chain into, or nil to close.
type dialog interface {
	init() tea.Cmd
	update(msg tea.Msg) (dialog, tea.Cmd)
	setSize(w, h int)
	view() string
}

// --- Create task ---

// createTaskDialog collects a title. Committing does not persist anything
// yet: it chains into the deadline picker, which creates the task.
type createTaskDialog struct {
	store  *store.Store
	form   *huh.Form
	title  string
	width  int
	height int
}

func newCreateTaskDialog(s *store.Store) *createTaskDialog {
	d := &createTaskDialog{store: s}
	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New Task").
				Placeholder("What needs doing?").
				Validate(requireText("title")).
				Value(&d.title),
		),
	).WithShowHelp(true).WithShowErrors(true)
	return d
}

func (d *createTaskDialog) init() tea.Cmd { return d.form.Init() }

func (d *createTaskDialog) setSize(w, h int) { d.width, d.height = w, h }

func (d *createTaskDialog) update(msg tea.Msg) (dialog, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		return nil, nil
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	switch d.form.State {
	case huh.StateAborted:
		return nil, nil
	case huh.StateCompleted:
		next := newSetDeadlineDialog(d.store, 0, strings.TrimSpace(d.title), time.Now())
		next.setSize(d.width, d.height)
		return next, nil
	}
	return d, cmd
}

func (d *createTaskDialog) view() string {
	return renderDialogPanel(d.width, "", d.form.View())
}

// --- Edit task ---

type editTaskDialog struct {
	store       *store.Store
	form        *huh.Form
	taskID      int64
	title       string
	description string
	width       int
	height      int
}

func newEditTaskDialog(s *store.Store, task store.Task) *editTaskDialog {
	d := &editTaskDialog{
		store:       s,
		taskID:      task.ID,
		title:       task.Title,
		description: task.Description,
	}
	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Validate(requireText("title")).
				Value(&d.title),
			huh.NewInput().
				Title("Description").
				Value(&d.description),
		),
	).WithShowHelp(true).WithShowErrors(true)
	return d
}

func (d *editTaskDialog) init() tea.Cmd { return d.form.Init() }

func (d *editTaskDialog) setSize(w, h int) { d.width, d.height = w, h }

func (d *editTaskDialog) update(msg tea.Msg) (dialog, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		return nil, nil
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	switch d.form.State {
	case huh.StateAborted:
		return nil, nil
	case huh.StateCompleted:
		title := strings.TrimSpace(d.title)
		if err := d.store.UpdateTask(d.taskID, title, strings.TrimSpace(d.description)); err != nil {
			return nil, errorCmd(err)
		}
		return nil, tea.Batch(loadTasksCmd(d.store), statusCmd("Updated: "+title))
	}
	return d, cmd
}

func (d *editTaskDialog) view() string {
	return renderDialogPanel(d.width, "Edit Task", d.form.View())
}

// --- Create note ---

// createNoteDialog is a two-step form: the first Enter accepts the title
// and moves on to content, the second persists the note.
type createNoteDialog struct {
	store   *store.Store
	form    *huh.Form
	title   string
	content string
	width   int
	height  int
}

func newCreateNoteDialog(s *store.Store) *createNoteDialog {
	d := &createNoteDialog{store: s}
	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Note Title").
				Validate(requireText("title")).
				Value(&d.title),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Content").
				Placeholder("Markdown is rendered in the note view").
				Value(&d.content),
		),
	).WithShowHelp(true).WithShowErrors(true)
	return d
}

func (d *createNoteDialog) init() tea.Cmd { return d.form.Init() }

func (d *createNoteDialog) setSize(w, h int) { d.width, d.height = w, h }

func (d *createNoteDialog) update(msg tea.Msg) (dialog, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		return nil, nil
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	switch d.form.State {
	case huh.StateAborted:
		return nil, nil
	case huh.StateCompleted:
		title := strings.TrimSpace(d.title)
		if _, err := d.store.CreateNote(title, d.content, nil); err != nil {
			return nil, errorCmd(err)
		}
		return nil, tea.Batch(loadNotesCmd(d.store), statusCmd("Note created: "+title))
	}
	return d, cmd
}

func (d *createNoteDialog) view() string {
	return renderDialogPanel(d.width, "New Note", d.form.View())
}

// --- Edit note ---

// editNoteDialog edits one field at a time: pick title or content with
// j/k, press i to edit it. Committing the content field saves the whole
// note; committing the title just returns to the picker.
type editNoteDialog struct {
	store   *store.Store
	noteID  int64
	title   string
	content string

	cursor  int
	editing bool
	input   textinput.Model

	width  int
	height int
}

func newEditNoteDialog(s *store.Store, note store.Note) *editNoteDialog {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 0
	return &editNoteDialog{
		store:   s,
		noteID:  note.ID,
		title:   note.Title,
		content: note.Content,
		input:   ti,
	}
}

func (d *editNoteDialog) init() tea.Cmd { return nil }

func (d *editNoteDialog) setSize(w, h int) {
	d.width, d.height = w, h
	d.input.Width = w - 12
}

func (d *editNoteDialog) update(msg tea.Msg) (dialog, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	if d.editing {
		switch keyMsg.String() {
		case "esc":
			d.editing = false
			d.input.Blur()
			return d, nil
		case "enter":
			return d.commitField()
		}
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return d, cmd
	}

	switch {
	case key.Matches(keyMsg, keys.Back):
		return nil, nil
	case key.Matches(keyMsg, keys.Up):
		d.cursor = 0
	case key.Matches(keyMsg, keys.Down):
		d.cursor = 1
	}
	if keyMsg.String() == "i" {
		if d.cursor == 0 {
			d.input.SetValue(d.title)
		} else {
			d.input.SetValue(d.content)
		}
		d.input.CursorEnd()
		d.editing = true
		return d, d.input.Focus()
	}
	return d, nil
}

func (d *editNoteDialog) commitField() (dialog, tea.Cmd) {
	if d.cursor == 0 {
		title := strings.TrimSpace(d.input.Value())
		if title == "" {
			return d, errorCmd(fmt.Errorf("title cannot be empty"))
		}
		d.title = title
		d.editing = false
		d.input.Blur()
		return d, nil
	}

	d.content = d.input.Value()
	if err := d.store.UpdateNote(d.noteID, d.title, d.content); err != nil {
		return nil, errorCmd(err)
	}
	return nil, tea.Batch(loadNotesCmd(d.store), statusCmd("Note updated: "+d.title))
}

func (d *editNoteDialog) view() string {
	rows := []string{}

	fields := []struct {
		name, value string
	}{
		{"Title", d.title},
		{"Content", d.content},
	}
	for i, f := range fields {
		cursor := "  "
		style := normalItemStyle
		if i == d.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		value := truncate(f.value, d.width-20)
		rows = append(rows, style.Render(fmt.Sprintf("%s%-8s", cursor, f.name))+mutedStyle.Render(value))
	}

	rows = append(rows, "")
	if d.editing {
		rows = append(rows, d.input.View())
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render("  enter: save field  esc: back"))
	} else {
		rows = append(rows, mutedStyle.Render("  j/k: pick field  i: edit  esc: close"))
	}

	return renderDialogPanel(d.width, "Edit Note", strings.Join(rows, "\n"))
}

// --- Delete confirmation ---

type deleteConfirmDialog struct {
	store  *store.Store
	onTab  tab
	id     int64
	label  string
	width  int
	height int
}

func newDeleteConfirmDialog(s *store.Store, onTab tab, id int64, label string) *deleteConfirmDialog {
	return &deleteConfirmDialog{store: s, onTab: onTab, id: id, label: label}
}

func (d *deleteConfirmDialog) init() tea.Cmd { return nil }

func (d *deleteConfirmDialog) setSize(w, h int) { d.width, d.height = w, h }

func (d *deleteConfirmDialog) update(msg tea.Msg) (dialog, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		if d.onTab == tabNotes {
			if err := d.store.DeleteNote(d.id); err != nil {
				return nil, errorCmd(err)
			}
			return nil, tea.Batch(loadNotesCmd(d.store), statusCmd("Note deleted: "+d.label))
		}
		if err := d.store.DeleteTask(d.id); err != nil {
			return nil, errorCmd(err)
		}
		return nil, tea.Batch(loadTasksCmd(d.store), statusCmd("Deleted: "+d.label))
	case "n", "N", "esc":
		return nil, nil
	}
	return d, nil
}

func (d *deleteConfirmDialog) view() string {
	kind := "task"
	if d.onTab == tabNotes {
		kind = "note"
	}
	rows := []string{
		fmt.Sprintf("Delete %s %q?", kind, truncate(d.label, d.width-24)),
		"",
		mutedStyle.Render("  y: delete  n: keep"),
	}
	return renderDialogPanel(d.width, warningStyle.Bold(true).Render("Confirm Delete"), strings.Join(rows, "\n"))
}

// --- Deadline picker ---

// setDeadlineDialog picks a date and time for a task. With taskID set it
// re-dates the existing task; with pendingTitle set it creates the task on
// apply, so escaping here abandons the new task entirely.
type setDeadlineDialog struct {
	store        *store.Store
	taskID       int64
	pendingTitle string
	fields       dateTimeFields
	width        int
	height       int
}

func newSetDeadlineDialog(s *store.Store, taskID int64, pendingTitle string, seed time.Time) *setDeadlineDialog {
	return &setDeadlineDialog{
		store:        s,
		taskID:       taskID,
		pendingTitle: pendingTitle,
		fields:       newDateTimeFields(seed.Local()),
	}
}

func (d *setDeadlineDialog) init() tea.Cmd { return nil }

func (d *setDeadlineDialog) setSize(w, h int) { d.width, d.height = w, h }

func (d *setDeadlineDialog) update(msg tea.Msg) (dialog, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	s := keyMsg.String()
	switch {
	case s == "esc":
		return nil, nil
	case s == "enter":
		return d.apply()
	case s == "left" || s == "h" || s == "shift+tab":
		d.fields.focusPrev()
	case s == "right" || s == "l" || s == "tab":
		d.fields.focusNext()
	case s == "up" || s == "k":
		d.fields.bump(1)
	case s == "down" || s == "j":
		d.fields.bump(-1)
	case len(s) == 1 && s[0] >= '0' && s[0] <= '9':
		d.fields.typeDigit(s[0])
	}
	return d, nil
}

func (d *setDeadlineDialog) apply() (dialog, tea.Cmd) {
	due, err := d.fields.compose(time.Local)
	if err != nil {
		// The picker stays open so the date can be corrected.
		return d, errorCmd(err)
	}
	utc := due.UTC()

	if d.pendingTitle != "" {
		if _, err := d.store.CreateTask(d.pendingTitle, "", store.PriorityMedium, &utc, nil); err != nil {
			return nil, errorCmd(err)
		}
		return nil, tea.Batch(loadTasksCmd(d.store), statusCmd("Task created: "+d.pendingTitle))
	}

	if err := d.store.SetTaskDueDate(d.taskID, &utc); err != nil {
		return nil, errorCmd(err)
	}
	return nil, tea.Batch(loadTasksCmd(d.store), statusCmd("Deadline set: "+formatStamp(due)))
}

func (d *setDeadlineDialog) view() string {
	f := d.fields
	parts := []string{
		d.renderField(fieldYear, fmtYear(f.year)),
		"-",
		d.renderField(fieldMonth, fmt2(f.month)),
		"-",
		d.renderField(fieldDay, fmt2(f.day)),
		" ",
		d.renderField(fieldHour, fmt2(f.hour)),
		":",
		d.renderField(fieldMinute, fmt2(f.minute)),
	}

	title := "Set Deadline"
	if d.pendingTitle != "" {
		title = "Deadline for: " + truncate(d.pendingTitle, d.width-24)
	}

	rows := []string{
		strings.Join(parts, ""),
		"",
		mutedStyle.Render("  h/l: field  j/k: adjust  digits: type  enter: apply  esc: cancel"),
	}
	return renderDialogPanel(d.width, title, strings.Join(rows, "\n"))
}

func (d *setDeadlineDialog) renderField(field dateField, s string) string {
	if d.fields.focus == field {
		return selectedItemStyle.Underline(true).Render(s)
	}
	return normalItemStyle.Render(s)
}

// --- View note ---

type viewNoteDialog struct {
	store    *store.Store
	note     store.Note
	viewport viewport.Model
	width    int
	height   int
}

func newViewNoteDialog(s *store.Store, note store.Note) *viewNoteDialog {
	return &viewNoteDialog{store: s, note: note, viewport: viewport.New(0, 0)}
}

func (d *viewNoteDialog) init() tea.Cmd { return nil }

func (d *viewNoteDialog) setSize(w, h int) {
	d.width, d.height = w, h
	d.viewport.Width = w - 8
	d.viewport.Height = max(h-8, 3)
	d.viewport.SetContent(renderMarkdown(d.note.Content, d.viewport.Width))
}

func (d *viewNoteDialog) update(msg tea.Msg) (dialog, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	switch keyMsg.String() {
	case "esc", "q":
		return nil, nil
	case "e":
		next := newEditNoteDialog(d.store, d.note)
		next.setSize(d.width, d.height)
		return next, nil
	case "home", "g":
		d.viewport.GotoTop()
		return d, nil
	case "end", "G":
		d.viewport.GotoBottom()
		return d, nil
	}

	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

func (d *viewNoteDialog) view() string {
	meta := mutedStyle.Render("updated " + formatStamp(d.note.UpdatedAt))
	body := lipgloss.JoinVertical(lipgloss.Left,
		meta,
		"",
		d.viewport.View(),
		"",
		mutedStyle.Render("  j/k: scroll  e: edit  esc: close"),
	)
	return renderDialogPanel(d.width, d.note.Title, body)
}

// --- Help ---

type helpDialog struct {
	viewport viewport.Model
	onTab    tab
	width    int
	height   int
}

func newHelpDialog(onTab tab) *helpDialog {
	return &helpDialog{onTab: onTab, viewport: viewport.New(0, 0)}
}

func (d *helpDialog) init() tea.Cmd { return nil }

func (d *helpDialog) setSize(w, h int) {
	d.width, d.height = w, h
	d.viewport.Width = w - 8
	d.viewport.Height = max(h-7, 3)
	d.viewport.SetContent(helpText(d.onTab))
}

func (d *helpDialog) update(msg tea.Msg) (dialog, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	switch keyMsg.String() {
	case "esc", "q", "?":
		return nil, nil
	case "home", "g":
		d.viewport.GotoTop()
		return d, nil
	case "end", "G":
		d.viewport.GotoBottom()
		return d, nil
	}

	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

func (d *helpDialog) view() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		d.viewport.View(),
		"",
		mutedStyle.Render("  j/k: scroll  esc: close"),
	)
	return renderDialogPanel(d.width, "Help", body)
}

func helpText(onTab tab) string {
	var b strings.Builder

	section := func(name string, lines ...string) {
		b.WriteString(titleStyle.Render(name))
		b.WriteString("\n")
		for _, l := range lines {
			b.WriteString("  " + l + "\n")
		}
		b.WriteString("\n")
	}

	section("Navigation",
		"j/k or arrows   move selection (accepts a count, e.g. 5j)",
		"gg / G          first / last item",
		"1 / 2 / 3       switch to Tasks / Notes / Pomodoro",
		"tab, shift+tab  cycle tabs",
	)

	switch onTab {
	case tabTasks:
		section("Tasks",
			"n or a          new task (title, then deadline)",
			"e               edit title and description",
			"space or x      toggle done",
			"p               cycle priority",
			"t               set deadline",
			"dd              delete (asks first)",
			"s               start a pomodoro on the selected task",
		)
	case tabNotes:
		section("Notes",
			"n or a          new note (title, then content)",
			"enter           view rendered markdown",
			"e               edit fields",
			"dd              delete (asks first)",
		)
	case tabPomodoro:
		section("Pomodoro",
			"s               start work / pause / resume",
			"S               stop and discard the interval",
		)
	}

	section("Command line",
		":q              quit        :N       jump to task N",
		":new <title>    create      :p high  set priority",
		":t              deadline    :sort    re-sort now",
		":work+ :break-  adjust durations by a minute",
		":pomo work=25 break=5",
	)

	return b.String()
}

// --- Shared ---

func requireText(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", what)
		}
		return nil
	}
}

func renderDialogPanel(width int, title, body string) string {
	w := width - 4
	if w < 20 {
		w = 20
	}
	if title == "" {
		return activePanelStyle.Width(w).Render(body)
	}
	content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", body)
	return activePanelStyle.Width(w).Render(content)
}
