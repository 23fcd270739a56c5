package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/focal/internal/store"
)

type tasksModel struct {
	store  *store.Store
	width  int
	height int

	tasks  []store.Task
	cursor int
}

func newTasksModel(s *store.Store) tasksModel {
	return tasksModel{store: s, cursor: -1}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func loadTasksCmd(s *store.Store) tea.Cmd {
	return func() tea.Msg {
		tasks, err := s.GetAllTasks()
		if err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}
		return tasksLoadedMsg{tasks: tasks}
	}
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if msg, ok := msg.(tasksLoadedMsg); ok {
		m.tasks, m.cursor = sortTasks(msg.tasks, m.selectedID())
	}
	return m, nil
}

func (m tasksModel) selectedID() int64 {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return 0
	}
	return m.tasks[m.cursor].ID
}

func (m tasksModel) selected() *store.Task {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return nil
	}
	return &m.tasks[m.cursor]
}

func (m tasksModel) moveDown(n int) tasksModel {
	if len(m.tasks) == 0 {
		return m
	}
	m.cursor = min(m.cursor+n, len(m.tasks)-1)
	return m
}

func (m tasksModel) moveUp(n int) tasksModel {
	if len(m.tasks) == 0 {
		return m
	}
	m.cursor = max(m.cursor-n, 0)
	return m
}

func (m tasksModel) jumpFirst() tasksModel {
	if len(m.tasks) > 0 {
		m.cursor = 0
	}
	return m
}

func (m tasksModel) jumpLast() tasksModel {
	if len(m.tasks) > 0 {
		m.cursor = len(m.tasks) - 1
	}
	return m
}

// jumpTo moves to a 1-based position, clamped into the list.
func (m tasksModel) jumpTo(pos int) tasksModel {
	if len(m.tasks) == 0 {
		return m
	}
	m.cursor = min(max(pos-1, 0), len(m.tasks)-1)
	return m
}

// toggleStatus flips the selected task between done and not done. A task
// already in progress counts as not done, so toggling completes it.
func (m tasksModel) toggleStatus() (tasksModel, tea.Cmd) {
	task := m.selected()
	if task == nil {
		return m, statusCmd("No task selected")
	}

	next := store.StatusCompleted
	if task.Status == store.StatusCompleted {
		next = store.StatusTodo
	}
	if err := m.store.UpdateTaskStatus(task.ID, next); err != nil {
		return m, errorCmd(err)
	}
	return m, tea.Batch(loadTasksCmd(m.store), statusCmd(fmt.Sprintf("%s: %s", next, task.Title)))
}

func (m tasksModel) cyclePriority() (tasksModel, tea.Cmd) {
	task := m.selected()
	if task == nil {
		return m, statusCmd("No task selected")
	}

	next := task.Priority + 1
	if next > store.PriorityHigh {
		next = store.PriorityLow
	}
	return m.setPriority(next)
}

func (m tasksModel) setPriority(p store.Priority) (tasksModel, tea.Cmd) {
	task := m.selected()
	if task == nil {
		return m, statusCmd("No task selected")
	}
	if err := m.store.UpdateTaskPriority(task.ID, p); err != nil {
		return m, errorCmd(err)
	}
	return m, tea.Batch(loadTasksCmd(m.store), statusCmd(fmt.Sprintf("Priority %s: %s", p, task.Title)))
}

// markInProgress promotes a task when a pomodoro starts on it. Completed
// tasks are left alone.
func (m tasksModel) markInProgress(id int64) tea.Cmd {
	for _, t := range m.tasks {
		if t.ID == id && t.Status == store.StatusTodo {
			if err := m.store.UpdateTaskStatus(id, store.StatusInProgress); err != nil {
				return errorCmd(err)
			}
			return loadTasksCmd(m.store)
		}
	}
	return nil
}

func (m tasksModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("Tasks")

	if len(m.tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-4s %-3s %-*s %-18s %s", "", "Pri", m.titleWidth(), "Title", "Due", "Pomos"))
	rows = append(rows, header)

	start, end := m.visibleRange()
	if start > 0 {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  ↑ %d more", start)))
	}
	for i := start; i < end; i++ {
		rows = append(rows, m.renderRow(i))
	}
	if end < len(m.tasks) {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  ↓ %d more", len(m.tasks)-end)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  space: toggle  p: priority  t: deadline  dd: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m tasksModel) titleWidth() int {
	return max(m.width-42, 12)
}

// visibleRange windows the list so the cursor stays on screen.
func (m tasksModel) visibleRange() (int, int) {
	visible := m.height - 10
	if visible < 3 {
		visible = 3
	}
	if len(m.tasks) <= visible {
		return 0, len(m.tasks)
	}

	start := m.cursor - visible/2
	if start < 0 {
		start = 0
	}
	if start+visible > len(m.tasks) {
		start = len(m.tasks) - visible
	}
	return start, start + visible
}

func (m tasksModel) renderRow(i int) string {
	task := m.tasks[i]

	cursor := "  "
	rowStyle := normalItemStyle
	if i == m.cursor {
		cursor = "> "
		rowStyle = selectedItemStyle
	}

	box := "[ ]"
	switch task.Status {
	case store.StatusInProgress:
		box = "[~]"
	case store.StatusCompleted:
		box = "[x]"
	}

	pri := priorityStyle(task.Priority).Render("●")

	name := truncate(task.Title, m.titleWidth())
	titleCell := fmt.Sprintf("%-*s", m.titleWidth(), name)
	if task.Status == store.StatusCompleted {
		titleCell = completedStyle.Render(titleCell)
	} else {
		titleCell = rowStyle.Render(titleCell)
	}

	due := formatDue(task.DueDate)
	dueCell := fmt.Sprintf("%-18s", due)
	if task.DueDate != nil && task.DueDate.Before(time.Now()) && task.Status != store.StatusCompleted {
		dueCell = overdueStyle.Render(dueCell)
	} else {
		dueCell = mutedStyle.Render(dueCell)
	}

	count := ""
	if task.PomodoroCount > 0 {
		count = mutedStyle.Render(fmt.Sprintf("%d", task.PomodoroCount))
	}

	return fmt.Sprintf("%s%s %s %s %s", rowStyle.Render(cursor+box), pri, titleCell, dueCell, count)
}
