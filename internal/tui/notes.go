package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/focal/internal/store"
)

type notesModel struct {
	store  *store.Store
	width  int
	height int

	notes  []store.Note
	cursor int
}

func newNotesModel(s *store.Store) notesModel {
	return notesModel{store: s, cursor: -1}
}

func (m *notesModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func loadNotesCmd(s *store.Store) tea.Cmd {
	return func() tea.Msg {
		notes, err := s.GetAllNotes()
		if err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}
		return notesLoadedMsg{notes: notes}
	}
}

func (m notesModel) update(msg tea.Msg) (notesModel, tea.Cmd) {
	if msg, ok := msg.(notesLoadedMsg); ok {
		selected := m.selectedID()
		m.notes = msg.notes
		m.cursor = -1
		for i, n := range m.notes {
			if n.ID == selected {
				m.cursor = i
				break
			}
		}
		if m.cursor == -1 && len(m.notes) > 0 {
			m.cursor = 0
		}
	}
	return m, nil
}

func (m notesModel) selectedID() int64 {
	if m.cursor < 0 || m.cursor >= len(m.notes) {
		return 0
	}
	return m.notes[m.cursor].ID
}

func (m notesModel) selected() *store.Note {
	if m.cursor < 0 || m.cursor >= len(m.notes) {
		return nil
	}
	return &m.notes[m.cursor]
}

func (m notesModel) moveDown(n int) notesModel {
	if len(m.notes) == 0 {
		return m
	}
	m.cursor = min(m.cursor+n, len(m.notes)-1)
	return m
}

func (m notesModel) moveUp(n int) notesModel {
	if len(m.notes) == 0 {
		return m
	}
	m.cursor = max(m.cursor-n, 0)
	return m
}

func (m notesModel) jumpFirst() notesModel {
	if len(m.notes) > 0 {
		m.cursor = 0
	}
	return m
}

func (m notesModel) jumpLast() notesModel {
	if len(m.notes) > 0 {
		m.cursor = len(m.notes) - 1
	}
	return m
}

// jumpTo moves the cursor to a 1-based position, clamped to the list.
func (m notesModel) jumpTo(pos int) notesModel {
	if len(m.notes) == 0 {
		return m
	}
	m.cursor = min(max(pos-1, 0), len(m.notes)-1)
	return m
}

func (m notesModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("Notes")

	if len(m.notes) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No notes yet. Press n to write one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	start, end := m.visibleRange()
	if start > 0 {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  ↑ %d more", start)))
	}
	for i := start; i < end; i++ {
		rows = append(rows, m.renderRow(i))
	}
	if end < len(m.notes) {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  ↓ %d more", len(m.notes)-end)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  enter: view  e: edit  dd: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m notesModel) visibleRange() (int, int) {
	visible := m.height - 9
	if visible < 3 {
		visible = 3
	}
	if len(m.notes) <= visible {
		return 0, len(m.notes)
	}

	start := m.cursor - visible/2
	if start < 0 {
		start = 0
	}
	if start+visible > len(m.notes) {
		start = len(m.notes) - visible
	}
	return start, start + visible
}

func (m notesModel) renderRow(i int) string {
	note := m.notes[i]

	cursor := "  "
	style := normalItemStyle
	if i == m.cursor {
		cursor = "> "
		style = selectedItemStyle
	}

	nameWidth := max(m.width/3, 16)
	name := fmt.Sprintf("%-*s", nameWidth, truncate(note.Title, nameWidth))

	preview := strings.ReplaceAll(note.Content, "\n", " ")
	preview = truncate(preview, max(m.width-nameWidth-28, 8))

	stamp := formatStamp(note.UpdatedAt)

	return style.Render(cursor+name) + " " + mutedStyle.Render(stamp) + "  " + mutedStyle.Render(preview)
}
