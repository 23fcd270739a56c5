package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/focal/internal/store"
)

// tab is the currently active top-level view.
type tab int

const (
	tabTasks tab = iota
	tabNotes
	tabPomodoro
)

var tabNames = []string{"Tasks", "Notes", "Pomodoro"}

// mode tells the root model who owns the next keystroke.
type mode int

const (
	modeNormal mode = iota
	modeInsert
	modeCommand
)

var modeNames = map[mode]string{
	modeNormal:  "NORMAL",
	modeInsert:  "INSERT",
	modeCommand: "COMMAND",
}

// --- Messages ---

type tasksLoadedMsg struct {
	tasks []store.Task
}

type notesLoadedMsg struct {
	notes []store.Note
}

type statsLoadedMsg struct {
	today store.TodayStats
	daily []store.DailySessionStat
}

type statusMsg struct {
	text    string
	isError bool
}

// statusExpireMsg clears the status line, unless a newer status has
// replaced it in the meantime.
type statusExpireMsg struct {
	gen int
}

type tickMsg time.Time

// --- Helpers ---

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: err.Error(), isError: true} }
}

func formatDue(t *time.Time) string {
	if t == nil {
		return ""
	}
	local := t.Local()
	if local.Year() == time.Now().Year() {
		return local.Format("Jan 02 15:04")
	}
	return local.Format("2006-01-02 15:04")
}

func formatStamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

func formatMinutes(total int) string {
	if total >= 60 {
		return fmt.Sprintf("%dh %02dm", total/60, total%60)
	}
	return fmt.Sprintf("%dm", total)
}

func truncate(s string, width int) string {
	if width < 1 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
