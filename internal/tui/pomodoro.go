package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/focal/internal/store"
)

type pomodoroModel struct {
	store  *store.Store
	width  int
	height int

	today store.TodayStats
	daily []store.DailySessionStat

	chart barchart.Model
}

func newPomodoroModel(s *store.Store) pomodoroModel {
	return pomodoroModel{
		store: s,
		chart: barchart.New(40, 8),
	}
}

func (m *pomodoroModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.buildChart()
}

func loadStatsCmd(s *store.Store) tea.Cmd {
	return func() tea.Msg {
		today, err := s.GetTodayStats()
		if err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}
		from, to := statsRange()
		daily, err := s.GetDailySessionStats(from, to)
		if err != nil {
			return statusMsg{text: err.Error(), isError: true}
		}
		return statsLoadedMsg{today: today, daily: daily}
	}
}

// statsRange covers the last seven days including today, on UTC day
// boundaries to match how session dates are grouped.
func statsRange() (time.Time, time.Time) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, -6), today.AddDate(0, 0, 1)
}

func (m pomodoroModel) update(msg tea.Msg) (pomodoroModel, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		m.today = msg.today
		m.daily = msg.daily
		m.buildChart()
	}
	return m, nil
}

func (m *pomodoroModel) buildChart() {
	chartWidth := m.width - 10
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 8
	if m.height > 28 {
		chartHeight = 10
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	from, to := statsRange()
	todayStr := time.Now().UTC().Format("2006-01-02")

	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")
		label := d.Format("Mon")

		var values []barchart.BarValue
		for _, s := range m.daily {
			if s.Date == dateStr {
				style := lipgloss.NewStyle().Foreground(colorPrimary)
				if dateStr == todayStr {
					style = lipgloss.NewStyle().Foreground(colorAccent)
				}
				values = append(values, barchart.BarValue{
					Name:  "minutes",
					Value: float64(s.Minutes),
					Style: style,
				})
			}
		}
		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: values,
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m pomodoroModel) view(t pomodoroTimer, boundTask string) string {
	w := m.width - 4

	timerPanel := m.renderTimerPanel(w, t, boundTask)
	statsPanel := m.renderStatsPanel(w)

	return lipgloss.JoinVertical(lipgloss.Left, timerPanel, statsPanel)
}

func (m pomodoroModel) renderTimerPanel(w int, t pomodoroTimer, boundTask string) string {
	var timeDisplay, indicator string

	switch t.phase {
	case phaseWorking:
		timeDisplay = timerWorkStyle.Width(w - 6).Render(t.formatRemaining())
		indicator = accentStyle.Bold(true).Render("●  " + t.phaseName())
	case phaseBreak:
		timeDisplay = timerBreakStyle.Width(w - 6).Render(t.formatRemaining())
		indicator = successStyle.Bold(true).Render("●  " + t.phaseName())
	case phasePaused:
		timeDisplay = timerPausedStyle.Width(w - 6).Render(t.formatRemaining())
		indicator = warningStyle.Bold(true).Render("⏸  " + t.phaseName())
	default:
		timeDisplay = timerStyle.Width(w - 6).Render(fmt.Sprintf("%02d:00", t.workMinutes))
		indicator = mutedStyle.Render("■  " + t.phaseName())
	}

	lines := []string{timeDisplay, indicator}

	if t.active() {
		lines = append(lines, m.renderProgressBar(w-10, t))
	}
	if boundTask != "" {
		lines = append(lines, highlightStyle.Render(boundTask))
	}

	lines = append(lines, "")
	lines = append(lines, mutedStyle.Render(fmt.Sprintf("work %dm · break %dm", t.workMinutes, t.breakMinutes)))

	var controls string
	switch t.phase {
	case phaseIdle:
		controls = mutedStyle.Render("s: start  :pomo work=N break=M")
	case phasePaused:
		controls = mutedStyle.Render("s: resume  S: stop")
	default:
		controls = mutedStyle.Render("s: pause  S: stop")
	}
	lines = append(lines, controls)

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	if t.active() {
		return activePanelStyle.Width(w).Render(content)
	}
	return panelStyle.Width(w).Render(content)
}

func (m pomodoroModel) renderProgressBar(width int, t pomodoroTimer) string {
	if width < 10 {
		width = 10
	}
	filled := int(t.progress() / 100 * float64(width))
	if filled > width {
		filled = width
	}

	style := accentStyle
	if t.phase == phaseBreak {
		style = successStyle
	} else if t.phase == phasePaused {
		style = warningStyle
	}

	bar := style.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %3.0f%%", bar, t.progress())
}

func (m pomodoroModel) renderStatsPanel(w int) string {
	title := titleStyle.Render("Last 7 Days")

	summary := fmt.Sprintf("Today: %s pomodoros · %s focused",
		highlightStyle.Render(fmt.Sprintf("%d", m.today.CompletedSessions)),
		highlightStyle.Render(formatMinutes(m.today.TotalMinutes)),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		summary,
		"",
		m.chart.View(),
	)
	return panelStyle.Width(w).Render(content)
}
