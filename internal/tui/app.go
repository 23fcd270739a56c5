package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/focal/internal/notify"
	"github.com/sadopc/focal/internal/store"
)

const statusTTL = 3 * time.Second

// App is the root model. It owns the pomodoro timer, the modal input
// state and the active dialog; the tab models only render lists and run
// their own persistence commands.
type App struct {
	store    *store.Store
	notifier notify.Notifier

	width  int
	height int

	activeTab tab
	input     inputState
	dialog    dialog

	commandActive bool
	commandInput  textinput.Model

	timer    pomodoroTimer
	lastTick time.Time

	tasks    tasksModel
	notes    notesModel
	pomodoro pomodoroModel

	help      help.Model
	status    string
	statusErr bool
	statusGen int
}

func NewApp(s *store.Store, notifier notify.Notifier) App {
	h := help.New()
	h.ShowAll = false

	work, err := s.WorkMinutes()
	if err != nil {
		work = 25
	}
	brk, err := s.BreakMinutes()
	if err != nil {
		brk = 5
	}

	ci := textinput.New()
	ci.Prompt = ":"

	return App{
		store:        s,
		notifier:     notifier,
		activeTab:    tabTasks,
		commandInput: ci,
		timer:        newPomodoroTimer(work, brk),
		tasks:        newTasksModel(s),
		notes:        newNotesModel(s),
		pomodoro:     newPomodoroModel(s),
		help:         h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		loadTasksCmd(a.store),
		loadNotesCmd(a.store),
		loadStatsCmd(a.store),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.commandInput.Width = msg.Width - 4
		contentHeight := a.height - 4 // header + footer
		a.tasks.setSize(a.width, contentHeight)
		a.notes.setSize(a.width, contentHeight)
		a.pomodoro.setSize(a.width, contentHeight)
		if a.dialog != nil {
			a.dialog.setSize(a.width, contentHeight)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tickMsg:
		return a.handleTick(time.Time(msg))

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		a.statusGen++
		gen := a.statusGen
		return a, tea.Tick(statusTTL, func(time.Time) tea.Msg {
			return statusExpireMsg{gen: gen}
		})

	case statusExpireMsg:
		// A newer status restarts the clock, so only the matching
		// generation clears.
		if msg.gen == a.statusGen {
			a.status = ""
			a.statusErr = false
		}
		return a, nil

	case tasksLoadedMsg:
		var cmd tea.Cmd
		a.tasks, cmd = a.tasks.update(msg)
		return a, cmd

	case notesLoadedMsg:
		var cmd tea.Cmd
		a.notes, cmd = a.notes.update(msg)
		return a, cmd

	case statsLoadedMsg:
		var cmd tea.Cmd
		a.pomodoro, cmd = a.pomodoro.update(msg)
		return a, cmd
	}

	// Anything else (cursor blinks, form internals) belongs to whichever
	// input surface is active.
	if a.commandActive {
		var cmd tea.Cmd
		a.commandInput, cmd = a.commandInput.Update(msg)
		return a, cmd
	}
	if a.dialog != nil {
		d, cmd := a.dialog.update(msg)
		a.dialog = d
		return a, cmd
	}
	return a, nil
}

// handleKey routes keys by surface: an open dialog sees every key, then
// the command line, and only then the normal-mode interpreter.
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.dialog != nil {
		d, cmd := a.dialog.update(msg)
		a.dialog = d
		return a, cmd
	}

	if a.commandActive {
		return a.handleCommandKey(msg)
	}

	action, next := interpretKey(a.input, msg.String())
	a.input = next
	return a.dispatch(action)
}

func (a App) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.commandActive = false
		a.commandInput.Reset()
		return a, nil
	case "enter":
		line := a.commandInput.Value()
		a.commandActive = false
		a.commandInput.Reset()
		cmd, err := parseCommand(line)
		if err != nil {
			return a, errorCmd(err)
		}
		return a.dispatchCommand(cmd)
	}

	var cmd tea.Cmd
	a.commandInput, cmd = a.commandInput.Update(msg)
	return a, cmd
}

// handleTick advances the countdown by whole wall-clock seconds so a
// stalled event loop cannot stretch a pomodoro.
func (a App) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd()}

	if a.lastTick.IsZero() {
		a.lastTick = now
		return a, tea.Batch(cmds...)
	}

	elapsed := int(now.Sub(a.lastTick) / time.Second)
	if elapsed <= 0 {
		return a, tea.Batch(cmds...)
	}
	a.lastTick = a.lastTick.Add(time.Duration(elapsed) * time.Second)

	for i := 0; i < elapsed && a.timer.active(); i++ {
		if a.timer.tick() {
			continue
		}
		switch a.timer.phase {
		case phaseWorking:
			cmds = append(cmds, a.completeWork(now)...)
		case phaseBreak:
			a.timer.stop()
			a.notifier.BreakOver()
			cmds = append(cmds, statusCmd("Break over. Back to work?"))
		}
	}

	return a, tea.Batch(cmds...)
}

// completeWork runs the side effects of a pomodoro finishing naturally:
// the open session row is finalized, the bound task's counter bumps and
// the break starts.
func (a *App) completeWork(now time.Time) []tea.Cmd {
	var cmds []tea.Cmd

	if a.timer.sessionID != nil {
		if err := a.store.CompleteSession(*a.timer.sessionID, now); err != nil {
			cmds = append(cmds, errorCmd(err))
		}
		a.timer.sessionID = nil
	}
	if a.timer.taskID != nil {
		if err := a.store.IncrementTaskPomodoros(*a.timer.taskID); err != nil {
			cmds = append(cmds, errorCmd(err))
		}
	}

	a.notifier.PomodoroComplete(a.timer.breakMinutes)
	a.timer.startBreak(now)

	cmds = append(cmds,
		loadTasksCmd(a.store),
		loadStatsCmd(a.store),
		statusCmd(fmt.Sprintf("Pomodoro complete! %d minute break", a.timer.breakMinutes)),
	)
	return cmds
}

func (a App) dispatch(action inputAction) (tea.Model, tea.Cmd) {
	switch action.kind {
	case actMoveDown:
		switch a.activeTab {
		case tabTasks:
			a.tasks = a.tasks.moveDown(action.count)
		case tabNotes:
			a.notes = a.notes.moveDown(action.count)
		}
		return a, nil

	case actMoveUp:
		switch a.activeTab {
		case tabTasks:
			a.tasks = a.tasks.moveUp(action.count)
		case tabNotes:
			a.notes = a.notes.moveUp(action.count)
		}
		return a, nil

	case actJumpFirst:
		switch a.activeTab {
		case tabTasks:
			a.tasks = a.tasks.jumpFirst()
		case tabNotes:
			a.notes = a.notes.jumpFirst()
		}
		return a, nil

	case actJumpLast:
		switch a.activeTab {
		case tabTasks:
			a.tasks = a.tasks.jumpLast()
		case tabNotes:
			a.notes = a.notes.jumpLast()
		}
		return a, nil

	case actSwitchTab:
		return a.switchTab(tab(action.count))

	case actNextTab:
		return a.switchTab((a.activeTab + 1) % 3)

	case actPrevTab:
		return a.switchTab((a.activeTab + 2) % 3)

	case actToggleStatus:
		if a.activeTab == tabTasks {
			var cmd tea.Cmd
			a.tasks, cmd = a.tasks.toggleStatus()
			return a, cmd
		}
		return a, nil

	case actCyclePriority:
		if a.activeTab == tabTasks {
			var cmd tea.Cmd
			a.tasks, cmd = a.tasks.cyclePriority()
			return a, cmd
		}
		return a, nil

	case actOpenCreate:
		switch a.activeTab {
		case tabTasks:
			return a.openDialog(newCreateTaskDialog(a.store))
		case tabNotes:
			return a.openDialog(newCreateNoteDialog(a.store))
		}
		return a, nil

	case actOpenEdit:
		switch a.activeTab {
		case tabTasks:
			task := a.tasks.selected()
			if task == nil {
				return a, statusCmd("No task selected")
			}
			return a.openDialog(newEditTaskDialog(a.store, *task))
		case tabNotes:
			note := a.notes.selected()
			if note == nil {
				return a, statusCmd("No note selected")
			}
			return a.openDialog(newEditNoteDialog(a.store, *note))
		}
		return a, nil

	case actOpenDeleteConfirm:
		switch a.activeTab {
		case tabTasks:
			task := a.tasks.selected()
			if task == nil {
				return a, statusCmd("No task selected")
			}
			return a.openDialog(newDeleteConfirmDialog(a.store, tabTasks, task.ID, task.Title))
		case tabNotes:
			note := a.notes.selected()
			if note == nil {
				return a, statusCmd("No note selected")
			}
			return a.openDialog(newDeleteConfirmDialog(a.store, tabNotes, note.ID, note.Title))
		}
		return a, nil

	case actOpenDeadline:
		return a.openDeadlinePicker()

	case actOpenView:
		if a.activeTab == tabNotes {
			note := a.notes.selected()
			if note == nil {
				return a, statusCmd("No note selected")
			}
			return a.openDialog(newViewNoteDialog(a.store, *note))
		}
		return a, nil

	case actOpenHelp:
		return a.openDialog(newHelpDialog(a.activeTab))

	case actTimerToggle:
		return a.timerToggle()

	case actTimerStop:
		return a.cancelTimer()

	case actEnterCommand:
		a.commandActive = true
		a.commandInput.Reset()
		return a, a.commandInput.Focus()

	case actQuit:
		a.abandonOpenSession()
		return a, tea.Quit
	}

	return a, nil
}

func (a App) dispatchCommand(cmd command) (tea.Model, tea.Cmd) {
	switch cmd.kind {
	case cmdQuit:
		a.abandonOpenSession()
		return a, tea.Quit

	case cmdJump:
		switch a.activeTab {
		case tabTasks:
			a.tasks = a.tasks.jumpTo(cmd.index)
		case tabNotes:
			a.notes = a.notes.jumpTo(cmd.index)
		}
		return a, nil

	case cmdNew:
		switch a.activeTab {
		case tabTasks:
			if cmd.text == "" {
				return a.openDialog(newCreateTaskDialog(a.store))
			}
			// A titled :new still goes through the deadline picker,
			// same as the dialog flow.
			return a.openDialog(newSetDeadlineDialog(a.store, 0, cmd.text, time.Now()))
		case tabNotes:
			if cmd.text == "" {
				return a.openDialog(newCreateNoteDialog(a.store))
			}
			if _, err := a.store.CreateNote(cmd.text, "", nil); err != nil {
				return a, errorCmd(err)
			}
			return a, tea.Batch(loadNotesCmd(a.store), statusCmd("Note created: "+cmd.text))
		}
		return a, nil

	case cmdEdit:
		return a.dispatch(inputAction{kind: actOpenEdit})

	case cmdDelete:
		return a.dispatch(inputAction{kind: actOpenDeleteConfirm})

	case cmdPriority:
		if a.activeTab != tabTasks {
			return a, statusCmd("Priority applies to tasks")
		}
		var c tea.Cmd
		if cmd.priority == 0 {
			a.tasks, c = a.tasks.cyclePriority()
		} else {
			a.tasks, c = a.tasks.setPriority(cmd.priority)
		}
		return a, c

	case cmdDeadline:
		return a.openDeadlinePicker()

	case cmdStartTimer:
		if a.timer.phase != phaseIdle {
			return a, statusCmd("Timer already running")
		}
		return a.startPomodoro()

	case cmdStopTimer:
		return a.cancelTimer()

	case cmdAdjustWork:
		return a.setDurations(a.timer.workMinutes+cmd.delta, a.timer.breakMinutes)

	case cmdAdjustBreak:
		return a.setDurations(a.timer.workMinutes, a.timer.breakMinutes+cmd.delta)

	case cmdSetDurations:
		work, brk := cmd.work, cmd.brk
		if work == 0 {
			work = a.timer.workMinutes
		}
		if brk == 0 {
			brk = a.timer.breakMinutes
		}
		return a.setDurations(work, brk)

	case cmdHelp:
		return a.openDialog(newHelpDialog(a.activeTab))

	case cmdSort:
		return a, loadTasksCmd(a.store)
	}

	return a, nil
}

func (a App) openDialog(d dialog) (tea.Model, tea.Cmd) {
	d.setSize(a.width, a.height-4)
	a.dialog = d
	return a, d.init()
}

func (a App) openDeadlinePicker() (tea.Model, tea.Cmd) {
	if a.activeTab != tabTasks {
		return a, nil
	}
	task := a.tasks.selected()
	if task == nil {
		return a, statusCmd("No task selected")
	}
	seed := time.Now()
	if task.DueDate != nil {
		seed = *task.DueDate
	}
	return a.openDialog(newSetDeadlineDialog(a.store, task.ID, "", seed))
}

func (a App) switchTab(t tab) (tea.Model, tea.Cmd) {
	a.activeTab = t
	return a, a.refreshTab(t)
}

// refreshTab reloads whatever the tab shows, so edits made elsewhere
// are visible on arrival.
func (a App) refreshTab(t tab) tea.Cmd {
	switch t {
	case tabTasks:
		return loadTasksCmd(a.store)
	case tabNotes:
		return loadNotesCmd(a.store)
	case tabPomodoro:
		return loadStatsCmd(a.store)
	}
	return nil
}

func (a App) timerToggle() (tea.Model, tea.Cmd) {
	switch a.timer.phase {
	case phaseIdle:
		return a.startPomodoro()
	case phaseWorking, phaseBreak:
		a.timer.pause()
		return a, statusCmd("Paused")
	case phasePaused:
		a.timer.resume()
		return a, statusCmd("Resumed")
	}
	return a, nil
}

// startPomodoro opens a session row before the countdown begins. If the
// row cannot be written the timer does not start at all.
func (a App) startPomodoro() (tea.Model, tea.Cmd) {
	var taskID *int64
	var title string
	if a.activeTab == tabTasks {
		if task := a.tasks.selected(); task != nil && task.Status != store.StatusCompleted {
			id := task.ID
			taskID = &id
			title = task.Title
		}
	}

	now := time.Now()
	session, err := a.store.CreateSession(taskID, now, a.timer.workMinutes)
	if err != nil {
		return a, errorCmd(err)
	}

	a.timer.startWork(taskID, now)
	a.timer.sessionID = &session.ID

	var cmds []tea.Cmd
	if taskID != nil {
		if cmd := a.tasks.markInProgress(*taskID); cmd != nil {
			cmds = append(cmds, cmd)
		}
		cmds = append(cmds, statusCmd("Pomodoro started: "+title))
	} else {
		cmds = append(cmds, statusCmd("Pomodoro started"))
	}
	return a, tea.Batch(cmds...)
}

// cancelTimer abandons the current interval. The open session row is
// deleted, not completed, so cancelled pomodoros never count.
func (a App) cancelTimer() (tea.Model, tea.Cmd) {
	if a.timer.phase == phaseIdle {
		return a, nil
	}
	if a.timer.sessionID != nil {
		if err := a.store.DeleteSession(*a.timer.sessionID); err != nil {
			return a, errorCmd(err)
		}
	}
	a.timer.stop()
	return a, statusCmd("Pomodoro cancelled")
}

// abandonOpenSession cleans up on quit. Best effort: the process is
// exiting either way.
func (a App) abandonOpenSession() {
	if a.timer.sessionID != nil {
		_ = a.store.DeleteSession(*a.timer.sessionID)
	}
}

func (a App) setDurations(work, brk int) (tea.Model, tea.Cmd) {
	if err := a.store.SetPomodoroDurations(work, brk); err != nil {
		return a, errorCmd(err)
	}
	// A countdown already underway keeps its original length; the new
	// values apply from the next interval.
	a.timer.workMinutes = work
	a.timer.breakMinutes = brk
	return a, statusCmd(fmt.Sprintf("Durations set: %dm work, %dm break", work, brk))
}

func (a App) boundTaskTitle() string {
	if a.timer.taskID == nil {
		return ""
	}
	for _, t := range a.tasks.tasks {
		if t.ID == *a.timer.taskID {
			return t.Title
		}
	}
	return ""
}

func (a App) currentMode() mode {
	switch {
	case a.commandActive:
		return modeCommand
	case a.dialog != nil:
		return modeInsert
	default:
		return modeNormal
	}
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	if a.dialog != nil {
		content = a.dialog.view()
	} else {
		switch a.activeTab {
		case tabTasks:
			content = a.tasks.view()
		case tabNotes:
			content = a.notes.view()
		case tabPomodoro:
			content = a.pomodoro.view(a.timer, a.boundTaskTitle())
		}
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range tabNames {
		if tab(i) == a.activeTab {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("focal")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	if a.commandActive {
		return footerStyle.Render(a.commandInput.View())
	}

	left := footerStyle.Render(a.help.View(keys))

	// Pending keys, timer chip, status and mode sit on the right.
	right := ""
	if pending := a.input.String(); pending != "" {
		right += highlightStyle.Render(pending) + " "
	}
	if a.timer.phase != phaseIdle && a.activeTab != tabPomodoro {
		switch a.timer.phase {
		case phaseWorking:
			right += accentStyle.Render("● "+a.timer.formatRemaining()) + " "
		case phaseBreak:
			right += successStyle.Render("● "+a.timer.formatRemaining()) + " "
		case phasePaused:
			right += warningStyle.Render("⏸ "+a.timer.formatRemaining()) + " "
		}
	}
	if a.status != "" {
		if a.statusErr {
			right += statusErrorStyle.Render(a.status) + " "
		} else {
			right += statusBarStyle.Render(a.status) + " "
		}
	}
	right += modeStyle.Render(modeNames[a.currentMode()])

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}
