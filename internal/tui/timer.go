package tui

import (
	"fmt"
	"time"
)

// timerPhase is the Pomodoro engine's state.
type timerPhase int

const (
	phaseIdle timerPhase = iota
	phaseWorking
	phaseBreak
	phasePaused
)

var phaseNames = map[timerPhase]string{
	phaseIdle:    "Idle",
	phaseWorking: "Working",
	phaseBreak:   "Break",
	phasePaused:  "Paused",
}

// pomodoroTimer is the countdown engine: pure state plus a once-per-second
// tick transition. Persisting sessions and sending notifications stay with
// the caller; the engine never touches I/O.
type pomodoroTimer struct {
	phase       timerPhase
	pausedPhase timerPhase // the phase pause interrupted; resume restores it

	workMinutes  int
	breakMinutes int
	remaining    int // seconds left in the current interval

	taskID    *int64
	sessionID *int64
	startedAt *time.Time
}

func newPomodoroTimer(workMinutes, breakMinutes int) pomodoroTimer {
	return pomodoroTimer{
		workMinutes:  workMinutes,
		breakMinutes: breakMinutes,
	}
}

func (t *pomodoroTimer) startWork(taskID *int64, now time.Time) {
	t.phase = phaseWorking
	t.remaining = t.workMinutes * 60
	t.taskID = taskID
	t.startedAt = &now
}

func (t *pomodoroTimer) startBreak(now time.Time) {
	t.phase = phaseBreak
	t.remaining = t.breakMinutes * 60
	t.startedAt = &now
}

func (t *pomodoroTimer) pause() {
	if t.phase != phaseWorking && t.phase != phaseBreak {
		return
	}
	t.pausedPhase = t.phase
	t.phase = phasePaused
}

// resume returns to the phase that was paused. Pausing a break does not
// convert the rest of it into work time.
func (t *pomodoroTimer) resume() {
	if t.phase != phasePaused {
		return
	}
	t.phase = t.pausedPhase
	t.pausedPhase = phaseIdle
}

func (t *pomodoroTimer) stop() {
	t.phase = phaseIdle
	t.pausedPhase = phaseIdle
	t.remaining = 0
	t.taskID = nil
	t.sessionID = nil
	t.startedAt = nil
}

// tick advances the countdown by one second. It reports whether time remains;
// false means either the interval just elapsed or the timer is not counting,
// so callers check the phase before acting on it.
func (t *pomodoroTimer) tick() bool {
	if t.phase != phaseWorking && t.phase != phaseBreak {
		return false
	}
	if t.remaining > 0 {
		t.remaining--
	}
	return t.remaining > 0
}

// progress returns the elapsed share of the current interval in percent,
// clamped to [0,100]. The interval length comes from the phase's own
// configured duration; a paused timer reports against the phase it paused.
func (t pomodoroTimer) progress() float64 {
	phase := t.phase
	if phase == phasePaused {
		phase = t.pausedPhase
	}

	var total int
	switch phase {
	case phaseWorking:
		total = t.workMinutes * 60
	case phaseBreak:
		total = t.breakMinutes * 60
	default:
		return 0
	}
	if total <= 0 {
		return 0
	}

	pct := float64(total-t.remaining) / float64(total) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func (t pomodoroTimer) formatRemaining() string {
	r := t.remaining
	if r < 0 {
		r = 0
	}
	return fmt.Sprintf("%02d:%02d", r/60, r%60)
}

// active reports whether the timer is actually counting down.
func (t pomodoroTimer) active() bool {
	return t.phase == phaseWorking || t.phase == phaseBreak
}

func (t pomodoroTimer) phaseName() string {
	return phaseNames[t.phase]
}
