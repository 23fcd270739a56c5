package tui

import (
	"testing"
	"time"
)

// ============================================================
// Pomodoro timer engine
// ============================================================

func TestStartWorkArmsInterval(t *testing.T) {
	tm := newPomodoroTimer(25, 5)
	taskID := int64(7)
	now := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)

	tm.startWork(&taskID, now)

	if tm.phase != phaseWorking {
		t.Fatalf("expected Working, got %v", tm.phase)
	}
	if tm.remaining != 25*60 {
		t.Fatalf("expected %d seconds remaining, got %d", 25*60, tm.remaining)
	}
	if tm.taskID == nil || *tm.taskID != 7 {
		t.Fatal("task not bound")
	}
	if tm.startedAt == nil || !tm.startedAt.Equal(now) {
		t.Fatal("start timestamp not recorded")
	}
}

func TestStartBreakArmsInterval(t *testing.T) {
	tm := newPomodoroTimer(25, 5)
	tm.startBreak(time.Now())

	if tm.phase != phaseBreak {
		t.Fatalf("expected Break, got %v", tm.phase)
	}
	if tm.remaining != 5*60 {
		t.Fatalf("expected %d seconds remaining, got %d", 5*60, tm.remaining)
	}
}

func TestTickCountsDownToElapsed(t *testing.T) {
	tm := newPomodoroTimer(1, 5)
	tm.startWork(nil, time.Now())

	// Per the contract: N minutes of work elapse over exactly N*60 ticks,
	// with the final tick reporting elapsed.
	for i := 1; i <= 59; i++ {
		if !tm.tick() {
			t.Fatalf("tick %d reported elapsed early (remaining %d)", i, tm.remaining)
		}
	}
	if tm.tick() {
		t.Fatal("60th tick should report elapsed")
	}
	if tm.remaining != 0 {
		t.Fatalf("expected 0 remaining, got %d", tm.remaining)
	}
	if tm.phase != phaseWorking {
		t.Fatal("tick must not change phase; the caller owns the transition")
	}
}

func TestTickInactiveReturnsFalse(t *testing.T) {
	tm := newPomodoroTimer(25, 5)

	if tm.tick() {
		t.Fatal("idle timer must not report time remaining")
	}

	tm.startWork(nil, time.Now())
	tm.pause()
	before := tm.remaining
	if tm.tick() {
		t.Fatal("paused timer must not report time remaining")
	}
	if tm.remaining != before {
		t.Fatal("paused timer must not count down")
	}
}

func TestPauseOnlyFromActive(t *testing.T) {
	tm := newPomodoroTimer(25, 5)

	tm.pause()
	if tm.phase != phaseIdle {
		t.Fatalf("pause while Idle must be a no-op, got %v", tm.phase)
	}

	tm.startWork(nil, time.Now())
	tm.pause()
	if tm.phase != phasePaused {
		t.Fatalf("expected Paused, got %v", tm.phase)
	}
}

func TestResumeRestoresPausedPhase(t *testing.T) {
	tm := newPomodoroTimer(25, 5)

	// Resume with nothing paused is a no-op.
	tm.resume()
	if tm.phase != phaseIdle {
		t.Fatalf("resume while Idle must be a no-op, got %v", tm.phase)
	}

	tm.startWork(nil, time.Now())
	tm.pause()
	tm.resume()
	if tm.phase != phaseWorking {
		t.Fatalf("expected resume into Working, got %v", tm.phase)
	}

	tm.startBreak(time.Now())
	tm.pause()
	tm.resume()
	if tm.phase != phaseBreak {
		t.Fatalf("expected resume into Break, got %v", tm.phase)
	}
}

func TestStopResetsEverything(t *testing.T) {
	tm := newPomodoroTimer(25, 5)
	taskID := int64(3)
	sessID := int64(9)
	tm.startWork(&taskID, time.Now())
	tm.sessionID = &sessID

	tm.stop()

	if tm.phase != phaseIdle {
		t.Fatalf("expected Idle, got %v", tm.phase)
	}
	if tm.remaining != 0 {
		t.Fatalf("expected 0 remaining, got %d", tm.remaining)
	}
	if tm.taskID != nil || tm.sessionID != nil || tm.startedAt != nil {
		t.Fatal("stop must clear task/session/start bindings")
	}

	// Stop while Idle stays Idle.
	tm.stop()
	if tm.phase != phaseIdle {
		t.Fatal("stop while Idle must stay Idle")
	}
}

func TestProgress(t *testing.T) {
	tm := newPomodoroTimer(25, 5)

	if got := tm.progress(); got != 0 {
		t.Fatalf("idle progress should be 0, got %f", got)
	}

	tm.startWork(nil, time.Now())
	if got := tm.progress(); got != 0 {
		t.Fatalf("fresh interval progress should be 0, got %f", got)
	}

	// Halfway through 25 minutes.
	for i := 0; i < 750; i++ {
		tm.tick()
	}
	if got := tm.progress(); got != 50 {
		t.Fatalf("expected 50%%, got %f", got)
	}

	// Pausing keeps reporting against the paused interval.
	tm.pause()
	if got := tm.progress(); got != 50 {
		t.Fatalf("paused progress should hold at 50%%, got %f", got)
	}

	// Run out the rest.
	tm.resume()
	for i := 0; i < 750; i++ {
		tm.tick()
	}
	if got := tm.progress(); got != 100 {
		t.Fatalf("expected 100%%, got %f", got)
	}
}

func TestProgressUsesBreakDuration(t *testing.T) {
	tm := newPomodoroTimer(25, 5)
	tm.startBreak(time.Now())

	// Halfway through 5 minutes; against the work duration this would be 10%.
	for i := 0; i < 150; i++ {
		tm.tick()
	}
	if got := tm.progress(); got != 50 {
		t.Fatalf("expected 50%% of the break, got %f", got)
	}
}

func TestFormatRemaining(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{1, "00:01"},
		{59, "00:59"},
		{60, "01:00"},
		{61, "01:01"},
		{1500, "25:00"},
		{-5, "00:00"},
	}
	for _, c := range cases {
		tm := pomodoroTimer{remaining: c.seconds}
		if got := tm.formatRemaining(); got != c.want {
			t.Errorf("formatRemaining(%d) = %q, want %q", c.seconds, got, c.want)
		}
	}
}

func TestPhaseName(t *testing.T) {
	tm := newPomodoroTimer(25, 5)
	if tm.phaseName() != "Idle" {
		t.Fatalf("expected Idle, got %q", tm.phaseName())
	}
	tm.startWork(nil, time.Now())
	if tm.phaseName() != "Working" {
		t.Fatalf("expected Working, got %q", tm.phaseName())
	}
}
