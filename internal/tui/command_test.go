package tui

import (
	"testing"

	"github.com/sadopc/focal/internal/store"
)

func TestParseCommandBasics(t *testing.T) {
	cases := []struct {
		input string
		want  command
	}{
		{"", command{kind: cmdNone}},
		{"   ", command{kind: cmdNone}},
		{"q", command{kind: cmdQuit}},
		{"wq", command{kind: cmdQuit}},
		{"quit", command{kind: cmdQuit}},
		{"7", command{kind: cmdJump, index: 7}},
		{"  12  ", command{kind: cmdJump, index: 12}},
		{"e", command{kind: cmdEdit}},
		{"edit", command{kind: cmdEdit}},
		{"d", command{kind: cmdDelete}},
		{"delete", command{kind: cmdDelete}},
		{"t", command{kind: cmdDeadline}},
		{"due", command{kind: cmdDeadline}},
		{"deadline", command{kind: cmdDeadline}},
		{"s", command{kind: cmdStartTimer}},
		{"start", command{kind: cmdStartTimer}},
		{"c", command{kind: cmdStopTimer}},
		{"cancel", command{kind: cmdStopTimer}},
		{"stop", command{kind: cmdStopTimer}},
		{"work+", command{kind: cmdAdjustWork, delta: 1}},
		{"work-", command{kind: cmdAdjustWork, delta: -1}},
		{"break+", command{kind: cmdAdjustBreak, delta: 1}},
		{"break-", command{kind: cmdAdjustBreak, delta: -1}},
		{"h", command{kind: cmdHelp}},
		{"help", command{kind: cmdHelp}},
		{"?", command{kind: cmdHelp}},
		{"sort", command{kind: cmdSort}},
	}
	for _, c := range cases {
		got, err := parseCommand(c.input)
		if err != nil {
			t.Errorf("parseCommand(%q) returned error: %v", c.input, err)
			continue
		}
		if got != c.want {
			t.Errorf("parseCommand(%q) = %+v, want %+v", c.input, got, c.want)
		}
	}
}

func TestParseCommandNew(t *testing.T) {
	got, err := parseCommand("new Write weekly report")
	if err != nil {
		t.Fatalf("parseCommand: %v", err)
	}
	if got.kind != cmdNew || got.text != "Write weekly report" {
		t.Fatalf("expected new with full title text, got %+v", got)
	}

	got, err = parseCommand("n  spaced   out  ")
	if err != nil {
		t.Fatalf("parseCommand: %v", err)
	}
	if got.text != "spaced   out" {
		t.Errorf("expected inner spacing preserved, got %q", got.text)
	}

	got, err = parseCommand("new")
	if err != nil {
		t.Fatalf("bare new should parse: %v", err)
	}
	if got.kind != cmdNew || got.text != "" {
		t.Errorf("expected bare new with empty text, got %+v", got)
	}
}

func TestParseCommandPriority(t *testing.T) {
	cases := []struct {
		input string
		want  store.Priority
	}{
		{"p low", store.PriorityLow},
		{"p 1", store.PriorityLow},
		{"pri medium", store.PriorityMedium},
		{"p med", store.PriorityMedium},
		{"priority high", store.PriorityHigh},
		{"p 3", store.PriorityHigh},
	}
	for _, c := range cases {
		got, err := parseCommand(c.input)
		if err != nil {
			t.Errorf("parseCommand(%q): %v", c.input, err)
			continue
		}
		if got.kind != cmdPriority || got.priority != c.want {
			t.Errorf("parseCommand(%q) = %+v, want priority %v", c.input, got, c.want)
		}
	}

	bare, err := parseCommand("p")
	if err != nil {
		t.Fatalf("bare p should parse as a cycle: %v", err)
	}
	if bare.kind != cmdPriority || bare.priority != 0 {
		t.Errorf("expected bare p to cycle (priority 0), got %+v", bare)
	}
	if _, err := parseCommand("p urgent"); err == nil {
		t.Error("expected error for unknown priority name")
	}
	if _, err := parseCommand("p 2 3"); err == nil {
		t.Error("expected error for extra arguments")
	}
}

func TestParseCommandPomo(t *testing.T) {
	got, err := parseCommand("pomo work=50 break=10")
	if err != nil {
		t.Fatalf("parseCommand: %v", err)
	}
	if got.kind != cmdSetDurations || got.work != 50 || got.brk != 10 {
		t.Fatalf("expected work=50 break=10, got %+v", got)
	}

	got, err = parseCommand("pomo break=3")
	if err != nil {
		t.Fatalf("parseCommand: %v", err)
	}
	if got.work != 0 || got.brk != 3 {
		t.Fatalf("expected only break set, got %+v", got)
	}

	for _, bad := range []string{
		"pomo",
		"pomo work",
		"pomo work=0",
		"pomo work=-5",
		"pomo work=abc",
		"pomo lunch=30",
	} {
		if _, err := parseCommand(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestParseCommandJumpRejectsZero(t *testing.T) {
	if _, err := parseCommand("0"); err == nil {
		t.Error("expected error for :0")
	}
	if _, err := parseCommand("-3"); err == nil {
		t.Error("expected error for negative jump")
	}
}

func TestParseCommandUnknown(t *testing.T) {
	if _, err := parseCommand("frobnicate"); err == nil {
		t.Error("expected error for unknown command")
	}
	if _, err := parseCommand("7 extra"); err == nil {
		t.Error("expected number with trailing words to be rejected")
	}
}
