package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sadopc/focal/internal/store"
)

type commandKind int

const (
	cmdNone commandKind = iota
	cmdQuit
	cmdJump
	cmdNew
	cmdEdit
	cmdDelete
	cmdPriority
	cmdDeadline
	cmdStartTimer
	cmdStopTimer
	cmdAdjustWork
	cmdAdjustBreak
	cmdSetDurations
	cmdHelp
	cmdSort
)

// command is one parsed colon-line. Only the fields relevant to the kind
// are populated; the active tab decides what a kind acts on.
type command struct {
	kind     commandKind
	index    int
	text     string
	priority store.Priority
	delta    int
	work     int
	brk      int
}

// parseCommand turns the text typed after ":" into a command. It knows
// nothing about application state; an empty line is a no-op, anything
// unrecognized is an error for the status bar.
func parseCommand(input string) (command, error) {
	line := strings.TrimSpace(input)
	if line == "" {
		return command{kind: cmdNone}, nil
	}

	fields := strings.Fields(line)
	head, rest := fields[0], fields[1:]

	if n, err := strconv.Atoi(head); err == nil && len(rest) == 0 {
		if n < 1 {
			return command{}, fmt.Errorf("no task %d", n)
		}
		return command{kind: cmdJump, index: n}, nil
	}

	switch head {
	case "q", "wq", "quit":
		return command{kind: cmdQuit}, nil

	case "new", "n":
		text := strings.TrimSpace(strings.TrimPrefix(line, head))
		return command{kind: cmdNew, text: text}, nil

	case "e", "edit":
		return command{kind: cmdEdit}, nil

	case "d", "del", "delete":
		return command{kind: cmdDelete}, nil

	case "p", "pri", "priority":
		// Without an argument the priority cycles; priority zero marks that.
		if len(rest) == 0 {
			return command{kind: cmdPriority}, nil
		}
		if len(rest) > 1 {
			return command{}, fmt.Errorf("usage: p [low|medium|high]")
		}
		pri, err := store.ParsePriority(rest[0])
		if err != nil {
			return command{}, err
		}
		return command{kind: cmdPriority, priority: pri}, nil

	case "t", "due", "ddl", "deadline":
		return command{kind: cmdDeadline}, nil

	case "s", "start":
		return command{kind: cmdStartTimer}, nil

	case "c", "cancel", "stop":
		return command{kind: cmdStopTimer}, nil

	case "work+":
		return command{kind: cmdAdjustWork, delta: 1}, nil
	case "work-":
		return command{kind: cmdAdjustWork, delta: -1}, nil
	case "break+":
		return command{kind: cmdAdjustBreak, delta: 1}, nil
	case "break-":
		return command{kind: cmdAdjustBreak, delta: -1}, nil

	case "pomo":
		return parsePomoCommand(rest)

	case "h", "help", "?":
		return command{kind: cmdHelp}, nil

	case "sort":
		return command{kind: cmdSort}, nil
	}

	return command{}, fmt.Errorf("unknown command: %s", head)
}

// parsePomoCommand handles "pomo work=N break=M"; either assignment may be
// omitted but at least one must be present, and minutes must be positive.
func parsePomoCommand(args []string) (command, error) {
	usage := fmt.Errorf("usage: pomo work=N break=M")
	if len(args) == 0 {
		return command{}, usage
	}

	cmd := command{kind: cmdSetDurations}
	for _, arg := range args {
		key, val, ok := strings.Cut(arg, "=")
		if !ok {
			return command{}, usage
		}
		n, err := strconv.Atoi(val)
		if err != nil || n < 1 {
			return command{}, fmt.Errorf("minutes must be a positive number, got %q", val)
		}
		switch key {
		case "work":
			cmd.work = n
		case "break":
			cmd.brk = n
		default:
			return command{}, usage
		}
	}
	return cmd, nil
}
