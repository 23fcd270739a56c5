package tui

import "strconv"

// actionKind is the closed set of commands the key interpreter can emit.
// Everything downstream dispatches on these, never on raw key identity.
type actionKind int

const (
	actNone actionKind = iota
	actMoveDown
	actMoveUp
	actJumpFirst
	actJumpLast
	actSwitchTab
	actNextTab
	actPrevTab
	actToggleStatus
	actCyclePriority
	actOpenCreate
	actOpenEdit
	actOpenDeleteConfirm
	actOpenDeadline
	actOpenView
	actOpenHelp
	actTimerToggle
	actTimerStop
	actEnterCommand
	actQuit
)

// inputAction pairs an action with its payload: a repeat count for movement,
// a tab index for actSwitchTab.
type inputAction struct {
	kind  actionKind
	count int
}

type pendingKind int

const (
	pendingNone pendingKind = iota
	pendingChord
	pendingCount
)

// inputState is the interpreter's carry-over between keystrokes: either
// nothing, a chord leader waiting for its double, or an accumulating
// numeric prefix.
type inputState struct {
	pending pendingKind
	chord   string
	count   int
}

// String renders the pending state for the footer ("g", "d", or the digits).
func (st inputState) String() string {
	switch st.pending {
	case pendingChord:
		return st.chord
	case pendingCount:
		return strconv.Itoa(st.count)
	}
	return ""
}

const maxCountPrefix = 9999

// interpretKey is the Normal-mode key reducer. It is pure: the same state
// and key always produce the same action and next state.
func interpretKey(st inputState, key string) (inputAction, inputState) {
	// A pending chord either completes with its doubled leader or is
	// discarded, the interrupting key interpreted from scratch.
	if st.pending == pendingChord {
		leader := st.chord
		st = inputState{}
		if key == leader {
			switch leader {
			case "g":
				return inputAction{kind: actJumpFirst}, st
			case "d":
				return inputAction{kind: actOpenDeleteConfirm}, st
			}
		}
		return interpretKey(st, key)
	}

	// An accumulating prefix swallows digits; the next repeatable key
	// consumes the count, anything else drops it.
	if st.pending == pendingCount {
		if isDigit(key) {
			if st.count < maxCountPrefix {
				st.count = st.count*10 + int(key[0]-'0')
			}
			return inputAction{}, st
		}
		count := st.count
		if count < 1 {
			count = 1
		}
		st = inputState{}
		switch key {
		case "j", "down":
			return inputAction{kind: actMoveDown, count: count}, st
		case "k", "up":
			return inputAction{kind: actMoveUp, count: count}, st
		}
		return interpretKey(st, key)
	}

	switch key {
	case "g", "d":
		return inputAction{}, inputState{pending: pendingChord, chord: key}
	case "1", "2", "3":
		// Un-prefixed low digits are tab shortcuts, not count starters.
		return inputAction{kind: actSwitchTab, count: int(key[0] - '1')}, st
	case "0", "4", "5", "6", "7", "8", "9":
		return inputAction{}, inputState{pending: pendingCount, count: int(key[0] - '0')}
	case "j", "down":
		return inputAction{kind: actMoveDown, count: 1}, st
	case "k", "up":
		return inputAction{kind: actMoveUp, count: 1}, st
	case "G":
		return inputAction{kind: actJumpLast}, st
	case "h", "left":
		return inputAction{kind: actPrevTab}, st
	case "l", "right":
		return inputAction{kind: actNextTab}, st
	case "tab":
		return inputAction{kind: actNextTab}, st
	case "shift+tab":
		return inputAction{kind: actPrevTab}, st
	case " ", "x":
		return inputAction{kind: actToggleStatus}, st
	case "p":
		return inputAction{kind: actCyclePriority}, st
	case "n", "a":
		return inputAction{kind: actOpenCreate}, st
	case "e":
		return inputAction{kind: actOpenEdit}, st
	case "t":
		return inputAction{kind: actOpenDeadline}, st
	case "enter":
		return inputAction{kind: actOpenView}, st
	case "s":
		return inputAction{kind: actTimerToggle}, st
	case "S":
		return inputAction{kind: actTimerStop}, st
	case "?":
		return inputAction{kind: actOpenHelp}, st
	case ":":
		return inputAction{kind: actEnterCommand}, st
	case "q", "ctrl+c":
		return inputAction{kind: actQuit}, st
	}
	return inputAction{}, st
}

func isDigit(key string) bool {
	return len(key) == 1 && key[0] >= '0' && key[0] <= '9'
}
