package store

import (
	"fmt"
	"strings"
	"time"
)

// Priority levels use the same numeric encoding as the database column,
// so High sorts last under a plain ascending ORDER BY.
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// ParsePriority accepts both names and the numeric forms used on the command line.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "1":
		return PriorityLow, nil
	case "medium", "med", "2":
		return PriorityMedium, nil
	case "high", "3":
		return PriorityHigh, nil
	}
	return 0, fmt.Errorf("unknown priority %q", s)
}

type Status int

const (
	StatusTodo Status = iota
	StatusInProgress
	StatusCompleted
)

func (st Status) String() string {
	switch st {
	case StatusTodo:
		return "Todo"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	default:
		return fmt.Sprintf("Status(%d)", int(st))
	}
}

func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo", "0":
		return StatusTodo, nil
	case "inprogress", "in-progress", "in_progress", "1":
		return StatusInProgress, nil
	case "completed", "done", "2":
		return StatusCompleted, nil
	}
	return 0, fmt.Errorf("unknown status %q", s)
}

type Task struct {
	ID            int64
	Title         string
	Description   string
	Priority      Priority
	Status        Status
	DueDate       *time.Time
	ReminderAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CompletedAt   *time.Time
	PomodoroCount int
}

type Note struct {
	ID        int64
	Title     string
	Content   string
	TaskID    *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type PomodoroSession struct {
	ID              int64
	TaskID          *int64
	StartTime       time.Time
	EndTime         *time.Time
	DurationMinutes int
	Completed       bool
}

type Setting struct {
	Key   string
	Value string
}

// TodayStats aggregates completed sessions since local midnight.
type TodayStats struct {
	CompletedSessions int
	TotalMinutes      int
}

// DailySessionStat is one day's completed-session aggregate for the history chart.
type DailySessionStat struct {
	Date     string // YYYY-MM-DD
	Sessions int
	Minutes  int
}
