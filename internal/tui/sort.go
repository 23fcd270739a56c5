package tui

import (
	"sort"

	"github.com/sadopc/focal/internal/store"
)

// statusRank orders lifecycles by how active they are: work in flight first,
// finished work last.
func statusRank(s store.Status) int {
	switch s {
	case store.StatusInProgress:
		return 0
	case store.StatusTodo:
		return 1
	case store.StatusCompleted:
		return 2
	}
	return 3
}

// sortTasks produces the display order and re-locates the selected task in it.
// Tiers: status rank, then priority (High first), then due date (dated before
// undated, earlier first). The sort is stable so equal keys keep their
// incoming order across repeated reloads.
//
// The returned index is the selected task's new position; if the task is gone
// the selection falls back to 0, or -1 when the list is empty.
func sortTasks(tasks []store.Task, selectedID int64) ([]store.Task, int) {
	sorted := make([]store.Task, len(tasks))
	copy(sorted, tasks)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]

		if ra, rb := statusRank(a.Status), statusRank(b.Status); ra != rb {
			return ra < rb
		}
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		switch {
		case a.DueDate != nil && b.DueDate == nil:
			return true
		case a.DueDate == nil && b.DueDate != nil:
			return false
		case a.DueDate != nil && b.DueDate != nil:
			return a.DueDate.Before(*b.DueDate)
		}
		return false
	})

	for i, t := range sorted {
		if t.ID == selectedID {
			return sorted, i
		}
	}
	if len(sorted) > 0 {
		return sorted, 0
	}
	return sorted, -1
}
