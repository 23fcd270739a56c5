package cli

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/sadopc/focal/internal/config"
	"github.com/sadopc/focal/internal/store"
)

func addList(topLevel *cobra.Command) {
	var (
		all          bool
		statusFilter string
		prioFilter   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Example: `
focal list
focal list --all
focal list --status inprogress --priority high
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(cfg config.Config, s *store.Store) error {
				tasks, err := s.GetAllTasks()
				if err != nil {
					return err
				}

				var status *store.Status
				if statusFilter != "" {
					st, err := store.ParseStatus(statusFilter)
					if err != nil {
						return err
					}
					status = &st
				}
				var prio *store.Priority
				if prioFilter != "" {
					p, err := store.ParsePriority(prioFilter)
					if err != nil {
						return err
					}
					prio = &p
				}

				tbl := uitable.New()
				tbl.Separator = "  "
				tbl.AddRow("ID", "TITLE", "PRIORITY", "STATUS", "DUE", "POMOS")

				shown := 0
				for _, t := range tasks {
					// Completed tasks hide unless asked for.
					if !all && status == nil && t.Status == store.StatusCompleted {
						continue
					}
					if status != nil && t.Status != *status {
						continue
					}
					if prio != nil && t.Priority != *prio {
						continue
					}
					tbl.AddRow(t.ID, t.Title, priorityCell(t.Priority), statusCell(t.Status), dueCell(t), t.PomodoroCount)
					shown++
				}

				if shown == 0 {
					_, _ = color.New(color.Faint, color.Italic).Fprintln(color.Output, "no tasks")
					return nil
				}

				_, _ = fmt.Fprintln(color.Output, tbl)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include completed tasks")
	cmd.Flags().StringVar(&statusFilter, "status", "", "filter by status (todo, inprogress, completed)")
	cmd.Flags().StringVar(&prioFilter, "priority", "", "filter by priority (low, medium, high)")

	topLevel.AddCommand(cmd)
}

func priorityCell(p store.Priority) string {
	switch p {
	case store.PriorityHigh:
		return color.New(color.FgRed, color.Bold).Sprint("High")
	case store.PriorityLow:
		return color.New(color.Faint).Sprint("Low")
	default:
		return color.New(color.FgYellow).Sprint("Medium")
	}
}

func statusCell(st store.Status) string {
	switch st {
	case store.StatusCompleted:
		return color.New(color.FgGreen).Sprint("Completed")
	case store.StatusInProgress:
		return color.New(color.FgCyan).Sprint("In Progress")
	default:
		return "Todo"
	}
}

func dueCell(t store.Task) string {
	if t.DueDate == nil {
		return ""
	}
	s := t.DueDate.Local().Format("2006-01-02 15:04")
	if t.Status != store.StatusCompleted && t.DueDate.Before(time.Now()) {
		return color.New(color.FgRed).Sprint(s)
	}
	return s
}
