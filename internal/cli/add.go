package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/focal/internal/config"
	"github.com/sadopc/focal/internal/store"
)

// cliTimeLayout is what --due and --reminder accept, read in local time.
const cliTimeLayout = "2006-01-02 15:04"

func addAdd(topLevel *cobra.Command) {
	var (
		desc     string
		priority string
		due      string
		reminder string
		noteText string
	)

	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a task",
		Example: `
focal add Write the quarterly report
focal add Call the dentist --due "2026-09-01 09:00" --reminder "2026-09-01 08:30"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(cfg config.Config, s *store.Store) error {
				title := strings.Join(args, " ")

				p := store.PriorityMedium
				if priority != "" {
					var err error
					if p, err = store.ParsePriority(priority); err != nil {
						return err
					}
				}

				dueAt, err := parseLocalTime(due)
				if err != nil {
					return fmt.Errorf("parse --due: %w", err)
				}
				remindAt, err := parseLocalTime(reminder)
				if err != nil {
					return fmt.Errorf("parse --reminder: %w", err)
				}

				task, err := s.CreateTask(title, desc, p, dueAt, remindAt)
				if err != nil {
					return err
				}

				if noteText != "" {
					if _, err := s.CreateNote(title, noteText, &task.ID); err != nil {
						return err
					}
				}

				fmt.Printf("Created task %d: %s\n", task.ID, task.Title)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&desc, "desc", "", "task description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "low, medium or high")
	cmd.Flags().StringVar(&due, "due", "", `deadline, "YYYY-MM-DD HH:MM" local time`)
	cmd.Flags().StringVar(&reminder, "reminder", "", `reminder, "YYYY-MM-DD HH:MM" local time`)
	cmd.Flags().StringVar(&noteText, "note", "", "attach a note with this content")

	topLevel.AddCommand(cmd)
}

// parseLocalTime reads the CLI layout in the local zone. What gets
// stored is the UTC instant.
func parseLocalTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(cliTimeLayout, s, time.Local)
	if err != nil {
		return nil, err
	}
	u := t.UTC()
	return &u, nil
}
