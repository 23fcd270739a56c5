package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sadopc/focal/internal/config"
	"github.com/sadopc/focal/internal/store"
)

func addDone(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("bad task id %q", args[0])
			}

			return withStore(func(cfg config.Config, s *store.Store) error {
				task, err := s.GetTask(id)
				if err != nil {
					if errors.Is(err, sql.ErrNoRows) {
						return fmt.Errorf("no task %d", id)
					}
					return err
				}
				if err := s.UpdateTaskStatus(id, store.StatusCompleted); err != nil {
					return err
				}
				fmt.Printf("Completed: %s\n", task.Title)
				return nil
			})
		},
	}

	topLevel.AddCommand(cmd)
}
