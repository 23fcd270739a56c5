package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/focal/internal/store"
)

func ToCSV(tasks []store.Task, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Title", "Description", "Priority", "Status", "Due", "Pomodoros", "Created", "Completed"}); err != nil {
		return err
	}

	for _, t := range tasks {
		row := []string{
			fmt.Sprintf("%d", t.ID),
			t.Title,
			t.Description,
			t.Priority.String(),
			t.Status.String(),
			formatOptional(t.DueDate),
			fmt.Sprintf("%d", t.PomodoroCount),
			t.CreatedAt.Local().Format(time.RFC3339),
			formatOptional(t.CompletedAt),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// formatOptional renders a nullable timestamp, empty when unset.
func formatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format(time.RFC3339)
}
