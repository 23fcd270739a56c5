package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/focal/internal/store"
)

type jsonExport struct {
	ExportedAt string     `json:"exported_at"`
	Count      int        `json:"count"`
	Tasks      []jsonTask `json:"tasks"`
}

type jsonTask struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Priority      string `json:"priority"`
	Status        string `json:"status"`
	DueDate       string `json:"due_date,omitempty"`
	ReminderAt    string `json:"reminder_time,omitempty"`
	CreatedAt     string `json:"created_at"`
	CompletedAt   string `json:"completed_at,omitempty"`
	PomodoroCount int    `json:"pomodoro_count"`
}

func ToJSON(tasks []store.Task, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(tasks),
	}

	for _, t := range tasks {
		export.Tasks = append(export.Tasks, jsonTask{
			ID:            t.ID,
			Title:         t.Title,
			Description:   t.Description,
			Priority:      t.Priority.String(),
			Status:        t.Status.String(),
			DueDate:       formatOptional(t.DueDate),
			ReminderAt:    formatOptional(t.ReminderAt),
			CreatedAt:     t.CreatedAt.Local().Format(time.RFC3339),
			CompletedAt:   formatOptional(t.CompletedAt),
			PomodoroCount: t.PomodoroCount,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
