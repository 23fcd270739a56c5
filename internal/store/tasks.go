package store

import (
	"database/sql"
	"fmt"
	"time"
)

const taskColumns = `id, title, description, priority, status, due_date, reminder_time,
	created_at, updated_at, completed_at, pomodoro_count`

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(sc scanner) (*Task, error) {
	t := &Task{}
	var priority, status int
	var createdAt, updatedAt string
	var dueDate, reminderAt, completedAt sql.NullString

	err := sc.Scan(&t.ID, &t.Title, &t.Description, &priority, &status,
		&dueDate, &reminderAt, &createdAt, &updatedAt, &completedAt, &t.PomodoroCount)
	if err != nil {
		return nil, err
	}

	t.Priority = Priority(priority)
	t.Status = Status(status)
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if t.DueDate, err = parseTimePtr(dueDate); err != nil {
		return nil, err
	}
	if t.ReminderAt, err = parseTimePtr(reminderAt); err != nil {
		return nil, err
	}
	if t.CompletedAt, err = parseTimePtr(completedAt); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Store) CreateTask(title, description string, priority Priority, due, reminder *time.Time) (*Task, error) {
	now := formatTime(time.Now())
	res, err := s.db.Exec(
		`INSERT INTO tasks (title, description, priority, due_date, reminder_time, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		title, description, int(priority), formatTimePtr(due), formatTimePtr(reminder), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetTask(id)
}

func (s *Store) GetTask(id int64) (*Task, error) {
	t, err := scanTask(s.db.QueryRow(
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id,
	))
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return t, nil
}

func (s *Store) GetAllTasks() ([]Task, error) {
	rows, err := s.db.Query(
		`SELECT ` + taskColumns + ` FROM tasks ORDER BY priority DESC, due_date ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (s *Store) UpdateTask(id int64, title, description string) error {
	now := formatTime(time.Now())
	_, err := s.db.Exec(
		`UPDATE tasks SET title = ?, description = ?, updated_at = ? WHERE id = ?`,
		title, description, now, id,
	)
	if err != nil {
		return fmt.Errorf("update task %d: %w", id, err)
	}
	return nil
}

// UpdateTaskStatus keeps completed_at in step with the status: set when the task
// enters Completed, cleared when it leaves.
func (s *Store) UpdateTaskStatus(id int64, status Status) error {
	now := formatTime(time.Now())
	var completedAt any
	if status == StatusCompleted {
		completedAt = now
	}
	_, err := s.db.Exec(
		`UPDATE tasks SET status = ?, completed_at = ?, updated_at = ? WHERE id = ?`,
		int(status), completedAt, now, id,
	)
	if err != nil {
		return fmt.Errorf("update task %d status: %w", id, err)
	}
	return nil
}

func (s *Store) UpdateTaskPriority(id int64, priority Priority) error {
	now := formatTime(time.Now())
	_, err := s.db.Exec(
		`UPDATE tasks SET priority = ?, updated_at = ? WHERE id = ?`,
		int(priority), now, id,
	)
	if err != nil {
		return fmt.Errorf("update task %d priority: %w", id, err)
	}
	return nil
}

func (s *Store) SetTaskDueDate(id int64, due *time.Time) error {
	now := formatTime(time.Now())
	_, err := s.db.Exec(
		`UPDATE tasks SET due_date = ?, updated_at = ? WHERE id = ?`,
		formatTimePtr(due), now, id,
	)
	if err != nil {
		return fmt.Errorf("set task %d due date: %w", id, err)
	}
	return nil
}

func (s *Store) IncrementTaskPomodoros(id int64) error {
	now := formatTime(time.Now())
	_, err := s.db.Exec(
		`UPDATE tasks SET pomodoro_count = pomodoro_count + 1, updated_at = ? WHERE id = ?`,
		now, id,
	)
	if err != nil {
		return fmt.Errorf("increment task %d pomodoros: %w", id, err)
	}
	return nil
}

// DeleteTask removes the task; notes and sessions referencing it fall back to
// NULL through the schema's ON DELETE SET NULL.
func (s *Store) DeleteTask(id int64) error {
	_, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return nil
}

// GetDueReminders returns non-completed tasks whose reminder falls in [from, to).
func (s *Store) GetDueReminders(from, to time.Time) ([]Task, error) {
	rows, err := s.db.Query(
		`SELECT `+taskColumns+` FROM tasks
		 WHERE reminder_time IS NOT NULL
		   AND reminder_time >= ? AND reminder_time < ?
		   AND status != ?
		 ORDER BY reminder_time`,
		formatTime(from), formatTime(to), int(StatusCompleted),
	)
	if err != nil {
		return nil, fmt.Errorf("list due reminders: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}
