package store

import (
	"database/sql"
	"fmt"
	"time"
)

const sessionColumns = `id, task_id, start_time, end_time, duration_minutes, completed`

func scanSession(sc scanner) (*PomodoroSession, error) {
	ps := &PomodoroSession{}
	var taskID sql.NullInt64
	var startTime string
	var endTime sql.NullString
	var completed int

	err := sc.Scan(&ps.ID, &taskID, &startTime, &endTime, &ps.DurationMinutes, &completed)
	if err != nil {
		return nil, err
	}

	if taskID.Valid {
		ps.TaskID = &taskID.Int64
	}
	ps.Completed = completed == 1
	if ps.StartTime, err = parseTime(startTime); err != nil {
		return nil, err
	}
	if ps.EndTime, err = parseTimePtr(endTime); err != nil {
		return nil, err
	}
	return ps, nil
}

// CreateSession records the start of a work interval. The row stays open
// (no end time, completed=0) until the interval runs out naturally.
func (s *Store) CreateSession(taskID *int64, start time.Time, durationMinutes int) (*PomodoroSession, error) {
	res, err := s.db.Exec(
		`INSERT INTO pomodoro_sessions (task_id, start_time, duration_minutes) VALUES (?, ?, ?)`,
		taskID, formatTime(start), durationMinutes,
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetSession(id)
}

// CompleteSession finalizes a session that ran to completion.
func (s *Store) CompleteSession(id int64, end time.Time) error {
	_, err := s.db.Exec(
		`UPDATE pomodoro_sessions SET end_time = ?, completed = 1 WHERE id = ?`,
		formatTime(end), id,
	)
	if err != nil {
		return fmt.Errorf("complete session %d: %w", id, err)
	}
	return nil
}

// DeleteSession removes a session row. Cancelling a running interval uses
// this so abandoned intervals never show up as history.
func (s *Store) DeleteSession(id int64) error {
	if _, err := s.db.Exec(`DELETE FROM pomodoro_sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session %d: %w", id, err)
	}
	return nil
}

func (s *Store) GetSession(id int64) (*PomodoroSession, error) {
	ps, err := scanSession(s.db.QueryRow(
		`SELECT `+sessionColumns+` FROM pomodoro_sessions WHERE id = ?`, id,
	))
	if err != nil {
		return nil, fmt.Errorf("get session %d: %w", id, err)
	}
	return ps, nil
}

func (s *Store) GetSessionsByTask(taskID int64) ([]PomodoroSession, error) {
	rows, err := s.db.Query(
		`SELECT `+sessionColumns+` FROM pomodoro_sessions WHERE task_id = ? ORDER BY start_time DESC`,
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions for task %d: %w", taskID, err)
	}
	defer rows.Close()

	var sessions []PomodoroSession
	for rows.Next() {
		ps, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, *ps)
	}
	return sessions, rows.Err()
}

// GetTodayStats counts completed sessions since local midnight. Rows store UTC,
// so the local midnight boundary is converted before comparing.
func (s *Store) GetTodayStats() (TodayStats, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var stats TodayStats
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(duration_minutes), 0)
		 FROM pomodoro_sessions
		 WHERE completed = 1 AND start_time >= ?`,
		formatTime(midnight),
	).Scan(&stats.CompletedSessions, &stats.TotalMinutes)
	if err != nil {
		return TodayStats{}, fmt.Errorf("today stats: %w", err)
	}
	return stats, nil
}

// GetDailySessionStats aggregates completed sessions per day over [from, to).
func (s *Store) GetDailySessionStats(from, to time.Time) ([]DailySessionStat, error) {
	rows, err := s.db.Query(
		`SELECT date(start_time) AS day, COUNT(*), COALESCE(SUM(duration_minutes), 0)
		 FROM pomodoro_sessions
		 WHERE completed = 1 AND start_time >= ? AND start_time < ?
		 GROUP BY day
		 ORDER BY day`,
		formatTime(from), formatTime(to),
	)
	if err != nil {
		return nil, fmt.Errorf("daily session stats: %w", err)
	}
	defer rows.Close()

	var stats []DailySessionStat
	for rows.Next() {
		var ds DailySessionStat
		if err := rows.Scan(&ds.Date, &ds.Sessions, &ds.Minutes); err != nil {
			return nil, err
		}
		stats = append(stats, ds)
	}
	return stats, rows.Err()
}
