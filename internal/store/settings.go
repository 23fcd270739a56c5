package store

import (
	"fmt"
	"strconv"
)

const (
	SettingWorkMinutes  = "work_minutes"
	SettingBreakMinutes = "break_minutes"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

func (s *Store) intSetting(key string) (int, error) {
	raw, err := s.GetSetting(key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("setting %q is not a number: %w", key, err)
	}
	return n, nil
}

// WorkMinutes returns the configured Pomodoro work interval length.
func (s *Store) WorkMinutes() (int, error) {
	return s.intSetting(SettingWorkMinutes)
}

// BreakMinutes returns the configured Pomodoro break interval length.
func (s *Store) BreakMinutes() (int, error) {
	return s.intSetting(SettingBreakMinutes)
}

// SetPomodoroDurations stores both interval lengths. Values below one minute
// are rejected before anything is written.
func (s *Store) SetPomodoroDurations(work, brk int) error {
	if work < 1 || brk < 1 {
		return fmt.Errorf("durations must be at least 1 minute (work=%d break=%d)", work, brk)
	}
	if err := s.SetSetting(SettingWorkMinutes, strconv.Itoa(work)); err != nil {
		return fmt.Errorf("save work minutes: %w", err)
	}
	if err := s.SetSetting(SettingBreakMinutes, strconv.Itoa(brk)); err != nil {
		return fmt.Errorf("save break minutes: %w", err)
	}
	return nil
}
