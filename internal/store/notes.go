package store

import (
	"database/sql"
	"fmt"
	"time"
)

const noteColumns = `id, title, content, task_id, created_at, updated_at`

func scanNote(sc scanner) (*Note, error) {
	n := &Note{}
	var taskID sql.NullInt64
	var createdAt, updatedAt string

	err := sc.Scan(&n.ID, &n.Title, &n.Content, &taskID, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if taskID.Valid {
		n.TaskID = &taskID.Int64
	}
	if n.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if n.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Store) CreateNote(title, content string, taskID *int64) (*Note, error) {
	now := formatTime(time.Now())
	res, err := s.db.Exec(
		`INSERT INTO notes (title, content, task_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		title, content, taskID, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetNote(id)
}

func (s *Store) GetNote(id int64) (*Note, error) {
	n, err := scanNote(s.db.QueryRow(
		`SELECT `+noteColumns+` FROM notes WHERE id = ?`, id,
	))
	if err != nil {
		return nil, fmt.Errorf("get note %d: %w", id, err)
	}
	return n, nil
}

// GetAllNotes returns the wall newest-edit first.
func (s *Store) GetAllNotes() ([]Note, error) {
	return s.queryNotes(`SELECT ` + noteColumns + ` FROM notes ORDER BY updated_at DESC`)
}

func (s *Store) GetNotesByTask(taskID int64) ([]Note, error) {
	return s.queryNotes(
		`SELECT `+noteColumns+` FROM notes WHERE task_id = ? ORDER BY updated_at DESC`,
		taskID,
	)
}

// SearchNotes matches the query case-insensitively against title and content.
func (s *Store) SearchNotes(query string) ([]Note, error) {
	pattern := "%" + query + "%"
	return s.queryNotes(
		`SELECT `+noteColumns+` FROM notes
		 WHERE lower(title) LIKE lower(?) OR lower(content) LIKE lower(?)
		 ORDER BY updated_at DESC`,
		pattern, pattern,
	)
}

func (s *Store) queryNotes(query string, args ...any) ([]Note, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, *n)
	}
	return notes, rows.Err()
}

func (s *Store) UpdateNote(id int64, title, content string) error {
	now := formatTime(time.Now())
	_, err := s.db.Exec(
		`UPDATE notes SET title = ?, content = ?, updated_at = ? WHERE id = ?`,
		title, content, now, id,
	)
	if err != nil {
		return fmt.Errorf("update note %d: %w", id, err)
	}
	return nil
}

func (s *Store) DeleteNote(id int64) error {
	_, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete note %d: %w", id, err)
	}
	return nil
}
