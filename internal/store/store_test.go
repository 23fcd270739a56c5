package store

import (
	"database/sql"
	"errors"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// mustCreateTask is a test helper for the common create-with-defaults case.
func mustCreateTask(t *testing.T, s *Store, title string) *Task {
	t.Helper()
	task, err := s.CreateTask(title, "", PriorityMedium, nil, nil)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

// insertSession inserts a session row directly so tests can control timestamps.
func insertSession(t *testing.T, s *Store, taskID *int64, start time.Time, minutes int, completed bool) int64 {
	t.Helper()
	var end any
	c := 0
	if completed {
		c = 1
		end = start.Add(time.Duration(minutes) * time.Minute).UTC().Format(time.RFC3339)
	}
	res, err := s.db.Exec(
		`INSERT INTO pomodoro_sessions (task_id, start_time, end_time, duration_minutes, completed) VALUES (?, ?, ?, ?, ?)`,
		taskID, start.UTC().Format(time.RFC3339), end, minutes, c,
	)
	if err != nil {
		t.Fatalf("insert session: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/focal.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestPragmasConfigured(t *testing.T) {
	s := newTestStore(t)

	var fk int
	s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if fk != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fk)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Tasks
// ============================================================

func TestCreateAndGetTask(t *testing.T) {
	s := newTestStore(t)
	due := time.Date(2030, 1, 15, 9, 0, 0, 0, time.UTC)
	task, err := s.CreateTask("Write report", "quarterly numbers", PriorityHigh, &due, nil)
	if err != nil {
		t.Fatal(err)
	}
	if task.ID == 0 {
		t.Fatal("expected non-zero ID")
	}
	if task.Title != "Write report" || task.Description != "quarterly numbers" {
		t.Fatalf("unexpected task: %+v", task)
	}
	if task.Priority != PriorityHigh || task.Status != StatusTodo {
		t.Fatalf("unexpected priority/status: %v/%v", task.Priority, task.Status)
	}
	if task.DueDate == nil || !task.DueDate.Equal(due) {
		t.Fatalf("due date not round-tripped: %v", task.DueDate)
	}
	if task.ReminderAt != nil || task.CompletedAt != nil {
		t.Fatal("expected nil reminder and completed_at")
	}
	if task.PomodoroCount != 0 {
		t.Fatalf("expected 0 pomodoros, got %d", task.PomodoroCount)
	}
	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Fatal("timestamps not set")
	}
}

func TestGetTaskNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetTask(42)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
}

func TestGetAllTasks(t *testing.T) {
	s := newTestStore(t)
	mustCreateTask(t, s, "one")
	mustCreateTask(t, s, "two")
	mustCreateTask(t, s, "three")

	tasks, err := s.GetAllTasks()
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
}

func TestUpdateTask(t *testing.T) {
	s := newTestStore(t)
	task := mustCreateTask(t, s, "old")

	if err := s.UpdateTask(task.ID, "new", "desc"); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetTask(task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "new" || got.Description != "desc" {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.UpdatedAt.Before(task.UpdatedAt) {
		t.Fatal("updated_at went backwards")
	}
}

func TestUpdateTaskStatusCompletedAt(t *testing.T) {
	s := newTestStore(t)
	task := mustCreateTask(t, s, "toggle me")

	if err := s.UpdateTaskStatus(task.ID, StatusCompleted); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetTask(task.ID)
	if got.Status != StatusCompleted {
		t.Fatalf("expected Completed, got %v", got.Status)
	}
	if got.CompletedAt == nil {
		t.Fatal("completed_at not set on completion")
	}

	// Leaving Completed clears completed_at.
	if err := s.UpdateTaskStatus(task.ID, StatusTodo); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetTask(task.ID)
	if got.Status != StatusTodo {
		t.Fatalf("expected Todo, got %v", got.Status)
	}
	if got.CompletedAt != nil {
		t.Fatal("completed_at should be cleared when leaving Completed")
	}
}

func TestUpdateTaskPriority(t *testing.T) {
	s := newTestStore(t)
	task := mustCreateTask(t, s, "bump me")

	if err := s.UpdateTaskPriority(task.ID, PriorityHigh); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetTask(task.ID)
	if got.Priority != PriorityHigh {
		t.Fatalf("expected High, got %v", got.Priority)
	}
}

func TestSetTaskDueDate(t *testing.T) {
	s := newTestStore(t)
	task := mustCreateTask(t, s, "deadline")

	due := time.Date(2031, 6, 1, 12, 30, 0, 0, time.UTC)
	if err := s.SetTaskDueDate(task.ID, &due); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetTask(task.ID)
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Fatalf("due date not set: %v", got.DueDate)
	}

	if err := s.SetTaskDueDate(task.ID, nil); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetTask(task.ID)
	if got.DueDate != nil {
		t.Fatal("due date should be cleared")
	}
}

func TestIncrementTaskPomodoros(t *testing.T) {
	s := newTestStore(t)
	task := mustCreateTask(t, s, "focus")

	for i := 0; i < 3; i++ {
		if err := s.IncrementTaskPomodoros(task.ID); err != nil {
			t.Fatal(err)
		}
	}
	got, _ := s.GetTask(task.ID)
	if got.PomodoroCount != 3 {
		t.Fatalf("expected 3 pomodoros, got %d", got.PomodoroCount)
	}
}

func TestDeleteTask(t *testing.T) {
	s := newTestStore(t)
	task := mustCreateTask(t, s, "doomed")

	if err := s.DeleteTask(task.ID); err != nil {
		t.Fatal(err)
	}
	_, err := s.GetTask(task.ID)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected ErrNoRows after delete, got %v", err)
	}
}

func TestDeleteTaskClearsWeakReferences(t *testing.T) {
	s := newTestStore(t)
	task := mustCreateTask(t, s, "referent")

	note, err := s.CreateNote("linked", "body", &task.ID)
	if err != nil {
		t.Fatal(err)
	}
	sess, err := s.CreateSession(&task.ID, time.Now(), 25)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteTask(task.ID); err != nil {
		t.Fatal(err)
	}

	// The note and session survive, their references go NULL.
	gotNote, err := s.GetNote(note.ID)
	if err != nil {
		t.Fatal(err)
	}
	if gotNote.TaskID != nil {
		t.Fatalf("note still references deleted task: %v", *gotNote.TaskID)
	}
	gotSess, err := s.GetSession(sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if gotSess.TaskID != nil {
		t.Fatalf("session still references deleted task: %v", *gotSess.TaskID)
	}
}

func TestGetDueReminders(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC().Truncate(time.Second)

	inWindow := now.Add(30 * time.Second)
	outside := now.Add(5 * time.Minute)

	if _, err := s.CreateTask("due soon", "", PriorityMedium, nil, &inWindow); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateTask("due later", "", PriorityMedium, nil, &outside); err != nil {
		t.Fatal(err)
	}
	doneTask, err := s.CreateTask("already done", "", PriorityMedium, nil, &inWindow)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateTaskStatus(doneTask.ID, StatusCompleted); err != nil {
		t.Fatal(err)
	}

	due, err := s.GetDueReminders(now, now.Add(time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if len(due) != 1 {
		t.Fatalf("expected 1 due reminder, got %d", len(due))
	}
	if due[0].Title != "due soon" {
		t.Fatalf("wrong task returned: %q", due[0].Title)
	}
}

func TestMalformedTimestampIsHardError(t *testing.T) {
	s := newTestStore(t)
	res, err := s.db.Exec(
		`INSERT INTO tasks (title, created_at, updated_at) VALUES ('bad', 'not-a-time', 'not-a-time')`,
	)
	if err != nil {
		t.Fatal(err)
	}
	id, _ := res.LastInsertId()

	if _, err := s.GetTask(id); err == nil {
		t.Fatal("expected parse error for malformed timestamp")
	}
	if _, err := s.GetAllTasks(); err == nil {
		t.Fatal("expected list to fail on malformed timestamp, not drop the row")
	}
}

// ============================================================
// Notes
// ============================================================

func TestCreateAndGetNote(t *testing.T) {
	s := newTestStore(t)
	note, err := s.CreateNote("idea", "build a thing", nil)
	if err != nil {
		t.Fatal(err)
	}
	if note.ID == 0 {
		t.Fatal("expected non-zero ID")
	}
	if note.Title != "idea" || note.Content != "build a thing" || note.TaskID != nil {
		t.Fatalf("unexpected note: %+v", note)
	}
}

func TestGetAllNotesOrder(t *testing.T) {
	s := newTestStore(t)
	first, err := s.CreateNote("first", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateNote("second", "", nil); err != nil {
		t.Fatal(err)
	}

	// Touch the first note with a later updated_at so it moves to the front.
	later := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	if _, err := s.db.Exec(`UPDATE notes SET updated_at = ? WHERE id = ?`, later, first.ID); err != nil {
		t.Fatal(err)
	}

	notes, err := s.GetAllNotes()
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}
	if notes[0].ID != first.ID {
		t.Fatalf("expected most recently updated note first, got %q", notes[0].Title)
	}
}

func TestGetNotesByTask(t *testing.T) {
	s := newTestStore(t)
	task := mustCreateTask(t, s, "parent")

	if _, err := s.CreateNote("attached", "", &task.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateNote("floating", "", nil); err != nil {
		t.Fatal(err)
	}

	notes, err := s.GetNotesByTask(task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 1 || notes[0].Title != "attached" {
		t.Fatalf("unexpected notes: %+v", notes)
	}
}

func TestSearchNotes(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CreateNote("Meeting agenda", "discuss roadmap", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateNote("groceries", "milk and ROADMAP stickers", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateNote("unrelated", "nothing here", nil); err != nil {
		t.Fatal(err)
	}

	// Case-insensitive, matches title or content.
	notes, err := s.SearchNotes("RoadMap")
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(notes))
	}

	notes, err = s.SearchNotes("agenda")
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 1 || notes[0].Title != "Meeting agenda" {
		t.Fatalf("unexpected title match: %+v", notes)
	}

	notes, err = s.SearchNotes("zzz")
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 0 {
		t.Fatalf("expected no matches, got %d", len(notes))
	}
}

func TestUpdateNote(t *testing.T) {
	s := newTestStore(t)
	note, err := s.CreateNote("draft", "v1", nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.UpdateNote(note.ID, "final", "v2"); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetNote(note.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "final" || got.Content != "v2" {
		t.Fatalf("update not applied: %+v", got)
	}
}

func TestDeleteNote(t *testing.T) {
	s := newTestStore(t)
	note, err := s.CreateNote("gone", "", nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteNote(note.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetNote(note.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected ErrNoRows after delete, got %v", err)
	}
}

// ============================================================
// Pomodoro sessions
// ============================================================

func TestCreateSessionOpen(t *testing.T) {
	s := newTestStore(t)
	start := time.Now().UTC().Truncate(time.Second)

	sess, err := s.CreateSession(nil, start, 25)
	if err != nil {
		t.Fatal(err)
	}
	if sess.Completed {
		t.Fatal("new session must not be completed")
	}
	if sess.EndTime != nil {
		t.Fatal("new session must not have an end time")
	}
	if sess.DurationMinutes != 25 {
		t.Fatalf("expected 25 minutes, got %d", sess.DurationMinutes)
	}
	if !sess.StartTime.Equal(start) {
		t.Fatalf("start not round-tripped: %v", sess.StartTime)
	}
}

func TestCompleteSession(t *testing.T) {
	s := newTestStore(t)
	start := time.Now().UTC().Truncate(time.Second)
	sess, err := s.CreateSession(nil, start, 1)
	if err != nil {
		t.Fatal(err)
	}

	end := start.Add(time.Minute)
	if err := s.CompleteSession(sess.ID, end); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetSession(sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Completed {
		t.Fatal("session should be completed")
	}
	if got.EndTime == nil || !got.EndTime.Equal(end) {
		t.Fatalf("end time not set: %v", got.EndTime)
	}
}

func TestDeleteSession(t *testing.T) {
	s := newTestStore(t)
	sess, err := s.CreateSession(nil, time.Now().UTC(), 25)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteSession(sess.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetSession(sess.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows after delete, got %v", err)
	}
}

func TestGetSessionsByTask(t *testing.T) {
	s := newTestStore(t)
	task := mustCreateTask(t, s, "focus target")

	insertSession(t, s, &task.ID, time.Now().Add(-2*time.Hour), 25, true)
	insertSession(t, s, &task.ID, time.Now().Add(-1*time.Hour), 25, true)
	insertSession(t, s, nil, time.Now(), 25, true)

	sessions, err := s.GetSessionsByTask(task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	// Newest first.
	if !sessions[0].StartTime.After(sessions[1].StartTime) {
		t.Fatal("sessions not ordered newest first")
	}
}

func TestGetTodayStats(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	insertSession(t, s, nil, midnight.Add(-2*time.Hour), 25, true)   // yesterday
	insertSession(t, s, nil, midnight.Add(9*time.Hour), 25, true)    // today
	insertSession(t, s, nil, midnight.Add(10*time.Hour), 25, true)   // today
	insertSession(t, s, nil, midnight.Add(11*time.Hour), 25, false)  // today, not completed

	stats, err := s.GetTodayStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.CompletedSessions != 2 {
		t.Fatalf("expected 2 completed sessions today, got %d", stats.CompletedSessions)
	}
	if stats.TotalMinutes != 50 {
		t.Fatalf("expected 50 minutes, got %d", stats.TotalMinutes)
	}
}

func TestGetDailySessionStats(t *testing.T) {
	s := newTestStore(t)
	day1 := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 11, 9, 0, 0, 0, time.UTC)

	insertSession(t, s, nil, day1, 25, true)
	insertSession(t, s, nil, day1.Add(time.Hour), 25, true)
	insertSession(t, s, nil, day2, 25, true)
	insertSession(t, s, nil, day2.Add(time.Hour), 25, false) // incomplete, ignored

	stats, err := s.GetDailySessionStats(day1.Add(-time.Hour), day2.Add(24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 days, got %d", len(stats))
	}
	if stats[0].Date != "2026-08-10" || stats[0].Sessions != 2 || stats[0].Minutes != 50 {
		t.Fatalf("unexpected day 1: %+v", stats[0])
	}
	if stats[1].Date != "2026-08-11" || stats[1].Sessions != 1 || stats[1].Minutes != 25 {
		t.Fatalf("unexpected day 2: %+v", stats[1])
	}
}

// ============================================================
// Settings
// ============================================================

func TestDefaultDurations(t *testing.T) {
	s := newTestStore(t)

	work, err := s.WorkMinutes()
	if err != nil {
		t.Fatal(err)
	}
	brk, err := s.BreakMinutes()
	if err != nil {
		t.Fatal(err)
	}
	if work != 25 || brk != 5 {
		t.Fatalf("expected defaults 25/5, got %d/%d", work, brk)
	}
}

func TestMigrationSeedsSettings(t *testing.T) {
	s := newTestStore(t)

	settings, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(settings) != 2 {
		t.Fatalf("expected 2 seeded settings, got %d", len(settings))
	}
	// Ordered by key.
	if settings[0].Key != SettingBreakMinutes || settings[0].Value != "5" {
		t.Fatalf("unexpected first setting: %+v", settings[0])
	}
	if settings[1].Key != SettingWorkMinutes || settings[1].Value != "25" {
		t.Fatalf("unexpected second setting: %+v", settings[1])
	}
}

func TestSetPomodoroDurations(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetPomodoroDurations(50, 10); err != nil {
		t.Fatal(err)
	}
	work, _ := s.WorkMinutes()
	brk, _ := s.BreakMinutes()
	if work != 50 || brk != 10 {
		t.Fatalf("durations not saved: %d/%d", work, brk)
	}
}

func TestSetPomodoroDurationsRejectsBelowOne(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetPomodoroDurations(0, 5); err == nil {
		t.Fatal("expected error for work < 1")
	}
	// Nothing written.
	work, _ := s.WorkMinutes()
	if work != 25 {
		t.Fatalf("work minutes mutated on failed save: %d", work)
	}
}

func TestGetSettingMissing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetSetting("no_such_key"); err == nil {
		t.Fatal("expected error for missing key")
	}
}

// ============================================================
// Parsing helpers
// ============================================================

func TestParsePriority(t *testing.T) {
	cases := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{"low", PriorityLow, false},
		{"Medium", PriorityMedium, false},
		{"HIGH", PriorityHigh, false},
		{"1", PriorityLow, false},
		{"2", PriorityMedium, false},
		{"3", PriorityHigh, false},
		{" med ", PriorityMedium, false},
		{"urgent", 0, true},
		{"", 0, true},
	}
	for _, c := range cases {
		got, err := ParsePriority(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParsePriority(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePriority(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParsePriority(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"todo", StatusTodo, false},
		{"in-progress", StatusInProgress, false},
		{"done", StatusCompleted, false},
		{"Completed", StatusCompleted, false},
		{"0", StatusTodo, false},
		{"maybe", 0, true},
	}
	for _, c := range cases {
		got, err := ParseStatus(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseStatus(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseStatus(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseStatus(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
