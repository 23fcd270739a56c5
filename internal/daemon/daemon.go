// Package daemon implements the background reminder process. It shares
// nothing with the TUI except the database file.
package daemon

import (
	"context"
	"log"
	"time"

	"github.com/sadopc/focal/internal/notify"
	"github.com/sadopc/focal/internal/store"
)

type Daemon struct {
	store    *store.Store
	notifier notify.Notifier
	interval time.Duration
}

func New(s *store.Store, n notify.Notifier, interval time.Duration) *Daemon {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Daemon{store: s, notifier: n, interval: interval}
}

// Run polls until ctx is cancelled. Poll errors are logged and the
// loop keeps going.
func (d *Daemon) Run(ctx context.Context) error {
	log.Printf("reminder daemon started, polling every %s", d.interval)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			log.Printf("reminder daemon stopping")
			return ctx.Err()
		case now := <-ticker.C:
			if err := d.poll(last, now); err != nil {
				log.Printf("check reminders: %v", err)
			}
			last = now
		}
	}
}

// poll fires a notification for every task whose reminder fell inside
// the window. Consecutive polls use half-open [from, to) windows, so a
// reminder fires exactly once.
func (d *Daemon) poll(from, to time.Time) error {
	tasks, err := d.store.GetDueReminders(from, to)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		d.notifier.TaskReminder(t.Title, t.DueDate)
		log.Printf("reminder fired: %s", t.Title)
	}
	return nil
}
