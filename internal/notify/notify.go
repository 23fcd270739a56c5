// Package notify sends desktop notifications. Every send is best
// effort: a missing notification daemon logs a line and nothing else.
package notify

import (
	"fmt"
	"log"
	"time"

	"github.com/gen2brain/beeep"
)

type Notifier struct {
	enabled bool
}

func New(enabled bool) Notifier {
	return Notifier{enabled: enabled}
}

// PomodoroComplete fires when a work interval runs out.
func (n Notifier) PomodoroComplete(breakMinutes int) {
	n.send("🍅 Pomodoro complete", fmt.Sprintf("Well done! Take a %d minute break.", breakMinutes))
}

// BreakOver fires when a break runs out.
func (n Notifier) BreakOver() {
	n.send("🍅 Break over", "Ready for the next pomodoro?")
}

// TaskReminder fires from the daemon when a task's reminder time
// arrives. due may be nil for tasks with a reminder but no deadline.
func (n Notifier) TaskReminder(title string, due *time.Time) {
	body := "No deadline set"
	if due != nil {
		body = "Due " + due.Local().Format("2006-01-02 15:04")
	}
	n.send("📅 "+title, body)
}

func (n Notifier) send(title, body string) {
	if !n.enabled {
		return
	}
	if err := beeep.Notify(title, body, ""); err != nil {
		log.Printf("notification failed: %v", err)
	}
}
