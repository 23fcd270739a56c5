// Package cli wires the cobra command tree. The bare binary launches
// the TUI; subcommands cover scripted use and the reminder daemon.
package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/sadopc/focal/internal/config"
	"github.com/sadopc/focal/internal/notify"
	"github.com/sadopc/focal/internal/store"
	"github.com/sadopc/focal/internal/tui"
)

var dbFlag string

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focal",
		Short: "Tasks, notes and pomodoros in the terminal",
		Example: `
focal
focal add Write the report --priority high --due "2026-03-01 17:00"
focal list --status todo
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(cfg config.Config, s *store.Store) error {
				app := tui.NewApp(s, notify.New(cfg.Notifications))
				p := tea.NewProgram(app, tea.WithAltScreen())
				_, err := p.Run()
				return err
			})
		},
	}

	cmd.PersistentFlags().StringVar(&dbFlag, "db", "", "database path (default from config)")

	addAdd(cmd)
	addList(cmd)
	addDone(cmd)
	addExport(cmd)
	addDaemon(cmd)

	return cmd
}

func Execute() error {
	return New().Execute()
}

// withStore opens config and store, runs fn and closes up. Every
// command goes through here so --db behaves the same everywhere.
func withStore(fn func(cfg config.Config, s *store.Store) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if dbFlag != "" {
		expanded, err := homedir.Expand(dbFlag)
		if err != nil {
			return fmt.Errorf("expand db path: %w", err)
		}
		cfg.DBPath = expanded
	}

	s, err := store.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	return fn(cfg, s)
}
