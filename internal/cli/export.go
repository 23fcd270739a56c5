package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/focal/internal/config"
	"github.com/sadopc/focal/internal/export"
	"github.com/sadopc/focal/internal/store"
)

func addExport(topLevel *cobra.Command) {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks to CSV or JSON",
		Example: `
focal export --format csv
focal export --format json --out ~/tasks.json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(cfg config.Config, s *store.Store) error {
				tasks, err := s.GetAllTasks()
				if err != nil {
					return err
				}

				path := out
				if path == "" {
					path = fmt.Sprintf("focal-export-%s.%s", time.Now().Format("2006-01-02"), format)
				}

				switch format {
				case "csv":
					err = export.ToCSV(tasks, path)
				case "json":
					err = export.ToJSON(tasks, path)
				default:
					return fmt.Errorf("unknown format %q (want csv or json)", format)
				}
				if err != nil {
					return err
				}

				fmt.Printf("Exported %d tasks to %s\n", len(tasks), path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv or json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default focal-export-<date>.<format>)")

	topLevel.AddCommand(cmd)
}
