package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tcallaghan/recall-roster/pkg/core/services"
)

// MaintenanceCmd creates the maintenance command
func MaintenanceCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maintenance",
		Short: "Show the next scheduled maintenance runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := services.NextMaintenanceRuns(app.Logger, time.Now(), app.Cfg.MaintenanceRules())
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Println("\nNo maintenance schedules configured.")
				return nil
			}

			fmt.Println()
			for _, run := range runs {
				next := "no future occurrence"
				if !run.Next.IsZero() {
					next = run.Next.Format("2006-01-02 15:04")
				}
				fmt.Printf("%-14s %-40s next: %s\n", run.Job, run.Rule, next)
			}

			return nil
		},
	}

	return cmd
}
