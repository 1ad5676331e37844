package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tcallaghan/recall-roster/pkg/core/services"
)

// ReportCmd creates the report command
func ReportCmd(app *AppContext) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show per-staff fairness statistics for a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("report command", zap.String("from", from), zap.String("to", to))

			stats, err := services.FairnessReport(
				app.Ctx,
				app.Database,
				app.Logger,
				app.Cfg.FairnessConfig(),
				from,
				to,
			)
			if err != nil {
				return err
			}

			if len(stats) == 0 {
				fmt.Println("\nNo staff statistics for the requested range.")
				return nil
			}

			fmt.Printf("\n%-8s %-22s %-8s %-8s %-10s %-8s %-12s %s\n",
				"Staff", "Name", "Recalls", "Hours", "Avg hrs", "Manual", "Last recall", "Days since")
			fmt.Println(strings.Repeat("-", 92))

			for _, stat := range stats {
				lastRecall := stat.LastRecallDate
				daysSince := fmt.Sprintf("%d", stat.DaysSinceLastRecall)
				if stat.DaysSinceLastRecall < 0 {
					lastRecall = "never"
					daysSince = "-"
				}

				fmt.Printf("%-8d %-22s %-8d %-8.1f %-10.1f %-8d %-12s %s\n",
					stat.StaffNumber,
					fmt.Sprintf("%s %s", stat.FirstName, stat.LastName),
					stat.TotalRecalls,
					stat.TotalHours,
					stat.AvgHoursPerRecall,
					stat.ManualAssignments,
					lastRecall,
					daysSince,
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Range start date (2006-01-02), defaults to the fairness window start")
	cmd.Flags().StringVar(&to, "to", "", "Range end date (2006-01-02), defaults to today")

	return cmd
}
