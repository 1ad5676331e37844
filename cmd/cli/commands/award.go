package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tcallaghan/recall-roster/pkg/core/services"
)

// AwardCmd creates the award command
func AwardCmd(app *AppContext) *cobra.Command {
	var (
		hours    float64
		note     string
		admin    string
		noNotify bool
	)

	cmd := &cobra.Command{
		Use:   "award <recall_id> <staff_id>",
		Short: "Award a recall to a staff member",
		Long: `Awards a recall shift to a staff member after checking their schedule
for conflicting assignments. The award is classified as top-ranked or
manual against the fairness ordering of staff who responded available,
and the assignee is notified by email when a notifier is configured.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			recallID, staffID := args[0], args[1]
			app.Logger.Debug("award command",
				zap.String("recall_id", recallID),
				zap.String("staff_id", staffID))

			notifier := app.Notifier
			if noNotify {
				notifier = nil
			}

			result, err := services.AwardRecall(
				app.Ctx,
				app.Database,
				notifier,
				app.Logger,
				app.Cfg.FairnessConfig(),
				services.AwardParams{
					RecallID:   recallID,
					StaffID:    staffID,
					AssignedBy: admin,
					Hours:      hours,
					Note:       note,
				},
			)
			if err != nil {
				return err
			}

			fmt.Printf("\nRecall %s awarded to staff %s (%.1f hours, %s assignment)\n",
				recallID, staffID, result.Assignment.Hours, result.Classification)
			if result.Notified {
				fmt.Println("Assignment notification sent.")
			} else {
				fmt.Println("No notification sent.")
			}

			return nil
		},
	}

	cmd.Flags().Float64Var(&hours, "hours", 0, "Override the hours credited for the shift")
	cmd.Flags().StringVar(&note, "note", "", "Note recorded on the assignment")
	cmd.Flags().StringVar(&admin, "admin", "", "Identifier of the admin making the award")
	cmd.Flags().BoolVar(&noNotify, "no-notify", false, "Skip the assignment notification email")

	return cmd
}
