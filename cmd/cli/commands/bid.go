package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tcallaghan/recall-roster/pkg/core/services"
)

// BidCmd creates the bid command
func BidCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bid <recall_id> <staff_id> <available|unavailable>",
		Short: "Record a staff member's availability response to a recall",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			recallID, staffID, response := args[0], args[1], args[2]
			app.Logger.Debug("bid command",
				zap.String("recall_id", recallID),
				zap.String("staff_id", staffID),
				zap.String("response", response))

			result, err := services.SubmitBid(app.Ctx, app.Database, app.Logger, recallID, staffID, response)
			if err != nil {
				return err
			}

			fmt.Printf("\nResponse %q recorded for staff %s on recall %s\n", response, staffID, recallID)

			if len(result.Conflicts) > 0 {
				fmt.Println("\nWarning: this staff member already holds assignments overlapping the recall window:")
				for _, w := range result.Conflicts {
					fmt.Printf("  %s %s-%s\n", w.Date, w.Start, w.End)
				}
			}

			return nil
		},
	}

	return cmd
}
