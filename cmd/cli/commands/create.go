package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tcallaghan/recall-roster/pkg/core/services"
)

// CreateRecallCmd creates the createRecall command
func CreateRecallCmd(app *AppContext) *cobra.Command {
	var (
		suburb      string
		station     string
		description string
		admin       string
	)

	cmd := &cobra.Command{
		Use:   "createRecall <date> <start> <end>",
		Short: "Open a new recall shift for bidding",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, start, end := args[0], args[1], args[2]
			app.Logger.Debug("createRecall command",
				zap.String("date", date),
				zap.String("start", start),
				zap.String("end", end))

			recall, err := services.CreateRecall(app.Ctx, app.Database, app.Logger, services.CreateRecallParams{
				Date:        date,
				StartTime:   start,
				EndTime:     end,
				Suburb:      suburb,
				Station:     station,
				Description: description,
				CreatedBy:   admin,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\nRecall %s created for %s %s-%s\n", recall.ID, recall.Date, recall.StartTime, recall.EndTime)
			return nil
		},
	}

	cmd.Flags().StringVar(&suburb, "suburb", "", "Suburb of the station needing cover")
	cmd.Flags().StringVar(&station, "station", "", "Station needing cover")
	cmd.Flags().StringVar(&description, "description", "", "Free-form shift description")
	cmd.Flags().StringVar(&admin, "admin", "", "Identifier of the admin opening the recall")

	return cmd
}
