package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tcallaghan/recall-roster/pkg/core/services"
)

// ArchiveCmd creates the archive command
func ArchiveCmd(app *AppContext) *cobra.Command {
	var months int

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Move old recalls and assignments into the archive tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if months == 0 {
				months = app.Cfg.Maintenance.ArchiveAfterMonths
			}
			app.Logger.Debug("archive command", zap.Int("months", months))

			counts, err := services.ArchiveOldRecalls(
				app.Ctx,
				app.Database,
				app.Logger,
				app.Cfg.FairnessConfig(),
				months,
			)
			if err != nil {
				return err
			}

			fmt.Printf("\nArchived %d recall(s) and %d assignment(s); deleted %d response(s).\n",
				counts.RecallsArchived, counts.AssignmentsArchived, counts.ResponsesDeleted)
			return nil
		},
	}

	cmd.Flags().IntVar(&months, "months", 0, "Archive recalls older than this many months (default from config)")

	return cmd
}
