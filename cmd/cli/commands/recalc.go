package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tcallaghan/recall-roster/pkg/core/services"
)

// RecalcCmd creates the recalc command
func RecalcCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recalc",
		Short: "Recompute cached recall totals for all verified staff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			updated, err := services.RecalculateAllTotals(
				app.Ctx,
				app.Database,
				app.Logger,
				app.Cfg.FairnessConfig(),
			)
			if err != nil {
				return err
			}

			fmt.Printf("\nRecall totals recalculated; %d staff record(s) updated.\n", updated)
			return nil
		},
	}

	return cmd
}
