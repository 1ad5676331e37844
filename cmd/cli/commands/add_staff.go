package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tcallaghan/recall-roster/pkg/core/services"
)

// AddStaffCmd creates the addStaff command
func AddStaffCmd(app *AppContext) *cobra.Command {
	var (
		station  string
		verified bool
	)

	cmd := &cobra.Command{
		Use:   "addStaff <staff_number> <first_name> <last_name> <email>",
		Short: "Register a staff member on the roster",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			staffNumber, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("staff number must be an integer, got: %s", args[0])
			}

			app.Logger.Debug("addStaff command", zap.Int("staff_number", staffNumber))

			staff, err := services.RegisterStaff(app.Ctx, app.Database, app.Logger, services.RegisterStaffParams{
				StaffNumber: staffNumber,
				FirstName:   args[1],
				LastName:    args[2],
				Email:       args[3],
				Station:     station,
				Verified:    verified,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\nStaff member %d registered with id %s\n", staff.StaffNumber, staff.ID)
			if !staff.Verified {
				fmt.Println("Member is unverified and will not appear in rankings until verified.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&station, "station", "", "Home station")
	cmd.Flags().BoolVar(&verified, "verified", false, "Mark the member as verified immediately")

	return cmd
}
