package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tcallaghan/recall-roster/pkg/core/fairness"
	"github.com/tcallaghan/recall-roster/pkg/core/services"
)

// RankCmd creates the rank command
func RankCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank <recall_id>",
		Short: "Show the fairness-ordered candidate list for a recall",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recallID := args[0]
			app.Logger.Debug("rank command", zap.String("recall_id", recallID))

			result, err := services.RankRecallCandidates(
				app.Ctx,
				app.Database,
				app.Logger,
				app.Cfg.FairnessConfig(),
				recallID,
			)
			if err != nil {
				return err
			}

			recall := result.Recall
			fmt.Printf("\nRecall %s: %s %s-%s at %s %s\n\n",
				recall.ID, recall.Date, recall.StartTime, recall.EndTime, recall.Suburb, recall.Station)

			if len(result.Candidates) == 0 {
				fmt.Println("No verified staff to rank.")
				return nil
			}

			cfg := app.Cfg.FairnessConfig()
			fmt.Printf("%-4s %-8s %-10s %-8s %-12s %-8s %s\n",
				"#", "Staff", "Recalls", "Hours", "Days since", "Source", "Conflicts")
			fmt.Println(strings.Repeat("-", 68))

			for i, candidate := range result.Candidates {
				fmt.Printf("%-4d %-8d %-10d %-8.1f %-12s %-8s %s\n",
					i+1,
					candidate.StaffNumber,
					candidate.RecallsInWindow,
					candidate.TotalRecallHours,
					formatDaysSince(candidate, cfg.SentinelDays),
					candidate.RecencySource,
					formatConflicts(candidate.ConflictingWindows),
				)
			}

			return nil
		},
	}

	return cmd
}

func formatDaysSince(candidate fairness.RankedCandidate, sentinelDays int) string {
	if sentinelDays <= 0 {
		sentinelDays = fairness.DefaultSentinelDays
	}
	if candidate.RecencySource == fairness.RecencyUnranked || candidate.DaysSinceLastRecall >= sentinelDays {
		return "never"
	}
	return fmt.Sprintf("%d", candidate.DaysSinceLastRecall)
}

func formatConflicts(windows []fairness.Window) string {
	if len(windows) == 0 {
		return "-"
	}

	parts := make([]string, 0, len(windows))
	for _, w := range windows {
		parts = append(parts, fmt.Sprintf("%s-%s", w.Start, w.End))
	}
	return strings.Join(parts, ", ")
}
