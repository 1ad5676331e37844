package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"
)

// MaintenanceRun describes the next occurrence of a scheduled
// maintenance job
type MaintenanceRun struct {
	Job  string
	Rule string
	Next time.Time
}

// NextMaintenanceRuns resolves each configured recurrence rule to its
// next occurrence after now. Jobs with an empty rule are skipped; a
// rule that yields no future occurrence is reported with a zero Next.
func NextMaintenanceRuns(logger *zap.Logger, now time.Time, rules map[string]string) ([]MaintenanceRun, error) {
	runs := make([]MaintenanceRun, 0, len(rules))
	for job, ruleStr := range rules {
		if ruleStr == "" {
			continue
		}

		rule, err := rrule.StrToRRule(ruleStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse recurrence rule for %s: %w", job, err)
		}
		rule.DTStart(now.Truncate(time.Minute))

		next := rule.After(now, false)
		if next.IsZero() {
			logger.Warn("Recurrence rule has no future occurrences", zap.String("job", job))
		}

		runs = append(runs, MaintenanceRun{Job: job, Rule: ruleStr, Next: next})
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Job < runs[j].Job })
	return runs, nil
}
