package numcal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aaronbeall/number-calendar/internal/engine"
	"github.com/aaronbeall/number-calendar/internal/service"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "Evaluate goals and show achievements",
}

var achievementsDataset string

var achievementsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show every goal's completions, grouped by type",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			dataset, err := resolveDataset(sqldb, achievementsDataset)
			if err != nil {
				return err
			}
			results, err := service.EvaluateDataset(sqldb, *dataset, time.Now())
			if err != nil {
				return err
			}
			grouped := engine.ResultsByType(results)
			for _, goalType := range []engine.GoalType{engine.GoalTypeMilestone, engine.GoalTypeTarget, engine.GoalTypeGoal} {
				group := grouped[goalType]
				if len(group) == 0 {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%ss:\n", goalType)
				for _, r := range group {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s: %d completed\n", r.Goal.Title, r.CompletedCount)
					for _, a := range r.Achievements {
						if a.Provisional {
							fmt.Fprintf(cmd.OutOrStdout(), "    %s (in progress)\n", a.PeriodKey)
						} else {
							fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", a.CompletedAt)
						}
					}
				}
			}
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No goals yet")
			}
			return nil
		})
	},
}

var checkDataset string

var achievementsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report achievements completed since the last check",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			dataset, err := resolveDataset(sqldb, checkDataset)
			if err != nil {
				return err
			}
			news, err := service.CheckNewAchievements(sqldb, *dataset, time.Now())
			if err != nil {
				return err
			}
			if len(news) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing new")
				return nil
			}
			for _, n := range news {
				if n.FirstForGoal {
					fmt.Fprintf(cmd.OutOrStdout(), "★ First completion: %s (%s)\n", n.Goal.Title, n.Achievement.CompletedAt)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "  Completed again: %s (%s)\n", n.Goal.Title, n.Achievement.CompletedAt)
				}
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(achievementsCmd)
	achievementsCmd.AddCommand(achievementsShowCmd, achievementsCheckCmd)
	achievementsShowCmd.Flags().StringVar(&achievementsDataset, "dataset", "", "Dataset name (default: configured default_dataset)")
	achievementsCheckCmd.Flags().StringVar(&checkDataset, "dataset", "", "Dataset name (default: configured default_dataset)")
}
