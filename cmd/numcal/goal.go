package numcal

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aaronbeall/number-calendar/internal/service"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage goals and milestones",
}

var goalAddIn service.CreateGoalInput

var goalAddDataset string

var goalAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Add a goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			dataset, err := resolveDataset(sqldb, goalAddDataset)
			if err != nil {
				return err
			}
			in := goalAddIn
			in.DatasetID = dataset.ID
			in.Title = args[0]
			goal, err := service.CreateGoal(sqldb, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %q: %s %s %s %g per %s\n",
				goal.Type, goal.Title, goal.Source, goal.Metric, goal.Condition, goal.TargetValue, goal.TimePeriod)
			return nil
		})
	},
}

var goalListDataset string

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			dataset, err := resolveDataset(sqldb, goalListDataset)
			if err != nil {
				return err
			}
			goals, err := service.ListGoals(sqldb, dataset.ID)
			if err != nil {
				return err
			}
			if len(goals) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No goals yet (add one with: numcal goal add, or generate defaults with: numcal goal generate)")
				return nil
			}
			for _, g := range goals {
				shape := fmt.Sprintf("%d per %s", g.Count, g.TimePeriod)
				if g.Consecutive {
					shape = fmt.Sprintf("%d consecutive %ss", g.Count, g.TimePeriod)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t[%s] %s: %s %s %s %g (%s)\n",
					g.ID, g.Type, g.Title, g.Source, g.Metric, g.Condition, g.TargetValue, shape)
			}
			return nil
		})
	},
}

var (
	goalGenDataset   string
	goalGenBaseline  float64
	goalGenCondition string
)

var goalGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the default goal set from a baseline",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			dataset, err := resolveDataset(sqldb, goalGenDataset)
			if err != nil {
				return err
			}
			goals, err := service.GenerateDefaultGoals(sqldb, *dataset, goalGenBaseline, goalGenCondition)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %d goals for %q\n", len(goals), dataset.Name)
			return nil
		})
	},
}

var goalDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a goal and its recorded achievements",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteGoal(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalAddCmd, goalListCmd, goalGenerateCmd, goalDeleteCmd)

	goalAddCmd.Flags().StringVar(&goalAddDataset, "dataset", "", "Dataset name (default: configured default_dataset)")
	goalAddCmd.Flags().StringVar(&goalAddIn.Type, "type", "goal", "Goal type: milestone|target|goal")
	goalAddCmd.Flags().StringVar(&goalAddIn.Description, "description", "", "Goal description")
	goalAddCmd.Flags().StringVar(&goalAddIn.Badge, "badge", "", "Badge name")
	goalAddCmd.Flags().StringVar(&goalAddIn.Metric, "metric", "total", "Metric: count|total|mean|median|min|max|last")
	goalAddCmd.Flags().StringVar(&goalAddIn.Source, "source", "stats", "Source: stats|deltas|percents")
	goalAddCmd.Flags().StringVar(&goalAddIn.Condition, "condition", "above", "Condition: above|below")
	goalAddCmd.Flags().Float64Var(&goalAddIn.TargetValue, "value", 0, "Target value")
	goalAddCmd.Flags().StringVar(&goalAddIn.TimePeriod, "period", "day", "Time period: day|week|month|year|anytime")
	goalAddCmd.Flags().IntVar(&goalAddIn.Count, "count", 1, "Qualifying periods required per completion")
	goalAddCmd.Flags().BoolVar(&goalAddIn.Consecutive, "consecutive", false, "Require an unbroken run of qualifying periods")

	goalListCmd.Flags().StringVar(&goalListDataset, "dataset", "", "Dataset name (default: configured default_dataset)")

	goalGenerateCmd.Flags().StringVar(&goalGenDataset, "dataset", "", "Dataset name (default: configured default_dataset)")
	goalGenerateCmd.Flags().Float64Var(&goalGenBaseline, "baseline", 0, "Baseline value the default goals scale from")
	goalGenerateCmd.Flags().StringVar(&goalGenCondition, "condition", "above", "Direction of the default goals: above|below")
}
