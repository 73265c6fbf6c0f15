package numcal

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aaronbeall/number-calendar/internal/engine"
	"github.com/aaronbeall/number-calendar/internal/service"
)

var (
	logDataset string
	logDate    string
	logReplace bool
)

var logCmd = &cobra.Command{
	Use:   "log NUMBER...",
	Short: "Log numbers against a calendar day",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		numbers, err := parseNumberArgs(args)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			dataset, err := resolveDataset(sqldb, logDataset)
			if err != nil {
				return err
			}
			if logReplace {
				err = service.SaveDay(sqldb, dataset.ID, logDate, numbers)
			} else {
				err = service.LogNumbers(sqldb, dataset.ID, logDate, numbers)
			}
			if err != nil {
				return err
			}
			entry, err := service.GetDay(sqldb, dataset.ID, logDate)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", dataset.Name, entry.Date, formatNumbers(entry.Numbers))
			return nil
		})
	},
}

var (
	dayDataset string
	dayDate    string
)

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Show one day's numbers and stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			dataset, err := resolveDataset(sqldb, dayDataset)
			if err != nil {
				return err
			}
			entry, err := service.GetDay(sqldb, dataset.ID, dayDate)
			if err != nil {
				return err
			}
			if entry == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No numbers logged")
				return nil
			}
			stats := engine.ComputeStats(entry.Numbers)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", dataset.Name, entry.Date, formatNumbers(entry.Numbers))
			fmt.Fprintf(cmd.OutOrStdout(), "count %d | total %g | mean %.2f | median %g | min %g | max %g\n",
				stats.Count, stats.Total, stats.Mean, stats.Median, stats.Min, stats.Max)
			return nil
		})
	},
}

var (
	clearDataset string
	clearDate    string
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all numbers from a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			dataset, err := resolveDataset(sqldb, clearDataset)
			if err != nil {
				return err
			}
			if err := service.DeleteDay(sqldb, dataset.ID, clearDate); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(logCmd, dayCmd, clearCmd)
	logCmd.Flags().StringVar(&logDataset, "dataset", "", "Dataset name (default: configured default_dataset)")
	logCmd.Flags().StringVar(&logDate, "date", "", "Date YYYY-MM-DD (default today)")
	logCmd.Flags().BoolVar(&logReplace, "replace", false, "Replace the day's numbers instead of appending")
	dayCmd.Flags().StringVar(&dayDataset, "dataset", "", "Dataset name (default: configured default_dataset)")
	dayCmd.Flags().StringVar(&dayDate, "date", "", "Date YYYY-MM-DD (default today)")
	clearCmd.Flags().StringVar(&clearDataset, "dataset", "", "Dataset name (default: configured default_dataset)")
	clearCmd.Flags().StringVar(&clearDate, "date", "", "Date YYYY-MM-DD (default today)")
}
