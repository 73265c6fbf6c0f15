package numcal

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aaronbeall/number-calendar/internal/engine"
	"github.com/aaronbeall/number-calendar/internal/service"
)

var (
	statsDataset string
	statsPeriod  string
	statsJSON    bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show rolled-up stats per day, week, month, year, or all time",
	RunE: func(cmd *cobra.Command, args []string) error {
		period, err := engine.ParsePeriod(statsPeriod)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			dataset, err := resolveDataset(sqldb, statsDataset)
			if err != nil {
				return err
			}
			aggs, err := service.BuildDatasetAggregates(sqldb, *dataset)
			if err != nil {
				return err
			}
			gset := aggs.Granularity(period)
			if len(gset.Keys) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No numbers logged yet")
				return nil
			}

			if statsJSON {
				out := make([]*engine.PeriodAggregate, 0, len(gset.Keys))
				for _, key := range gset.Keys {
					out = append(out, gset.ByKey[key])
				}
				raw, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return fmt.Errorf("encode stats: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(raw))
				return nil
			}

			for _, key := range gset.Keys {
				agg := gset.ByKey[key]
				s := agg.Stats
				line := fmt.Sprintf("%s\tcount %d | total %g | mean %.2f | median %g | min %g | max %g | cumulative %g",
					agg.Key, s.Count, s.Total, s.Mean, s.Median, s.Min, s.Max, agg.Cumulative.Total)
				if agg.Deltas != nil && agg.Deltas.Last != nil {
					line += fmt.Sprintf(" | delta %+g", *agg.Deltas.Last)
				}
				if agg.Percents != nil && agg.Percents.Last != nil {
					line += fmt.Sprintf(" (%+.1f%%)", *agg.Percents.Last)
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			ex := gset.Extremes
			fmt.Fprintf(cmd.OutOrStdout(), "extremes\ttotal %g..%g | max %g | min %g\n",
				ex.LowestTotal, ex.HighestTotal, ex.HighestMax, ex.LowestMin)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsDataset, "dataset", "", "Dataset name (default: configured default_dataset)")
	statsCmd.Flags().StringVar(&statsPeriod, "period", "day", "Granularity: day|week|month|year|alltime")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
}
