package numcal

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aaronbeall/number-calendar/internal/service"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Manage datasets",
}

var datasetMode string

var datasetCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			dataset, err := service.CreateDataset(sqldb, args[0], datasetMode)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created dataset %q (%s mode)\n", dataset.Name, dataset.Mode)
			return nil
		})
	},
}

var datasetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			datasets, err := service.ListDatasets(sqldb)
			if err != nil {
				return err
			}
			if len(datasets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No datasets yet (create one with: numcal dataset create NAME)")
				return nil
			}
			for _, d := range datasets {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", d.Name, d.Mode, d.CreatedAt.Format("2006-01-02"))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(datasetCmd)
	datasetCmd.AddCommand(datasetCreateCmd, datasetListCmd)
	datasetCreateCmd.Flags().StringVar(&datasetMode, "mode", "series", "Tracking mode: series (numbers sum) or trend (point-in-time readings)")
}
