package numcal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aaronbeall/number-calendar/internal/app"
	"github.com/aaronbeall/number-calendar/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local numcal database",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		if err := app.EnsureDBDir(path); err != nil {
			return err
		}

		sqldb, err := db.Open(path)
		if err != nil {
			return err
		}
		defer sqldb.Close()

		if err := db.ApplyMigrations(sqldb); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized numcal database at %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
