package numcal

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "numcal",
	Short: "numcal logs numbers against calendar days and tracks goals",
	Long:  "numcal is a local-first number calendar: log sets of numbers per day, roll them up into weekly/monthly/yearly stats, and earn streak and milestone achievements.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
}
