package numcal

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/aaronbeall/number-calendar/internal/app"
	"github.com/aaronbeall/number-calendar/internal/db"
	"github.com/aaronbeall/number-calendar/internal/model"
	"github.com/aaronbeall/number-calendar/internal/service"
)

func withDB(run func(*sql.DB) error) error {
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
	return run(sqldb)
}

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	return app.DefaultDBPath()
}

// resolveDataset finds a dataset by name, falling back to the configured
// default dataset when name is empty.
func resolveDataset(sqldb *sql.DB, name string) (*model.Dataset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		fallback, ok, err := service.GetConfig(sqldb, service.ConfigDefaultDataset)
		if err != nil {
			return nil, err
		}
		if !ok || fallback == "" {
			return nil, fmt.Errorf("no dataset given and no default_dataset configured (set one with: numcal config set default_dataset NAME)")
		}
		name = fallback
	}
	return service.GetDatasetByName(sqldb, name)
}

func parseNumberArgs(args []string) ([]float64, error) {
	numbers := make([]float64, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		numbers = append(numbers, v)
	}
	return numbers, nil
}

func formatNumbers(numbers []float64) string {
	parts := make([]string, 0, len(numbers))
	for _, n := range numbers {
		parts = append(parts, strconv.FormatFloat(n, 'f', -1, 64))
	}
	return strings.Join(parts, ", ")
}
