package db

import (
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS datasets (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  mode TEXT NOT NULL DEFAULT 'series' CHECK(mode IN ('series', 'trend')),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS day_entries (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  dataset_id TEXT NOT NULL,
  date TEXT NOT NULL,
  numbers_json TEXT NOT NULL,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(dataset_id, date),
  FOREIGN KEY(dataset_id) REFERENCES datasets(id)
);

CREATE INDEX IF NOT EXISTS idx_day_entries_dataset_date ON day_entries(dataset_id, date);

CREATE TABLE IF NOT EXISTS goals (
  id TEXT PRIMARY KEY,
  dataset_id TEXT NOT NULL,
  type TEXT NOT NULL CHECK(type IN ('milestone', 'target', 'goal')),
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  badge TEXT NOT NULL DEFAULT '',
  metric TEXT NOT NULL,
  source TEXT NOT NULL,
  condition TEXT NOT NULL CHECK(condition IN ('above', 'below')),
  target_value REAL NOT NULL,
  time_period TEXT NOT NULL,
  count INTEGER NOT NULL DEFAULT 1 CHECK(count >= 1),
  consecutive INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(dataset_id) REFERENCES datasets(id)
);

CREATE INDEX IF NOT EXISTS idx_goals_dataset_id ON goals(dataset_id);

CREATE TABLE IF NOT EXISTS app_config (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
	{
		version: 2,
		name:    "achievement_log",
		sql: `
CREATE TABLE IF NOT EXISTS achievements (
  id TEXT PRIMARY KEY,
  goal_id TEXT NOT NULL,
  dataset_id TEXT NOT NULL,
  period_key TEXT NOT NULL,
  occurrence INTEGER NOT NULL,
  completed_at TEXT NOT NULL,
  recorded_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(goal_id) REFERENCES goals(id),
  FOREIGN KEY(dataset_id) REFERENCES datasets(id)
);

CREATE INDEX IF NOT EXISTS idx_achievements_goal_id ON achievements(goal_id);
CREATE INDEX IF NOT EXISTS idx_achievements_dataset_id ON achievements(dataset_id);
`,
	},
}

func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}

		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}

	return nil
}
