package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS players (
			key TEXT PRIMARY KEY,
			level INTEGER NOT NULL DEFAULT 1,
			xp INTEGER NOT NULL DEFAULT 0,
			gold INTEGER NOT NULL DEFAULT 0,
			stat_points INTEGER NOT NULL DEFAULT 0,
			stat_physical INTEGER NOT NULL DEFAULT 0,
			stat_intellectual INTEGER NOT NULL DEFAULT 0,
			stat_spiritual INTEGER NOT NULL DEFAULT 0,

			day_key TEXT,
			day_started_at TEXT,

			version INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS quests (
			player_key TEXT NOT NULL,
			id TEXT NOT NULL,
			position INTEGER NOT NULL,
			kind TEXT NOT NULL,
			template_id TEXT,
			type TEXT NOT NULL,
			title TEXT NOT NULL,
			minutes INTEGER NOT NULL,
			xp_reward INTEGER NOT NULL,
			gold_reward INTEGER NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			completed_at TEXT,

			PRIMARY KEY(player_key, id),
			FOREIGN KEY(player_key) REFERENCES players(key)
		);`,
		`CREATE TABLE IF NOT EXISTS templates (
			player_key TEXT NOT NULL,
			id TEXT NOT NULL,
			title TEXT NOT NULL,
			type TEXT NOT NULL,
			minutes INTEGER NOT NULL,
			archived INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,

			PRIMARY KEY(player_key, id),
			FOREIGN KEY(player_key) REFERENCES players(key)
		);`,
		// Completions are audited here because the quest list itself is wiped daily.
		`CREATE TABLE IF NOT EXISTS reward_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_key TEXT NOT NULL,
			quest_id TEXT NOT NULL,
			quest_title TEXT NOT NULL,
			day_key TEXT NOT NULL,
			xp INTEGER NOT NULL,
			gold INTEGER NOT NULL,
			levels_gained INTEGER NOT NULL DEFAULT 0,
			completed_at TEXT NOT NULL,
			FOREIGN KEY(player_key) REFERENCES players(key)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_players_day_key ON players(day_key);`,
		`CREATE INDEX IF NOT EXISTS idx_quests_player_position ON quests(player_key, position);`,
		`CREATE INDEX IF NOT EXISTS idx_reward_log_player_completed_at ON reward_log(player_key, completed_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Columns added after the first release (ignore if already present).
	alterStmts := []string{
		`ALTER TABLE quests ADD COLUMN note TEXT NOT NULL DEFAULT '';`,
	}
	for _, stmt := range alterStmts {
		_, err := db.ExecContext(ctx, stmt)
		if err != nil && !strings.Contains(err.Error(), "duplicate column") {
			return fmt.Errorf("migrate alter: %w", err)
		}
	}

	return nil
}
