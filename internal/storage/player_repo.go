package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrVersionConflict is returned when a player row changed since it was read.
var ErrVersionConflict = errors.New("player record changed concurrently")

type PlayerRepo struct {
	db Querier
}

func NewPlayerRepo(db Querier) *PlayerRepo {
	return &PlayerRepo{db: db}
}

const playerColumns = `key, level, xp, gold, stat_points, stat_physical, stat_intellectual, stat_spiritual,
	day_key, day_started_at, version, updated_at`

func (r *PlayerRepo) Get(ctx context.Context, key string) (*Player, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE key = ?`, key)
	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("player get: %w", err)
	}
	return p, nil
}

// GetOrCreate returns the player row for key, inserting a level 1 row on first use.
func (r *PlayerRepo) GetOrCreate(ctx context.Context, key string) (*Player, error) {
	p, err := r.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	now := formatTime(time.Now())
	if _, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO players (key, created_at, updated_at) VALUES (?, ?, ?)`, key, now, now); err != nil {
		return nil, fmt.Errorf("player insert: %w", err)
	}
	return r.Get(ctx, key)
}

// UpdateIfVersion writes p only if the stored version still equals p.Version, then
// bumps p.Version. Otherwise it returns ErrVersionConflict.
func (r *PlayerRepo) UpdateIfVersion(ctx context.Context, p *Player) error {
	now := time.Now()
	res, err := r.db.ExecContext(ctx, `
		UPDATE players
		SET level = ?, xp = ?, gold = ?, stat_points = ?,
			stat_physical = ?, stat_intellectual = ?, stat_spiritual = ?,
			day_key = ?, day_started_at = ?,
			version = version + 1, updated_at = ?
		WHERE key = ? AND version = ?
	`, p.Level, p.XP, p.Gold, p.StatPoints,
		p.StatPhysical, p.StatIntellectual, p.StatSpiritual,
		p.DayKey, formatTimePtr(p.DayStartedAt),
		formatTime(now), p.Key, p.Version)
	if err != nil {
		return fmt.Errorf("player update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("player update rows: %w", err)
	}
	if n == 0 {
		return ErrVersionConflict
	}
	p.Version++
	p.UpdatedAt = now
	return nil
}

// ListKeysWithStaleDay returns players holding an active day other than dayKey.
func (r *PlayerRepo) ListKeysWithStaleDay(ctx context.Context, dayKey string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT key FROM players
		WHERE day_key IS NOT NULL AND day_key <> ?
		ORDER BY key ASC
	`, dayKey)
	if err != nil {
		return nil, fmt.Errorf("player stale list: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("player stale scan: %w", err)
		}
		out = append(out, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("player stale rows: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row scanner) (*Player, error) {
	var (
		p         Player
		dayKey    sql.NullString
		dayStart  sql.NullString
		updatedAt string
	)
	if err := row.Scan(&p.Key, &p.Level, &p.XP, &p.Gold, &p.StatPoints,
		&p.StatPhysical, &p.StatIntellectual, &p.StatSpiritual,
		&dayKey, &dayStart, &p.Version, &updatedAt); err != nil {
		return nil, err
	}
	if dayKey.Valid {
		v := dayKey.String
		p.DayKey = &v
	}
	started, err := parseNullTime(dayStart)
	if err != nil {
		return nil, err
	}
	p.DayStartedAt = started
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
