package storage

import (
	"context"
	"fmt"
)

type RewardRepo struct {
	db Querier
}

func NewRewardRepo(db Querier) *RewardRepo {
	return &RewardRepo{db: db}
}

func (r *RewardRepo) Insert(ctx context.Context, e RewardEntry) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO reward_log (player_key, quest_id, quest_title, day_key, xp, gold, levels_gained, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.PlayerKey, e.QuestID, e.QuestTitle, e.DayKey, e.XP, e.Gold, e.LevelsGained, formatTime(e.CompletedAt))
	if err != nil {
		return 0, fmt.Errorf("reward insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reward last insert id: %w", err)
	}
	return id, nil
}

// ListRecent returns up to limit entries, newest first.
func (r *RewardRepo) ListRecent(ctx context.Context, playerKey string, limit int) ([]RewardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, player_key, quest_id, quest_title, day_key, xp, gold, levels_gained, completed_at
		FROM reward_log
		WHERE player_key = ?
		ORDER BY completed_at DESC, id DESC
		LIMIT ?
	`, playerKey, limit)
	if err != nil {
		return nil, fmt.Errorf("reward list: %w", err)
	}
	defer rows.Close()

	var out []RewardEntry
	for rows.Next() {
		var (
			e  RewardEntry
			at string
		)
		if err := rows.Scan(&e.ID, &e.PlayerKey, &e.QuestID, &e.QuestTitle, &e.DayKey, &e.XP, &e.Gold, &e.LevelsGained, &at); err != nil {
			return nil, fmt.Errorf("reward scan: %w", err)
		}
		if e.CompletedAt, err = parseTime(at); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reward rows: %w", err)
	}
	return out, nil
}

// Count returns how many completions the player has been paid for.
func (r *RewardRepo) Count(ctx context.Context, playerKey string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reward_log WHERE player_key = ?`, playerKey).Scan(&n); err != nil {
		return 0, fmt.Errorf("reward count: %w", err)
	}
	return n, nil
}
