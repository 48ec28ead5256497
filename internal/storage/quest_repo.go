package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type QuestRepo struct {
	db Querier
}

func NewQuestRepo(db Querier) *QuestRepo {
	return &QuestRepo{db: db}
}

// ListByPlayer returns the player's current list, top first.
func (r *QuestRepo) ListByPlayer(ctx context.Context, playerKey string) ([]Quest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, player_key, position, kind, template_id, type, title, note,
			minutes, xp_reward, gold_reward, completed, completed_at
		FROM quests
		WHERE player_key = ?
		ORDER BY position ASC
	`, playerKey)
	if err != nil {
		return nil, fmt.Errorf("quest list: %w", err)
	}
	defer rows.Close()

	var out []Quest
	for rows.Next() {
		q, err := scanQuest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quest list rows: %w", err)
	}
	return out, nil
}

// Replace swaps the player's whole list for quests. Positions follow slice order.
func (r *QuestRepo) Replace(ctx context.Context, playerKey string, quests []Quest) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM quests WHERE player_key = ?`, playerKey); err != nil {
		return fmt.Errorf("quest clear: %w", err)
	}
	for i, q := range quests {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO quests (
				player_key, id, position, kind, template_id, type, title, note,
				minutes, xp_reward, gold_reward, completed, completed_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, playerKey, q.ID, i, q.Kind, q.TemplateID, q.Type, q.Title, q.Note,
			q.Minutes, q.XPReward, q.GoldReward, boolToInt(q.Completed), formatTimePtr(q.CompletedAt))
		if err != nil {
			return fmt.Errorf("quest insert: %w", err)
		}
	}
	return nil
}

func scanQuest(row scanner) (*Quest, error) {
	var (
		q           Quest
		templateID  sql.NullString
		completed   int
		completedAt sql.NullString
	)
	if err := row.Scan(&q.ID, &q.PlayerKey, &q.Position, &q.Kind, &templateID, &q.Type, &q.Title, &q.Note,
		&q.Minutes, &q.XPReward, &q.GoldReward, &completed, &completedAt); err != nil {
		return nil, fmt.Errorf("quest scan: %w", err)
	}
	if templateID.Valid {
		v := templateID.String
		q.TemplateID = &v
	}
	q.Completed = completed != 0
	at, err := parseNullTime(completedAt)
	if err != nil {
		return nil, err
	}
	q.CompletedAt = at
	return &q, nil
}
