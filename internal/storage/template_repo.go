package storage

import (
	"context"
	"fmt"
)

type TemplateRepo struct {
	db Querier
}

func NewTemplateRepo(db Querier) *TemplateRepo {
	return &TemplateRepo{db: db}
}

// ListByPlayer returns every template, archived ones included, oldest first.
func (r *TemplateRepo) ListByPlayer(ctx context.Context, playerKey string) ([]Template, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, player_key, title, type, minutes, archived, created_at
		FROM templates
		WHERE player_key = ?
		ORDER BY created_at ASC, rowid ASC
	`, playerKey)
	if err != nil {
		return nil, fmt.Errorf("template list: %w", err)
	}
	defer rows.Close()

	var out []Template
	for rows.Next() {
		var (
			t         Template
			archived  int
			createdAt string
		)
		if err := rows.Scan(&t.ID, &t.PlayerKey, &t.Title, &t.Type, &t.Minutes, &archived, &createdAt); err != nil {
			return nil, fmt.Errorf("template scan: %w", err)
		}
		t.Archived = archived != 0
		if t.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("template rows: %w", err)
	}
	return out, nil
}

// Upsert inserts t or updates the mutable columns of an existing row.
func (r *TemplateRepo) Upsert(ctx context.Context, t Template) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO templates (player_key, id, title, type, minutes, archived, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(player_key, id) DO UPDATE SET
			title = excluded.title,
			type = excluded.type,
			minutes = excluded.minutes,
			archived = excluded.archived
	`, t.PlayerKey, t.ID, t.Title, t.Type, t.Minutes, boolToInt(t.Archived), formatTime(t.CreatedAt))
	if err != nil {
		return fmt.Errorf("template upsert: %w", err)
	}
	return nil
}
