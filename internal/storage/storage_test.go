package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func strPtr(s string) *string { return &s }

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(context.Background(), db))
	require.NoError(t, Migrate(context.Background(), db))
}

func TestPlayerGetOrCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewPlayerRepo(openTestDB(t))

	missing, err := repo.Get(ctx, "main")
	require.NoError(t, err)
	assert.Nil(t, missing)

	p, err := repo.GetOrCreate(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, "main", p.Key)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, int64(0), p.Version)
	assert.Nil(t, p.DayKey)
	assert.Nil(t, p.DayStartedAt)

	again, err := repo.GetOrCreate(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, p.Version, again.Version)
}

func TestPlayerUpdateIfVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewPlayerRepo(openTestDB(t))

	p, err := repo.GetOrCreate(ctx, "main")
	require.NoError(t, err)
	stale := *p

	started := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	p.Level, p.XP, p.Gold, p.StatPoints = 3, 40, 12, 2
	p.StatPhysical = 1
	p.DayKey = strPtr("2026-03-10")
	p.DayStartedAt = &started
	require.NoError(t, repo.UpdateIfVersion(ctx, p))
	assert.Equal(t, int64(1), p.Version)

	got, err := repo.Get(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Level)
	assert.Equal(t, 40, got.XP)
	assert.Equal(t, 12, got.Gold)
	assert.Equal(t, 2, got.StatPoints)
	assert.Equal(t, 1, got.StatPhysical)
	require.NotNil(t, got.DayKey)
	assert.Equal(t, "2026-03-10", *got.DayKey)
	require.NotNil(t, got.DayStartedAt)
	assert.True(t, started.Equal(*got.DayStartedAt))
	assert.Equal(t, int64(1), got.Version)

	stale.Gold = 999
	err = repo.UpdateIfVersion(ctx, &stale)
	assert.True(t, errors.Is(err, ErrVersionConflict))

	got, err = repo.Get(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, 12, got.Gold)
}

func TestPlayerListKeysWithStaleDay(t *testing.T) {
	ctx := context.Background()
	repo := NewPlayerRepo(openTestDB(t))

	for key, day := range map[string]*string{
		"a": strPtr("2026-03-09"),
		"b": strPtr("2026-03-10"),
		"c": nil,
		"d": strPtr("2026-03-01"),
	} {
		p, err := repo.GetOrCreate(ctx, key)
		require.NoError(t, err)
		p.DayKey = day
		require.NoError(t, repo.UpdateIfVersion(ctx, p))
	}

	keys, err := repo.ListKeysWithStaleDay(ctx, "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "d"}, keys)
}

func TestQuestReplaceKeepsOrder(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	_, err := NewPlayerRepo(db).GetOrCreate(ctx, "main")
	require.NoError(t, err)
	repo := NewQuestRepo(db)

	done := time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC)
	quests := []Quest{
		{ID: "q2", Kind: "quick", Type: "physical", Title: "Run", Minutes: 30, XPReward: 50, GoldReward: 2},
		{ID: "q1", Kind: "template", TemplateID: strPtr("t1"), Type: "spiritual", Title: "Meditate", Note: "morning",
			Minutes: 10, XPReward: 20, GoldReward: 1, Completed: true, CompletedAt: &done},
	}
	require.NoError(t, repo.Replace(ctx, "main", quests))

	got, err := repo.ListByPlayer(ctx, "main")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "q2", got[0].ID)
	assert.Equal(t, 0, got[0].Position)
	assert.Nil(t, got[0].TemplateID)
	assert.False(t, got[0].Completed)
	assert.Nil(t, got[0].CompletedAt)

	assert.Equal(t, "q1", got[1].ID)
	assert.Equal(t, 1, got[1].Position)
	require.NotNil(t, got[1].TemplateID)
	assert.Equal(t, "t1", *got[1].TemplateID)
	assert.Equal(t, "morning", got[1].Note)
	assert.True(t, got[1].Completed)
	require.NotNil(t, got[1].CompletedAt)
	assert.True(t, done.Equal(*got[1].CompletedAt))

	require.NoError(t, repo.Replace(ctx, "main", nil))
	got, err = repo.ListByPlayer(ctx, "main")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTemplateUpsert(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	_, err := NewPlayerRepo(db).GetOrCreate(ctx, "main")
	require.NoError(t, err)
	repo := NewTemplateRepo(db)

	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Upsert(ctx, Template{ID: "t1", PlayerKey: "main", Title: "Read", Type: "intellectual", Minutes: 25, CreatedAt: base}))
	require.NoError(t, repo.Upsert(ctx, Template{ID: "t2", PlayerKey: "main", Title: "Lift", Type: "physical", Minutes: 40, CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, repo.Upsert(ctx, Template{ID: "t1", PlayerKey: "main", Title: "Read", Type: "intellectual", Minutes: 25, Archived: true, CreatedAt: base}))

	got, err := repo.ListByPlayer(ctx, "main")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "t1", got[0].ID)
	assert.True(t, got[0].Archived)
	assert.True(t, base.Equal(got[0].CreatedAt))
	assert.Equal(t, "t2", got[1].ID)
	assert.False(t, got[1].Archived)
}

func TestRewardLog(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	_, err := NewPlayerRepo(db).GetOrCreate(ctx, "main")
	require.NoError(t, err)
	repo := NewRewardRepo(db)

	n, err := repo.Count(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	for i, title := range []string{"first", "second", "third"} {
		id, err := repo.Insert(ctx, RewardEntry{
			PlayerKey:   "main",
			QuestID:     title,
			QuestTitle:  title,
			DayKey:      "2026-03-10",
			XP:          10 * (i + 1),
			Gold:        i,
			CompletedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
		assert.Positive(t, id)
	}

	n, err = repo.Count(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	recent, err := repo.ListRecent(ctx, "main", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "third", recent[0].QuestTitle)
	assert.Equal(t, 30, recent[0].XP)
	assert.Equal(t, "second", recent[1].QuestTitle)

	all, err := repo.ListRecent(ctx, "main", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	other, err := repo.Count(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, other)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	boom := errors.New("boom")

	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := NewPlayerRepo(tx).GetOrCreate(ctx, "main"); err != nil {
			return err
		}
		return boom
	})
	assert.True(t, errors.Is(err, boom))

	p, err := NewPlayerRepo(db).Get(ctx, "main")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestBusyAsConflict(t *testing.T) {
	err := busyAsConflict(errors.New("commit tx: database is locked (5) (SQLITE_BUSY)"))
	assert.True(t, errors.Is(err, ErrVersionConflict))

	other := errors.New("no such table: players")
	assert.Equal(t, other, busyAsConflict(other))
}
