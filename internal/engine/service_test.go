package engine

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sololevel/internal/storage"
)

func newTestService(t *testing.T) (*Service, *FakeClock, *sql.DB) {
	t.Helper()
	ctx := context.Background()

	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	days, err := NewDayCycle(0, time.UTC)
	require.NoError(t, err)
	clock := NewFakeClock(at("2026-03-10T09:00:00Z"))
	return NewService(db, New(days, clock), nil, 3), clock, db
}

func TestServiceCreatesPlayerOnFirstUse(t *testing.T) {
	svc, _, _ := newTestService(t)

	view, err := svc.Snapshot(context.Background(), "main")
	require.NoError(t, err)

	assert.Equal(t, 1, view.Player.Level)
	assert.Equal(t, 0, view.Player.XP)
	assert.Equal(t, 100, view.XPToNext)
	assert.Nil(t, view.ActiveDay)
}

func TestServiceRejectsBlankPlayer(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.StartDay(context.Background(), "  ")

	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "player", ve.Field)
}

func TestServiceQuestRoundTrip(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	start, err := svc.StartDay(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", start.ActiveDay.DayKey)

	again, err := svc.StartDay(ctx, "main")
	require.NoError(t, err)
	assert.True(t, again.AlreadyStarted)

	added, err := svc.QuickAdd(ctx, "main", QuickQuestInput{Title: "Pull ups", Type: "physical", MinutesRaw: "20", Note: "3 sets"})
	require.NoError(t, err)

	day, err := svc.Day(ctx, "main")
	require.NoError(t, err)
	require.Len(t, day.Quests, 1)
	assert.Equal(t, added.Quest.ID, day.Quests[0].ID)
	assert.Equal(t, "3 sets", day.Quests[0].Note)
	assert.Equal(t, 40, day.Quests[0].XPReward)

	done, err := svc.Complete(ctx, "main", added.Quest.ID)
	require.NoError(t, err)
	assert.Equal(t, Reward{XP: 40, Gold: 2}, done.Reward)

	view, err := svc.Snapshot(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, 40, view.Player.XP)
	assert.Equal(t, 2, view.Player.Gold)

	day, err = svc.Day(ctx, "main")
	require.NoError(t, err)
	assert.True(t, day.Quests[0].Completed)
	require.NotNil(t, day.Quests[0].CompletedAt)

	rewards, err := svc.RecentRewards(ctx, "main", 10)
	require.NoError(t, err)
	require.Len(t, rewards, 1)
	assert.Equal(t, "Pull ups", rewards[0].QuestTitle)
	assert.Equal(t, "2026-03-10", rewards[0].DayKey)
	assert.Equal(t, 40, rewards[0].XP)
}

func TestServiceFailedOpLeavesRecordUntouched(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.StartDay(ctx, "main")
	require.NoError(t, err)

	_, err = svc.QuickAdd(ctx, "main", QuickQuestInput{Title: "No", Type: "physical"})
	var ve ValidationError
	require.ErrorAs(t, err, &ve)

	_, err = svc.Allocate(ctx, "main", AttributePhysical, 1)
	var ie InsufficientError
	require.ErrorAs(t, err, &ie)

	day, err := svc.Day(ctx, "main")
	require.NoError(t, err)
	assert.Empty(t, day.Quests)
}

func TestServiceRolloverPersistsReconcile(t *testing.T) {
	svc, clock, db := newTestService(t)
	ctx := context.Background()
	_, err := svc.StartDay(ctx, "main")
	require.NoError(t, err)
	_, err = svc.QuickAdd(ctx, "main", QuickQuestInput{Title: "Read", Type: "intellectual"})
	require.NoError(t, err)

	clock.Advance(24 * time.Hour)

	// The op fails but the stale day is still cleared and saved.
	_, err = svc.QuickAdd(ctx, "main", QuickQuestInput{Title: "Read more", Type: "intellectual"})
	requireReason(t, err, ReasonDayNotStarted)

	row, err := storage.NewPlayerRepo(db).Get(ctx, "main")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Nil(t, row.DayKey)
	quests, err := storage.NewQuestRepo(db).ListByPlayer(ctx, "main")
	require.NoError(t, err)
	assert.Empty(t, quests)
}

func TestServiceSweepStaleDays(t *testing.T) {
	svc, clock, _ := newTestService(t)
	ctx := context.Background()
	for _, key := range []string{"alice", "bob"} {
		_, err := svc.StartDay(ctx, key)
		require.NoError(t, err)
	}
	_, err := svc.Snapshot(ctx, "carol")
	require.NoError(t, err)

	n, err := svc.SweepStaleDays(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	clock.Advance(24 * time.Hour)
	n, err = svc.SweepStaleDays(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = svc.SweepStaleDays(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestServiceIsolatesPlayers(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.StartDay(ctx, "alice")
	require.NoError(t, err)
	_, err = svc.QuickAdd(ctx, "alice", QuickQuestInput{Title: "Swim", Type: "physical"})
	require.NoError(t, err)

	day, err := svc.Day(ctx, "bob")
	require.NoError(t, err)
	assert.Nil(t, day.ActiveDay)
	assert.Empty(t, day.Quests)
}

func TestServiceTemplates(t *testing.T) {
	svc, clock, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.StartDay(ctx, "main")
	require.NoError(t, err)

	tpl, err := svc.CreateTemplate(ctx, "main", TemplateInput{Title: "Flashcards", Type: "intellectual", MinutesRaw: "15"})
	require.NoError(t, err)
	clock.Advance(time.Minute)
	_, err = svc.QuickAdd(ctx, "main", QuickQuestInput{Title: "Breathing", Type: "spiritual", SaveAsTemplate: true})
	require.NoError(t, err)

	list, err := svc.ListTemplates(ctx, "main")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Breathing", list[0].Title)
	assert.Equal(t, "Flashcards", list[1].Title)

	q, err := svc.AddFromTemplate(ctx, "main", tpl.ID, "")
	require.NoError(t, err)
	assert.Equal(t, tpl.ID, q.Quest.TemplateID)
	assert.Equal(t, 15, q.Quest.Minutes)

	_, err = svc.ArchiveTemplate(ctx, "main", tpl.ID)
	require.NoError(t, err)

	list, err = svc.ListTemplates(ctx, "main")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Breathing", list[0].Title)

	_, err = svc.AddFromTemplate(ctx, "main", tpl.ID, "")
	requireReason(t, err, ReasonNotFound)

	day, err := svc.Day(ctx, "main")
	require.NoError(t, err)
	require.Len(t, day.Quests, 2)
	assert.Equal(t, tpl.ID, day.Quests[0].TemplateID)
}

func TestServiceAllocateAfterLevelUp(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.StartDay(ctx, "main")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		q, err := svc.QuickAdd(ctx, "main", QuickQuestInput{Title: "Burpees", Type: "physical", MinutesRaw: "25"})
		require.NoError(t, err)
		_, err = svc.Complete(ctx, "main", q.Quest.ID)
		require.NoError(t, err)
	}

	view, err := svc.Snapshot(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, 2, view.Player.Level)
	assert.Equal(t, 3, view.Player.StatPoints)

	res, err := svc.Allocate(ctx, "main", AttributePhysical, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Player.Stats.Physical)
	assert.Equal(t, 0, res.Player.StatPoints)

	view, err = svc.Snapshot(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, 40, view.MaxMinutes[AttributePhysical])

	badges, err := svc.Achievements(ctx, "main")
	require.NoError(t, err)
	earned := map[string]bool{}
	for _, b := range badges {
		earned[b.ID] = b.Earned
	}
	assert.True(t, earned["awakened"])
	assert.True(t, earned["first_quest"])
	assert.False(t, earned["steady"])
}

func TestServiceConcurrentCompletePaysOnce(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.StartDay(ctx, "main")
	require.NoError(t, err)
	q, err := svc.QuickAdd(ctx, "main", QuickQuestInput{Title: "Plank", Type: "physical", MinutesRaw: "25"})
	require.NoError(t, err)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		repeats   int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Complete(ctx, "main", q.Quest.ID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return
			}
			if OutcomeOf(err).Reason == ReasonAlreadyCompleted {
				repeats++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, repeats)

	view, err := svc.Snapshot(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, 50, view.Player.XP)

	rewards, err := svc.RecentRewards(ctx, "main", 0)
	require.NoError(t, err)
	assert.Len(t, rewards, 1)
}
