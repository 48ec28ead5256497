package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"sololevel/internal/storage"
)

// DefaultSaveRetries bounds how often a conflicting save is retried.
const DefaultSaveRetries = 3

// Service is the persistence boundary. Each call loads one player's record, reconciles
// the day, applies an engine operation and writes the result back in one transaction.
type Service struct {
	db      *sql.DB
	engine  *Engine
	logger  *log.Logger
	retries int
}

func NewService(db *sql.DB, eng *Engine, logger *log.Logger, retries int) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if retries < 1 {
		retries = DefaultSaveRetries
	}
	return &Service{db: db, engine: eng, logger: logger, retries: retries}
}

func (s *Service) Engine() *Engine { return s.engine }

// Op mutates rec in place. tx may be used for rows written alongside the record.
type Op func(tx storage.Querier, rec *Record) error

// Do runs op against the player's record and saves it with a version check,
// retrying on conflict. If op fails only a reconciliation change is kept.
func (s *Service) Do(ctx context.Context, playerKey string, op Op) (*Record, error) {
	return s.run(ctx, playerKey, true, op)
}

// read loads and reconciles without saving anything but the reconciliation.
func (s *Service) read(ctx context.Context, playerKey string) (*Record, error) {
	return s.run(ctx, playerKey, false, nil)
}

func (s *Service) run(ctx context.Context, playerKey string, write bool, op Op) (*Record, error) {
	key, err := normalizePlayerKey(playerKey)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= s.retries; attempt++ {
		var (
			out   *Record
			opErr error
		)
		err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
			rec, err := loadRecord(ctx, tx, key)
			if err != nil {
				return err
			}
			reconciled := s.engine.Reconcile(rec)

			if write && op != nil {
				work := rec.Clone()
				if opErr = op(tx, work); opErr == nil {
					if err := saveRecord(ctx, tx, work); err != nil {
						return err
					}
					out = work
					return nil
				}
			}

			if reconciled {
				if err := saveRecord(ctx, tx, rec); err != nil {
					return err
				}
			}
			out = rec
			return nil
		})
		if err == nil {
			if opErr != nil {
				return nil, opErr
			}
			return out, nil
		}
		if !errors.Is(err, storage.ErrVersionConflict) {
			return nil, err
		}
		lastErr = err
		s.logger.Printf("save conflict for player %s (attempt %d/%d)", key, attempt, s.retries)
	}
	return nil, fmt.Errorf("save player %s: %w", key, lastErr)
}

func normalizePlayerKey(key string) (string, error) {
	k := strings.TrimSpace(key)
	if k == "" {
		return "", ValidationError{Field: "player", Message: "player id is required"}
	}
	return k, nil
}

func loadRecord(ctx context.Context, q storage.Querier, key string) (*Record, error) {
	p, err := storage.NewPlayerRepo(q).GetOrCreate(ctx, key)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("player %s missing after create", key)
	}
	quests, err := storage.NewQuestRepo(q).ListByPlayer(ctx, key)
	if err != nil {
		return nil, err
	}
	templates, err := storage.NewTemplateRepo(q).ListByPlayer(ctx, key)
	if err != nil {
		return nil, err
	}
	return recordFromRows(p, quests, templates), nil
}

func saveRecord(ctx context.Context, q storage.Querier, rec *Record) error {
	row := playerRow(rec)
	if err := storage.NewPlayerRepo(q).UpdateIfVersion(ctx, row); err != nil {
		return err
	}
	rec.Version = row.Version

	quests := make([]storage.Quest, 0, len(rec.Quests))
	for _, qu := range rec.Quests {
		quests = append(quests, questRow(rec.Key, qu))
	}
	if err := storage.NewQuestRepo(q).Replace(ctx, rec.Key, quests); err != nil {
		return err
	}

	templates := storage.NewTemplateRepo(q)
	for _, t := range rec.Templates {
		if err := templates.Upsert(ctx, templateRow(rec.Key, t)); err != nil {
			return err
		}
	}
	return nil
}

func recordFromRows(p *storage.Player, quests []storage.Quest, templates []storage.Template) *Record {
	rec := &Record{
		Key:     p.Key,
		Version: p.Version,
		Player: Player{
			Level:      p.Level,
			XP:         p.XP,
			Gold:       p.Gold,
			StatPoints: p.StatPoints,
			Stats: Stats{
				Physical:     p.StatPhysical,
				Intellectual: p.StatIntellectual,
				Spiritual:    p.StatSpiritual,
			},
		},
	}
	rec.Player.normalize()
	if p.DayKey != nil {
		day := ActiveDay{DayKey: *p.DayKey}
		if p.DayStartedAt != nil {
			day.StartedAt = *p.DayStartedAt
		}
		rec.ActiveDay = &day
	}
	for _, q := range quests {
		qu := Quest{
			ID:          q.ID,
			Kind:        QuestKind(q.Kind),
			Type:        Attribute(q.Type),
			Title:       q.Title,
			Note:        q.Note,
			Minutes:     q.Minutes,
			XPReward:    q.XPReward,
			GoldReward:  q.GoldReward,
			Completed:   q.Completed,
			CompletedAt: q.CompletedAt,
		}
		if q.TemplateID != nil {
			qu.TemplateID = *q.TemplateID
		}
		rec.Quests = append(rec.Quests, qu)
	}
	for _, t := range templates {
		rec.Templates = append(rec.Templates, Template{
			ID:        t.ID,
			Title:     t.Title,
			Type:      Attribute(t.Type),
			Minutes:   t.Minutes,
			Archived:  t.Archived,
			CreatedAt: t.CreatedAt,
		})
	}
	return rec
}

func playerRow(rec *Record) *storage.Player {
	p := rec.Player
	row := &storage.Player{
		Key:              rec.Key,
		Level:            p.Level,
		XP:               p.XP,
		Gold:             p.Gold,
		StatPoints:       p.StatPoints,
		StatPhysical:     p.Stats.Physical,
		StatIntellectual: p.Stats.Intellectual,
		StatSpiritual:    p.Stats.Spiritual,
		Version:          rec.Version,
	}
	if rec.ActiveDay != nil {
		k := rec.ActiveDay.DayKey
		started := rec.ActiveDay.StartedAt
		row.DayKey = &k
		row.DayStartedAt = &started
	}
	return row
}

func questRow(playerKey string, q Quest) storage.Quest {
	row := storage.Quest{
		ID:          q.ID,
		PlayerKey:   playerKey,
		Kind:        string(q.Kind),
		Type:        string(q.Type),
		Title:       q.Title,
		Note:        q.Note,
		Minutes:     q.Minutes,
		XPReward:    q.XPReward,
		GoldReward:  q.GoldReward,
		Completed:   q.Completed,
		CompletedAt: q.CompletedAt,
	}
	if q.TemplateID != "" {
		id := q.TemplateID
		row.TemplateID = &id
	}
	return row
}

func templateRow(playerKey string, t Template) storage.Template {
	return storage.Template{
		ID:        t.ID,
		PlayerKey: playerKey,
		Title:     t.Title,
		Type:      string(t.Type),
		Minutes:   t.Minutes,
		Archived:  t.Archived,
		CreatedAt: t.CreatedAt,
	}
}

// Snapshot returns the player's progression view after reconciling the day.
func (s *Service) Snapshot(ctx context.Context, playerKey string) (*PlayerView, error) {
	rec, err := s.read(ctx, playerKey)
	if err != nil {
		return nil, err
	}
	view := s.engine.View(rec)
	return &view, nil
}

// DayView is today's state: the active day, if any, and its quest list.
type DayView struct {
	TodayKey  string     `json:"todayKey"`
	ActiveDay *ActiveDay `json:"activeDay"`
	Quests    []Quest    `json:"quests"`
}

func (s *Service) Day(ctx context.Context, playerKey string) (*DayView, error) {
	rec, err := s.read(ctx, playerKey)
	if err != nil {
		return nil, err
	}
	quests := rec.Quests
	if quests == nil {
		quests = []Quest{}
	}
	return &DayView{TodayKey: s.engine.TodayKey(), ActiveDay: rec.ActiveDay, Quests: quests}, nil
}

func (s *Service) StartDay(ctx context.Context, playerKey string) (*StartDayResult, error) {
	var res StartDayResult
	_, err := s.Do(ctx, playerKey, func(_ storage.Querier, rec *Record) error {
		res = s.engine.StartDay(rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *Service) QuickAdd(ctx context.Context, playerKey string, in QuickQuestInput) (*CreateQuestResult, error) {
	var res *CreateQuestResult
	_, err := s.Do(ctx, playerKey, func(_ storage.Querier, rec *Record) error {
		var err error
		res, err = s.engine.CreateQuickQuest(rec, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) AddFromTemplate(ctx context.Context, playerKey, templateID, minutesRaw string) (*CreateQuestResult, error) {
	var res *CreateQuestResult
	_, err := s.Do(ctx, playerKey, func(_ storage.Querier, rec *Record) error {
		var err error
		res, err = s.engine.CreateQuestFromTemplate(rec, templateID, minutesRaw)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Complete pays out a quest and appends the payout to the reward log in the same
// transaction as the record update.
func (s *Service) Complete(ctx context.Context, playerKey, questID string) (*CompleteResult, error) {
	var res *CompleteResult
	_, err := s.Do(ctx, playerKey, func(tx storage.Querier, rec *Record) error {
		var err error
		res, err = s.engine.CompleteQuest(rec, questID)
		if err != nil {
			return err
		}
		at := s.engine.now().UTC()
		if res.Quest.CompletedAt != nil {
			at = *res.Quest.CompletedAt
		}
		_, err = storage.NewRewardRepo(tx).Insert(ctx, storage.RewardEntry{
			PlayerKey:    rec.Key,
			QuestID:      res.Quest.ID,
			QuestTitle:   res.Quest.Title,
			DayKey:       res.DayKey,
			XP:           res.Reward.XP,
			Gold:         res.Reward.Gold,
			LevelsGained: res.Progress.LevelsGained,
			CompletedAt:  at,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Printf("player %s completed %s (+%d xp, +%d gold)", strings.TrimSpace(playerKey), res.Quest.ID, res.Reward.XP, res.Reward.Gold)
	return res, nil
}

func (s *Service) DeleteQuest(ctx context.Context, playerKey, questID string) (*DeleteQuestResult, error) {
	var res *DeleteQuestResult
	_, err := s.Do(ctx, playerKey, func(_ storage.Querier, rec *Record) error {
		var err error
		res, err = s.engine.DeleteQuest(rec, questID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) CreateTemplate(ctx context.Context, playerKey string, in TemplateInput) (*Template, error) {
	var res *Template
	_, err := s.Do(ctx, playerKey, func(_ storage.Querier, rec *Record) error {
		var err error
		res, err = s.engine.CreateTemplate(rec, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) ListTemplates(ctx context.Context, playerKey string) ([]Template, error) {
	rec, err := s.read(ctx, playerKey)
	if err != nil {
		return nil, err
	}
	return ListTemplates(rec), nil
}

func (s *Service) ArchiveTemplate(ctx context.Context, playerKey, templateID string) (*Template, error) {
	var res *Template
	_, err := s.Do(ctx, playerKey, func(_ storage.Querier, rec *Record) error {
		var err error
		res, err = s.engine.ArchiveTemplate(rec, templateID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) Allocate(ctx context.Context, playerKey string, stat Attribute, points int) (*AllocateResult, error) {
	var res *AllocateResult
	_, err := s.Do(ctx, playerKey, func(_ storage.Querier, rec *Record) error {
		var err error
		res, err = AllocateStatPoints(rec, stat, points)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// RewardRecord is one entry of the completion audit log.
type RewardRecord struct {
	QuestID      string    `json:"questId"`
	QuestTitle   string    `json:"questTitle"`
	DayKey       string    `json:"dayKey"`
	XP           int       `json:"xp"`
	Gold         int       `json:"gold"`
	LeveledUp    bool      `json:"leveledUp"`
	LevelsGained int       `json:"levelsGained"`
	CompletedAt  time.Time `json:"completedAt"`
}

// RecentRewards lists up to limit completion payouts, newest first.
func (s *Service) RecentRewards(ctx context.Context, playerKey string, limit int) ([]RewardRecord, error) {
	key, err := normalizePlayerKey(playerKey)
	if err != nil {
		return nil, err
	}
	rows, err := storage.NewRewardRepo(s.db).ListRecent(ctx, key, limit)
	if err != nil {
		return nil, err
	}
	out := make([]RewardRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, RewardRecord{
			QuestID:      r.QuestID,
			QuestTitle:   r.QuestTitle,
			DayKey:       r.DayKey,
			XP:           r.XP,
			Gold:         r.Gold,
			LeveledUp:    r.LevelsGained > 0,
			LevelsGained: r.LevelsGained,
			CompletedAt:  r.CompletedAt,
		})
	}
	return out, nil
}

// SweepStaleDays reconciles every player still holding a previous day. It returns
// the number of players touched.
func (s *Service) SweepStaleDays(ctx context.Context) (int, error) {
	today := s.engine.TodayKey()
	keys, err := storage.NewPlayerRepo(s.db).ListKeysWithStaleDay(ctx, today)
	if err != nil {
		return 0, err
	}
	swept := 0
	for _, k := range keys {
		if err := ctx.Err(); err != nil {
			return swept, err
		}
		if _, err := s.read(ctx, k); err != nil {
			return swept, fmt.Errorf("sweep player %s: %w", k, err)
		}
		swept++
	}
	if swept > 0 {
		s.logger.Printf("sweep: cleared stale day for %d player(s), today is %s", swept, today)
	}
	return swept, nil
}
