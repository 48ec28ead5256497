package engine

import (
	"fmt"
	"strings"
)

type CompleteResult struct {
	Quest       Quest         `json:"quest"`
	Reward      Reward        `json:"reward"`
	Multipliers Multipliers   `json:"multipliers"`
	DayKey      string        `json:"dayKey"`
	Progress    LevelUpResult `json:"progress"`
}

// CompleteQuest marks a quest done and pays out its reward scaled by the player's
// current stats. Completing twice is rejected.
func (e *Engine) CompleteQuest(rec *Record, questID string) (*CompleteResult, error) {
	now := e.now()
	if err := e.Days.requireActiveDay(rec, now); err != nil {
		return nil, err
	}
	id := strings.TrimSpace(questID)
	i := rec.questIndex(id)
	if i < 0 {
		return nil, errNotFound("quest", id)
	}
	q := &rec.Quests[i]
	if q.Completed {
		return nil, PreconditionError{Reason: ReasonAlreadyCompleted, Message: fmt.Sprintf("quest %s is already completed", id)}
	}

	mult := CompletionMultiplier(q.Type, rec.Player.Stats)
	reward := CompletionReward(*q, mult)

	at := now.UTC()
	q.Completed = true
	q.CompletedAt = &at

	progress := ApplyRewards(&rec.Player, reward.XP, reward.Gold)

	return &CompleteResult{
		Quest:       *q,
		Reward:      reward,
		Multipliers: mult,
		DayKey:      rec.ActiveDay.DayKey,
		Progress:    progress,
	}, nil
}
