package engine

import (
	"context"

	"sololevel/internal/storage"
)

// Achievement is a badge derived from the player's progression and reward history.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Earned      bool   `json:"earned"`
}

// AchievementChecker decides which badges a player has earned. It never changes
// the record; badges are recomputed on every read.
type AchievementChecker struct {
	player      Player
	completions int
}

func NewAchievementChecker(player Player, completions int) *AchievementChecker {
	return &AchievementChecker{player: player, completions: completions}
}

func (c *AchievementChecker) GetAchievements() []Achievement {
	return []Achievement{
		c.levelAchievement("awakened", "Awakened", "Reach level 2", "🌱", 2),
		c.levelAchievement("hunter", "Hunter", "Reach level 5", "🌿", 5),
		c.levelAchievement("elite", "Elite", "Reach level 10", "⭐", 10),
		c.levelAchievement("monarch", "Monarch", "Reach level 20", "💫", 20),

		c.completionAchievement("first_quest", "First Quest", "Complete 1 quest", "✓", 1),
		c.completionAchievement("steady", "Steady", "Complete 10 quests", "📋", 10),
		c.completionAchievement("relentless", "Relentless", "Complete 100 quests", "🏆", 100),

		c.statAchievement("iron_body", "Iron Body", "Put 10 points into physical", "💪", AttributePhysical, 10),
		c.statAchievement("sharp_mind", "Sharp Mind", "Put 10 points into intellectual", "🧠", AttributeIntellectual, 10),
		c.statAchievement("calm_spirit", "Calm Spirit", "Put 10 points into spiritual", "🕯", AttributeSpiritual, 10),
	}
}

func (c *AchievementChecker) CountEarned() int {
	count := 0
	for _, a := range c.GetAchievements() {
		if a.Earned {
			count++
		}
	}
	return count
}

func (c *AchievementChecker) levelAchievement(id, name, desc, icon string, level int) Achievement {
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: c.player.Level >= level}
}

func (c *AchievementChecker) completionAchievement(id, name, desc, icon string, count int) Achievement {
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: c.completions >= count}
}

func (c *AchievementChecker) statAchievement(id, name, desc, icon string, attr Attribute, points int) Achievement {
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: c.player.Stats.Get(attr) >= points}
}

// Achievements loads the player and their completion count and returns every badge.
func (s *Service) Achievements(ctx context.Context, playerKey string) ([]Achievement, error) {
	rec, err := s.read(ctx, playerKey)
	if err != nil {
		return nil, err
	}
	n, err := storage.NewRewardRepo(s.db).Count(ctx, rec.Key)
	if err != nil {
		return nil, err
	}
	return NewAchievementChecker(rec.Player, n).GetAchievements(), nil
}
