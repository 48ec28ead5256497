package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func earnedIDs(list []Achievement) []string {
	var out []string
	for _, a := range list {
		if a.Earned {
			out = append(out, a.ID)
		}
	}
	return out
}

func TestAchievementCheckerFreshPlayer(t *testing.T) {
	c := NewAchievementChecker(NewPlayer(), 0)
	assert.Len(t, c.GetAchievements(), 10)
	assert.Equal(t, 0, c.CountEarned())
}

func TestAchievementCheckerThresholds(t *testing.T) {
	p := NewPlayer()
	p.Level = 5
	p.Stats.Intellectual = 10
	p.Stats.Physical = 9

	c := NewAchievementChecker(p, 10)
	assert.Equal(t, []string{"awakened", "hunter", "first_quest", "steady", "sharp_mind"}, earnedIDs(c.GetAchievements()))
	assert.Equal(t, 5, c.CountEarned())
}
