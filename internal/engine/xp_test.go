package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXPToNextStrictlyIncreasing(t *testing.T) {
	assert.Equal(t, 100, XPToNext(1))
	assert.Equal(t, 125, XPToNext(2))
	assert.Equal(t, XPToNext(1), XPToNext(0))

	for l := 1; l < 500; l++ {
		require.Greater(t, XPToNext(l+1), XPToNext(l), "level %d", l)
	}
}

func TestApplyRewardsPostCondition(t *testing.T) {
	for _, xp := range []int{0, 1, 99, 100, 101, 224, 225, 1000, 12345} {
		p := NewPlayer()
		ApplyRewards(&p, xp, 0)
		assert.GreaterOrEqual(t, p.XP, 0, "xp=%d", xp)
		assert.Less(t, p.XP, XPToNext(p.Level), "xp=%d", xp)
		assert.Equal(t, (p.Level-1)*StatPointsPerLevel, p.StatPoints, "xp=%d", xp)
	}
}

func TestApplyRewardsSingleLevelUp(t *testing.T) {
	p := Player{Level: 1, XP: 90}

	res := ApplyRewards(&p, 20, 3)

	assert.True(t, res.LeveledUp)
	assert.Equal(t, 1, res.LevelsGained)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 10, p.XP)
	assert.Equal(t, 3, p.StatPoints)
	assert.Equal(t, 3, p.Gold)
	assert.Equal(t, ProgressSnapshot{Level: 1, XP: 90}, res.Before)
	assert.Equal(t, ProgressSnapshot{Level: 2, XP: 10, Gold: 3, StatPoints: 3}, res.After)
}

func TestApplyRewardsUsesRisingThreshold(t *testing.T) {
	p := NewPlayer()

	res := ApplyRewards(&p, 1000, 0)

	// 100+125+150+175+200+225 = 975, leaving 25 at level 7.
	assert.Equal(t, 6, res.LevelsGained)
	assert.Equal(t, 7, p.Level)
	assert.Equal(t, 25, p.XP)
	assert.Equal(t, 18, p.StatPoints)
}

func TestApplyRewardsIgnoresNegativeAmounts(t *testing.T) {
	p := Player{Level: 3, XP: 40, Gold: 10}

	res := ApplyRewards(&p, -50, -5)

	assert.False(t, res.LeveledUp)
	assert.Equal(t, Player{Level: 3, XP: 40, Gold: 10}, p)
}
