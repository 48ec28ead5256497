package engine

const (
	// BaseXPToNext is the XP needed to go from level 1 to level 2.
	BaseXPToNext = 100

	// XPToNextStep is added to the requirement for every level beyond 1.
	XPToNextStep = 25

	// StatPointsPerLevel is granted on every level gained.
	StatPointsPerLevel = 3
)

// XPToNext returns the XP needed to leave the given level. The curve is linear and
// strictly increasing, so the level-up loop always terminates.
func XPToNext(level int) int {
	if level < 1 {
		level = 1
	}
	return BaseXPToNext + (level-1)*XPToNextStep
}

// ProgressSnapshot captures the progression fields of a player at one moment.
type ProgressSnapshot struct {
	Level      int `json:"level"`
	XP         int `json:"xp"`
	Gold       int `json:"gold"`
	StatPoints int `json:"statPoints"`
}

func snapshotOf(p *Player) ProgressSnapshot {
	return ProgressSnapshot{Level: p.Level, XP: p.XP, Gold: p.Gold, StatPoints: p.StatPoints}
}

type LevelUpResult struct {
	LeveledUp    bool             `json:"leveledUp"`
	LevelsGained int              `json:"levelsGained"`
	Before       ProgressSnapshot `json:"before"`
	After        ProgressSnapshot `json:"after"`
}

// ApplyRewards adds xp and gold to p and resolves any level-ups. It never fails;
// negative amounts are treated as zero.
func ApplyRewards(p *Player, xp, gold int) LevelUpResult {
	p.normalize()
	before := snapshotOf(p)

	if gold > 0 {
		p.Gold += gold
	}
	if xp > 0 {
		p.XP += xp
	}

	gained := 0
	for p.XP >= XPToNext(p.Level) {
		p.XP -= XPToNext(p.Level)
		p.Level++
		p.StatPoints += StatPointsPerLevel
		gained++
	}

	return LevelUpResult{
		LeveledUp:    gained > 0,
		LevelsGained: gained,
		Before:       before,
		After:        snapshotOf(p),
	}
}
