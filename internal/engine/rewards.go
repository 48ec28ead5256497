package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultMinutes is used when no duration is supplied.
	DefaultMinutes = 25

	MinMinutesCap   = 25
	MaxMinutesCap   = 180
	MinutesPerPoint = 5

	MinXPReward   = 1
	MaxXPReward   = 999
	MinGoldReward = 0
	MaxGoldReward = 99

	// StatBonusRate is the completion multiplier gained per stat point.
	StatBonusRate = 0.02
)

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// MaxMinutesFor returns the minute cap for a quest of the given type.
func MaxMinutesFor(attr Attribute, stats Stats) int {
	return clampInt(MinMinutesCap+stats.Get(attr)*MinutesPerPoint, MinMinutesCap, MaxMinutesCap)
}

// ValidateMinutes turns raw user input into a duration within [1, maxM].
// Blank input falls back to DefaultMinutes.
func ValidateMinutes(raw string, maxM int) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		if maxM < DefaultMinutes {
			return maxM, nil
		}
		return DefaultMinutes, nil
	}

	x, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, ValidationError{Field: "minutes", Message: "minutes must be a number"}
	}
	m := math.Round(x)
	if m < 1 || m > float64(maxM) {
		return 0, ValidationError{Field: "minutes", Message: fmt.Sprintf("minutes must be between 1 and %d", maxM)}
	}
	return int(m), nil
}

func xpPerMinute(attr Attribute) int {
	switch attr {
	case AttributePhysical:
		return 2
	case AttributeIntellectual, AttributeSpiritual:
		return 1
	default:
		return 1
	}
}

func goldBase(attr Attribute) int {
	switch attr {
	case AttributePhysical:
		return 2
	case AttributeIntellectual:
		return 5
	case AttributeSpiritual:
		return 4
	default:
		return 0
	}
}

// Reward is an XP/gold pair.
type Reward struct {
	XP   int `json:"xp"`
	Gold int `json:"gold"`
}

// BaseReward computes the reward frozen onto a quest when it is created.
func BaseReward(attr Attribute, minutes int) Reward {
	if minutes < 0 {
		minutes = 0
	}
	return Reward{
		XP:   clampInt(minutes*xpPerMinute(attr), MinXPReward, MaxXPReward),
		Gold: clampInt(goldBase(attr)+minutes/30, MinGoldReward, MaxGoldReward),
	}
}

// Multipliers are applied to a quest's frozen reward at completion time.
type Multipliers struct {
	XP   float64 `json:"xp"`
	Gold float64 `json:"gold"`
}

// CompletionMultiplier reflects the player's current stats, not the stats at creation.
func CompletionMultiplier(attr Attribute, stats Stats) Multipliers {
	m := Multipliers{XP: 1, Gold: 1}
	switch attr {
	case AttributePhysical:
		m.XP += clampFloat(float64(stats.Physical)*StatBonusRate, 0, 0.3)
	case AttributeIntellectual:
		m.Gold += clampFloat(float64(stats.Intellectual)*StatBonusRate, 0, 0.3)
	case AttributeSpiritual:
		bonus := clampFloat(float64(stats.Spiritual)*StatBonusRate, 0, 0.2)
		m.XP += bonus
		m.Gold += bonus
	}
	return m
}

// CompletionReward applies m to the quest's frozen reward.
func CompletionReward(q Quest, m Multipliers) Reward {
	return Reward{
		XP:   roundNonNegative(float64(q.XPReward) * m.XP),
		Gold: roundNonNegative(float64(q.GoldReward) * m.Gold),
	}
}

func roundNonNegative(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if math.IsInf(v, 1) || v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Round(v))
}
