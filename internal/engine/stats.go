package engine

import (
	"math"
	"strconv"
	"strings"
)

type AllocateResult struct {
	Stat   Attribute `json:"stat"`
	Points int       `json:"points"`
	Player Player    `json:"player"`
}

// ParsePoints parses a stat point amount. It must be a positive whole number.
func ParsePoints(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ValidationError{Field: "points", Message: "points is required"}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, ValidationError{Field: "points", Message: "points must be a whole number"}
	}
	if f < 1 || f > math.MaxInt32 {
		return 0, ValidationError{Field: "points", Message: "points must be a positive integer"}
	}
	return int(f), nil
}

// AllocateStatPoints spends unspent stat points on one attribute.
func AllocateStatPoints(rec *Record, stat Attribute, points int) (*AllocateResult, error) {
	if !stat.IsValid() {
		return nil, ValidationError{Field: "stat", Message: "stat must be physical, intellectual, or spiritual"}
	}
	if points < 1 {
		return nil, ValidationError{Field: "points", Message: "points must be a positive integer"}
	}
	p := &rec.Player
	if points > p.StatPoints {
		return nil, InsufficientError{Resource: "points", Requested: points, Available: p.StatPoints}
	}
	p.StatPoints -= points
	p.Stats.add(stat, points)
	return &AllocateResult{Stat: stat, Points: points, Player: *p}, nil
}
