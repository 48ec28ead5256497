package storage

import "time"

type Player struct {
	Key              string
	Level            int
	XP               int
	Gold             int
	StatPoints       int
	StatPhysical     int
	StatIntellectual int
	StatSpiritual    int
	DayKey           *string
	DayStartedAt     *time.Time
	Version          int64
	UpdatedAt        time.Time
}

// Quest is one row of a player's current-day list. Position 0 is the top.
type Quest struct {
	ID          string
	PlayerKey   string
	Position    int
	Kind        string
	TemplateID  *string
	Type        string
	Title       string
	Note        string
	Minutes     int
	XPReward    int
	GoldReward  int
	Completed   bool
	CompletedAt *time.Time
}

type Template struct {
	ID        string
	PlayerKey string
	Title     string
	Type      string
	Minutes   int
	Archived  bool
	CreatedAt time.Time
}

// RewardEntry is an audit row written for every completion payout.
type RewardEntry struct {
	ID           int64
	PlayerKey    string
	QuestID      string
	QuestTitle   string
	DayKey       string
	XP           int
	Gold         int
	LevelsGained int
	CompletedAt  time.Time
}
