package engine

import (
	"fmt"
	"strings"
	"time"
)

// Attribute is both a quest type and the stat key that governs it.
type Attribute string

const (
	AttributePhysical     Attribute = "physical"
	AttributeIntellectual Attribute = "intellectual"
	AttributeSpiritual    Attribute = "spiritual"
)

// Attributes lists every attribute in display order.
var Attributes = []Attribute{AttributePhysical, AttributeIntellectual, AttributeSpiritual}

func (a Attribute) IsValid() bool {
	switch a {
	case AttributePhysical, AttributeIntellectual, AttributeSpiritual:
		return true
	default:
		return false
	}
}

type QuestKind string

const (
	QuestKindTemplate QuestKind = "template"
	QuestKindQuick    QuestKind = "quick"
)

func (k QuestKind) IsValid() bool {
	switch k {
	case QuestKindTemplate, QuestKindQuick:
		return true
	default:
		return false
	}
}

// Stats holds the allocated points for each attribute.
type Stats struct {
	Physical     int `json:"physical"`
	Intellectual int `json:"intellectual"`
	Spiritual    int `json:"spiritual"`
}

// Get returns the stat keyed by attr. Unknown attributes read as zero.
func (s Stats) Get(attr Attribute) int {
	switch attr {
	case AttributePhysical:
		return s.Physical
	case AttributeIntellectual:
		return s.Intellectual
	case AttributeSpiritual:
		return s.Spiritual
	default:
		return 0
	}
}

func (s *Stats) add(attr Attribute, n int) {
	switch attr {
	case AttributePhysical:
		s.Physical += n
	case AttributeIntellectual:
		s.Intellectual += n
	case AttributeSpiritual:
		s.Spiritual += n
	}
}

type Player struct {
	Level      int   `json:"level"`
	XP         int   `json:"xp"`
	Gold       int   `json:"gold"`
	StatPoints int   `json:"statPoints"`
	Stats      Stats `json:"stats"`
}

// NewPlayer returns a fresh level 1 player.
func NewPlayer() Player {
	return Player{Level: 1}
}

// normalize repairs values a hand-edited or legacy row could carry.
func (p *Player) normalize() {
	if p.Level < 1 {
		p.Level = 1
	}
	if p.XP < 0 {
		p.XP = 0
	}
	if p.Gold < 0 {
		p.Gold = 0
	}
	if p.StatPoints < 0 {
		p.StatPoints = 0
	}
	if p.Stats.Physical < 0 {
		p.Stats.Physical = 0
	}
	if p.Stats.Intellectual < 0 {
		p.Stats.Intellectual = 0
	}
	if p.Stats.Spiritual < 0 {
		p.Stats.Spiritual = 0
	}
}

type ActiveDay struct {
	DayKey    string    `json:"dayKey"`
	StartedAt time.Time `json:"startedAt"`
}

type Quest struct {
	ID          string     `json:"id"`
	Kind        QuestKind  `json:"kind"`
	TemplateID  string     `json:"templateId,omitempty"`
	Type        Attribute  `json:"type"`
	Title       string     `json:"title"`
	Note        string     `json:"note,omitempty"`
	Minutes     int        `json:"minutes"`
	XPReward    int        `json:"xpReward"`
	GoldReward  int        `json:"goldReward"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type Template struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Type      Attribute `json:"type"`
	Minutes   int       `json:"minutes"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"createdAt"`
}

// Record is the whole state of one account, loaded and saved as a unit.
type Record struct {
	Key       string     `json:"key"`
	Version   int64      `json:"version"`
	Player    Player     `json:"player"`
	ActiveDay *ActiveDay `json:"activeDay"`
	Quests    []Quest    `json:"quests"`
	Templates []Template `json:"templates"`
}

// Clone returns a deep copy so an operation can be discarded on failure.
func (r *Record) Clone() *Record {
	out := *r
	if r.ActiveDay != nil {
		d := *r.ActiveDay
		out.ActiveDay = &d
	}
	if r.Quests != nil {
		out.Quests = make([]Quest, len(r.Quests))
		for i, q := range r.Quests {
			if q.CompletedAt != nil {
				t := *q.CompletedAt
				q.CompletedAt = &t
			}
			out.Quests[i] = q
		}
	}
	if r.Templates != nil {
		out.Templates = make([]Template, len(r.Templates))
		copy(out.Templates, r.Templates)
	}
	return &out
}

func (r *Record) questIndex(id string) int {
	for i := range r.Quests {
		if r.Quests[i].ID == id {
			return i
		}
	}
	return -1
}

// activeTemplate returns the non-archived template with the given id.
func (r *Record) activeTemplate(id string) *Template {
	for i := range r.Templates {
		if r.Templates[i].ID == id && !r.Templates[i].Archived {
			return &r.Templates[i]
		}
	}
	return nil
}

// ParseAttribute parses a quest type. Short forms phys/int/spirit are accepted.
func ParseAttribute(input string) (Attribute, error) {
	return parseAttribute("type", input)
}

// ParseStat parses a stat key for point allocation.
func ParseStat(input string) (Attribute, error) {
	return parseAttribute("stat", input)
}

func parseAttribute(field, input string) (Attribute, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "physical", "phys", "p":
		return AttributePhysical, nil
	case "intellectual", "int", "i":
		return AttributeIntellectual, nil
	case "spiritual", "spirit", "s":
		return AttributeSpiritual, nil
	case "":
		return "", ValidationError{Field: field, Message: field + " is required"}
	default:
		return "", ValidationError{Field: field, Message: fmt.Sprintf("invalid %s %q (physical|intellectual|spiritual)", field, input)}
	}
}
