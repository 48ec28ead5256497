package engine

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	MinTitleLength = 3
	MaxNoteLength  = 280
)

type QuickQuestInput struct {
	Title          string
	Type           string
	MinutesRaw     string
	Note           string
	SaveAsTemplate bool
}

type CreateQuestResult struct {
	Quest      Quest     `json:"quest"`
	Quests     []Quest   `json:"quests"`
	Template   *Template `json:"template,omitempty"`
	MaxMinutes int       `json:"maxMinutes"`
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if utf8.RuneCountInString(t) < MinTitleLength {
		return "", ValidationError{Field: "title", Message: "title must be at least 3 characters"}
	}
	return t, nil
}

func normalizeNote(note string) (string, error) {
	n := strings.TrimSpace(note)
	if utf8.RuneCountInString(n) > MaxNoteLength {
		return "", ValidationError{Field: "note", Message: "note must be at most 280 characters"}
	}
	return n, nil
}

// sizedReward validates the requested minutes against the player's cap and computes
// the reward frozen onto a new quest.
func sizedReward(attr Attribute, minutesRaw string, stats Stats) (minutes int, reward Reward, maxM int, err error) {
	maxM = MaxMinutesFor(attr, stats)
	minutes, err = ValidateMinutes(minutesRaw, maxM)
	if err != nil {
		return 0, Reward{}, maxM, err
	}
	return minutes, BaseReward(attr, minutes), maxM, nil
}

// CreateQuickQuest adds an ad hoc quest to the top of today's list, optionally
// saving it as a template as well.
func (e *Engine) CreateQuickQuest(rec *Record, in QuickQuestInput) (*CreateQuestResult, error) {
	now := e.now()
	if err := e.Days.requireActiveDay(rec, now); err != nil {
		return nil, err
	}
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	attr, err := ParseAttribute(in.Type)
	if err != nil {
		return nil, err
	}
	note, err := normalizeNote(in.Note)
	if err != nil {
		return nil, err
	}
	minutes, reward, maxM, err := sizedReward(attr, in.MinutesRaw, rec.Player.Stats)
	if err != nil {
		return nil, err
	}

	q := Quest{
		ID:         e.newID(),
		Kind:       QuestKindQuick,
		Type:       attr,
		Title:      title,
		Note:       note,
		Minutes:    minutes,
		XPReward:   reward.XP,
		GoldReward: reward.Gold,
	}
	rec.Quests = append([]Quest{q}, rec.Quests...)

	res := &CreateQuestResult{Quest: q, Quests: rec.Quests, MaxMinutes: maxM}
	if in.SaveAsTemplate {
		t := Template{
			ID:        e.newID(),
			Title:     title,
			Type:      attr,
			Minutes:   minutes,
			CreatedAt: now.UTC(),
		}
		rec.Templates = append(rec.Templates, t)
		res.Template = &t
	}
	return res, nil
}

// CreateQuestFromTemplate instantiates a non-archived template into today's list.
// A blank override uses the template's default minutes, re-checked against the
// current cap.
func (e *Engine) CreateQuestFromTemplate(rec *Record, templateID string, minutesRaw string) (*CreateQuestResult, error) {
	if err := e.Days.requireActiveDay(rec, e.now()); err != nil {
		return nil, err
	}
	id := strings.TrimSpace(templateID)
	tpl := rec.activeTemplate(id)
	if tpl == nil {
		return nil, errNotFound("template", id)
	}

	raw := strings.TrimSpace(minutesRaw)
	if raw == "" {
		raw = strconv.Itoa(tpl.Minutes)
	}
	minutes, reward, maxM, err := sizedReward(tpl.Type, raw, rec.Player.Stats)
	if err != nil {
		return nil, err
	}

	q := Quest{
		ID:         e.newID(),
		Kind:       QuestKindTemplate,
		TemplateID: tpl.ID,
		Type:       tpl.Type,
		Title:      tpl.Title,
		Minutes:    minutes,
		XPReward:   reward.XP,
		GoldReward: reward.Gold,
	}
	rec.Quests = append([]Quest{q}, rec.Quests...)
	return &CreateQuestResult{Quest: q, Quests: rec.Quests, MaxMinutes: maxM}, nil
}

type DeleteQuestResult struct {
	Quest  Quest   `json:"quest"`
	Quests []Quest `json:"quests"`
}

// DeleteQuest removes a quest from today's list. Rewards already applied stay.
func (e *Engine) DeleteQuest(rec *Record, questID string) (*DeleteQuestResult, error) {
	id := strings.TrimSpace(questID)
	i := rec.questIndex(id)
	if i < 0 {
		return nil, errNotFound("quest", id)
	}
	removed := rec.Quests[i]
	rec.Quests = append(rec.Quests[:i:i], rec.Quests[i+1:]...)
	return &DeleteQuestResult{Quest: removed, Quests: rec.Quests}, nil
}
