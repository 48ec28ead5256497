package engine

import (
	"sort"
	"strings"
)

type TemplateInput struct {
	Title      string
	Type       string
	MinutesRaw string
}

// CreateTemplate stores a reusable quest blueprint. Minutes are checked against the
// player's current cap.
func (e *Engine) CreateTemplate(rec *Record, in TemplateInput) (*Template, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	attr, err := ParseAttribute(in.Type)
	if err != nil {
		return nil, err
	}
	minutes, _, _, err := sizedReward(attr, in.MinutesRaw, rec.Player.Stats)
	if err != nil {
		return nil, err
	}

	t := Template{
		ID:        e.newID(),
		Title:     title,
		Type:      attr,
		Minutes:   minutes,
		CreatedAt: e.now().UTC(),
	}
	rec.Templates = append(rec.Templates, t)
	return &t, nil
}

// ListTemplates returns the non-archived templates, newest first.
func ListTemplates(rec *Record) []Template {
	out := make([]Template, 0, len(rec.Templates))
	for i := len(rec.Templates) - 1; i >= 0; i-- {
		if !rec.Templates[i].Archived {
			out = append(out, rec.Templates[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// ArchiveTemplate soft-deletes a template. Quests created from it are untouched.
func (e *Engine) ArchiveTemplate(rec *Record, templateID string) (*Template, error) {
	id := strings.TrimSpace(templateID)
	t := rec.activeTemplate(id)
	if t == nil {
		return nil, errNotFound("template", id)
	}
	t.Archived = true
	out := *t
	return &out, nil
}
