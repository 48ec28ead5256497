package api

import (
	"github.com/gofiber/fiber/v2"

	"sololevel/internal/engine"
)

func (s *Server) health(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, fiber.Map{"message": "server is running"})
}

func (s *Server) getPlayer(c *fiber.Ctx) error {
	view, err := s.svc.Snapshot(c.UserContext(), s.playerKey(c))
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{
		"player":     view.Player,
		"xpToNext":   view.XPToNext,
		"maxMinutes": view.MaxMinutes,
		"activeDay":  view.ActiveDay,
		"todayKey":   view.TodayKey,
	})
}

func (s *Server) getAchievements(c *fiber.Ctx) error {
	badges, err := s.svc.Achievements(c.UserContext(), s.playerKey(c))
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"achievements": badges})
}

func (s *Server) getDay(c *fiber.Ctx) error {
	day, err := s.svc.Day(c.UserContext(), s.playerKey(c))
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{
		"todayKey":  day.TodayKey,
		"activeDay": day.ActiveDay,
		"quests":    day.Quests,
	})
}

func (s *Server) startDay(c *fiber.Ctx) error {
	res, err := s.svc.StartDay(c.UserContext(), s.playerKey(c))
	if err != nil {
		return s.fail(c, err)
	}
	msg := "day started"
	if res.AlreadyStarted {
		msg = "day already started"
	}
	return ok(c, fiber.StatusOK, fiber.Map{
		"message":        msg,
		"activeDay":      res.ActiveDay,
		"alreadyStarted": res.AlreadyStarted,
	})
}

type quickAddRequest struct {
	Title          string      `json:"title"`
	Type           string      `json:"type"`
	Minutes        looseString `json:"minutes"`
	Note           string      `json:"note"`
	SaveAsTemplate bool        `json:"saveAsTemplate"`
}

func (s *Server) quickAdd(c *fiber.Ctx) error {
	var req quickAddRequest
	if err := parseBody(c, &req); err != nil {
		return s.fail(c, err)
	}
	res, err := s.svc.QuickAdd(c.UserContext(), s.playerKey(c), engine.QuickQuestInput{
		Title:          req.Title,
		Type:           req.Type,
		MinutesRaw:     req.Minutes.String(),
		Note:           req.Note,
		SaveAsTemplate: req.SaveAsTemplate,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, fiber.StatusCreated, fiber.Map{
		"quest":      res.Quest,
		"quests":     res.Quests,
		"template":   res.Template,
		"maxMinutes": res.MaxMinutes,
	})
}

type addFromTemplateRequest struct {
	TemplateID string      `json:"templateId"`
	Minutes    looseString `json:"minutes"`
}

func (s *Server) addFromTemplate(c *fiber.Ctx) error {
	var req addFromTemplateRequest
	if err := parseBody(c, &req); err != nil {
		return s.fail(c, err)
	}
	if req.TemplateID == "" {
		return s.fail(c, engine.ValidationError{Field: "templateId", Message: "templateId is required"})
	}
	res, err := s.svc.AddFromTemplate(c.UserContext(), s.playerKey(c), req.TemplateID, req.Minutes.String())
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, fiber.StatusCreated, fiber.Map{
		"quest":      res.Quest,
		"quests":     res.Quests,
		"maxMinutes": res.MaxMinutes,
	})
}

func (s *Server) completeQuest(c *fiber.Ctx) error {
	res, err := s.svc.Complete(c.UserContext(), s.playerKey(c), c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{
		"quest":        res.Quest,
		"reward":       res.Reward,
		"multipliers":  res.Multipliers,
		"dayKey":       res.DayKey,
		"leveledUp":    res.Progress.LeveledUp,
		"levelsGained": res.Progress.LevelsGained,
		"before":       res.Progress.Before,
		"after":        res.Progress.After,
	})
}

func (s *Server) deleteQuest(c *fiber.Ctx) error {
	res, err := s.svc.DeleteQuest(c.UserContext(), s.playerKey(c), c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"quest": res.Quest, "quests": res.Quests})
}

func (s *Server) listTemplates(c *fiber.Ctx) error {
	list, err := s.svc.ListTemplates(c.UserContext(), s.playerKey(c))
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"templates": list})
}

type createTemplateRequest struct {
	Title   string      `json:"title"`
	Type    string      `json:"type"`
	Minutes looseString `json:"minutes"`
}

func (s *Server) createTemplate(c *fiber.Ctx) error {
	var req createTemplateRequest
	if err := parseBody(c, &req); err != nil {
		return s.fail(c, err)
	}
	tpl, err := s.svc.CreateTemplate(c.UserContext(), s.playerKey(c), engine.TemplateInput{
		Title:      req.Title,
		Type:       req.Type,
		MinutesRaw: req.Minutes.String(),
	})
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, fiber.StatusCreated, fiber.Map{"template": tpl})
}

func (s *Server) archiveTemplate(c *fiber.Ctx) error {
	tpl, err := s.svc.ArchiveTemplate(c.UserContext(), s.playerKey(c), c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"template": tpl})
}

type allocateRequest struct {
	Stat   string      `json:"stat"`
	Points looseString `json:"points"`
}

func (s *Server) allocate(c *fiber.Ctx) error {
	var req allocateRequest
	if err := parseBody(c, &req); err != nil {
		return s.fail(c, err)
	}
	stat, err := engine.ParseStat(req.Stat)
	if err != nil {
		return s.fail(c, err)
	}
	points, err := engine.ParsePoints(req.Points.String())
	if err != nil {
		return s.fail(c, err)
	}
	res, err := s.svc.Allocate(c.UserContext(), s.playerKey(c), stat, points)
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"stat": res.Stat, "points": res.Points, "player": res.Player})
}

func (s *Server) recentRewards(c *fiber.Ctx) error {
	limit := parseLimit(c.Query("limit"), 20)
	list, err := s.svc.RecentRewards(c.UserContext(), s.playerKey(c), limit)
	if err != nil {
		return s.fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"rewards": list})
}
