package root

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"sololevel/internal/config"
	"sololevel/internal/engine"
	"sololevel/internal/storage"
)

type app struct {
	cfg    *config.Config
	db     *sql.DB
	svc    *engine.Service
	logger *log.Logger
	player string
}

func openApp(ctx context.Context) (*app, func(), error) {
	cfg, err := config.Resolve(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	days, err := engine.NewDayCycle(cfg.Day.BoundaryHour, cfg.Location())
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	logger := log.New(os.Stderr, "sl: ", log.LstdFlags)
	player := strings.TrimSpace(flagPlayer)
	if player == "" {
		player = cfg.Player
	}
	a := &app{
		cfg:    cfg,
		db:     db,
		svc:    engine.NewService(db, engine.New(days, engine.RealClock{}), logger, cfg.Store.SaveRetries),
		logger: logger,
		player: player,
	}
	cleanup := func() {
		_ = db.Close()
	}
	return a, cleanup, nil
}

// resolveQuestID expands a unique id prefix against today's list.
func (a *app) resolveQuestID(ctx context.Context, prefix string) (string, error) {
	day, err := a.svc.Day(ctx, a.player)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(day.Quests))
	for _, q := range day.Quests {
		ids = append(ids, q.ID)
	}
	return matchPrefix("quest", prefix, ids)
}

func (a *app) resolveTemplateID(ctx context.Context, prefix string) (string, error) {
	list, err := a.svc.ListTemplates(ctx, a.player)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(list))
	for _, t := range list {
		ids = append(ids, t.ID)
	}
	return matchPrefix("template", prefix, ids)
}

// matchPrefix returns the single id starting with prefix. With no match the prefix
// is returned unchanged so the engine reports it as not found.
func matchPrefix(what, prefix string, ids []string) (string, error) {
	p := strings.TrimSpace(prefix)
	var hits []string
	for _, id := range ids {
		if id == p {
			return id, nil
		}
		if strings.HasPrefix(id, p) {
			hits = append(hits, id)
		}
	}
	switch len(hits) {
	case 0:
		return p, nil
	case 1:
		return hits[0], nil
	default:
		return "", fmt.Errorf("%s id %q is ambiguous (%d matches)", what, p, len(hits))
	}
}
