package api

import (
	"io"
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"sololevel/internal/engine"
)

// PlayerHeader selects the account a request acts on.
const PlayerHeader = "X-Player-ID"

type Options struct {
	DefaultPlayer  string
	AllowedOrigins string
	Logger         *log.Logger
	// AccessLog receives one line per request. Nil disables access logging.
	AccessLog io.Writer
}

type Server struct {
	svc           *engine.Service
	defaultPlayer string
	logger        *log.Logger
	app           *fiber.App
}

func New(svc *engine.Service, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr, "api: ", log.LstdFlags)
	}
	s := &Server{
		svc:           svc,
		defaultPlayer: strings.TrimSpace(opts.DefaultPlayer),
		logger:        opts.Logger,
	}

	app := fiber.New(fiber.Config{
		AppName:               "sololevel",
		DisableStartupMessage: true,
		ErrorHandler:          s.handleFiberError,
	})
	app.Use(fiberrecover.New())
	app.Use(requestid.New())
	if opts.AccessLog != nil {
		app.Use(logger.New(logger.Config{
			Output: opts.AccessLog,
			Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
		}))
	}
	origins := opts.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, " + PlayerHeader,
	}))

	s.app = app
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/health", s.health)

	s.app.Get("/player", s.getPlayer)
	s.app.Get("/player/achievements", s.getAchievements)
	s.app.Get("/day", s.getDay)
	s.app.Post("/day/start", s.startDay)
	s.app.Post("/day/quick-add", s.quickAdd)
	s.app.Post("/day/add-from-template", s.addFromTemplate)

	s.app.Post("/quests/:id/complete", s.completeQuest)
	s.app.Delete("/quests/:id", s.deleteQuest)

	s.app.Get("/templates", s.listTemplates)
	s.app.Post("/templates", s.createTemplate)
	s.app.Delete("/templates/:id", s.archiveTemplate)

	s.app.Post("/stats/allocate", s.allocate)
	s.app.Get("/rewards", s.recentRewards)
}

// App exposes the fiber app, mainly for app.Test in tests.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Listen(addr string) error {
	s.logger.Printf("listening on %s", addr)
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) playerKey(c *fiber.Ctx) string {
	if k := strings.TrimSpace(c.Get(PlayerHeader)); k != "" {
		return k
	}
	return s.defaultPlayer
}
