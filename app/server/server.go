package server

import (
	"errors"
	"fmt"

	"meetcanvas/app/client/attendee"
	"meetcanvas/app/client/upstream"
	"meetcanvas/app/config"
	"meetcanvas/app/service/analyze"
	"meetcanvas/app/service/broadcast"
	"meetcanvas/app/service/diagram"
	"meetcanvas/app/service/session"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
)

var _ do.Shutdownable = (*Server)(nil)

type Server struct {
	cfg      *config.Config
	app      *fiber.App
	validate *validator.Validate

	sessionSvc     *session.Service
	broadcastSvc   *broadcast.Service
	analyzeSvc     *analyze.Service
	diagramSvc     *diagram.Service
	attendeeClient *attendee.Client
}

func New(di *do.Injector) (*Server, error) {
	s := &Server{
		cfg:            do.MustInvoke[*config.Config](di),
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		sessionSvc:     do.MustInvoke[*session.Service](di),
		broadcastSvc:   do.MustInvoke[*broadcast.Service](di),
		analyzeSvc:     do.MustInvoke[*analyze.Service](di),
		diagramSvc:     do.MustInvoke[*diagram.Service](di),
		attendeeClient: do.MustInvoke[*attendee.Client](di),
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Get("/welcome", s.handleWelcome)
	app.Post("/launch", s.handleLaunch)
	app.Post("/leave/:bot_id", s.handleLeave)
	app.Post("/webhook", s.handleWebhook)
	app.Get("/stream", s.handleStream)
	app.Get("/transcripts/:bot_id", s.handleTranscripts)
	app.Get("/bot-status/:bot_id", s.handleBotStatus)
	app.Get("/conversation-status/:bot_id", s.handleConversationStatus)
	app.Post("/analyze-conversation/:bot_id", s.handleAnalyze)
	app.Post("/create-diagram/:bot_id", s.handleCreateDiagram)
	app.Get("/miro-board-info", s.handleBoardInfo)
	app.Post("/miro/reset", s.handleBoardReset)

	s.app = app

	return s, nil
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	return s.app.Listen(fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port))
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// apiError maps a service failure onto a response: upstream failures keep the
// upstream's status and message, everything else becomes a 500.
func (s *Server) apiError(c *fiber.Ctx, err error) error {
	var upErr *upstream.Error
	if errors.As(err, &upErr) {
		status := upErr.Status
		if status < fiber.StatusBadRequest {
			status = fiber.StatusBadGateway
		}

		return c.Status(status).JSON(fiber.Map{"error": upErr.Body})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
