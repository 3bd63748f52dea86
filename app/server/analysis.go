package server

import (
	"errors"

	"meetcanvas/app/service/analyze"
	"meetcanvas/app/service/diagram"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) handleAnalyze(c *fiber.Ctx) error {
	botID := c.Params("bot_id")

	sess := s.sessionSvc.GetOrCreate(botID)
	if sess.Buffer.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No conversation data to analyze"})
	}

	graph, err := s.analyzeSvc.Analyze(c.UserContext(), sess.Buffer.Text())
	if err != nil {
		return s.analysisError(c, err)
	}

	graph.BotID = botID

	return c.JSON(graph)
}

func (s *Server) handleCreateDiagram(c *fiber.Ctx) error {
	botID := c.Params("bot_id")

	sess := s.sessionSvc.GetOrCreate(botID)
	if sess.Buffer.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No conversation data to analyze"})
	}

	graph, err := s.analyzeSvc.Analyze(c.UserContext(), sess.Buffer.Text())
	if err != nil {
		return s.analysisError(c, err)
	}

	graph.BotID = botID

	boardID, err := s.diagramSvc.ResolveBoard(c.UserContext())
	if err != nil {
		return s.apiError(c, err)
	}

	result, err := s.diagramSvc.Sync(c.UserContext(), boardID, graph)
	if err != nil {
		return s.apiError(c, err)
	}

	return c.JSON(fiber.Map{
		"analysis": graph,
		"diagram":  result,
	})
}

func (s *Server) handleBoardInfo(c *fiber.Ctx) error {
	boardID, err := s.diagramSvc.ResolveBoard(c.UserContext())
	if err != nil {
		return s.apiError(c, err)
	}

	return c.JSON(fiber.Map{
		"board_id":  boardID,
		"board_url": diagram.BoardURL(boardID),
		"embed_url": diagram.EmbedURL(boardID),
	})
}

func (s *Server) handleBoardReset(c *fiber.Ctx) error {
	boardID, err := s.diagramSvc.Clear(c.UserContext())
	if err != nil {
		return s.apiError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"board_id": boardID,
	})
}

// analysisError distinguishes a model response that failed the JSON contract
// (raw text surfaced for debugging) from transport-level failures.
func (s *Server) analysisError(c *fiber.Ctx, err error) error {
	var parseErr *analyze.ParseError
	if errors.As(err, &parseErr) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":        "Failed to parse model response",
			"raw_response": parseErr.RawResponse,
		})
	}

	return s.apiError(c, err)
}
