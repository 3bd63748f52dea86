package server

import (
	"bytes"
	"encoding/json"
	"log/slog"

	"meetcanvas/app/client/attendee"
	"meetcanvas/app/service/broadcast"
	"meetcanvas/app/service/session"
	"meetcanvas/app/service/webhook"

	"github.com/gofiber/fiber/v2"
)

type launchRequest struct {
	MeetingURL string `json:"meeting_url" validate:"required"`
}

func (s *Server) handleWelcome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Welcome to the Attendee API!"})
}

func (s *Server) handleLaunch(c *fiber.Ctx) error {
	var req launchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}

	if err := s.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "meeting_url is required"})
	}

	bot, err := s.attendeeClient.CreateBot(c.UserContext(), req.MeetingURL)
	if err != nil {
		return s.apiError(c, err)
	}

	// New meeting: reset the board so the diagram starts fresh. Advisory
	// only, a failed reset must not fail the launch.
	if _, err := s.diagramSvc.Clear(c.UserContext()); err != nil {
		slog.Warn("failed to clear board on launch", "error", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"bot_id": bot.ID})
}

func (s *Server) handleLeave(c *fiber.Ctx) error {
	if err := s.attendeeClient.LeaveBot(c.UserContext(), c.Params("bot_id")); err != nil {
		return s.apiError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

func (s *Server) handleWebhook(c *fiber.Ctx) error {
	var payload map[string]any

	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}

	signature := c.Get("X-Webhook-Signature")
	if !webhook.Verify(payload, signature, s.cfg.Attendee.WebhookSecret) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid signature"})
	}

	trigger, _ := payload["trigger"].(string)
	data := payload["data"]

	switch trigger {
	case "transcript.update":
		s.appendTranscript(payload, data)
		s.broadcastSvc.Publish(broadcast.Event{Type: "transcript", Data: data})
	case "bot.state_change":
		s.broadcastSvc.Publish(broadcast.Event{Type: "status", Data: data})
	}

	return c.SendString("")
}

// appendTranscript feeds a transcript.update payload into the owning
// session's buffer. Payloads without a resolvable bot id are broadcast-only.
func (s *Server) appendTranscript(payload map[string]any, data any) {
	botID, _ := payload["bot_id"].(string)
	if botID == "" {
		if m, ok := data.(map[string]any); ok {
			botID, _ = m["bot_id"].(string)
		}
	}
	if botID == "" {
		return
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return
	}

	var transcript attendee.Transcript
	if err = json.Unmarshal(raw, &transcript); err != nil {
		slog.Warn("failed to parse transcript payload", "bot_id", botID, "error", err)
		return
	}

	sess := s.sessionSvc.GetOrCreate(botID)
	sess.Buffer.Add(toEntry(transcript))
	sess.Touch()
}

func toEntry(t attendee.Transcript) session.TranscriptEntry {
	speaker := t.SpeakerName
	if speaker == "" {
		speaker = "Unknown"
	}

	return session.TranscriptEntry{
		Timestamp:  t.TimestampMS,
		Speaker:    speaker,
		Text:       t.Transcription.Transcript,
		Confidence: t.Transcription.Confidence,
	}
}

func (s *Server) handleTranscripts(c *fiber.Ctx) error {
	botID := c.Params("bot_id")

	transcripts, err := s.attendeeClient.GetTranscripts(c.UserContext(), botID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":       err.Error(),
			"transcripts": []any{},
		})
	}

	sess := s.sessionSvc.GetOrCreate(botID)
	for _, transcript := range transcripts {
		sess.Buffer.Add(toEntry(transcript))
	}
	sess.Touch()

	return c.JSON(transcripts)
}

func (s *Server) handleBotStatus(c *fiber.Ctx) error {
	bot, err := s.attendeeClient.GetBot(c.UserContext(), c.Params("bot_id"))
	if err != nil {
		return s.apiError(c, err)
	}

	return c.JSON(bot)
}

func (s *Server) handleConversationStatus(c *fiber.Ctx) error {
	botID := c.Params("bot_id")

	sess, ok := s.sessionSvc.Get(botID)
	if !ok {
		return c.JSON(fiber.Map{
			"bot_id":           botID,
			"transcript_count": 0,
			"has_data":         false,
		})
	}

	entries := sess.Buffer.Snapshot()

	var latest any
	if len(entries) > 0 {
		latest = entries[len(entries)-1]
	}

	return c.JSON(fiber.Map{
		"bot_id":            botID,
		"transcript_count":  len(entries),
		"has_data":          len(entries) > 0,
		"latest_transcript": latest,
		"speakers":          sess.Buffer.Speakers(),
	})
}
