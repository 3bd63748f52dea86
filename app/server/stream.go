package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const (
	streamPollTimeout = time.Second
	keepAliveInterval = 15 * time.Second
)

// handleStream serves the server-sent-events feed. Each subscriber gets its
// own mailbox; an idle connection receives a comment frame every 15s so
// proxies keep it open. The subscriber is removed however the loop exits.
func (s *Server) handleStream(c *fiber.Ctx) error {
	sub := s.broadcastSvc.Subscribe()

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer s.broadcastSvc.Unsubscribe(sub)

		keepAlive := time.Now()

		for {
			select {
			case event := <-sub.Channel():
				data, err := json.Marshal(event)
				if err != nil {
					continue
				}

				fmt.Fprintf(w, "data: %s\n\n", data)
				if err := w.Flush(); err != nil {
					return
				}
			case <-time.After(streamPollTimeout):
			}

			if time.Since(keepAlive) >= keepAliveInterval {
				fmt.Fprint(w, ": keep-alive\n\n")
				if err := w.Flush(); err != nil {
					return
				}

				keepAlive = time.Now()
			}
		}
	}))

	return nil
}
