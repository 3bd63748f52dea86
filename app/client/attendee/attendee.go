package attendee

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"meetcanvas/app/client/upstream"
	"meetcanvas/app/config"

	"github.com/samber/do"
)

type Client struct {
	cfg        *config.Config
	httpClient *http.Client
}

type Bot struct {
	ID string `json:"id"`
}

type Transcription struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
}

// Transcript is one utterance as delivered by the Attendee API, both via
// webhooks and via transcript polling.
type Transcript struct {
	TimestampMS   int64         `json:"timestamp_ms"`
	SpeakerName   string        `json:"speaker_name"`
	Transcription Transcription `json:"transcription"`
}

func NewClient(di *do.Injector) (*Client, error) {
	return &Client{
		cfg: do.MustInvoke[*config.Config](di),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (c *Client) CreateBot(ctx context.Context, meetingURL string) (*Bot, error) {
	payload := map[string]any{
		"meeting_url": meetingURL,
		"bot_name":    c.cfg.Attendee.BotName,
	}

	var bot Bot
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/bots", payload, &bot); err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &bot, nil
}

func (c *Client) LeaveBot(ctx context.Context, botID string) error {
	path := fmt.Sprintf("/api/v1/bots/%s/leave", botID)

	if err := c.doJSON(ctx, http.MethodPost, path, map[string]any{}, nil); err != nil {
		return fmt.Errorf("failed to leave bot: %w", err)
	}

	return nil
}

func (c *Client) GetBot(ctx context.Context, botID string) (map[string]any, error) {
	var result map[string]any
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/bots/"+botID, nil, &result); err != nil {
		return nil, fmt.Errorf("failed to get bot status: %w", err)
	}

	return result, nil
}

// GetTranscripts polls for a bot's transcripts. The transcript endpoint path
// has varied across API revisions, so several candidates are tried in order.
func (c *Client) GetTranscripts(ctx context.Context, botID string) ([]Transcript, error) {
	paths := []string{
		fmt.Sprintf("/api/v1/bots/%s/transcript", botID),
		fmt.Sprintf("/api/v1/bots/%s/transcriptions", botID),
		fmt.Sprintf("/api/v1/bots/%s/transcript-data", botID),
		"/api/v1/transcripts?bot_id=" + botID,
		"/api/v1/transcriptions?bot_id=" + botID,
	}

	for _, path := range paths {
		var transcripts []Transcript
		if err := c.doJSON(ctx, http.MethodGet, path, nil, &transcripts); err != nil {
			continue
		}

		return transcripts, nil
	}

	return nil, fmt.Errorf("no transcript endpoint found for bot %s", botID)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.Attendee.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Token "+c.cfg.Attendee.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 300 {
		return &upstream.Error{
			Service: "attendee",
			Status:  resp.StatusCode,
			Body:    string(respBody),
		}
	}

	if out == nil {
		return nil
	}

	if err = json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
