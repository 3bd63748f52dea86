package miro

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"meetcanvas/app/client/upstream"
	"meetcanvas/app/config"

	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

const (
	defaultBaseURL     = "https://api.miro.com/v2"
	maxParallelDeletes = 8
)

type Client struct {
	cfg        *config.Config
	baseURL    string
	httpClient *http.Client
}

func NewClient(di *do.Injector) (*Client, error) {
	return &Client{
		cfg:     do.MustInvoke[*config.Config](di),
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (c *Client) GetBoards(ctx context.Context) ([]Board, error) {
	var result listResponse[Board]
	if err := c.doJSON(ctx, http.MethodGet, "/boards", nil, &result); err != nil {
		return nil, fmt.Errorf("failed to get boards: %w", err)
	}

	return result.Data, nil
}

func (c *Client) CreateBoard(ctx context.Context, name, description string) (*Board, error) {
	payload := map[string]any{
		"name":        name,
		"description": description,
	}

	var board Board
	if err := c.doJSON(ctx, http.MethodPost, "/boards", payload, &board); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return &board, nil
}

// GetBoardItems fetches a single page of board items.
func (c *Client) GetBoardItems(ctx context.Context, boardID string) ([]Item, error) {
	var result listResponse[Item]
	if err := c.doJSON(ctx, http.MethodGet, "/boards/"+boardID+"/items", nil, &result); err != nil {
		return nil, fmt.Errorf("failed to get board items: %w", err)
	}

	return result.Data, nil
}

func (c *Client) CreateStickyNote(ctx context.Context, boardID, content string, pos Position, style Style) (*Item, error) {
	payload := map[string]any{
		"data": ItemData{
			Content: content,
			Shape:   "square",
		},
		"position": pos,
	}
	if style != nil {
		payload["style"] = style
	}

	var item Item
	if err := c.doJSON(ctx, http.MethodPost, "/boards/"+boardID+"/sticky_notes", payload, &item); err != nil {
		return nil, fmt.Errorf("failed to create sticky note: %w", err)
	}

	return &item, nil
}

func (c *Client) UpdateItem(ctx context.Context, boardID, itemID string, payload ItemPayload) (*Item, error) {
	var item Item
	if err := c.doJSON(ctx, http.MethodPatch, "/boards/"+boardID+"/items/"+itemID, payload, &item); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	return &item, nil
}

func (c *Client) CreateConnector(ctx context.Context, boardID, startItemID, endItemID string, style Style, caption string) error {
	payload := map[string]any{
		"start": map[string]any{
			"item": map[string]any{"id": startItemID},
		},
		"end": map[string]any{
			"item": map[string]any{"id": endItemID},
		},
	}
	if style != nil {
		payload["style"] = style
	}
	if caption != "" {
		payload["captions"] = []map[string]any{
			{"content": caption},
		}
	}

	if err := c.doJSON(ctx, http.MethodPost, "/boards/"+boardID+"/connectors", payload, nil); err != nil {
		return fmt.Errorf("failed to create connector: %w", err)
	}

	return nil
}

func (c *Client) DeleteItem(ctx context.Context, boardID, itemID string) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/boards/"+boardID+"/items/"+itemID, nil, nil); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	return nil
}

// ClearBoard deletes every item on the board, paging until the board reads
// empty. Individual delete failures are logged and skipped; the loop stops
// once a full pass deletes nothing.
func (c *Client) ClearBoard(ctx context.Context, boardID string) error {
	for {
		items, err := c.GetBoardItems(ctx, boardID)
		if err != nil {
			return err
		}

		if len(items) == 0 {
			return nil
		}

		var deleted atomic.Int64

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(maxParallelDeletes)

		for _, item := range items {
			item := item
			g.Go(func() error {
				if err := c.DeleteItem(gctx, boardID, item.ID); err != nil {
					slog.Warn("failed to delete board item", "item_id", item.ID, "error", err)
					return nil
				}

				deleted.Add(1)
				return nil
			})
		}

		_ = g.Wait()

		if deleted.Load() == 0 {
			return fmt.Errorf("could not delete any of %d remaining items on board %s", len(items), boardID)
		}
	}
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

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.Miro.AccessToken)
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
			Service: "miro",
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
