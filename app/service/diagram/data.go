package diagram

import (
	"context"
	"time"

	"meetcanvas/app/client/miro"
)

// BoardAPI is the slice of the Miro client the synchronizer needs.
type BoardAPI interface {
	GetBoards(ctx context.Context) ([]miro.Board, error)
	CreateBoard(ctx context.Context, name, description string) (*miro.Board, error)
	GetBoardItems(ctx context.Context, boardID string) ([]miro.Item, error)
	CreateStickyNote(ctx context.Context, boardID, content string, pos miro.Position, style miro.Style) (*miro.Item, error)
	UpdateItem(ctx context.Context, boardID, itemID string, payload miro.ItemPayload) (*miro.Item, error)
	CreateConnector(ctx context.Context, boardID, startItemID, endItemID string, style miro.Style, caption string) error
	ClearBoard(ctx context.Context, boardID string) error
}

type SyncResult struct {
	BoardID           string    `json:"board_id"`
	BoardURL          string    `json:"board_url"`
	EmbedURL          string    `json:"embed_url"`
	ItemsCreated      int       `json:"items_created"`
	ConnectorsCreated int       `json:"connectors_created"`
	Timestamp         time.Time `json:"timestamp"`
}
