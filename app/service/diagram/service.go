package diagram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"meetcanvas/app/client/miro"
	"meetcanvas/app/config"
	"meetcanvas/app/service/analyze"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
)

const boardDescription = "Persistent board for meeting transcription analysis"

// Service reconciles analysis graphs against the persistent board. Instead of
// recreating items on every sync it upserts by label similarity, so repeated
// analyses of a progressing meeting converge onto the same notes.
type Service struct {
	cfg   *config.Config
	board BoardAPI
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		cfg:   do.MustInvoke[*config.Config](di),
		board: do.MustInvoke[*miro.Client](di),
	}, nil
}

// ResolveBoard returns the id of the configured analysis board, creating the
// board when it does not exist yet.
func (s *Service) ResolveBoard(ctx context.Context) (string, error) {
	boards, err := s.board.GetBoards(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list boards: %w", err)
	}

	idx := pie.FindFirstUsing(boards, func(b miro.Board) bool {
		return b.Name == s.cfg.Miro.BoardName
	})
	if idx >= 0 {
		return boards[idx].ID, nil
	}

	board, err := s.board.CreateBoard(ctx, s.cfg.Miro.BoardName, boardDescription)
	if err != nil {
		return "", fmt.Errorf("failed to create board: %w", err)
	}

	return board.ID, nil
}

// Clear wipes the analysis board. This is an explicit reset path, never run
// as part of Sync.
func (s *Service) Clear(ctx context.Context) (string, error) {
	boardID, err := s.ResolveBoard(ctx)
	if err != nil {
		return "", err
	}

	if err = s.board.ClearBoard(ctx, boardID); err != nil {
		return "", err
	}

	return boardID, nil
}

func (s *Service) Sync(ctx context.Context, boardID string, graph *analyze.Graph) (*SyncResult, error) {
	existing, err := s.board.GetBoardItems(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch board items: %w", err)
	}

	sync := &boardSync{
		svc:      s,
		boardID:  boardID,
		existing: existing,
		idToItem: make(map[string]*miro.Item),
	}

	if err = sync.createHeaders(ctx); err != nil {
		return nil, err
	}

	if err = sync.upsertNodes(ctx, graph); err != nil {
		return nil, err
	}

	sync.createConnectors(ctx, graph.Relationships)

	if err = sync.createSummary(ctx, graph.Summary); err != nil {
		return nil, err
	}

	return &SyncResult{
		BoardID:           boardID,
		BoardURL:          BoardURL(boardID),
		EmbedURL:          EmbedURL(boardID),
		ItemsCreated:      sync.created,
		ConnectorsCreated: sync.connectors,
		Timestamp:         time.Now(),
	}, nil
}

func BoardURL(boardID string) string {
	return fmt.Sprintf("https://miro.com/app/board/%s/", boardID)
}

func EmbedURL(boardID string) string {
	return fmt.Sprintf("https://miro.com/app/embed/%s/", boardID)
}

// boardSync holds the per-call state: the one-shot item snapshot and the
// node-id to board-item mapping used to resolve connectors.
type boardSync struct {
	svc      *Service
	boardID  string
	existing []miro.Item

	idToItem   map[string]*miro.Item
	created    int
	connectors int
}

// findSimilar scans the fetched items for the first whose rendered text
// reaches the threshold. Linear scan; per-sync item counts stay small.
func (b *boardSync) findSimilar(label string, threshold float64) *miro.Item {
	for i := range b.existing {
		if b.existing[i].Data.Content == "" {
			continue
		}

		if Jaccard(label, itemLabel(b.existing[i].Data.Content)) >= threshold {
			return &b.existing[i]
		}
	}

	return nil
}

// createHeaders lays down the four lane headers, skipping any that already
// exist, so headers stay unique across repeated syncs.
func (b *boardSync) createHeaders(ctx context.Context) error {
	for _, ln := range lanes {
		if b.findSimilar(ln.title, headerThreshold) != nil {
			continue
		}

		_, err := b.svc.board.CreateStickyNote(ctx, b.boardID,
			"<p><strong>"+ln.title+"</strong></p>",
			miro.Position{X: ln.x, Y: headerY},
			miro.Style{"fillColor": ln.color, "textAlign": "center"},
		)
		if err != nil {
			return fmt.Errorf("failed to create lane header: %w", err)
		}

		b.created++
	}

	return nil
}

func (b *boardSync) upsertNodes(ctx context.Context, graph *analyze.Graph) error {
	for i, topic := range capped(graph.Topics, lanes[laneTopics].maxNodes) {
		details := ""
		if topic.Description != "" {
			details = "<p>" + topic.Description + "</p>"
		}

		if err := b.upsert(ctx, nodeID(topic.ID, "t", i), topic.Label, details, lanes[laneTopics], i); err != nil {
			return err
		}
	}

	for i, insight := range capped(graph.Insights, lanes[laneInsights].maxNodes) {
		details := ""
		if len(insight.Evidence) > 0 {
			details = "<p><small>Evidence: " + joinFirst(insight.Evidence, 3) + "</small></p>"
		}

		if err := b.upsert(ctx, nodeID(insight.ID, "i", i), insight.Label, details, lanes[laneInsights], i); err != nil {
			return err
		}
	}

	for i, decision := range capped(graph.Decisions, lanes[laneDecisions].maxNodes) {
		details := ""
		if len(decision.Rationale) > 0 {
			details = "<p><small>Why: " + joinFirst(decision.Rationale, 3) + "</small></p>"
		}

		if err := b.upsert(ctx, nodeID(decision.ID, "d", i), decision.Label, details, lanes[laneDecisions], i); err != nil {
			return err
		}
	}

	for i, action := range capped(graph.Actions, lanes[laneActions].maxNodes) {
		owner := action.Owner
		if owner == "" {
			owner = "TBD"
		}
		due := action.Due
		if due == "" {
			due = "TBD"
		}
		details := "<p><small>Owner: " + owner + " / Due: " + due + "</small></p>"

		if err := b.upsert(ctx, nodeID(action.ID, "a", i), action.Label, details, lanes[laneActions], i); err != nil {
			return err
		}
	}

	return nil
}

// upsert updates a sufficiently similar existing item in place, else creates
// a new sticky note. Either way the resulting item is recorded under the
// node's id for connector resolution.
func (b *boardSync) upsert(ctx context.Context, id, label, detailsHTML string, ln lane, index int) error {
	content := "<p><strong>" + label + "</strong></p>" + detailsHTML
	pos := miro.Position{X: ln.x, Y: baseY + float64(index)*rowHeight}
	style := miro.Style{"fillColor": ln.color, "textAlign": "left"}

	if existing := b.findSimilar(label, nodeThreshold); existing != nil {
		updated, err := b.svc.board.UpdateItem(ctx, b.boardID, existing.ID, miro.ItemPayload{
			Data:     &miro.ItemData{Content: content},
			Position: &pos,
			Style:    style,
		})
		if err == nil {
			b.idToItem[id] = updated
			return nil
		}

		slog.Warn("failed to update board item, recreating", "item_id", existing.ID, "error", err)
	}

	item, err := b.svc.board.CreateStickyNote(ctx, b.boardID, content, pos, style)
	if err != nil {
		return fmt.Errorf("failed to create node %q: %w", label, err)
	}

	b.created++
	b.idToItem[id] = item

	return nil
}

// createConnectors draws relationship arrows. Endpoints that did not make it
// onto the board this sync are skipped, and individual connector failures are
// best-effort.
func (b *boardSync) createConnectors(ctx context.Context, rels []analyze.Relationship) {
	for _, rel := range capped(rels, maxConnectors) {
		src, ok := b.idToItem[rel.From]
		if !ok {
			continue
		}

		dst, ok := b.idToItem[rel.To]
		if !ok {
			continue
		}

		err := b.svc.board.CreateConnector(ctx, b.boardID, src.ID, dst.ID, connectorStyle(rel.Strength), rel.Type)
		if err != nil {
			slog.Warn("failed to create connector", "from", rel.From, "to", rel.To, "error", err)
			continue
		}

		b.connectors++
	}
}

// createSummary adds a fresh title note on every sync. Unlike nodes it is
// never upserted.
func (b *boardSync) createSummary(ctx context.Context, summary analyze.Summary) error {
	frameName := summary.FrameName
	if frameName == "" {
		frameName = "Conversation - Now"
	}

	content := "<p><strong>🎯 " + frameName + "</strong></p><p>" + summary.Blurb + "</p>"

	_, err := b.svc.board.CreateStickyNote(ctx, b.boardID, content,
		miro.Position{X: -200, Y: -400},
		miro.Style{"fillColor": "dark_blue", "textAlign": "left"},
	)
	if err != nil {
		return fmt.Errorf("failed to create summary note: %w", err)
	}

	b.created++

	return nil
}

func connectorStyle(strength float64) miro.Style {
	style := miro.Style{
		"strokeColor": "#333333",
		"strokeWidth": 2 + int(2*strength),
		"strokeStyle": "normal",
	}

	if strength < strongLinkThreshold {
		style["strokeStyle"] = "dashed"
	}

	return style
}

func capped[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit]
	}

	return items
}

func nodeID(id, prefix string, index int) string {
	if id != "" {
		return id
	}

	return prefix + strconv.Itoa(index)
}

func joinFirst(items []string, limit int) string {
	result := ""

	for i, item := range capped(items, limit) {
		if i > 0 {
			result += ", "
		}
		result += item
	}

	return result
}
