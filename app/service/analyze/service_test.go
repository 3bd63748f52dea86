package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"meetcanvas/app/config"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, modelResponse string) *Service {
	t.Helper()

	mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		response := map[string]any{
			"id":     "cmpl-1",
			"object": "chat.completion",
			"choices": []map[string]any{
				{
					"index": 0,
					"message": map[string]any{
						"role":    "assistant",
						"content": modelResponse,
					},
					"finish_reason": "stop",
				},
			},
		}
		_ = json.NewEncoder(w).Encode(response)
	}))
	t.Cleanup(mock.Close)

	di := do.New()
	do.ProvideValue(di, &config.Config{
		Analysis: config.Analysis{
			BaseURL: mock.URL + "/v1",
			Token:   "test-token",
			Model:   "test-model",
		},
	})

	svc, err := New(di)
	require.NoError(t, err)

	return svc
}

func TestAnalyzeParsesFencedResponse(t *testing.T) {
	svc := newTestService(t, "Here is the analysis:\n```json\n"+`{
		"topics": [{"id": "t1", "label": "Offline mode", "importance": 0.8}],
		"insights": [{"id": "i1", "label": "Poor connectivity", "confidence": 0.7}],
		"decisions": [{"id": "d1", "label": "Run a pilot", "based_on": ["t1"]}],
		"actions": [{"id": "a1", "label": "Implement caching", "owner": "Alice"}],
		"relationships": [{"from": "t1", "to": "d1", "type": "leads_to", "strength": 0.9}],
		"summary": {"frame_name": "Planning sync", "blurb": "Agreed on a pilot."}
	}`+"\n```")

	graph, err := svc.Analyze(context.Background(), "[Alice]: we should go offline-first")
	require.NoError(t, err)

	require.Len(t, graph.Topics, 1)
	assert.Equal(t, "t1", graph.Topics[0].ID)
	assert.Equal(t, "Offline mode", graph.Topics[0].Label)
	require.Len(t, graph.Relationships, 1)
	assert.Equal(t, 0.9, graph.Relationships[0].Strength)
	assert.Equal(t, "Planning sync", graph.Summary.FrameName)
	assert.False(t, graph.Timestamp.IsZero())
}

func TestAnalyzeParseErrorKeepsRawResponse(t *testing.T) {
	raw := "I could not produce JSON, sorry."
	svc := newTestService(t, raw)

	graph, err := svc.Analyze(context.Background(), "[Alice]: hello")
	require.Error(t, err)
	assert.Nil(t, graph)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, raw, parseErr.RawResponse)
}

func TestAnalyzeTransportFailure(t *testing.T) {
	svc := newTestService(t, "")

	// point the service at a dead endpoint
	svc.client = createClient(config.Analysis{
		BaseURL: "http://127.0.0.1:1/v1",
		Token:   "test-token",
	})

	graph, err := svc.Analyze(context.Background(), "[Alice]: hello")
	require.Error(t, err)
	assert.Nil(t, graph)

	var parseErr *ParseError
	assert.False(t, errors.As(err, &parseErr))
}
