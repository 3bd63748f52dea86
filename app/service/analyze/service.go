package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"meetcanvas/app/config"

	_ "embed"

	"github.com/samber/do"
	"github.com/sashabaranov/go-openai"
)

//go:embed analyze_prompt.txt
var analyzePromptTemplate string

const maxAnalyzeDuration = 60 * time.Second

type Service struct {
	cfg    *config.Config
	client *openai.Client
	model  string
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return &Service{
		cfg:    cfg,
		client: createClient(cfg.Analysis),
		model:  cfg.Analysis.Model,
	}, nil
}

func createClient(cfg config.Analysis) *openai.Client {
	clientConfig := openai.DefaultConfig(cfg.Token)

	clientConfig.BaseURL = cfg.BaseURL
	clientConfig.HTTPClient = &http.Client{
		Timeout: maxAnalyzeDuration,
	}

	return openai.NewClientWithConfig(clientConfig)
}

// Analyze turns a rendered conversation transcript into a structured graph.
// A response that cannot be parsed surfaces as *ParseError with the raw text.
func (s *Service) Analyze(ctx context.Context, conversationText string) (*Graph, error) {
	prompt := strings.ReplaceAll(analyzePromptTemplate, "{conversation}", conversationText)

	ctx, cancel := context.WithTimeout(ctx, maxAnalyzeDuration)
	defer cancel()

	aiResponse, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxCompletionTokens: 4000,
			Temperature:         0.2,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(aiResponse.Choices) == 0 {
		return nil, fmt.Errorf("no chat completion found")
	}

	raw := aiResponse.Choices[0].Message.Content

	var graph Graph
	if err = json.Unmarshal([]byte(ExtractJSON(raw)), &graph); err != nil {
		return nil, &ParseError{
			RawResponse: raw,
			Err:         err,
		}
	}

	graph.Timestamp = time.Now()

	return &graph, nil
}
