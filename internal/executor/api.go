package executor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/futureCreator/pulse/internal/config"
	"github.com/futureCreator/pulse/internal/cost"
	vlog "github.com/futureCreator/pulse/internal/log"
)

// APIExecutor calls an OpenAI-compatible chat completions endpoint.
type APIExecutor struct {
	config *config.Config
	client openai.Client
}

// NewAPIExecutor builds the client once from cfg. Credentials are passed
// through unchecked; a bad key or endpoint surfaces as a request failure.
func NewAPIExecutor(cfg *config.Config, httpClient *http.Client) *APIExecutor {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.APITimeout()}
	}
	e := &APIExecutor{config: cfg}
	e.client = openai.NewClient(
		option.WithBaseURL(baseURL(cfg.Provider.Endpoint)),
		option.WithAPIKey(cfg.APIKey()),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	)
	return e
}

// baseURL ensures a trailing slash so the SDK appends "chat/completions"
// under the configured path.
func baseURL(endpoint string) string {
	if strings.HasSuffix(endpoint, "/") {
		return endpoint
	}
	return endpoint + "/"
}

func (e *APIExecutor) Execute(ctx context.Context, req *Request) (*Result, error) {
	start := time.Now()

	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("no prompt messages for step %q", req.Step)
	}

	model := req.Model
	if model == "" {
		model = e.config.Provider.Model
	}

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(model),
		Messages:    toParams(req.Messages),
		Temperature: openai.Float(e.config.Provider.Temperature),
	}

	resp, err := e.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("API returned %d: %w", apiErr.StatusCode, err)
		}
		return nil, fmt.Errorf("API request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty choices in API response")
	}

	output := strings.TrimSpace(resp.Choices[0].Message.Content)
	usage := cost.Usage{
		PromptTokens:     int(resp.Usage.PromptTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
	}

	var apiCost float64
	if usage.PromptTokens > 0 {
		apiCost = cost.FromUsage(model, usage)
	} else {
		vlog.Debug("no usage in API response", "model", model)
	}

	return &Result{
		Output:    output,
		Model:     model,
		Cost:      apiCost,
		Duration:  time.Since(start),
		TokensIn:  usage.PromptTokens,
		TokensOut: usage.CompletionTokens,
	}, nil
}

func toParams(msgs []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
