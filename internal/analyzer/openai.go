package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"

	"github.com/BerylCAtieno/blood-report-analyzer/internal/utils"
)

// Completer produces a model answer for a system instruction and a user input.
type Completer interface {
	Complete(ctx context.Context, instructions, input string) (string, error)
}

type OpenAIClient struct {
	client  openai.Client
	model   string
	limiter *RateLimiter
	logger  *utils.Logger
}

func NewOpenAIClient(apiKey, model, baseURL string, limiter *RateLimiter, logger *utils.Logger) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		// Retries on 429 are handled by the shared limiter.
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIClient{
		client:  openai.NewClient(opts...),
		model:   model,
		limiter: limiter,
		logger:  logger,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, instructions, input string) (string, error) {
	c.logger.Debug("Calling OpenAI Responses API", "model", c.model, "input_length", len(input))

	tokens := c.limiter.EstimateTokens(instructions + input)
	response, err := RateLimitedCall(ctx, c.limiter, tokens, func(ctx context.Context) (*responses.Response, error) {
		return c.client.Responses.New(ctx, responses.ResponseNewParams{
			Model:        c.model,
			Instructions: openai.String(instructions),
			Input: responses.ResponseNewParamsInputUnion{
				OfString: openai.String(input),
			},
			Temperature: openai.Float(0),
		})
	})
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}

	text := strings.TrimSpace(response.OutputText())
	if text == "" {
		return "", errors.New("no output returned by model")
	}

	c.logger.Debug("OpenAI response received", "output_length", len(text))
	return text, nil
}
