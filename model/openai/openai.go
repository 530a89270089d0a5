// Package openai implements model.Model on the OpenAI Chat Completions
// API. Any OpenAI-compatible endpoint works by overriding the base URL;
// the default targets OpenRouter, matching the tutoring deployment.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/voxtutor/voxtutor/core"
	"github.com/voxtutor/voxtutor/model"
)

// DefaultBaseURL targets the OpenRouter chat completions endpoint.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// Options configure the OpenAI model adapter. Fields mirror the subset of
// Chat Completion parameters this core fixes per request.
type Options struct {
	Model   string
	BaseURL string
	APIKey  string
}

// Model wraps the OpenAI Chat Completions API behind the generic
// model.Model interface.
type Model struct {
	client *openai.Client
	opts   Options
}

// NewModel creates a new adapter using the official client.
func NewModel(optFns ...func(o *Options)) *Model {
	opts := Options{
		Model:   "meta-llama/llama-3-8b-instruct",
		BaseURL: DefaultBaseURL,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	clientOpts := []option.RequestOption{option.WithBaseURL(opts.BaseURL)}
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := openai.NewClient(clientOpts...)
	return &Model{client: &client, opts: opts}
}

// NewModelFromClient creates an adapter from an existing client.
func NewModelFromClient(client *openai.Client, optFns ...func(o *Options)) *Model {
	opts := Options{Model: "meta-llama/llama-3-8b-instruct"}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Model{client: client, opts: opts}
}

// Complete sends the full transcript and returns the first choice's
// message content.
func (m *Model) Complete(ctx context.Context, req model.Request) (model.Response, error) {
	params := openai.ChatCompletionNewParams{
		Messages:        buildMessages(req.Messages),
		Model:           m.opts.Model,
		Temperature:     openai.Float(req.Temperature),
		MaxTokens:       openai.Int(req.MaxTokens),
		PresencePenalty: openai.Float(req.PresencePenalty),
	}

	resp, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return model.Response{}, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return model.Response{}, fmt.Errorf("no choices returned")
	}
	return model.Response{Reply: resp.Choices[0].Message.Content}, nil
}

// buildMessages converts transcript messages into OpenAI chat messages.
func buildMessages(msgs []core.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, msg := range msgs {
		switch msg.Role {
		case core.RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case core.RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}

// Info returns metadata describing this adapter.
func (m *Model) Info() model.Info {
	return model.Info{Name: m.opts.Model, Provider: "openai"}
}
