package model

import (
	"context"
	"fmt"

	"github.com/voxtutor/voxtutor/core"
)

// Request captures the normalized completion input: the full ordered
// transcript plus fixed generation parameters. The orchestrator favors
// determinism: low temperature, a hard reply-length cap and a
// repetition-discouraging presence penalty.
type Request struct {
	Messages        []core.Message `json:"messages"`
	Temperature     float64        `json:"temperature"`
	MaxTokens       int64          `json:"max_tokens"`
	PresencePenalty float64        `json:"presence_penalty"`
}

// Response carries the first choice's reply text.
type Response struct {
	Reply string `json:"reply"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface the orchestrator needs to drive a chat
// turn. Complete blocks until the backend answers or ctx expires; a
// single request yields a single reply.
type Model interface {
	Complete(ctx context.Context, req Request) (Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
type MockModel struct {
	info      Info
	responses map[string]string
}

// NewMockModel constructs a MockModel.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned reply for a user input.
func (m *MockModel) AddResponse(input, reply string) { m.responses[input] = reply }

// Complete implements Model; it answers based on the last message in the
// transcript.
func (m *MockModel) Complete(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	if len(req.Messages) == 0 {
		return Response{}, fmt.Errorf("no messages provided")
	}
	last := req.Messages[len(req.Messages)-1]
	reply := m.responses[last.Content]
	if reply == "" {
		reply = fmt.Sprintf("Mock reply to: %s", last.Content)
	}
	return Response{Reply: reply}, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
