package voxtutor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxtutor/voxtutor/core"
	"github.com/voxtutor/voxtutor/engine"
	"github.com/voxtutor/voxtutor/model"
)

func TestVoxTutor_EndToEndChat(t *testing.T) {
	llm := model.NewMockModel("test")
	llm.AddResponse("What is angina?", "Chest pain from reduced coronary flow.")

	tutor := New(func(o *Options) { o.Model = llm })

	init, err := tutor.InitSession(context.Background(), engine.InitRequest{Topic: "Cardiology"})
	require.NoError(t, err)
	require.True(t, init.Created)

	resp, err := tutor.Chat(context.Background(), engine.ChatRequest{
		SessionID: init.SessionID,
		Message:   "What is angina?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Chest pain from reduced coronary flow.", resp.Reply)
	assert.Equal(t, init.SessionID, resp.SessionID)

	msgs, err := tutor.Transcript(init.SessionID)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, core.RoleSystem, msgs[0].Role)
}

func TestVoxTutor_DefaultsAreOffline(t *testing.T) {
	tutor := New()

	// Mock completion model answers deterministically.
	resp, err := tutor.Chat(context.Background(), engine.ChatRequest{Message: "hello"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Reply)

	// Mock-mode transcription needs no credential.
	text, err := tutor.Listen(context.Background(), []byte("audio"), "audio/wav")
	require.NoError(t, err)
	assert.NotEmpty(t, text)
}
