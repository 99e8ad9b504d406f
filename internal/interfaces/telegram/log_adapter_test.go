package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestBotLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := NewBotLogger(zap.New(core))

	l.Println("Endpoint:", "getUpdates")
	l.Printf("Failed to get updates, retrying in %d seconds...", 3)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Endpoint:getUpdates", entries[0].Message)
	assert.Equal(t, "Failed to get updates, retrying in 3 seconds...", entries[1].Message)
	assert.Equal(t, "telegram", entries[0].ContextMap()["component"])
}
