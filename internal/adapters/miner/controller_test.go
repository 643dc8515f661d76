package miner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart(t *testing.T) {
	message, err := NewController().Start("wallet123")
	require.NoError(t, err)
	assert.Equal(t, "Miner started for wallet: wallet123", message)
}

func TestStop(t *testing.T) {
	message, err := NewController().Stop()
	require.NoError(t, err)
	assert.Equal(t, "Miner stopped", message)
}
