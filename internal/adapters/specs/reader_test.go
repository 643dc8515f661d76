package specs

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSpecs(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("host specs require /proc on linux")
	}

	specs, err := NewReader().ReadSpecs(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, specs.Model)
	assert.Greater(t, specs.Threads, 0)

	t.Logf("Model: %s", specs.Model)
	t.Logf("Cores: %d", specs.Cores)
	t.Logf("Threads: %d", specs.Threads)
	if specs.Memory != "" {
		t.Logf("Memory: %s", specs.Memory)
	}
}

func TestFormatMemKB(t *testing.T) {
	assert.Equal(t, "16.0 GB", formatMemKB(16*1024*1024))
	assert.Equal(t, "512 MB", formatMemKB(512*1024))
}

func TestParseLeadingInt(t *testing.T) {
	assert.Equal(t, 8, parseLeadingInt("8"))
	assert.Equal(t, 0, parseLeadingInt(""))
	assert.Equal(t, 0, parseLeadingInt("not a number"))
}
