package accord

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	unsetEnv(t, "ACCORD_EPHEMERAL_VIEW_TIMEOUT", "ACCORD_DISPATCH_TIMEOUT")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("ACCORD_EPHEMERAL_VIEW_TIMEOUT", "30s")
	t.Setenv("ACCORD_DISPATCH_TIMEOUT", "250ms")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.EphemeralViewTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.DispatchTimeout)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("ACCORD_DISPATCH_TIMEOUT", "soon")

	_, err := LoadConfig()
	assert.Error(t, err)
}
