package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvURL, EnvHeadless, EnvBrowserBin, EnvControlURL, EnvTimeout, EnvSlowMotion, EnvTrace} {
		t.Setenv(key, "")
	}
}

func TestDefaultBrowserConfig(t *testing.T) {
	cfg := DefaultBrowserConfig()

	assert.True(t, cfg.Headless)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.URL)
	assert.Empty(t, cfg.ControlURL)
	assert.Zero(t, cfg.SlowMotion)
	assert.False(t, cfg.Trace)
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultBrowserConfig(), cfg)
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvURL, "https://todomvc.com/examples/javascript-es6/dist/")
	t.Setenv(EnvHeadless, "false")
	t.Setenv(EnvBrowserBin, "/usr/bin/chromium")
	t.Setenv(EnvControlURL, "ws://127.0.0.1:9222")
	t.Setenv(EnvTimeout, "5s")
	t.Setenv(EnvSlowMotion, "250ms")
	t.Setenv(EnvTrace, "1")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, BrowserConfig{
		URL:        "https://todomvc.com/examples/javascript-es6/dist/",
		Headless:   false,
		Bin:        "/usr/bin/chromium",
		ControlURL: "ws://127.0.0.1:9222",
		Timeout:    5 * time.Second,
		SlowMotion: 250 * time.Millisecond,
		Trace:      true,
	}, cfg)
}

func TestConfigFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{EnvHeadless, "maybe"},
		{EnvTrace, "yes please"},
		{EnvTimeout, "10"},
		{EnvTimeout, "-1s"},
		{EnvSlowMotion, "slow"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := ConfigFromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
