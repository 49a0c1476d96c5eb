package testutil

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvURL        = "TODOMVC_URL"
	EnvHeadless   = "TODOMVC_HEADLESS"
	EnvBrowserBin = "TODOMVC_BROWSER_BIN"
	EnvControlURL = "TODOMVC_CONTROL_URL"
	EnvTimeout    = "TODOMVC_TIMEOUT"
	EnvSlowMotion = "TODOMVC_SLOW_MOTION"
	EnvTrace      = "TODOMVC_TRACE"
)

// BrowserConfig configures how the suite reaches a browser and the app.
type BrowserConfig struct {
	URL        string        // App under test; empty means start the bundled server
	Headless   bool          // Run in headless mode (default: true)
	Bin        string        // Browser binary; empty lets rod find or download one
	ControlURL string        // DevTools address of a running browser; skips launching
	Timeout    time.Duration // Default operation timeout (default: 30s)
	SlowMotion time.Duration // Delay between input actions, for watching a headful run
	Trace      bool          // Log every driver action
}

// DefaultBrowserConfig returns sensible defaults for E2E testing.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		Headless: true,
		Timeout:  30 * time.Second,
	}
}

// ConfigFromEnv overlays the TODOMVC_* environment variables on
// DefaultBrowserConfig. Any Chromium-based browser can back a run, either
// launched from TODOMVC_BROWSER_BIN or already running at
// TODOMVC_CONTROL_URL.
func ConfigFromEnv() (BrowserConfig, error) {
	cfg := DefaultBrowserConfig()
	cfg.URL = os.Getenv(EnvURL)
	cfg.Bin = os.Getenv(EnvBrowserBin)
	cfg.ControlURL = os.Getenv(EnvControlURL)

	var err error
	if cfg.Headless, err = envBool(EnvHeadless, cfg.Headless); err != nil {
		return cfg, err
	}
	if cfg.Trace, err = envBool(EnvTrace, cfg.Trace); err != nil {
		return cfg, err
	}
	if cfg.Timeout, err = envDuration(EnvTimeout, cfg.Timeout); err != nil {
		return cfg, err
	}
	if cfg.SlowMotion, err = envDuration(EnvSlowMotion, cfg.SlowMotion); err != nil {
		return cfg, err
	}
	if cfg.Timeout <= 0 {
		return cfg, fmt.Errorf("%s must be positive, got %v", EnvTimeout, cfg.Timeout)
	}
	return cfg, nil
}

func envBool(key string, def bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s=%q: %w", key, v, err)
	}
	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s=%q: %w", key, v, err)
	}
	return d, nil
}
