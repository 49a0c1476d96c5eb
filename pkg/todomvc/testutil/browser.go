// Package testutil launches browsers and hands out isolated sessions for
// driving the TodoMVC page object from tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/cdp"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

// BrowserClient owns one browser process, or a connection to a running one.
type BrowserClient struct {
	browser    *rod.Browser
	ws         *cdp.WebSocket
	controlURL string
	launcher   *launcher.Launcher // nil when connected through ControlURL
	timeout    time.Duration
}

// NewBrowserClient connects to cfg.ControlURL when set, otherwise launches
// a browser with container friendly flags.
func NewBrowserClient(cfg BrowserConfig) (*BrowserClient, error) {
	var l *launcher.Launcher
	var url string

	if cfg.ControlURL != "" {
		u, err := launcher.ResolveURL(cfg.ControlURL)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", cfg.ControlURL, err)
		}
		url = u
	} else {
		l = launcher.New().
			Headless(cfg.Headless).
			Set("no-sandbox").
			Set("disable-gpu")
		if cfg.Bin != "" {
			l = l.Bin(cfg.Bin)
		}
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("failed to launch browser: %w", err)
		}
		url = u
	}

	ws := &cdp.WebSocket{}
	if err := ws.Connect(context.Background(), url, nil); err != nil {
		if l != nil {
			l.Kill()
		}
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	browser := rod.New().Client(cdp.New().Start(ws)).Trace(cfg.Trace)
	if cfg.SlowMotion > 0 {
		browser = browser.SlowMotion(cfg.SlowMotion)
	}
	if err := browser.Connect(); err != nil {
		_ = ws.Close()
		if l != nil {
			l.Kill()
		}
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return &BrowserClient{
		browser:    browser,
		ws:         ws,
		controlURL: url,
		launcher:   l,
		timeout:    cfg.Timeout,
	}, nil
}

// ControlURL returns the DevTools websocket URL of the browser.
func (c *BrowserClient) ControlURL() string {
	return c.controlURL
}

// PID returns the process id of a launched browser, 0 otherwise.
func (c *BrowserClient) PID() int {
	if c.launcher == nil {
		return 0
	}
	return c.launcher.PID()
}

// Launched reports whether the client started the browser process itself.
func (c *BrowserClient) Launched() bool {
	return c.launcher != nil
}

// NewSession opens a page in a fresh incognito context. Sessions share the
// browser process but not cookies or storage.
func (c *BrowserClient) NewSession() (*Session, error) {
	ctx, err := c.browser.Incognito()
	if err != nil {
		return nil, fmt.Errorf("failed to create incognito context: %w", err)
	}
	page, err := ctx.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = ctx.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return &Session{browser: ctx, page: page, timeout: c.timeout}, nil
}

// SessionFor opens a session scoped to tb. When tb finishes, local storage
// is cleared and the session is closed; failures of either step fail tb.
func (c *BrowserClient) SessionFor(tb testing.TB) *Session {
	tb.Helper()

	s, err := c.NewSession()
	if err != nil {
		tb.Fatalf("failed to open session: %v", err)
	}
	tb.Cleanup(func() {
		if err := s.ClearStorage(); err != nil {
			tb.Errorf("storage cleanup: %v", err)
		}
		if err := s.Close(); err != nil {
			tb.Errorf("session close: %v", err)
		}
	})
	return s
}

// Close cleans up browser resources. A browser reached via ControlURL is
// left running and only the connection to it is dropped. A launched browser
// is closed, and its process group killed if closing it failed.
// Always call this (via defer) to prevent orphaned browser processes.
func (c *BrowserClient) Close() error {
	if c.launcher == nil {
		return c.ws.Close()
	}
	err := c.browser.Close()
	_ = c.ws.Close()
	if err != nil {
		c.launcher.Kill()
	}
	c.launcher.Cleanup()
	return err
}

// Session is one isolated browser page.
type Session struct {
	browser *rod.Browser
	page    *rod.Page
	timeout time.Duration
}

// Page returns the session's page.
func (s *Session) Page() *rod.Page {
	return s.page
}

// Eval executes JavaScript in the page and returns the result.
// js must be a function expression such as `() => document.title`.
func (s *Session) Eval(js string, args ...interface{}) (gson.JSON, error) {
	pg := s.page.Timeout(s.timeout)
	defer pg.CancelTimeout()

	res, err := pg.Eval(js, args...)
	if err != nil {
		return gson.New(nil), fmt.Errorf("eval failed: %w", err)
	}
	return res.Value, nil
}

// ClearStorage empties the page's local storage. Pages whose origin has no
// storage, such as about:blank or error pages, are skipped.
func (s *Session) ClearStorage() error {
	_, err := s.Eval(`() => {
		let storage
		try { storage = window.localStorage } catch (e) { return }
		if (storage) storage.clear()
	}`)
	return err
}

// StorageLen returns the number of local storage keys of the page.
func (s *Session) StorageLen() (int, error) {
	v, err := s.Eval(`() => { try { return window.localStorage.length } catch (e) { return 0 } }`)
	if err != nil {
		return 0, err
	}
	return v.Int(), nil
}

// WaitStable waits for the page to be stable (no DOM changes).
func (s *Session) WaitStable() error {
	return s.page.WaitStable(s.timeout)
}

// Close disposes the incognito context and its page.
func (s *Session) Close() error {
	return s.browser.Close()
}
