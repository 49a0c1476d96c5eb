//go:build e2e

// Package e2e provides end-to-end tests of the TodoMVC application.
//
// These tests are isolated from the standard test suite via build tags.
// They require a Chromium based browser (auto-downloaded by Rod if not
// present) and are intended for CI pipelines or explicit local testing.
//
// Running E2E tests:
//
//	go test -tags=e2e ./e2e/...
//
// Running all tests except E2E:
//
//	go test ./...
//
// Pointing the suite at another TodoMVC deployment or browser:
//
//	TODOMVC_URL=https://todomvc.com/examples/javascript-es6/dist/ go test -tags=e2e ./e2e/...
//	TODOMVC_BROWSER_BIN=/usr/bin/microsoft-edge go test -tags=e2e ./e2e/...
//	TODOMVC_CONTROL_URL=ws://127.0.0.1:9222 go test -tags=e2e ./e2e/...
//
// E2E tests use:
//   - Rod for browser automation (Chrome DevTools Protocol)
//   - todomvc-server for the application under test, unless TODOMVC_URL is set
//   - the todomvc page object and its testutil sessions
//
// Test isolation:
// One browser is shared by the package. Each test gets its own incognito
// session, and local storage is cleared when the test ends, so no test
// sees todos left by another.
package e2e
