//go:build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesyncim/todomvc/pkg/todomvc"
	"github.com/thesyncim/todomvc/pkg/todomvc/testutil"
)

// tb is satisfied by *testing.T and *rapid.T.
type tb interface {
	require.TestingT
	Helper()
}

// setup opens an isolated session for t and loads the app.
// Local storage is cleared and the session closed when t finishes.
func setup(t *testing.T) *todomvc.Page {
	t.Helper()
	_, todos := setupSession(t)
	return todos
}

func setupSession(t *testing.T) (*testutil.Session, *todomvc.Page) {
	t.Helper()
	sess := browser.SessionFor(t)
	todos := todomvc.New(sess.Page(), appURL)
	require.NoError(t, todos.NavigateTo())
	return sess, todos
}

// reset empties storage and reloads the app within the same session.
func reset(t tb, sess *testutil.Session, todos *todomvc.Page) {
	t.Helper()
	require.NoError(t, sess.ClearStorage())
	require.NoError(t, todos.NavigateTo())
}

func assertTodosLeft(t tb, todos *todomvc.Page, want int) {
	t.Helper()
	got, err := todos.TodosLeft()
	if assert.NoError(t, err) {
		assert.Equal(t, want, got, "todos left")
	}
}

func assertTodoCount(t tb, todos *todomvc.Page, want int) {
	t.Helper()
	got, err := todos.TodoCount()
	if assert.NoError(t, err) {
		assert.Equal(t, want, got, "rendered todos")
	}
}

func assertExists(t tb, todos *todomvc.Page, label string, want bool) {
	t.Helper()
	got, err := todos.TodoExists(label)
	if assert.NoError(t, err) {
		assert.Equal(t, want, got, "todo %q exists", label)
	}
}
