//go:build e2e

package e2e

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/thesyncim/todomvc/pkg/todomvc"
)

// labelGenerator draws labels as the app stores them: no leading or
// trailing blanks, single inner spaces.
func labelGenerator() *rapid.Generator[string] {
	return rapid.StringMatching("[A-Za-z0-9]{1,10}( [A-Za-z0-9]{1,10}){0,2}")
}

func distinctLabels(lo, hi int) *rapid.Generator[[]string] {
	return rapid.SliceOfNDistinct(labelGenerator(), lo, hi, rapid.ID[string])
}

func TestProperties(t *testing.T) {
	sess, todos := setupSession(t)

	t.Run("todos left is created minus completed", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			reset(rt, sess, todos)

			labels := distinctLabels(1, 5).Draw(rt, "labels")
			done := rapid.SliceOfN(rapid.Bool(), len(labels), len(labels)).Draw(rt, "done")

			var completed []string
			for i, label := range labels {
				if done[i] {
					completed = append(completed, label)
				}
			}
			completed = rapid.Permutation(completed).Draw(rt, "completion order")

			require.NoError(rt, todos.CreateTodos(labels...))
			for _, label := range completed {
				require.NoError(rt, todos.CompleteTodo(label))
			}

			assertTodosLeft(rt, todos, len(labels)-len(completed))
		})
	})

	t.Run("duplicate labels are all counted", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			reset(rt, sess, todos)

			label := labelGenerator().Draw(rt, "label")
			n := rapid.IntRange(1, 4).Draw(rt, "n")

			for i := 0; i < n; i++ {
				require.NoError(rt, todos.CreateTodo(label))
			}
			assertTodosLeft(rt, todos, n)

			require.NoError(rt, todos.ShowActive())
			assertTodoCount(rt, todos, n)
		})
	})

	t.Run("rename substitutes one label", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			reset(rt, sess, todos)

			// the last label is never created and serves as the new name
			all := distinctLabels(2, 5).Draw(rt, "labels")
			labels, newLabel := all[:len(all)-1], all[len(all)-1]
			i := rapid.IntRange(0, len(labels)-1).Draw(rt, "renamed")

			require.NoError(rt, todos.CreateTodos(labels...))
			require.NoError(rt, todos.RenameTodo(labels[i], newLabel))

			assertExists(rt, todos, labels[i], false)
			assertExists(rt, todos, newLabel, true)

			want := make([]todomvc.Todo, len(labels))
			for j, label := range labels {
				want[j] = todomvc.Todo{Label: label}
			}
			want[i].Label = newLabel

			got, err := todos.Todos()
			require.NoError(rt, err)
			if diff := cmp.Diff(want, got); diff != "" {
				rt.Errorf("todos mismatch (-want +got):\n%s", diff)
			}
		})
	})

	t.Run("surrounding blanks do not change identity", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			reset(rt, sess, todos)

			label := labelGenerator().Draw(rt, "label")
			pad := rapid.StringMatching("[ \t]{0,3}")
			padded := func(name string) string {
				return pad.Draw(rt, name+" head") + label + pad.Draw(rt, name+" tail")
			}

			require.NoError(rt, todos.CreateTodo(padded("created")))
			assertExists(rt, todos, label, true)
			assertExists(rt, todos, padded("queried"), true)

			require.NoError(rt, todos.CompleteTodo(padded("completed")))
			got, err := todos.Todos()
			require.NoError(rt, err)
			if diff := cmp.Diff([]todomvc.Todo{{Label: label, Completed: true}}, got); diff != "" {
				rt.Errorf("todos mismatch (-want +got):\n%s", diff)
			}
		})
	})

	t.Run("complete all moves every todo to completed", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			reset(rt, sess, todos)

			labels := rapid.SliceOfN(labelGenerator(), 1, 5).Draw(rt, "labels")

			require.NoError(rt, todos.CreateTodos(labels...))
			require.NoError(rt, todos.CompleteAllTodos())
			assertTodosLeft(rt, todos, 0)

			require.NoError(rt, todos.ShowCompleted())
			assertTodoCount(rt, todos, len(labels))

			require.NoError(rt, todos.ShowActive())
			assertTodoCount(rt, todos, 0)
		})
	})

	t.Run("clear completed keeps active todos in order", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			reset(rt, sess, todos)

			labels := distinctLabels(1, 6).Draw(rt, "labels")
			done := rapid.SliceOfN(rapid.Bool(), len(labels), len(labels)).Draw(rt, "done")

			require.NoError(rt, todos.CreateTodos(labels...))
			want := []todomvc.Todo{}
			for i, label := range labels {
				if done[i] {
					require.NoError(rt, todos.CompleteTodo(label))
					continue
				}
				want = append(want, todomvc.Todo{Label: label})
			}

			require.NoError(rt, todos.ClearCompleted())
			require.NoError(rt, todos.ShowAll())

			got, err := todos.Todos()
			require.NoError(rt, err)
			if diff := cmp.Diff(want, got); diff != "" {
				rt.Errorf("todos mismatch (-want +got):\n%s", diff)
			}
		})
	})
}
