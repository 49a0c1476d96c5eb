// Package todomvc provides a page object for the TodoMVC application.
//
// A Page wraps a single rod page and exposes the todo list as semantic
// operations. Test code creates, renames, completes and filters todos
// without touching selectors.
//
// # Quick Start
//
//	page := browser.MustPage()
//	todos := todomvc.New(page, "http://localhost:8080/")
//	if err := todos.NavigateTo(); err != nil {
//	    return err
//	}
//	if err := todos.CreateTodos("Buy the milk", "Clean up the room"); err != nil {
//	    return err
//	}
//	if err := todos.CompleteTodo("Buy the milk"); err != nil {
//	    return err
//	}
//	left, err := todos.TodosLeft() // 1
//
// # Identity
//
// Todos have no id visible to the user, so a todo is addressed by its
// label. When several todos share a label, targeted operations act on the
// first one in list order. Labels are compared the way the application
// stores them, without surrounding blanks, so " Buy " addresses "Buy".
//
// # Filters
//
// TodoExists and TodoCount only see todos rendered under the active
// Filter. TodosLeft reads the application's own counter and does not
// depend on the filter.
//
// # Errors
//
// Operations never retry. A missing todo yields an error matching
// ErrTodoNotFound, which also matches ErrElementNotFound. Navigation
// failures match ErrSession.
package todomvc
