package todomvc

import (
	"errors"
	"fmt"

	"github.com/go-rod/rod"
)

var (
	// ErrElementNotFound reports that a locator matched nothing on the page.
	ErrElementNotFound = errors.New("todomvc: element not found")

	// ErrTodoNotFound reports that no rendered todo carries the given label.
	ErrTodoNotFound = fmt.Errorf("todomvc: todo not found: %w", ErrElementNotFound)

	// ErrEmptyLabel is returned for labels that are blank after trimming.
	ErrEmptyLabel = errors.New("todomvc: label must not be empty")

	// ErrSession reports that the browser session could not reach the app.
	ErrSession = errors.New("todomvc: browser session failure")
)

// notFound maps rod's lookup miss onto ErrElementNotFound and leaves every
// other error untouched.
func notFound(selector string, err error) error {
	var nf *rod.ElementNotFoundError
	if errors.As(err, &nf) {
		return fmt.Errorf("%w: %s", ErrElementNotFound, selector)
	}
	return err
}
