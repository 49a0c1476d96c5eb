package todomvc

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultTimeout bounds every operation of a Page created by New.
const DefaultTimeout = 15 * time.Second

// Locators of the TodoMVC markup.
const (
	newTodoInput       = ".new-todo"
	todoItems          = ".todo-list li"
	editingItems       = ".todo-list li.editing"
	completedItems     = ".todo-list li.completed"
	activeItems        = ".todo-list li:not(.completed)"
	todoLabel          = "label"
	todoToggle         = ".toggle"
	todoDestroy        = ".destroy"
	todoEdit           = ".edit"
	toggleAllLabel     = `label[for="toggle-all"]`
	filterLink         = `.filters a[href=%q]`
	selectedFilterLink = `.filters a.selected[href=%q]`
	anySelectedFilter  = ".filters a.selected"
	clearCompletedBtn  = ".clear-completed"
	todosLeftCounter   = ".todo-count strong"
)

const (
	jsTodosByLabel = `(sel, label) => Array.from(document.querySelectorAll(sel)).filter(li => {
		const l = li.querySelector('label')
		return l !== null && l.textContent === label
	})`

	jsReadTodos = `(sel) => Array.from(document.querySelectorAll(sel)).map(li => {
		const l = li.querySelector('label')
		return { label: l === null ? '' : l.textContent, completed: li.classList.contains('completed') }
	})`

	jsCountAbove   = `(sel, n) => document.querySelectorAll(sel).length > n`
	jsCountBelow   = `(sel, n) => document.querySelectorAll(sel).length < n`
	jsCounterBelow = `(sel, n) => { const e = document.querySelector(sel); return e !== null && Number(e.textContent) < n }`
	jsNoneMatch    = `(sel) => document.querySelectorAll(sel).length === 0`
	jsSelectedHref = `(sel) => { const a = document.querySelector(sel); return a === null ? '' : a.getAttribute('href') }`
	jsSetHash      = `(h) => { window.location.hash = h }`
	jsHasClassDone = `function () { return this.classList.contains('completed') }`
)

// Todo is a rendered todo item.
type Todo struct {
	Label     string
	Completed bool
}

// Page is the page object of the TodoMVC screen.
type Page struct {
	page    *rod.Page
	url     string
	timeout time.Duration
}

// New returns a page object that drives page and loads the app from url.
func New(page *rod.Page, url string) *Page {
	return &Page{page: page, url: url, timeout: DefaultTimeout}
}

// Context returns a clone whose operations are bound to ctx.
func (p *Page) Context(ctx context.Context) *Page {
	return &Page{page: p.page.Context(ctx), url: p.url, timeout: p.timeout}
}

// Timeout returns a clone that bounds each operation by d.
// A non-positive d removes the bound.
func (p *Page) Timeout(d time.Duration) *Page {
	return &Page{page: p.page, url: p.url, timeout: d}
}

// URL returns the address NavigateTo loads.
func (p *Page) URL() string {
	return p.url
}

// op returns the rod page to use for one operation and its release func.
func (p *Page) op() (*rod.Page, func()) {
	if p.timeout <= 0 {
		return p.page, func() {}
	}
	pg := p.page.Timeout(p.timeout)
	return pg, func() { pg.CancelTimeout() }
}

// NavigateTo loads the application and waits until it accepts input.
func (p *Page) NavigateTo() error {
	pg, done := p.op()
	defer done()

	if err := pg.Navigate(p.url); err != nil {
		return fmt.Errorf("%w: navigate to %s: %w", ErrSession, p.url, err)
	}
	if err := pg.WaitLoad(); err != nil {
		return fmt.Errorf("%w: load %s: %w", ErrSession, p.url, err)
	}
	if _, err := pg.Element(newTodoInput); err != nil {
		return fmt.Errorf("%w: %s has no %s: %w", ErrSession, p.url, newTodoInput, err)
	}
	return nil
}

// CreateTodo adds a todo. Surrounding blanks are dropped from label, as
// TodoMVC does when it saves a title. If the Completed filter is active it
// switches to All first, so the new todo is always rendered when CreateTodo
// returns.
func (p *Page) CreateTodo(label string) error {
	label, err := normalizeLabel(label)
	if err != nil {
		return err
	}
	pg, done := p.op()
	defer done()

	f, err := selectedFilter(pg)
	if err != nil {
		return fmt.Errorf("todomvc: create %q: %w", label, err)
	}
	if f == FilterCompleted {
		if err := show(pg, FilterAll); err != nil {
			return fmt.Errorf("todomvc: create %q: %w", label, err)
		}
	}

	before, err := pg.Elements(todoItems)
	if err != nil {
		return fmt.Errorf("todomvc: create %q: %w", label, err)
	}
	field, err := pg.Element(newTodoInput)
	if err != nil {
		return fmt.Errorf("todomvc: create %q: %w", label, err)
	}
	if err := field.Input(label); err != nil {
		return fmt.Errorf("todomvc: create %q: %w", label, err)
	}
	if err := field.Type(input.Enter); err != nil {
		return fmt.Errorf("todomvc: create %q: %w", label, err)
	}
	if err := pg.Wait(rod.Eval(jsCountAbove, todoItems, len(before))); err != nil {
		return fmt.Errorf("todomvc: create %q: %w", label, err)
	}
	return nil
}

// CreateTodos creates the todos in order and stops at the first failure.
// Todos created before the failure are kept.
func (p *Page) CreateTodos(labels ...string) error {
	for _, label := range labels {
		if err := p.CreateTodo(label); err != nil {
			return err
		}
	}
	return nil
}

// RenameTodo edits the first todo labelled oldLabel in place and commits
// newLabel with Enter. Like CreateTodo, it stores newLabel without
// surrounding blanks.
func (p *Page) RenameTodo(oldLabel, newLabel string) error {
	newLabel, err := normalizeLabel(newLabel)
	if err != nil {
		return err
	}
	pg, done := p.op()
	defer done()

	li, err := findTodo(pg, oldLabel)
	if err != nil {
		return fmt.Errorf("todomvc: rename %q: %w", oldLabel, err)
	}
	label, err := child(li, todoLabel)
	if err != nil {
		return fmt.Errorf("todomvc: rename %q: %w", oldLabel, err)
	}
	if err := label.Click(proto.InputMouseButtonLeft, 2); err != nil {
		return fmt.Errorf("todomvc: rename %q: %w", oldLabel, err)
	}
	edit, err := child(li, todoEdit)
	if err != nil {
		return fmt.Errorf("todomvc: rename %q: %w", oldLabel, err)
	}
	if err := edit.SelectAllText(); err != nil {
		return fmt.Errorf("todomvc: rename %q: %w", oldLabel, err)
	}
	if err := edit.Input(newLabel); err != nil {
		return fmt.Errorf("todomvc: rename %q: %w", oldLabel, err)
	}
	if err := edit.Type(input.Enter); err != nil {
		return fmt.Errorf("todomvc: rename %q: %w", oldLabel, err)
	}
	if err := pg.Wait(rod.Eval(jsNoneMatch, editingItems)); err != nil {
		return fmt.Errorf("todomvc: rename %q: %w", oldLabel, err)
	}
	return nil
}

// RemoveTodo deletes the first todo labelled label.
func (p *Page) RemoveTodo(label string) error {
	pg, done := p.op()
	defer done()

	before, err := pg.Elements(todoItems)
	if err != nil {
		return fmt.Errorf("todomvc: remove %q: %w", label, err)
	}
	li, err := findTodo(pg, label)
	if err != nil {
		return fmt.Errorf("todomvc: remove %q: %w", label, err)
	}
	// the destroy button is only displayed while the item is hovered
	if err := li.Hover(); err != nil {
		return fmt.Errorf("todomvc: remove %q: %w", label, err)
	}
	destroy, err := child(li, todoDestroy)
	if err != nil {
		return fmt.Errorf("todomvc: remove %q: %w", label, err)
	}
	if err := destroy.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("todomvc: remove %q: %w", label, err)
	}
	if err := pg.Wait(rod.Eval(jsCountBelow, todoItems, len(before))); err != nil {
		return fmt.Errorf("todomvc: remove %q: %w", label, err)
	}
	return nil
}

// CompleteTodo marks the first todo labelled label as completed. A todo
// that is already completed is left alone.
func (p *Page) CompleteTodo(label string) error {
	pg, done := p.op()
	defer done()

	li, err := findTodo(pg, label)
	if err != nil {
		return fmt.Errorf("todomvc: complete %q: %w", label, err)
	}
	res, err := li.Eval(jsHasClassDone)
	if err != nil {
		return fmt.Errorf("todomvc: complete %q: %w", label, err)
	}
	if res.Value.Bool() {
		return nil
	}
	left, err := todosLeft(pg)
	if err != nil {
		return fmt.Errorf("todomvc: complete %q: %w", label, err)
	}
	toggle, err := child(li, todoToggle)
	if err != nil {
		return fmt.Errorf("todomvc: complete %q: %w", label, err)
	}
	if err := toggle.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("todomvc: complete %q: %w", label, err)
	}
	if err := pg.Wait(rod.Eval(jsCounterBelow, todosLeftCounter, left)); err != nil {
		return fmt.Errorf("todomvc: complete %q: %w", label, err)
	}
	return nil
}

// CompleteAllTodos marks every todo completed with the toggle-all control.
// It does nothing when no todo is left, since toggle-all would then flip
// every todo back to active.
func (p *Page) CompleteAllTodos() error {
	pg, done := p.op()
	defer done()

	left, err := todosLeft(pg)
	if err != nil {
		return fmt.Errorf("todomvc: complete all: %w", err)
	}
	if left == 0 {
		return nil
	}
	toggle, err := pg.Element(toggleAllLabel)
	if err != nil {
		return fmt.Errorf("todomvc: complete all: %w", err)
	}
	if err := toggle.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("todomvc: complete all: %w", err)
	}
	if err := pg.Wait(rod.Eval(jsNoneMatch, activeItems)); err != nil {
		return fmt.Errorf("todomvc: complete all: %w", err)
	}
	return nil
}

// ShowAll selects the All filter.
func (p *Page) ShowAll() error { return p.Show(FilterAll) }

// ShowActive selects the Active filter.
func (p *Page) ShowActive() error { return p.Show(FilterActive) }

// ShowCompleted selects the Completed filter.
func (p *Page) ShowCompleted() error { return p.Show(FilterCompleted) }

// Show selects f and returns once the list is rendered under it.
func (p *Page) Show(f Filter) error {
	pg, done := p.op()
	defer done()

	if err := show(pg, f); err != nil {
		return fmt.Errorf("todomvc: show %s: %w", f, err)
	}
	return nil
}

// Filter reports the selected filter.
func (p *Page) Filter() (Filter, error) {
	pg, done := p.op()
	defer done()

	return selectedFilter(pg)
}

// ClearCompleted removes every completed todo. The clear control is only
// shown while completed todos exist; without it this is a no-op.
func (p *Page) ClearCompleted() error {
	pg, done := p.op()
	defer done()

	btns, err := pg.Elements(clearCompletedBtn)
	if err != nil {
		return fmt.Errorf("todomvc: clear completed: %w", err)
	}
	if btns.Empty() {
		return nil
	}
	btn := btns.First()
	visible, err := btn.Visible()
	if err != nil {
		return fmt.Errorf("todomvc: clear completed: %w", err)
	}
	if !visible {
		return nil
	}
	if err := btn.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("todomvc: clear completed: %w", err)
	}
	if err := pg.Wait(rod.Eval(jsNoneMatch, completedItems)); err != nil {
		return fmt.Errorf("todomvc: clear completed: %w", err)
	}
	return nil
}

// TodoExists reports whether a todo labelled label is rendered under the
// active filter.
func (p *Page) TodoExists(label string) (bool, error) {
	pg, done := p.op()
	defer done()

	_, err := findTodo(pg, label)
	if errors.Is(err, ErrTodoNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("todomvc: exists %q: %w", label, err)
	}
	return true, nil
}

// TodosLeft returns the application's count of incomplete todos. It does
// not depend on the active filter.
func (p *Page) TodosLeft() (int, error) {
	pg, done := p.op()
	defer done()

	return todosLeft(pg)
}

// TodoCount returns the number of todos rendered under the active filter.
func (p *Page) TodoCount() (int, error) {
	pg, done := p.op()
	defer done()

	els, err := pg.Elements(todoItems)
	if err != nil {
		return 0, fmt.Errorf("todomvc: count: %w", err)
	}
	return len(els), nil
}

// Todos returns the rendered todos in list order.
func (p *Page) Todos() ([]Todo, error) {
	pg, done := p.op()
	defer done()

	res, err := pg.Eval(jsReadTodos, todoItems)
	if err != nil {
		return nil, fmt.Errorf("todomvc: read todos: %w", err)
	}
	items := res.Value.Arr()
	todos := make([]Todo, 0, len(items))
	for _, item := range items {
		todos = append(todos, Todo{
			Label:     item.Get("label").Str(),
			Completed: item.Get("completed").Bool(),
		})
	}
	return todos, nil
}

// normalizeLabel returns label the way the app stores it, or ErrEmptyLabel
// when nothing is left.
func normalizeLabel(label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", ErrEmptyLabel
	}
	return label, nil
}

// findTodo returns the first rendered todo whose stored label equals label
// without its surrounding blanks.
func findTodo(pg *rod.Page, label string) (*rod.Element, error) {
	label = strings.TrimSpace(label)
	els, err := pg.ElementsByJS(rod.Eval(jsTodosByLabel, todoItems, label))
	if err != nil {
		return nil, err
	}
	if els.Empty() {
		return nil, fmt.Errorf("%w: %q", ErrTodoNotFound, label)
	}
	return els.First(), nil
}

// child looks up selector under el without waiting for it to appear.
// The returned element waits as usual in later actions.
func child(el *rod.Element, selector string) (*rod.Element, error) {
	c, err := el.Sleeper(rod.NotFoundSleeper).Element(selector)
	if err != nil {
		return nil, notFound(selector, err)
	}
	return c.Sleeper(rod.DefaultSleeper), nil
}

func selectedFilter(pg *rod.Page) (Filter, error) {
	res, err := pg.Eval(jsSelectedHref, anySelectedFilter)
	if err != nil {
		return FilterAll, fmt.Errorf("todomvc: read filter: %w", err)
	}
	return ParseFilter(res.Value.Str())
}

func show(pg *rod.Page, f Filter) error {
	sel := fmt.Sprintf(filterLink, f.Hash())
	link, err := pg.Sleeper(rod.NotFoundSleeper).Element(sel)
	if err != nil {
		return notFound(sel, err)
	}
	link = link.Sleeper(rod.DefaultSleeper)
	visible, err := link.Visible()
	if err != nil {
		return err
	}
	// the footer holding the links is hidden while the list is empty
	if visible {
		err = link.Click(proto.InputMouseButtonLeft, 1)
	} else {
		_, err = pg.Eval(jsSetHash, f.Hash())
	}
	if err != nil {
		return err
	}
	_, err = pg.Element(fmt.Sprintf(selectedFilterLink, f.Hash()))
	return err
}

func todosLeft(pg *rod.Page) (int, error) {
	els, err := pg.Elements(todosLeftCounter)
	if err != nil {
		return 0, fmt.Errorf("todomvc: todos left: %w", err)
	}
	if els.Empty() {
		return 0, nil
	}
	text, err := els.First().Text()
	if err != nil {
		return 0, fmt.Errorf("todomvc: todos left: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("todomvc: todos left: parse %q: %w", text, err)
	}
	return n, nil
}
