package todomvc

import (
	"fmt"
	"strings"
)

// Filter is the view state of the todo list.
type Filter int

const (
	FilterAll Filter = iota
	FilterActive
	FilterCompleted
)

// String returns the label of the filter link.
func (f Filter) String() string {
	switch f {
	case FilterAll:
		return "All"
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return fmt.Sprintf("Filter(%d)", int(f))
	}
}

// Hash returns the URL fragment the filter link points to.
func (f Filter) Hash() string {
	switch f {
	case FilterActive:
		return "#/active"
	case FilterCompleted:
		return "#/completed"
	default:
		return "#/"
	}
}

// ParseFilter accepts a filter name or a link fragment such as "#/active".
// The "#!/" prefix used by some TodoMVC ports is accepted too. An empty
// string means FilterAll.
func ParseFilter(s string) (Filter, error) {
	v := strings.TrimSpace(s)
	v = strings.TrimPrefix(v, "#!/")
	v = strings.TrimPrefix(v, "#/")
	v = strings.TrimPrefix(v, "#")
	switch strings.ToLower(v) {
	case "", "all":
		return FilterAll, nil
	case "active":
		return FilterActive, nil
	case "completed":
		return FilterCompleted, nil
	}
	return FilterAll, fmt.Errorf("todomvc: unknown filter %q", s)
}
