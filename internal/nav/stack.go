package nav

// Event is a navigation intent derived from a key.
type Event int

const (
	// EventOpen enters the selected item.
	EventOpen Event = iota
	// EventBack leaves the focused widget or screen.
	EventBack
	// EventDescend moves focus into the content below the tabs.
	EventDescend
)

// Gate carries the conditions some transitions depend on.
type Gate struct {
	// FilesTab is true while the detail screen shows its files tab.
	FilesTab bool
}

type transitionKey struct {
	screen Screen
	focus  Focus
	event  Event
}

type transition struct {
	apply func(s *Stack)
	allow func(g Gate) bool
}

// transitions lists every legal navigation change. Pairs not listed are no-ops.
var transitions = map[transitionKey]transition{
	{ScreenJobList, FocusList, EventOpen}: {
		apply: func(s *Stack) { s.Push(ScreenJobDetail) },
	},
	{ScreenJobDetail, FocusTabs, EventBack}: {
		apply: func(s *Stack) { s.Pop() },
	},
	{ScreenJobDetail, FocusTabs, EventDescend}: {
		apply: func(s *Stack) { s.setFocus(FocusFileTree) },
		allow: func(g Gate) bool { return g.FilesTab },
	},
	{ScreenJobDetail, FocusFileTree, EventBack}: {
		apply: func(s *Stack) { s.setFocus(FocusTabs) },
	},
}

// Stack is the navigation stack. It always holds at least the root route.
type Stack struct {
	routes []Route
}

// NewStack returns a stack holding only the job list.
func NewStack() *Stack {
	return &Stack{routes: []Route{{Screen: ScreenJobList, Focus: entryFocus(ScreenJobList)}}}
}

// Push enters screen with its entry focus.
func (s *Stack) Push(screen Screen) {
	s.routes = append(s.routes, Route{Screen: screen, Focus: entryFocus(screen)})
}

// Pop removes the top route unless it is the root. It reports whether a route
// was removed.
func (s *Stack) Pop() bool {
	if len(s.routes) <= 1 {
		return false
	}
	s.routes = s.routes[:len(s.routes)-1]
	return true
}

// Current returns the top route.
func (s *Stack) Current() Route {
	return s.routes[len(s.routes)-1]
}

// CurrentFocus returns the focus of the top route.
func (s *Stack) CurrentFocus() Focus {
	return s.Current().Focus
}

// Len returns the number of routes.
func (s *Stack) Len() int {
	return len(s.routes)
}

// Routes returns a copy of the stack, root first.
func (s *Stack) Routes() []Route {
	return append([]Route(nil), s.routes...)
}

// Apply performs the transition for ev from the current route. It reports
// whether the stack changed.
func (s *Stack) Apply(ev Event, g Gate) bool {
	cur := s.Current()
	t, ok := transitions[transitionKey{cur.Screen, cur.Focus, ev}]
	if !ok {
		return false
	}
	if t.allow != nil && !t.allow(g) {
		return false
	}
	t.apply(s)
	return true
}

func (s *Stack) setFocus(f Focus) {
	s.routes[len(s.routes)-1].Focus = f
}
