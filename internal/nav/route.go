package nav

// Screen identifies a logical screen on the navigation stack.
type Screen int

const (
	ScreenJobList Screen = iota
	ScreenJobDetail
)

func (s Screen) String() string {
	switch s {
	case ScreenJobList:
		return "job-list"
	case ScreenJobDetail:
		return "job-detail"
	default:
		return "unknown"
	}
}

// Focus identifies the widget that receives keys on a screen.
type Focus int

const (
	FocusNone Focus = iota
	FocusList
	FocusTabs
	FocusFileTree
)

func (f Focus) String() string {
	switch f {
	case FocusList:
		return "list"
	case FocusTabs:
		return "tabs"
	case FocusFileTree:
		return "file-tree"
	default:
		return "none"
	}
}

// Route is one navigation stack entry.
type Route struct {
	Screen Screen
	Focus  Focus
}

// entryFocus is the focus a screen starts with when pushed.
func entryFocus(s Screen) Focus {
	switch s {
	case ScreenJobList:
		return FocusList
	case ScreenJobDetail:
		return FocusTabs
	default:
		return FocusNone
	}
}
