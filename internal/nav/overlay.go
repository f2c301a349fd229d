package nav

// Widget identifies the modal drawn above the current screen.
type Widget int

const (
	WidgetNone Widget = iota
	WidgetHelp
	WidgetRenameInput
	WidgetAddJob
	WidgetAddJobConfirm
	WidgetRemoveJobConfirm
	WidgetColumnPicker
)

func (w Widget) String() string {
	switch w {
	case WidgetHelp:
		return "help"
	case WidgetRenameInput:
		return "rename"
	case WidgetAddJob:
		return "add"
	case WidgetAddJobConfirm:
		return "add-confirm"
	case WidgetRemoveJobConfirm:
		return "remove-confirm"
	case WidgetColumnPicker:
		return "columns"
	default:
		return "none"
	}
}

// InputMode is Editing only while a text field owns the keyboard.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeEditing
)

// Overlay is the modal layer. The zero value is closed.
type Overlay struct {
	widget Widget
	mode   InputMode
}

// Open shows w. Only the rename input enters Editing mode.
func (o *Overlay) Open(w Widget) {
	o.widget = w
	o.mode = ModeNormal
	if w == WidgetRenameInput {
		o.mode = ModeEditing
	}
}

// Close hides the overlay and returns to Normal mode.
func (o *Overlay) Close() {
	o.widget = WidgetNone
	o.mode = ModeNormal
}

// Widget returns the open widget, or WidgetNone.
func (o Overlay) Widget() Widget { return o.widget }

// Mode returns the current input mode.
func (o Overlay) Mode() InputMode { return o.mode }

// Active reports whether any overlay is open.
func (o Overlay) Active() bool { return o.widget != WidgetNone }
