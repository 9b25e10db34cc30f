package gesture

import (
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/pinchview/internal/viewer"
)

// PanStep is how far one arrow key press pans the page.
const PanStep = 10

// Action is a front-end command that does not change viewer state.
type Action int

const (
	ActionNone Action = iota
	ActionCopy
	ActionSave
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionCopy:
		return "copy"
	case ActionSave:
		return "save"
	case ActionQuit:
		return "quit"
	}
	return "none"
}

// Command is the result of a key press: a viewer event, an action, or
// neither.
type Command struct {
	Event  viewer.Event
	Action Action
}

// Rune maps a typed character to a command.
func Rune(r rune) (Command, bool) {
	switch unicode.ToLower(r) {
	case '+', '=':
		return Command{Event: viewer.ZoomIn{}}, true
	case '-', '_':
		return Command{Event: viewer.ZoomOut{}}, true
	case '0', 'r':
		return Command{Event: viewer.Reset{}}, true
	case 't':
		return Command{Event: viewer.ToggleDrawer{}}, true
	case 'i':
		return Command{Event: viewer.ToggleInfo{}}, true
	case 'c':
		return Command{Action: ActionCopy}, true
	case 's':
		return Command{Action: ActionSave}, true
	case 'q':
		return Command{Action: ActionQuit}, true
	}
	if r >= '1' && r <= '9' {
		return Command{Event: viewer.SelectPage{ID: int(r - '0')}}, true
	}
	return Command{}, false
}

// Key maps a key press to a command. Releases are ignored.
func Key(e key.Event) (Command, bool) {
	if e.Direction == key.DirRelease {
		return Command{}, false
	}
	switch e.Code {
	case key.CodeTab:
		return Command{Event: viewer.ToggleDrawer{}}, true
	case key.CodeEscape:
		return Command{Action: ActionQuit}, true
	}
	if e.Rune > 0 {
		return Rune(e.Rune)
	}
	return Command{}, false
}

// Pan returns the translation for an arrow key press.
func Pan(e key.Event) (viewer.Point, bool) {
	if e.Direction == key.DirRelease {
		return viewer.Point{}, false
	}
	switch e.Code {
	case key.CodeLeftArrow:
		return viewer.Point{X: -PanStep}, true
	case key.CodeRightArrow:
		return viewer.Point{X: PanStep}, true
	case key.CodeUpArrow:
		return viewer.Point{Y: -PanStep}, true
	case key.CodeDownArrow:
		return viewer.Point{Y: PanStep}, true
	}
	return viewer.Point{}, false
}

// PanEvents is the event pair for panning by d from the current offset:
// the drag itself and its end, so an unzoomed page snaps back.
func PanEvents(st viewer.State, d viewer.Point) []viewer.Event {
	return []viewer.Event{viewer.DragChanged{Translation: st.Offset.Add(d)}, viewer.DragEnded{}}
}
