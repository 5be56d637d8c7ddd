package core

// Action is a key-independent intent. The platform maps keys to actions
// so boards never see raw key names.
type Action uint8

const (
	ActionNone     Action = iota
	ActionUp              // cursor up
	ActionDown            // cursor down
	ActionLeft            // cursor left
	ActionRight           // cursor right
	ActionSelect          // select or move at the cursor
	ActionDeselect        // drop the selection
	ActionRules           // toggle the rules panel
	ActionBack            // leave to the menu
	ActionRestart         // start a new round
	ActionQuit            // leave the program
	ActionPause           // pause or resume
	actionCount
)

var actionNames = [actionCount]string{
	"None", "Up", "Down", "Left", "Right", "Select", "Deselect",
	"Rules", "Back", "Restart", "Quit", "Pause",
}

func (a Action) String() string {
	if a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame collects what happened between two ticks: a set of actions
// and the left-button clicks in screen coordinates, oldest first.
// The zero value is an empty frame.
type InputFrame struct {
	actions uint16
	Clicks  []Point
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if a < actionCount {
		f.actions |= 1 << a
	}
}

// Has reports whether a was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.actions&(1<<a) != 0
}

// Click records a pointer press at screen position (x, y).
func (f *InputFrame) Click(x, y int) {
	f.Clicks = append(f.Clicks, Point{X: x, Y: y})
}

// Direction folds the cursor actions into a unit step. Vertical wins
// when both axes were pressed in the same frame.
func (f InputFrame) Direction() Point {
	switch {
	case f.Has(ActionUp):
		return Point{Y: -1}
	case f.Has(ActionDown):
		return Point{Y: 1}
	case f.Has(ActionLeft):
		return Point{X: -1}
	case f.Has(ActionRight):
		return Point{X: 1}
	}
	return Point{}
}

// Empty reports whether the frame holds no actions and no clicks.
func (f InputFrame) Empty() bool {
	return f.actions == 0 && len(f.Clicks) == 0
}

// Clear resets the frame, reusing the click buffer.
func (f *InputFrame) Clear() {
	f.actions = 0
	f.Clicks = f.Clicks[:0]
}

// Clone returns a copy that shares nothing with f.
func (f InputFrame) Clone() InputFrame {
	return InputFrame{actions: f.actions, Clicks: append([]Point(nil), f.Clicks...)}
}
