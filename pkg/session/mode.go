package session

// Mode is either ListMode or LogMode.
type Mode interface {
	isMode()
}

// ListMode shows the service list.
type ListMode struct{}

// LogMode tails the logs of Target on top of the list.
type LogMode struct {
	Target string
}

func (ListMode) isMode() {}
func (LogMode) isMode()  {}

// Input is a logical operator action. Key bindings map onto these.
type Input int

const (
	InputNone Input = iota
	InputQuit
	InputCursorNext
	InputCursorPrevious
	InputToggleFilterView
	InputEnterLogMode
	InputExitLogMode
	InputScrollUp
	InputScrollDown
	InputJumpToEnd
	InputActionStart
	InputActionStop
	InputActionRestart
)

var inputNames = map[Input]string{
	InputNone:             "none",
	InputQuit:             "quit",
	InputCursorNext:       "cursor-next",
	InputCursorPrevious:   "cursor-previous",
	InputToggleFilterView: "toggle-filter",
	InputEnterLogMode:     "enter-logs",
	InputExitLogMode:      "exit-logs",
	InputScrollUp:         "scroll-up",
	InputScrollDown:       "scroll-down",
	InputJumpToEnd:        "jump-to-end",
	InputActionStart:      "start",
	InputActionStop:       "stop",
	InputActionRestart:    "restart",
}

func (i Input) String() string {
	if s, ok := inputNames[i]; ok {
		return s
	}
	return "unknown"
}
