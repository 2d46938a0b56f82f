package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/devports/svctop/pkg/session"
)

// keyMap binds keys to session inputs. List and log bindings overlap (q, l,
// j, k), so resolution always goes through the current mode.
type keyMap struct {
	ForceQuit key.Binding

	Quit    key.Binding
	Down    key.Binding
	Up      key.Binding
	View    key.Binding
	Logs    key.Binding
	Start   key.Binding
	Stop    key.Binding
	Restart key.Binding

	Back       key.Binding
	ScrollDown key.Binding
	ScrollUp   key.Binding
	End        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),

		Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next")),
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "prev")),
		View:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "view")),
		Logs:    key.NewBinding(key.WithKeys("l", "enter"), key.WithHelp("l", "logs")),
		Start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Stop:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),

		Back:       key.NewBinding(key.WithKeys("esc", "q", "l"), key.WithHelp("esc/q/l", "close")),
		ScrollDown: key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "scroll")),
		ScrollUp:   key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "scroll")),
		End:        key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "auto-scroll")),
	}
}

// resolve maps a key press to the input it means in mode.
func (k keyMap) resolve(msg tea.KeyMsg, mode session.Mode) session.Input {
	if key.Matches(msg, k.ForceQuit) {
		return session.InputQuit
	}
	switch mode.(type) {
	case session.ListMode:
		switch {
		case key.Matches(msg, k.Quit):
			return session.InputQuit
		case key.Matches(msg, k.Down):
			return session.InputCursorNext
		case key.Matches(msg, k.Up):
			return session.InputCursorPrevious
		case key.Matches(msg, k.View):
			return session.InputToggleFilterView
		case key.Matches(msg, k.Logs):
			return session.InputEnterLogMode
		case key.Matches(msg, k.Start):
			return session.InputActionStart
		case key.Matches(msg, k.Stop):
			return session.InputActionStop
		case key.Matches(msg, k.Restart):
			return session.InputActionRestart
		}
	case session.LogMode:
		switch {
		case key.Matches(msg, k.Back):
			return session.InputExitLogMode
		case key.Matches(msg, k.ScrollDown):
			return session.InputScrollDown
		case key.Matches(msg, k.ScrollUp):
			return session.InputScrollUp
		case key.Matches(msg, k.End):
			return session.InputJumpToEnd
		}
	}
	return session.InputNone
}

// helpFor returns the footer bindings for mode.
func (k keyMap) helpFor(mode session.Mode) []key.Binding {
	if _, ok := mode.(session.LogMode); ok {
		return []key.Binding{k.ScrollDown, k.ScrollUp, k.End, k.Back}
	}
	return []key.Binding{k.Down, k.Up, k.View, k.Logs, k.Start, k.Stop, k.Restart, k.Quit}
}
