package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/devports/svctop/pkg/models"
	"github.com/devports/svctop/pkg/session"
	"github.com/devports/svctop/pkg/systemd"
)

const (
	defaultWidth  = 120
	defaultHeight = 24
	nameWidth     = 40
)

// TopCmd starts the interactive TUI mode (like 'top')
func (a *App) TopCmd(ctx context.Context) error {
	scr := &screen{}
	sess := session.New(a.directory, scr, a.sessionOptions())
	if err := sess.Start(ctx); err != nil {
		return err
	}

	var changes <-chan struct{}
	if a.config.Watch() {
		w, err := systemd.WatchUnitDir(a.config.UnitDir, a.logger)
		if err != nil {
			a.logger.Warn("Unit directory watch disabled", "dir", a.config.UnitDir, "error", err)
		} else {
			defer w.Close()
			changes = w.Changes()
		}
	}

	model := newTopModel(ctx, sess, scr, changes)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// screen is the renderer's view of the terminal size. The session queries it
// for the log viewport height before recomputing the log scroll offset.
type screen struct {
	width  int
	height int
}

func (s *screen) size() (int, int) {
	w, h := s.width, s.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

// LogRows is the inner height of the log box: 80% of the terminal minus its border.
func (s *screen) LogRows() int {
	_, h := s.size()
	return max(0, h*80/100-2)
}

// topModel represents the TUI state.
type topModel struct {
	ctx     context.Context
	sess    *session.Session
	screen  *screen
	keys    keyMap
	help    help.Model
	changes <-chan struct{}
}

func newTopModel(ctx context.Context, sess *session.Session, scr *screen, changes <-chan struct{}) topModel {
	return topModel{
		ctx:     ctx,
		sess:    sess,
		screen:  scr,
		keys:    defaultKeyMap(),
		help:    help.New(),
		changes: changes,
	}
}

type tickMsg time.Time
type unitsChangedMsg struct{}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return unitsChangedMsg{}
	}
}

func (m topModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.sess.InputWait(time.Now())), waitForChange(m.changes))
}

func (m topModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		in := m.keys.resolve(msg, m.sess.Mode())
		if in == session.InputNone {
			return m, nil
		}
		m.sess.Dispatch(m.ctx, in)
		if m.sess.Quit() {
			return m, tea.Quit
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.screen.width = msg.Width
		m.screen.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		m.sess.Tick(m.ctx, time.Time(msg))
		return m, tickCmd(m.sess.InputWait(time.Now()))
	case unitsChangedMsg:
		m.sess.ForceRefresh()
		return m, waitForChange(m.changes)
	}
	return m, nil
}

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	stateStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("57")).Foreground(lipgloss.Color("15")).Bold(true)
	logBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12"))
)

func (m topModel) View() string {
	d := m.sess.Display()
	width, height := m.screen.size()

	var b strings.Builder
	switch mode := d.Mode.(type) {
	case session.LogMode:
		b.WriteString(headerStyle.Render(fitLine(logTitle(mode.Target, d.StickToBottom), width)))
		b.WriteString("\n\n")
		b.WriteString(m.renderLogs(d, width))
		b.WriteString("\n")
	case session.ListMode:
		b.WriteString(headerStyle.Render(fitLine(fmt.Sprintf("svctop - %s", d.ViewLabel), width)))
		b.WriteString("\n\n")
		b.WriteString(renderList(d, width, max(1, height-5)))
		b.WriteString("\n\n")
		status := fmt.Sprintf("Last updated: %s | Services: %d", d.LastRefresh.Format("15:04:05"), len(d.Visible))
		b.WriteString(footerStyle.Render(fitLine(status, width)))
		b.WriteString("\n")
	}
	b.WriteString(m.help.ShortHelpView(m.keys.helpFor(d.Mode)))
	return b.String()
}

func logTitle(target string, live bool) string {
	if live {
		return fmt.Sprintf("Logs: %s (Live | Auto-scroll: ON) - j/k to pause", target)
	}
	return fmt.Sprintf("Logs: %s (Paused | Auto-scroll: OFF) - G to resume", target)
}

func renderList(d session.Display, width, rows int) string {
	if len(d.Visible) == 0 {
		return fitLine("(no services in this view, tab shows all)", width)
	}

	sel, hasSel := d.Cursor.Index()
	offset := 0
	if hasSel && sel >= rows {
		offset = sel - rows + 1
	}

	var lines []string
	for i := offset; i < len(d.Visible) && i < offset+rows; i++ {
		svc := d.Visible[i]
		glyph, color := statusGlyph(svc)
		origin := " "
		if svc.IsUserConfig {
			origin = "*"
		}
		state := fmt.Sprintf("[%s::%s]", svc.LoadedState, svc.SubState)

		if hasSel && i == sel {
			plain := fmt.Sprintf(">> %s%s %s %s", origin, glyph, fixedCell(svc.Name, nameWidth), state)
			lines = append(lines, selectedStyle.Render(fitLine(plain, width)))
			continue
		}
		lines = append(lines, fmt.Sprintf("   %s %s %s",
			lipgloss.NewStyle().Foreground(color).Render(origin+glyph),
			fixedCell(svc.Name, nameWidth),
			stateStyle.Render(state),
		))
	}
	return strings.Join(lines, "\n")
}

func statusGlyph(svc models.Service) (string, lipgloss.Color) {
	switch {
	case svc.IsRunning():
		return "●", lipgloss.Color("10")
	case svc.IsFailed():
		return "✖", lipgloss.Color("9")
	default:
		return "○", lipgloss.Color("8")
	}
}

func (m topModel) renderLogs(d session.Display, width int) string {
	rows := m.screen.LogRows()
	inner := max(1, width*80/100-2)

	start := min(d.LogScroll, len(d.LogLines))
	end := min(start+rows, len(d.LogLines))
	content := make([]string, 0, rows)
	for _, line := range d.LogLines[start:end] {
		content = append(content, fixedCell(strings.ReplaceAll(line, "\t", "    "), inner))
	}
	if len(d.LogLines) == 0 && rows > 0 {
		content = append(content, fixedCell("(no log entries)", inner))
	}
	for len(content) < rows {
		content = append(content, fixedCell("", inner))
	}

	box := logBoxStyle.Render(strings.Join(content, "\n"))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}

func fixedCell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "…")
	}
	return s + strings.Repeat(" ", width-runewidth.StringWidth(s))
}

func fitLine(line string, width int) string {
	if width <= 0 {
		return line
	}
	lineWidth := runewidth.StringWidth(line)
	if lineWidth >= width {
		return runewidth.Truncate(line, width, "")
	}
	return line + strings.Repeat(" ", width-lineWidth)
}
