// Package session implements the interactive service session: the list view
// with its filter and cursor, the log tail sub-mode, and the cadences that
// decide when the service directory is polled.
package session

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/devports/svctop/pkg/models"
)

// Directory lists services, controls them and fetches their logs. Calls
// block and may fail.
type Directory interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	Control(ctx context.Context, name string, action models.Action) error
	FetchLogs(ctx context.Context, name string, maxLines int) ([]string, error)
}

// Viewport reports how many log rows the renderer can currently show.
type Viewport interface {
	LogRows() int
}

// Options configures a Session.
type Options struct {
	InputCadence       time.Duration
	DataCadence        time.Duration
	LogLines           int
	ShowOnlyUserConfig bool
	// AnchorByName keeps the cursor on the same service across refreshes
	// when it is still visible instead of keeping the same row index.
	AnchorByName  bool
	FilteredLabel string
	AllLabel      string
	Logger        *log.Logger
	Now           func() time.Time
}

// Display is the read-only model handed to the renderer each cycle.
type Display struct {
	Visible       []models.Service
	Cursor        Cursor
	Mode          Mode
	LogLines      []string
	LogScroll     int
	StickToBottom bool
	ViewLabel     string
	LastRefresh   time.Time
}

// Selected returns the service under the cursor.
func (d Display) Selected() (models.Service, bool) {
	i, ok := d.Cursor.Index()
	if !ok || i >= len(d.Visible) {
		return models.Service{}, false
	}
	return d.Visible[i], true
}

// Session owns all state of one interactive session. It is not safe for
// concurrent use; a single loop drives it.
type Session struct {
	dir      Directory
	viewport Viewport
	opts     Options
	logger   *log.Logger

	services    []models.Service
	view        ViewState
	cursor      Cursor
	mode        Mode
	tail        LogTail
	timing      *Coordinator
	quit        bool
	lastRefresh time.Time
}

// New creates a session. Call Start before the first Tick.
func New(dir Directory, viewport Viewport, opts Options) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.LogLines <= 0 {
		opts.LogLines = 100
	}
	if opts.FilteredLabel == "" {
		opts.FilteredLabel = "User-Defined Services"
	}
	if opts.AllLabel == "" {
		opts.AllLabel = "All Services"
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		dir:      dir,
		viewport: viewport,
		opts:     opts,
		logger:   logger,
		view:     ViewState{ShowOnlyUserConfig: opts.ShowOnlyUserConfig},
		mode:     ListMode{},
		tail:     NewLogTail(),
		timing:   NewCoordinator(opts.InputCadence, opts.DataCadence, opts.Now()),
	}
}

// Start performs the initial service load.
func (s *Session) Start(ctx context.Context) error {
	services, err := s.dir.ListServices(ctx)
	if err != nil {
		return &InitialLoadError{Err: err}
	}
	now := s.opts.Now()
	s.services = services
	s.lastRefresh = now
	s.cursor = NewCursor(len(s.Visible()))
	s.timing.MarkData(now)
	s.timing.MarkInput(now)
	return nil
}

// Tick runs the refresh half of one loop cycle: the service list when its
// cadence elapsed in list mode, the log buffer on every cycle in log mode.
func (s *Session) Tick(ctx context.Context, now time.Time) {
	switch m := s.mode.(type) {
	case ListMode:
		if s.timing.DataDue(now) {
			s.refresh(ctx, now)
		}
	case LogMode:
		s.refreshLogs(ctx, m.Target)
	}
	s.timing.MarkInput(now)
}

// InputWait returns how long the loop may wait for input before the next cycle.
func (s *Session) InputWait(now time.Time) time.Duration {
	return s.timing.InputWait(now)
}

// ForceRefresh schedules a service list fetch for the next cycle.
func (s *Session) ForceRefresh() {
	s.timing.ForceRefresh()
}

// Quit reports whether the operator asked to leave.
func (s *Session) Quit() bool { return s.quit }

// Mode returns the current mode.
func (s *Session) Mode() Mode { return s.mode }

// Visible returns the services shown under the current filter.
func (s *Session) Visible() []models.Service {
	return Visible(s.services, s.view.ShowOnlyUserConfig)
}

// Display builds the renderer model.
func (s *Session) Display() Display {
	label := s.opts.AllLabel
	if s.view.ShowOnlyUserConfig {
		label = s.opts.FilteredLabel
	}
	return Display{
		Visible:       s.Visible(),
		Cursor:        s.cursor,
		Mode:          s.mode,
		LogLines:      s.tail.Lines(),
		LogScroll:     s.tail.Scroll(),
		StickToBottom: s.tail.StickToBottom(),
		ViewLabel:     label,
		LastRefresh:   s.lastRefresh,
	}
}

// Dispatch applies one operator input to the current mode.
func (s *Session) Dispatch(ctx context.Context, in Input) {
	s.logger.Debug("Dispatching input", "input", in)
	switch m := s.mode.(type) {
	case ListMode:
		s.dispatchList(ctx, in)
	case LogMode:
		s.dispatchLog(m, in)
	}
}

func (s *Session) dispatchList(ctx context.Context, in Input) {
	visible := s.Visible()
	switch in {
	case InputQuit:
		s.quit = true
	case InputCursorNext:
		s.cursor.Next(len(visible))
	case InputCursorPrevious:
		s.cursor.Previous(len(visible))
	case InputToggleFilterView:
		s.view.ShowOnlyUserConfig = !s.view.ShowOnlyUserConfig
		s.cursor.Reset(len(s.Visible()))
	case InputEnterLogMode:
		svc, ok := s.selected(visible)
		if !ok {
			return
		}
		lines, err := s.dir.FetchLogs(ctx, svc.Name, s.opts.LogLines)
		if err != nil {
			s.logger.Warn("Failed to fetch logs", "service", svc.Name, "error", err)
			return
		}
		s.mode = LogMode{Target: svc.Name}
		s.tail.Reset()
		s.tail.Replace(lines, s.logRows())
	case InputActionStart:
		s.control(ctx, visible, models.ActionStart)
	case InputActionStop:
		s.control(ctx, visible, models.ActionStop)
	case InputActionRestart:
		s.control(ctx, visible, models.ActionRestart)
	case InputNone, InputExitLogMode, InputScrollUp, InputScrollDown, InputJumpToEnd:
		// not bound in list mode
	}
}

func (s *Session) dispatchLog(m LogMode, in Input) {
	switch in {
	case InputExitLogMode:
		s.logger.Debug("Leaving log view", "service", m.Target)
		s.tail.Reset()
		s.mode = ListMode{}
		s.timing.ForceRefresh()
	case InputScrollDown:
		s.tail.ScrollDown()
	case InputScrollUp:
		s.tail.ScrollUp()
	case InputJumpToEnd:
		s.tail.JumpToEnd()
	case InputQuit:
		s.quit = true
	case InputNone, InputCursorNext, InputCursorPrevious, InputToggleFilterView,
		InputEnterLogMode, InputActionStart, InputActionStop, InputActionRestart:
		// not bound in log mode
	}
}

// control runs a start/stop/restart on the selected service. Failures are
// logged at debug level only; the next refresh shows the resulting state.
func (s *Session) control(ctx context.Context, visible []models.Service, action models.Action) {
	svc, ok := s.selected(visible)
	if !ok {
		return
	}
	if err := s.dir.Control(ctx, svc.Name, action); err != nil {
		s.logger.Debug("Service action failed", "service", svc.Name, "action", action, "error", err)
	}
	s.timing.ForceRefresh()
}

func (s *Session) refresh(ctx context.Context, now time.Time) {
	s.timing.MarkData(now)

	prevName := ""
	if svc, ok := s.selected(s.Visible()); ok {
		prevName = svc.Name
	}

	services, err := s.dir.ListServices(ctx)
	if err != nil {
		s.logger.Warn("Failed to refresh services", "error", err)
		return
	}
	s.services = services
	s.lastRefresh = now

	visible := s.Visible()
	if s.opts.AnchorByName && prevName != "" {
		for i, svc := range visible {
			if svc.Name == prevName {
				s.cursor.Select(i, len(visible))
				return
			}
		}
	}
	s.cursor.Reclamp(len(visible))
}

func (s *Session) refreshLogs(ctx context.Context, target string) {
	lines, err := s.dir.FetchLogs(ctx, target, s.opts.LogLines)
	if err != nil {
		s.logger.Warn("Failed to refresh logs", "service", target, "error", err)
		return
	}
	s.tail.Replace(lines, s.logRows())
}

func (s *Session) logRows() int {
	if s.viewport == nil {
		return 0
	}
	return s.viewport.LogRows()
}

func (s *Session) selected(visible []models.Service) (models.Service, bool) {
	i, ok := s.cursor.Index()
	if !ok || i >= len(visible) {
		return models.Service{}, false
	}
	return visible[i], true
}
