package session

// LogTail buffers the most recent log fetch for the log view together with
// its scroll position. While stickToBottom is set the scroll offset follows
// the end of the buffer; any manual scroll clears it.
type LogTail struct {
	lines         []string
	scroll        int
	stickToBottom bool
}

// NewLogTail returns an empty tail in auto-scroll mode.
func NewLogTail() LogTail {
	return LogTail{stickToBottom: true}
}

func (t LogTail) Lines() []string     { return t.lines }
func (t LogTail) Scroll() int         { return t.scroll }
func (t LogTail) StickToBottom() bool { return t.stickToBottom }

// Replace swaps in a freshly fetched buffer. viewportRows is the number of
// rows the log view can show right now.
func (t *LogTail) Replace(lines []string, viewportRows int) {
	t.lines = lines
	if t.stickToBottom {
		t.scroll = max(0, len(lines)-max(0, viewportRows))
		return
	}
	t.scroll = min(t.scroll, max(0, len(lines)-1))
}

func (t *LogTail) ScrollDown() {
	t.stickToBottom = false
	if t.scroll < len(t.lines)-1 {
		t.scroll++
	}
}

func (t *LogTail) ScrollUp() {
	t.stickToBottom = false
	if t.scroll > 0 {
		t.scroll--
	}
}

// JumpToEnd re-enables auto-scroll. The offset catches up on the next Replace.
func (t *LogTail) JumpToEnd() {
	t.stickToBottom = true
}

func (t *LogTail) Reset() {
	*t = NewLogTail()
}
