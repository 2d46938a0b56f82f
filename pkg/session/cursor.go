package session

// Cursor is an optional index into the visible service list. It is absent
// exactly when the visible list is empty.
type Cursor struct {
	index int
	valid bool
}

// NewCursor returns a cursor on the first row, or an absent cursor for an
// empty list.
func NewCursor(visibleLen int) Cursor {
	var c Cursor
	c.Reset(visibleLen)
	return c
}

// Index returns the selected row.
func (c Cursor) Index() (int, bool) {
	return c.index, c.valid
}

// Next moves down one row, wrapping from the last row to the first.
func (c *Cursor) Next(visibleLen int) {
	if visibleLen == 0 {
		return
	}
	if !c.valid || c.index >= visibleLen-1 {
		c.set(0)
		return
	}
	c.set(c.index + 1)
}

// Previous moves up one row, wrapping from the first row to the last.
func (c *Cursor) Previous(visibleLen int) {
	if visibleLen == 0 {
		return
	}
	if !c.valid {
		c.set(0)
		return
	}
	if c.index == 0 {
		c.set(visibleLen - 1)
		return
	}
	c.set(c.index - 1)
}

// Reclamp restores the cursor invariant after the visible list changed.
func (c *Cursor) Reclamp(visibleLen int) {
	switch {
	case visibleLen == 0:
		*c = Cursor{}
	case !c.valid:
		c.set(0)
	case c.index >= visibleLen:
		c.set(visibleLen - 1)
	}
}

// Reset puts the cursor on the first row.
func (c *Cursor) Reset(visibleLen int) {
	if visibleLen == 0 {
		*c = Cursor{}
		return
	}
	c.set(0)
}

// Select moves to row i when it is within the list.
func (c *Cursor) Select(i, visibleLen int) bool {
	if i < 0 || i >= visibleLen {
		return false
	}
	c.set(i)
	return true
}

func (c *Cursor) set(i int) {
	c.index = i
	c.valid = true
}
