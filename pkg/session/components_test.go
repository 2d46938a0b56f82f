package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devports/svctop/pkg/models"
)

func TestVisible_StableOrderedSubset(t *testing.T) {
	t.Parallel()

	var all []models.Service
	for i := 0; i < 12; i++ {
		all = append(all, models.Service{Name: fmt.Sprintf("u%02d.service", i), IsUserConfig: i%3 != 1})
	}

	filtered := Visible(all, true)
	j := 0
	for _, svc := range all {
		if !svc.IsUserConfig {
			continue
		}
		require.Less(t, j, len(filtered))
		assert.Equal(t, svc, filtered[j])
		j++
	}
	assert.Len(t, filtered, j)

	assert.Equal(t, all, Visible(all, false))
	assert.Empty(t, Visible(nil, true))
	assert.Empty(t, Visible(nil, false))
}

func TestVisible_DoesNotAliasInput(t *testing.T) {
	t.Parallel()

	all := []models.Service{{Name: "a.service"}}
	out := Visible(all, false)
	out[0].Name = "changed"
	assert.Equal(t, "a.service", all[0].Name)
}

func TestCursor_ReclampInvariant(t *testing.T) {
	t.Parallel()

	for start := -1; start < 8; start++ {
		for n := 0; n < 8; n++ {
			c := Cursor{}
			if start >= 0 {
				c = Cursor{index: start, valid: true}
			}
			c.Reclamp(n)
			i, ok := c.Index()
			if n == 0 {
				assert.False(t, ok, "start=%d n=%d", start, n)
				continue
			}
			require.True(t, ok, "start=%d n=%d", start, n)
			assert.GreaterOrEqual(t, i, 0)
			assert.Less(t, i, n)
			if start >= 0 && start < n {
				assert.Equal(t, start, i, "in-range cursor must not move")
			}
		}
	}
}

func TestCursor_NextPreviousInverseAndWrap(t *testing.T) {
	t.Parallel()

	for n := 1; n < 7; n++ {
		for start := 0; start < n; start++ {
			c := Cursor{index: start, valid: true}
			c.Next(n)
			c.Previous(n)
			i, _ := c.Index()
			assert.Equal(t, start, i)

			c.Previous(n)
			c.Next(n)
			i, _ = c.Index()
			assert.Equal(t, start, i)
		}

		last := Cursor{index: n - 1, valid: true}
		last.Next(n)
		i, _ := last.Index()
		assert.Equal(t, 0, i)

		first := NewCursor(n)
		first.Previous(n)
		i, _ = first.Index()
		assert.Equal(t, n-1, i)
	}

	empty := NewCursor(0)
	empty.Next(0)
	empty.Previous(0)
	_, ok := empty.Index()
	assert.False(t, ok)
}

func TestCursor_Select(t *testing.T) {
	t.Parallel()

	c := NewCursor(3)
	assert.True(t, c.Select(2, 3))
	assert.False(t, c.Select(3, 3))
	assert.False(t, c.Select(-1, 3))
	i, _ := c.Index()
	assert.Equal(t, 2, i)
}

func TestLogTail_StickToBottomFormula(t *testing.T) {
	t.Parallel()

	for rows := 0; rows < 30; rows += 7 {
		for n := 0; n < 60; n += 9 {
			tail := NewLogTail()
			buf := make([]string, n)
			tail.Replace(buf, rows)
			assert.Equal(t, max(0, n-rows), tail.Scroll(), "rows=%d n=%d", rows, n)
		}
	}
}

func TestLogTail_ManualScrollBounds(t *testing.T) {
	t.Parallel()

	tail := NewLogTail()
	tail.Replace(make([]string, 3), 10)
	require.Equal(t, 0, tail.Scroll())

	tail.ScrollUp()
	assert.Equal(t, 0, tail.Scroll())
	assert.False(t, tail.StickToBottom())

	for i := 0; i < 10; i++ {
		tail.ScrollDown()
	}
	assert.Equal(t, 2, tail.Scroll())

	tail.Replace(make([]string, 1), 10)
	assert.Equal(t, 0, tail.Scroll())

	tail.Replace(nil, 10)
	assert.Equal(t, 0, tail.Scroll())
	tail.ScrollDown()
	assert.Equal(t, 0, tail.Scroll())

	tail.JumpToEnd()
	assert.True(t, tail.StickToBottom())
	tail.Replace(make([]string, 15), 10)
	assert.Equal(t, 5, tail.Scroll())

	tail.Reset()
	assert.Empty(t, tail.Lines())
	assert.Zero(t, tail.Scroll())
	assert.True(t, tail.StickToBottom())
}

func TestCoordinator(t *testing.T) {
	t.Parallel()

	t0 := time.Unix(1000, 0)
	c := NewCoordinator(100*time.Millisecond, 2*time.Second, t0)
	assert.False(t, c.DataDue(t0))
	assert.False(t, c.DataDue(t0.Add(1999*time.Millisecond)))
	assert.True(t, c.DataDue(t0.Add(2*time.Second)))

	c.ForceRefresh()
	assert.True(t, c.DataDue(t0))

	c.MarkData(t0)
	assert.False(t, c.DataDue(t0.Add(time.Second)))

	c.MarkInput(t0)
	assert.Equal(t, 70*time.Millisecond, c.InputWait(t0.Add(30*time.Millisecond)))
	assert.Zero(t, c.InputWait(t0.Add(time.Hour)))
}

func TestInputString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "toggle-filter", InputToggleFilterView.String())
	assert.Equal(t, "unknown", Input(99).String())
}
