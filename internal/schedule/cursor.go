package schedule

import "sync/atomic"

// Cursor is the shared work cursor of the concurrent strategy. Each call to
// Next performs a single atomic fetch-and-increment; a fetched value below
// the limit grants the caller exclusive ownership of that index.
type Cursor struct {
	next  atomic.Int64
	limit int64
}

// NewCursor returns a cursor over [0, n).
func NewCursor(n int) *Cursor {
	return &Cursor{limit: int64(n)}
}

// Next claims the next index. The boolean is false once the index space is
// exhausted, after which the caller must stop.
func (c *Cursor) Next() (int, bool) {
	i := c.next.Add(1) - 1
	return int(i), i < c.limit
}

// Claimed returns how many indices have been handed out so far. Failed
// fetches past the limit are not counted, so a completed run reports exactly
// the size of the index space.
func (c *Cursor) Claimed() int {
	if v := c.next.Load(); v < c.limit {
		return int(v)
	}
	return int(c.limit)
}

// Len returns the size of the index space.
func (c *Cursor) Len() int { return int(c.limit) }
