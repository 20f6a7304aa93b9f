package sequence

// Cursor tracks the current frame index of a presentation
// It is owned by the caller; the mapping core never sees it
type Cursor struct {
	index int
	count int
}

// NewCursor starts at frame 0 of count frames
func NewCursor(count int) *Cursor {
	if count < 0 {
		count = 0
	}
	return &Cursor{count: count}
}

// Index returns the current frame index
func (c *Cursor) Index() int { return c.index }

// Count returns the number of frames
func (c *Cursor) Count() int { return c.count }

// First moves to frame 0
func (c *Cursor) First() int {
	c.index = 0
	return c.index
}

// Last moves to the final frame
func (c *Cursor) Last() int {
	return c.Seek(c.count - 1)
}

// Next advances one frame, stopping at the last
func (c *Cursor) Next() int {
	return c.Seek(c.index + 1)
}

// Prev steps back one frame, stopping at the first
func (c *Cursor) Prev() int {
	return c.Seek(c.index - 1)
}

// Seek moves to index clamped to the valid range
func (c *Cursor) Seek(index int) int {
	if index >= c.count {
		index = c.count - 1
	}
	if index < 0 {
		index = 0
	}
	c.index = index
	return c.index
}

// AtEnd reports whether the cursor is on the final frame
func (c *Cursor) AtEnd() bool {
	return c.count == 0 || c.index == c.count-1
}
