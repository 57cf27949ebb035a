package ecs

// Commands buffers work that must run after every system of the frame has
// finished, such as notifying listeners about what happened during the frame.
type Commands struct {
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues fn to run when the frame's commands are flushed.
func (c *Commands) Defer(fn func()) {
	if fn == nil {
		return
	}
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.defers)
}

// Flush runs the queued commands in order and resets the buffer.
// Commands queued while flushing run in the same flush.
func (c *Commands) Flush() {
	for i := 0; i < len(c.defers); i++ {
		c.defers[i]()
	}
	clear(c.defers)
	c.defers = c.defers[:0]
}
