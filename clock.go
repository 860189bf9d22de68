package adboard

// FrameClock decides whether a simulation step runs on a given frame. It can
// be paused and single-stepped for debugging.
type FrameClock struct {
	paused  bool
	pending int
	frame   uint64
}

// Pause stops simulation steps until Resume or Step.
func (c *FrameClock) Pause() {
	c.paused = true
	c.pending = 0
}

// Resume continues stepping every frame.
func (c *FrameClock) Resume() {
	c.paused = false
	c.pending = 0
}

// Toggle flips between paused and running.
func (c *FrameClock) Toggle() {
	if c.paused {
		c.Resume()
	} else {
		c.Pause()
	}
}

// Paused reports whether the clock is paused.
func (c *FrameClock) Paused() bool {
	return c.paused
}

// Step queues n single steps while paused. Ignored when running or n <= 0.
func (c *FrameClock) Step(n int) {
	if !c.paused || n <= 0 {
		return
	}
	c.pending += n
}

// Frame returns the number of simulation steps taken so far.
func (c *FrameClock) Frame() uint64 {
	return c.frame
}

// advance reports whether a simulation step should run this frame, and counts
// it if so.
func (c *FrameClock) advance() bool {
	if c.paused {
		if c.pending == 0 {
			return false
		}
		c.pending--
	}
	c.frame++
	return true
}
