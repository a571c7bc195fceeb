package tui

// Surface identifies which window surface is being shown: the full
// main window or the compact always-on-top timer.
type Surface int

const (
	SurfaceMain Surface = iota
	SurfaceCompact
)

// Coordinator tracks which surface is visible and whether the app is
// on its way out. Closing the main surface normally swaps to the
// compact one; once Quit has been called, close requests fall through
// and actually terminate.
type Coordinator struct {
	surface  Surface
	quitting bool
}

// NewCoordinator starts on the main surface.
func NewCoordinator() *Coordinator {
	return &Coordinator{surface: SurfaceMain}
}

// Surface returns the currently visible surface.
func (c *Coordinator) Surface() Surface {
	return c.surface
}

// GoCompact switches to the compact surface. Switching while already
// compact is a no-op.
func (c *Coordinator) GoCompact() {
	c.surface = SurfaceCompact
}

// GoMain switches back to the full main surface.
func (c *Coordinator) GoMain() {
	c.surface = SurfaceMain
}

// RequestClose handles a close request on the current surface. It
// returns true when the app should terminate. While not quitting, a
// close of the main surface is intercepted and turned into a swap to
// the compact surface instead.
func (c *Coordinator) RequestClose() bool {
	if c.quitting {
		return true
	}
	if c.surface == SurfaceMain {
		c.surface = SurfaceCompact
		return false
	}
	// Closing the compact surface leaves the app.
	return true
}

// Quit marks the app as quitting. The flag is one-way; subsequent
// close requests terminate instead of swapping surfaces.
func (c *Coordinator) Quit() {
	c.quitting = true
}

// Quitting reports whether Quit has been called.
func (c *Coordinator) Quitting() bool {
	return c.quitting
}
