package tui

import "testing"

func TestCoordinator_StartsOnMain(t *testing.T) {
	c := NewCoordinator()
	if c.Surface() != SurfaceMain {
		t.Errorf("Surface() = %v, expected SurfaceMain", c.Surface())
	}
	if c.Quitting() {
		t.Error("Quitting() = true, expected false initially")
	}
}

func TestCoordinator_CloseMainSwapsToCompact(t *testing.T) {
	c := NewCoordinator()

	if c.RequestClose() {
		t.Error("closing the main surface should not terminate")
	}
	if c.Surface() != SurfaceCompact {
		t.Errorf("Surface() = %v, expected SurfaceCompact after close", c.Surface())
	}
}

func TestCoordinator_CloseCompactTerminates(t *testing.T) {
	c := NewCoordinator()
	c.GoCompact()

	if !c.RequestClose() {
		t.Error("closing the compact surface should terminate")
	}
}

func TestCoordinator_ExpandIsSymmetric(t *testing.T) {
	c := NewCoordinator()
	c.GoCompact()
	c.GoMain()
	if c.Surface() != SurfaceMain {
		t.Errorf("Surface() = %v, expected SurfaceMain after expand", c.Surface())
	}
}

func TestCoordinator_GoCompactIdempotent(t *testing.T) {
	c := NewCoordinator()
	c.GoCompact()
	c.GoCompact()
	if c.Surface() != SurfaceCompact {
		t.Errorf("Surface() = %v, expected SurfaceCompact", c.Surface())
	}
}

func TestCoordinator_QuitBypassesInterception(t *testing.T) {
	c := NewCoordinator()
	c.Quit()

	if !c.Quitting() {
		t.Error("Quitting() = false after Quit()")
	}
	if !c.RequestClose() {
		t.Error("close after Quit() should terminate")
	}
	if c.Surface() != SurfaceMain {
		t.Error("close after Quit() should not swap surfaces")
	}
}

func TestCoordinator_QuitIsOneWay(t *testing.T) {
	c := NewCoordinator()
	c.Quit()
	c.GoCompact()
	c.GoMain()

	if !c.Quitting() {
		t.Error("Quitting() should stay true once set")
	}
	if !c.RequestClose() {
		t.Error("close should still terminate after surface changes")
	}
}
