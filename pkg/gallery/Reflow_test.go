package gallery

import (
	"testing"
	"time"
)

/*
manualScheduler lets tests drive debounce and frame timing explicitly.
Debounce keeps only the latest pending func, matching the trailing-edge
semantics of TimerScheduler.
*/
type manualScheduler struct {
	pending       func()
	frames        []func()
	debounceCalls int
}

func (s *manualScheduler) Debounce(_ time.Duration, fn func()) {
	s.debounceCalls++
	s.pending = fn
}

func (s *manualScheduler) NextFrame(fn func()) {
	s.frames = append(s.frames, fn)
}

func (s *manualScheduler) fireDebounce() {
	if s.pending == nil {
		return
	}

	fn := s.pending
	s.pending = nil
	fn()
}

func (s *manualScheduler) fireFrames() {
	frames := s.frames
	s.frames = nil

	for _, fn := range frames {
		fn()
	}
}

func newTestReflower(ratios []float64) (*Reflower, *RevealGate, *manualScheduler) {
	images := make([]Image, 0, len(ratios))

	for i, ratio := range ratios {
		images = append(images, Image{
			ID:     imageID(i),
			Width:  int(ratio * 1000),
			Height: 1000,
		})
	}

	session := NewSession(images, nil)
	gate := NewRevealGate(DefaultRevealMargin, nil)
	scheduler := &manualScheduler{}

	reflower := NewReflower(session, gate, scheduler, ReflowOptions{
		TargetRowHeight: 300,
		Gap:             10,
	})

	return reflower, gate, scheduler
}

func TestRebuildCreatesAllCards(t *testing.T) {
	reflower, gate, _ := newTestReflower([]float64{0.6, 1.6, 1.0, 0.75, 1.33})

	reflower.Rebuild(1200)

	if got := reflower.CardCount(); got != 5 {
		t.Fatalf("card count = %d, want 5", got)
	}

	if got := gate.ObservedCount(); got != 5 {
		t.Errorf("observed count = %d, want 5", got)
	}

	for _, row := range reflower.Rows() {
		for _, img := range row.Images {
			card, ok := reflower.Card(img.ID)

			if !ok {
				t.Fatalf("no card for %s", img.ID)
			}

			if card.Width != img.Width || card.Y != row.Y || card.X != img.X {
				t.Errorf("card %s geometry (%d,%d,%d) does not match row output (%d,%d,%d)",
					img.ID, card.X, card.Y, card.Width, img.X, row.Y, img.Width)
			}
		}
	}
}

func TestResizeReusesCardsAndPreservesReveal(t *testing.T) {
	reflower, gate, scheduler := newTestReflower([]float64{0.6, 1.6, 1.0, 0.75, 1.33, 1.5})

	reflower.Rebuild(1200)

	// Reveal everything currently near the top of the page.
	gate.ViewportChanged(0, 10000)

	before := map[string]*Card{}

	for _, row := range reflower.Rows() {
		for _, img := range row.Images {
			card, _ := reflower.Card(img.ID)

			if !card.Revealed {
				t.Fatalf("card %s should be revealed before resize", img.ID)
			}

			before[img.ID] = card
		}
	}

	/*
	 * Even a one-pixel width change with an unchanged breakpoint must
	 * recompute geometry while reusing the existing cards.
	 */
	reflower.Resize(1201)
	scheduler.fireDebounce()

	if got := reflower.Width(); got != 1201 {
		t.Fatalf("width after resize = %d, want 1201", got)
	}

	for id, old := range before {
		card, ok := reflower.Card(id)

		if !ok {
			t.Fatalf("card %s disappeared during reflow", id)
		}

		if card != old {
			t.Errorf("card %s was recreated, not reused", id)
		}

		if !card.Revealed {
			t.Errorf("card %s lost its revealed flag", id)
		}

		if !card.Resizing {
			t.Errorf("card %s missing transient resizing state before cleanup", id)
		}
	}

	if got := gate.ObservedCount(); got != 0 {
		t.Errorf("revealed cards were re-observed: observed count = %d", got)
	}

	// Cleanup is deferred one frame, never synchronous.
	scheduler.fireFrames()

	for id := range before {
		card, _ := reflower.Card(id)

		if card.Resizing {
			t.Errorf("card %s still flagged resizing after frame cleanup", id)
		}
	}
}

func TestResizeUnchangedWidthIsNoop(t *testing.T) {
	reflower, _, scheduler := newTestReflower([]float64{1.0, 1.0, 1.0})

	reflower.Rebuild(1200)
	reflower.Resize(1200)

	if scheduler.debounceCalls != 0 {
		t.Errorf("unchanged width scheduled %d reflows, want 0", scheduler.debounceCalls)
	}
}

func TestResizeBurstCoalesces(t *testing.T) {
	reflower, _, scheduler := newTestReflower([]float64{1.0, 1.0, 1.0, 1.0})

	reflower.Rebuild(1200)

	reflower.Resize(1100)
	reflower.Resize(900)
	reflower.Resize(800)

	scheduler.fireDebounce()

	if got := reflower.Width(); got != 800 {
		t.Errorf("width after burst = %d, want trailing value 800", got)
	}

	if scheduler.pending != nil {
		t.Error("burst left an extra reflow queued")
	}
}

func TestResizeReturnToCurrentWidthSupersedesPending(t *testing.T) {
	reflower, _, scheduler := newTestReflower([]float64{0.6, 1.6, 1.0, 0.75})

	reflower.Rebuild(1200)

	/*
	 * A resize away and immediately back must not leave the earlier
	 * width queued: the trailing signal wins even when it matches the
	 * width already laid out.
	 */
	reflower.Resize(1250)
	reflower.Resize(1200)

	scheduler.fireDebounce()

	if got := reflower.Width(); got != 1200 {
		t.Fatalf("width after settling = %d, want 1200", got)
	}

	for _, row := range reflower.Rows() {
		for _, img := range row.Images {
			card, _ := reflower.Card(img.ID)

			if card.Resizing {
				t.Errorf("card %s was relaid out at a superseded width", img.ID)
			}

			if card.X != img.X || card.Y != row.Y || card.Width != img.Width {
				t.Errorf("card %s geometry drifted from the settled layout", img.ID)
			}
		}
	}
}

func TestResizeAcrossBreakpoint(t *testing.T) {
	reflower, _, scheduler := newTestReflower([]float64{1.0, 1.0, 1.0, 1.0, 1.0, 1.0})

	reflower.Rebuild(1200)

	for _, row := range reflower.Rows() {
		if len(row.Images) > 3 {
			t.Fatalf("row holds %d images at desktop width", len(row.Images))
		}
	}

	reflower.Resize(700)
	scheduler.fireDebounce()

	for _, row := range reflower.Rows() {
		if len(row.Images) > 2 {
			t.Errorf("row holds %d images below medium breakpoint, want at most 2", len(row.Images))
		}
	}
}
