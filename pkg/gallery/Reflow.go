package gallery

import (
	"sync"
	"time"
)

const (
	DefaultDebounceInterval = 150 * time.Millisecond

	// Roughly one frame at 60Hz; used to defer the resizing-state cleanup
	// to the next paint opportunity.
	frameInterval = 16 * time.Millisecond
)

/*
Card exclusively owns one rendered image slot. Cards are created once per
image identifier and reused across reflows by identifier lookup, so reveal
state survives a resize-triggered re-layout without replaying transitions.
*/
type Card struct {
	ImageID  string
	X        int
	Y        int
	Width    int
	Height   int
	Revealed bool
	Resizing bool
}

/*
Scheduler abstracts the two timing primitives the reflower needs: a
trailing debounce for resize bursts and a deferred next-frame callback for
post-layout cleanup. Tests supply a manual implementation.
*/
type Scheduler interface {
	Debounce(d time.Duration, fn func())
	NextFrame(fn func())
}

/*
TimerScheduler is the production Scheduler backed by time.AfterFunc. Each
Debounce call resets the pending timer, so rapid resize events coalesce
into one trailing invocation after motion settles.
*/
type TimerScheduler struct {
	mu    sync.Mutex
	timer *time.Timer
}

func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{}
}

func (s *TimerScheduler) Debounce(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}

	s.timer = time.AfterFunc(d, fn)
}

func (s *TimerScheduler) NextFrame(fn func()) {
	time.AfterFunc(frameInterval, fn)
}

type ReflowOptions struct {
	TargetRowHeight  int
	Gap              int
	DebounceInterval time.Duration
}

/*
Reflower decides when layout recomputation happens and reconciles the new
row set against existing cards. The initial Rebuild is a full build; later
Resize signals are width-driven, debounced, and guarded so overlapping
relayouts cannot interleave.
*/
type Reflower struct {
	mu        sync.Mutex
	session   *Session
	gate      *RevealGate
	scheduler Scheduler
	opts      ReflowOptions

	cards     map[string]*Card
	rows      []Row
	width     int
	requested int
	reflowing bool
}

func NewReflower(session *Session, gate *RevealGate, scheduler Scheduler, opts ReflowOptions) *Reflower {
	if opts.TargetRowHeight < 1 {
		opts.TargetRowHeight = DefaultRowHeight
	}

	if opts.DebounceInterval <= 0 {
		opts.DebounceInterval = DefaultDebounceInterval
	}

	return &Reflower{
		session:   session,
		gate:      gate,
		scheduler: scheduler,
		opts:      opts,
		cards:     map[string]*Card{},
	}
}

/*
Rebuild runs the initial, non-reconciling layout: every card is created
fresh and handed to the reveal gate.
*/
func (r *Reflower) Rebuild(containerWidth int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.width = containerWidth
	r.requested = containerWidth
	r.rows = r.layout(containerWidth)
	r.cards = map[string]*Card{}

	for _, row := range r.rows {
		for _, img := range row.Images {
			card := &Card{
				ImageID: img.ID,
				X:       img.X,
				Y:       row.Y,
				Width:   img.Width,
				Height:  img.Height,
			}

			r.cards[img.ID] = card
			r.gate.Observe(card)
		}
	}
}

/*
Resize coalesces a burst of resize signals into one trailing reflow. An
incoming signal is compared against the last requested width, not the
laid-out one: a burst ending on the width already on screen still re-arms
the debounce, superseding any stale intermediate reflow, and the relayout
itself becomes a no-op when the trailing width matches what is laid out.
*/
func (r *Reflower) Resize(containerWidth int) {
	r.mu.Lock()

	if containerWidth == r.requested || containerWidth <= 0 {
		r.mu.Unlock()
		return
	}

	r.requested = containerWidth
	interval := r.opts.DebounceInterval
	r.mu.Unlock()

	r.scheduler.Debounce(interval, func() {
		r.reflow(containerWidth)
	})
}

/*
reflow recomputes rows for the new width and reconciles them against the
existing cards. Surviving identifiers reuse their card with updated
geometry and an intact Revealed flag; new identifiers get fresh cards
observed by the reveal gate. The transient Resizing flag set on reused
cards is cleared on the next frame, never synchronously, so an in-flight
transition is not thrashed.

The reflowing guard serializes reflow starts only: a reflow arriving while
a previous cleanup is still pending re-enters the debounce and lands on the
final width.
*/
func (r *Reflower) reflow(containerWidth int) {
	r.mu.Lock()

	if r.reflowing {
		interval := r.opts.DebounceInterval
		latest := r.requested
		r.mu.Unlock()

		r.scheduler.Debounce(interval, func() {
			r.reflow(latest)
		})
		return
	}

	if containerWidth == r.width {
		r.mu.Unlock()
		return
	}

	r.reflowing = true
	r.width = containerWidth
	r.rows = r.layout(containerWidth)

	previous := r.cards
	next := make(map[string]*Card, len(previous))

	for _, row := range r.rows {
		for _, img := range row.Images {
			if card, ok := previous[img.ID]; ok {
				card.X = img.X
				card.Y = row.Y
				card.Width = img.Width
				card.Height = img.Height
				card.Resizing = true
				next[img.ID] = card
				continue
			}

			card := &Card{
				ImageID: img.ID,
				X:       img.X,
				Y:       row.Y,
				Width:   img.Width,
				Height:  img.Height,
			}

			next[img.ID] = card
			r.gate.Observe(card)
		}
	}

	for id, card := range previous {
		if _, ok := next[id]; !ok {
			r.gate.Unobserve(card)
		}
	}

	r.cards = next
	r.reflowing = false
	r.mu.Unlock()

	r.scheduler.NextFrame(r.clearResizing)
}

func (r *Reflower) clearResizing() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, card := range r.cards {
		card.Resizing = false
	}
}

func (r *Reflower) layout(containerWidth int) []Row {
	return Layout(r.session.SequencedImages(), LayoutOptions{
		TargetRowHeight: r.opts.TargetRowHeight,
		ContainerWidth:  containerWidth,
		Gap:             r.opts.Gap,
		MaxPerRow:       MaxPerRowFor(containerWidth),
	})
}

func (r *Reflower) Rows() []Row {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.rows
}

func (r *Reflower) Width() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.width
}

func (r *Reflower) Card(id string) (*Card, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	card, ok := r.cards[id]
	return card, ok
}

func (r *Reflower) CardCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.cards)
}
