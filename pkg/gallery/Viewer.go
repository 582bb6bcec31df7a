package gallery

const (
	// Drag translation follows the pointer at this factor, dropping to the
	// stiffer edge factor when the drag points past a navigation boundary
	// so the image bounces instead of hard-stopping.
	dragResistance = 0.85
	edgeResistance = 0.25

	// A gesture completes navigation when it travels far enough or ends
	// fast enough. Velocity is in pixels per millisecond.
	flickDistance = 80.0
	flickVelocity = 0.5
)

type Key int

const (
	KeyArrowLeft Key = iota
	KeyArrowRight
	KeyEscape
)

/*
PreloadFunc requests an image's large-resolution variant ahead of display.
The viewer guarantees it is called at most once per index.
*/
type PreloadFunc func(index int, id string)

type DragOutcome int

const (
	DragIgnored DragOutcome = iota
	DragSpringBack
	DragAdvanced
	DragRetreated
)

/*
Viewer is the full-screen modal's state machine: Closed, or Open at an
index into the session's ordered sequence. While open the current index is
always within bounds; navigation past either end is a silent no-op, not an
error. Opening or navigating preloads the adjacent images' large variants.
*/
type Viewer struct {
	session   *Session
	preload   PreloadFunc
	open      bool
	current   int
	preloaded map[int]struct{}
	drag      dragState
}

type dragState struct {
	active  bool
	onImage bool
	startX  float64
	lastX   float64
}

func NewViewer(session *Session, preload PreloadFunc) *Viewer {
	return &Viewer{
		session:   session,
		preload:   preload,
		preloaded: map[int]struct{}{},
	}
}

/*
Open transitions to Open at the given index, clamped into bounds. Opening
an empty sequence stays closed.
*/
func (v *Viewer) Open(index int) {
	if v.session.Len() == 0 {
		return
	}

	v.open = true
	v.current = clamp(index, 0, v.session.Len()-1)
	v.preloadAround()
}

func (v *Viewer) Close() {
	v.open = false
	v.drag = dragState{}
}

func (v *Viewer) IsOpen() bool {
	return v.open
}

func (v *Viewer) Current() int {
	return v.current
}

func (v *Viewer) CurrentImage() (Image, bool) {
	if !v.open {
		return Image{}, false
	}

	return v.session.ImageAt(v.current)
}

/*
Next advances to the following image. At the last index it is a no-op;
boundaries are terminal edges, there is no wraparound.
*/
func (v *Viewer) Next() {
	if !v.open || v.current >= v.session.Len()-1 {
		return
	}

	v.current++
	v.preloadAround()
}

func (v *Viewer) Prev() {
	if !v.open || v.current <= 0 {
		return
	}

	v.current--
	v.preloadAround()
}

/*
HandleKey maps keyboard input onto navigation. Keys are only interpreted
while the viewer is open.
*/
func (v *Viewer) HandleKey(key Key) {
	if !v.open {
		return
	}

	switch key {
	case KeyArrowRight:
		v.Next()

	case KeyArrowLeft:
		v.Prev()

	case KeyEscape:
		v.Close()
	}
}

/*
DragStart begins gesture tracking. A drag starting on a non-image control
(background, buttons) is recorded but never interpreted as navigation.
*/
func (v *Viewer) DragStart(x float64, onImage bool) {
	if !v.open {
		return
	}

	v.drag = dragState{
		active:  true,
		onImage: onImage,
		startX:  x,
		lastX:   x,
	}
}

/*
DragMove returns the visual translation to apply for the current pointer
position. Translation follows displacement scaled by a resistance factor
that stiffens when the drag direction points past a navigation boundary,
producing a spring-like bounce rather than a hard stop.
*/
func (v *Viewer) DragMove(x float64) float64 {
	if !v.open || !v.drag.active || !v.drag.onImage {
		return 0
	}

	v.drag.lastX = x
	dx := x - v.drag.startX

	factor := dragResistance
	if v.pastBoundary(dx) {
		factor = edgeResistance
	}

	return dx * factor
}

/*
DragEnd resolves the gesture. If displacement or velocity passes the flick
threshold and the target index is in bounds, navigation completes and the
index swaps; otherwise the image springs back to neutral. Velocity is the
pointer's horizontal speed at release in pixels per millisecond.
*/
func (v *Viewer) DragEnd(x, velocity float64) DragOutcome {
	if !v.open || !v.drag.active || !v.drag.onImage {
		v.drag = dragState{}
		return DragIgnored
	}

	dx := x - v.drag.startX
	v.drag = dragState{}

	if abs(dx) < flickDistance && abs(velocity) < flickVelocity {
		return DragSpringBack
	}

	if dx < 0 {
		if v.current >= v.session.Len()-1 {
			return DragSpringBack
		}

		v.current++
		v.preloadAround()
		return DragAdvanced
	}

	if v.current <= 0 {
		return DragSpringBack
	}

	v.current--
	v.preloadAround()
	return DragRetreated
}

/*
preloadAround requests the large variant for the current and adjacent
indices. Requests are idempotent per index; a variant is never fetched
twice for the same slot.
*/
func (v *Viewer) preloadAround() {
	for _, index := range []int{v.current, v.current - 1, v.current + 1} {
		if index < 0 || index >= v.session.Len() {
			continue
		}

		if _, done := v.preloaded[index]; done {
			continue
		}

		v.preloaded[index] = struct{}{}

		if v.preload != nil {
			v.preload(index, v.session.Order()[index])
		}
	}
}

func (v *Viewer) pastBoundary(dx float64) bool {
	if dx < 0 {
		return v.current >= v.session.Len()-1
	}

	return v.current <= 0
}

func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}

	if value > hi {
		return hi
	}

	return value
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}

	return f
}
