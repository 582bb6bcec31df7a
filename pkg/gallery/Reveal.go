package gallery

import (
	"sync"
)

const DefaultRevealMargin = 400

/*
RevealGate promotes cards from hidden to revealed the first time their
bounding box enters a margin-expanded viewport, so images begin loading
before the user scrolls to them. A card is revealed at most once per
lifetime and is dropped from observation afterwards to bound the tracked
set. Revealing never changes layout geometry.
*/
type RevealGate struct {
	mu       sync.Mutex
	margin   int
	observed map[*Card]struct{}
	onReveal func(*Card)
}

func NewRevealGate(margin int, onReveal func(*Card)) *RevealGate {
	if margin < 0 {
		margin = DefaultRevealMargin
	}

	return &RevealGate{
		margin:   margin,
		observed: map[*Card]struct{}{},
		onReveal: onReveal,
	}
}

func (g *RevealGate) Observe(card *Card) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if card == nil || card.Revealed {
		return
	}

	g.observed[card] = struct{}{}
}

func (g *RevealGate) Unobserve(card *Card) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.observed, card)
}

/*
ViewportChanged checks every observed card against the viewport expanded by
the lookahead margin on both ends, firing the one-shot reveal for each card
whose box intersects it.
*/
func (g *RevealGate) ViewportChanged(scrollTop, viewportHeight int) {
	g.mu.Lock()

	top := scrollTop - g.margin
	bottom := scrollTop + viewportHeight + g.margin

	var fired []*Card

	for card := range g.observed {
		if card.Y+card.Height <= top || card.Y >= bottom {
			continue
		}

		card.Revealed = true
		fired = append(fired, card)
		delete(g.observed, card)
	}

	g.mu.Unlock()

	if g.onReveal == nil {
		return
	}

	for _, card := range fired {
		g.onReveal(card)
	}
}

func (g *RevealGate) ObservedCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.observed)
}
