package gallery

import (
	"math/rand/v2"
	"slices"
)

/*
Row type signatures for three-wide layouts. A signature is the row's
portrait/landscape pattern read left to right, e.g. "LLP". The two feasible
families are two-landscape-one-portrait and two-portrait-one-landscape;
picking a signature different from the previous row's keeps adjacent rows
from reading as repeats.
*/
var (
	tripleLandscapeHeavy = []string{"LLP", "LPL", "PLL"}
	triplePortraitHeavy  = []string{"PPL", "PLP", "LPP"}
)

/*
Sequence reorders images so portrait and landscape types alternate across
and within rows. The output is always a permutation of the input.

Images are split into portrait and landscape groups, each shuffled
independently, then rows are filled by type pattern: three-wide rows pick
from the feasible signature families above, two-wide rows alternate
greedily. The previous row's signature acts as a soft anti-repeat signal.

The final partial row carries a hard constraint: it must not end on a
portrait image, because a portrait-ending short row uses the least
horizontal space and reads as incomplete. When the landscape pool is
exhausted near the end, the most recently placed landscape image is swapped
into the tail and the pending portrait takes its old slot.

Sequencing only matters when rows hold more than one image; narrow layouts
keep the caller's order.
*/
func Sequence(images []SequencedImage, maxPerRow int, seed uint64) []SequencedImage {
	if maxPerRow <= 1 || len(images) < 2 {
		return slices.Clone(images)
	}

	var (
		portraits  []SequencedImage
		landscapes []SequencedImage
	)

	for _, img := range images {
		if img.Ratio < 1 {
			portraits = append(portraits, img)
		} else {
			landscapes = append(landscapes, img)
		}
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	rng.Shuffle(len(portraits), func(i, j int) {
		portraits[i], portraits[j] = portraits[j], portraits[i]
	})
	rng.Shuffle(len(landscapes), func(i, j int) {
		landscapes[i], landscapes[j] = landscapes[j], landscapes[i]
	})

	s := sequenceState{
		portraits:  portraits,
		landscapes: landscapes,
		out:        make([]SequencedImage, 0, len(images)),
	}

	for s.remaining() > 0 {
		if s.remaining() < maxPerRow {
			s.fillTail(s.remaining())
			break
		}

		if maxPerRow == 3 {
			s.fillTripleRow(rng)
		} else {
			s.fillAlternatingRow(maxPerRow)
		}
	}

	return s.out
}

type sequenceState struct {
	portraits  []SequencedImage
	landscapes []SequencedImage
	out        []SequencedImage
	prevSig    string
}

func (s *sequenceState) remaining() int {
	return len(s.portraits) + len(s.landscapes)
}

/*
pop removes one image of the requested type, falling back to the other
group when the requested one is empty. It reports the type actually taken.
*/
func (s *sequenceState) pop(want byte) byte {
	if want == 'P' && len(s.portraits) == 0 {
		want = 'L'
	}

	if want == 'L' && len(s.landscapes) == 0 {
		want = 'P'
	}

	if want == 'L' {
		s.out = append(s.out, s.landscapes[len(s.landscapes)-1])
		s.landscapes = s.landscapes[:len(s.landscapes)-1]
	} else {
		s.out = append(s.out, s.portraits[len(s.portraits)-1])
		s.portraits = s.portraits[:len(s.portraits)-1]
	}

	return want
}

/*
fillTripleRow places three images using the feasible signature families.
The feasible set is shuffled and the first signature differing from the
previous row's wins; if every candidate collides, any feasible one is used.
When neither mixed family is feasible the row falls back to whatever group
still has images.
*/
func (s *sequenceState) fillTripleRow(rng *rand.Rand) {
	var (
		feasible []string
	)

	if len(s.landscapes) >= 2 && len(s.portraits) >= 1 {
		feasible = append(feasible, tripleLandscapeHeavy...)
	}

	if len(s.portraits) >= 2 && len(s.landscapes) >= 1 {
		feasible = append(feasible, triplePortraitHeavy...)
	}

	if len(feasible) == 0 {
		s.fillAlternatingRow(3)
		return
	}

	rng.Shuffle(len(feasible), func(i, j int) {
		feasible[i], feasible[j] = feasible[j], feasible[i]
	})

	sig := feasible[0]

	for _, candidate := range feasible {
		if candidate != s.prevSig {
			sig = candidate
			break
		}
	}

	for i := 0; i < len(sig); i++ {
		s.pop(sig[i])
	}

	s.prevSig = sig
}

/*
fillAlternatingRow alternates type greedily: the first slot avoids the type
the previous row ended on, and each following slot flips. pop degrades to
whichever group is non-empty, so an all-portrait or all-landscape album
still sequences.
*/
func (s *sequenceState) fillAlternatingRow(size int) {
	want := byte('L')

	if n := len(s.prevSig); n > 0 && s.prevSig[n-1] == 'L' {
		want = 'P'
	}

	sig := make([]byte, 0, size)

	for range size {
		got := s.pop(want)
		sig = append(sig, got)
		want = opposite(got)
	}

	s.prevSig = string(sig)
}

/*
fillTail places the final short row. A two-image tail leads with landscape
when one is available; longer tails alternate as usual. The last slot must
be landscape, swapping one backward out of the already-placed sequence if
the pool has run dry.
*/
func (s *sequenceState) fillTail(size int) {
	if size == 2 {
		s.pop('L')
	} else {
		for range size - 1 {
			want := byte('L')

			if len(s.out) > 0 && s.out[len(s.out)-1].Ratio >= 1 {
				want = 'P'
			}

			s.pop(want)
		}
	}

	s.placeLandscapeLast()
}

/*
placeLandscapeLast appends a landscape image, repairing the sequence when
only portraits remain: the most recently placed landscape moves to the end
and the pending portrait backfills its slot. With no landscape anywhere the
constraint is unsatisfiable and the portrait simply lands last.
*/
func (s *sequenceState) placeLandscapeLast() {
	if len(s.landscapes) > 0 {
		s.pop('L')
		return
	}

	pending := s.portraits[len(s.portraits)-1]
	s.portraits = s.portraits[:len(s.portraits)-1]

	for i := len(s.out) - 1; i >= 0; i-- {
		if s.out[i].Ratio >= 1 {
			swapped := s.out[i]
			s.out[i] = pending
			s.out = append(s.out, swapped)
			return
		}
	}

	s.out = append(s.out, pending)
}

func opposite(t byte) byte {
	if t == 'L' {
		return 'P'
	}

	return 'L'
}
