package gallery

/*
Session owns the mutable shared state for one album view: the admitted
images, their aspect ratios, and the current display order. It is built
once when album metadata loads and passed explicitly to the reflower and
viewer so nothing depends on ambient globals.
*/
type Session struct {
	Index *AspectRatioIndex

	images  []Image
	byID    map[string]Image
	order   []string
	skipped []string
}

/*
NewSession admits images through the aspect-ratio index, using measure as
the fallback for entries missing metadata dimensions. Images with no
determinable ratio are excluded from layout but remembered in Skipped. The
initial order is the metadata order.
*/
func NewSession(images []Image, measure MeasureFunc) *Session {
	s := &Session{
		Index: NewAspectRatioIndex(),
		byID:  make(map[string]Image, len(images)),
	}

	s.skipped = s.Index.Populate(images, measure)

	excluded := make(map[string]bool, len(s.skipped))
	for _, id := range s.skipped {
		excluded[id] = true
	}

	for _, img := range images {
		if excluded[img.ID] {
			continue
		}

		s.images = append(s.images, img)
		s.byID[img.ID] = img
		s.order = append(s.order, img.ID)
	}

	return s
}

/*
Arrange rebuilds the display order. Above the single-column breakpoint the
diversity sequencer permutes the images; narrow viewports keep the metadata
order. Arrange runs once per album load, never per reflow: reflows re-lay
out the same sequence.
*/
func (s *Session) Arrange(maxPerRow int, seed uint64) {
	sequenced := Sequence(s.SequencedImages(), maxPerRow, seed)

	s.order = s.order[:0]
	for _, img := range sequenced {
		s.order = append(s.order, img.ID)
	}
}

/*
SequencedImages returns the current display order paired with ratios, ready
for the layout engine.
*/
func (s *Session) SequencedImages() []SequencedImage {
	result := make([]SequencedImage, 0, len(s.order))

	for _, id := range s.order {
		ratio, ok := s.Index.Ratio(id)
		if !ok {
			continue
		}

		result = append(result, SequencedImage{ID: id, Ratio: ratio})
	}

	return result
}

func (s *Session) Order() []string {
	return s.order
}

func (s *Session) Image(id string) (Image, bool) {
	img, ok := s.byID[id]
	return img, ok
}

func (s *Session) ImageAt(index int) (Image, bool) {
	if index < 0 || index >= len(s.order) {
		return Image{}, false
	}

	return s.Image(s.order[index])
}

func (s *Session) Len() int {
	return len(s.order)
}

/*
Skipped lists images that were excluded because no aspect ratio could ever
be determined for them.
*/
func (s *Session) Skipped() []string {
	return s.skipped
}
