package gallery

import (
	"fmt"
)

var (
	ErrInvalidRatio = fmt.Errorf("aspect ratio must be greater than zero")
)

/*
Variant is a reference to one rendition of an image at a named resolution
class, e.g. "thumbnail" or "large".
*/
type Variant struct {
	Class  string
	Path   string
	Width  int
	Height int
}

/*
Image is the engine's view of a single photo: a stable identifier, natural
dimensions, and the set of resolution variants available for it. The aspect
ratio derived from Width and Height is the only geometric input the layout
engine uses.
*/
type Image struct {
	ID       string
	Width    int
	Height   int
	Variants map[string]Variant
}

func (i Image) Ratio() float64 {
	if i.Width <= 0 || i.Height <= 0 {
		return 0
	}

	return float64(i.Width) / float64(i.Height)
}

/*
MeasureFunc decodes an image to discover its natural dimensions. It is the
fallback used when album metadata is missing width/height for an entry.
*/
type MeasureFunc func(id string) (width, height int, err error)

/*
AspectRatioIndex maps an image identifier to its width/height ratio. It is
populated once per gallery load and never mutated afterwards.
*/
type AspectRatioIndex struct {
	ratios map[string]float64
}

func NewAspectRatioIndex() *AspectRatioIndex {
	return &AspectRatioIndex{
		ratios: map[string]float64{},
	}
}

func (idx *AspectRatioIndex) Put(id string, ratio float64) error {
	if ratio <= 0 {
		return fmt.Errorf("image %s: %w", id, ErrInvalidRatio)
	}

	idx.ratios[id] = ratio
	return nil
}

func (idx *AspectRatioIndex) Ratio(id string) (float64, bool) {
	ratio, ok := idx.ratios[id]
	return ratio, ok
}

func (idx *AspectRatioIndex) Len() int {
	return len(idx.ratios)
}

/*
IsPortrait classifies an image by ratio: below 1 is portrait, 1 or above is
landscape. Unknown identifiers classify as landscape so they never trigger
the portrait tail repair.
*/
func (idx *AspectRatioIndex) IsPortrait(id string) bool {
	ratio, ok := idx.ratios[id]
	return ok && ratio < 1
}

/*
Populate admits every image whose ratio can be determined, preferring the
metadata dimensions and falling back to measure when they are absent. Images
that cannot be measured either are skipped and returned so the caller can
exclude them from layout; a partial album is not an error.
*/
func (idx *AspectRatioIndex) Populate(images []Image, measure MeasureFunc) []string {
	var (
		skipped []string
	)

	for _, img := range images {
		ratio := img.Ratio()

		if ratio <= 0 && measure != nil {
			w, h, err := measure(img.ID)

			if err == nil && w > 0 && h > 0 {
				ratio = float64(w) / float64(h)
			}
		}

		if ratio <= 0 {
			skipped = append(skipped, img.ID)
			continue
		}

		idx.ratios[img.ID] = ratio
	}

	return skipped
}
