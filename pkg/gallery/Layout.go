package gallery

import (
	"math"
)

const (
	/*
	 * Container width breakpoints controlling how many images share a row.
	 * Below the narrow breakpoint everything stacks in a single column.
	 */
	NarrowBreakpoint = 600
	MediumBreakpoint = 1000

	DefaultRowHeight = 300
	DefaultGap       = 10
)

/*
SequencedImage pairs an image identifier with its aspect ratio. It is the
unit the sequencer permutes and the layout engine consumes.
*/
type SequencedImage struct {
	ID    string
	Ratio float64
}

/*
RowImage is one image's computed geometry within a row. X is the pixel
offset from the row's left edge, including gaps.
*/
type RowImage struct {
	ID     string
	X      int
	Width  int
	Height int
}

/*
Row is a contiguous run of images sharing one pixel height whose combined
width, after scaling, fills the container. Rows are recomputed on every
reflow and never persisted.
*/
type Row struct {
	Y      int
	Height int
	Images []RowImage
}

type LayoutOptions struct {
	TargetRowHeight int
	ContainerWidth  int
	Gap             int
	MaxPerRow       int
}

/*
MaxPerRowFor is the step function mapping container width to row capacity.
It is queried fresh on every layout call so breakpoint crossings take effect
without any extra signaling.
*/
func MaxPerRowFor(containerWidth int) int {
	switch {
	case containerWidth < NarrowBreakpoint:
		return 1

	case containerWidth < MediumBreakpoint:
		return 2

	default:
		return 3
	}
}

/*
Layout partitions the ordered sequence into rows of at most MaxPerRow images
and scales each row to fill the container width exactly.

For a candidate row the natural width is the sum of each image's width at
the target row height. The row is then scaled so the images plus the gaps
between them span the container. Widths are floored to whole pixels; the
resulting sub-pixel slack is absorbed by the gap rather than re-scaling the
row. A trailing row with fewer images uses the same formula with its own
count. An empty sequence yields no rows.
*/
func Layout(images []SequencedImage, opts LayoutOptions) []Row {
	var (
		rows []Row
		y    int
	)

	if len(images) == 0 {
		return nil
	}

	maxPerRow := opts.MaxPerRow
	if maxPerRow < 1 {
		maxPerRow = 1
	}

	rowHeight := opts.TargetRowHeight
	if rowHeight < 1 {
		rowHeight = DefaultRowHeight
	}

	for start := 0; start < len(images); start += maxPerRow {
		end := min(start+maxPerRow, len(images))
		members := images[start:end]

		row := layoutRow(members, y, rowHeight, opts.ContainerWidth, opts.Gap)
		rows = append(rows, row)

		y += row.Height + opts.Gap
	}

	return rows
}

func layoutRow(members []SequencedImage, y, rowHeight, containerWidth, gap int) Row {
	var (
		naturalWidth float64
		x            int
	)

	for _, member := range members {
		naturalWidth += float64(rowHeight) * member.Ratio
	}

	available := float64(containerWidth - gap*(len(members)-1))

	scale := 1.0
	if naturalWidth > 0 {
		scale = available / naturalWidth
	}

	row := Row{
		Y:      y,
		Height: rowHeight,
		Images: make([]RowImage, 0, len(members)),
	}

	for _, member := range members {
		width := int(math.Floor(float64(rowHeight) * member.Ratio * scale))

		row.Images = append(row.Images, RowImage{
			ID:     member.ID,
			X:      x,
			Width:  width,
			Height: rowHeight,
		})

		x += width + gap
	}

	return row
}
