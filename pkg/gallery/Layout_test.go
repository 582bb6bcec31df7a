package gallery

import (
	"testing"
)

func TestMaxPerRowFor(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  int
	}{
		{name: "phone", width: 375, want: 1},
		{name: "just below narrow breakpoint", width: 599, want: 1},
		{name: "at narrow breakpoint", width: 600, want: 2},
		{name: "just below medium breakpoint", width: 999, want: 2},
		{name: "at medium breakpoint", width: 1000, want: 3},
		{name: "desktop", width: 1920, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaxPerRowFor(tt.width); got != tt.want {
				t.Errorf("MaxPerRowFor(%d) = %d, want %d", tt.width, got, tt.want)
			}
		})
	}
}

func TestLayoutFillsContainerWidth(t *testing.T) {
	tests := []struct {
		name   string
		ratios []float64
		opts   LayoutOptions
	}{
		{
			name:   "mixed ratios desktop",
			ratios: []float64{0.6, 1.6, 1.0, 0.75, 1.33, 1.5, 0.8},
			opts:   LayoutOptions{TargetRowHeight: 300, ContainerWidth: 1200, Gap: 10, MaxPerRow: 3},
		},
		{
			name:   "two per row",
			ratios: []float64{1.5, 1.5, 0.66, 0.66},
			opts:   LayoutOptions{TargetRowHeight: 250, ContainerWidth: 800, Gap: 8, MaxPerRow: 2},
		},
		{
			name:   "single column",
			ratios: []float64{0.6, 1.77, 1.0},
			opts:   LayoutOptions{TargetRowHeight: 300, ContainerWidth: 480, Gap: 10, MaxPerRow: 1},
		},
		{
			name:   "awkward widths",
			ratios: []float64{1.618, 0.618, 1.414, 0.707, 1.333, 0.75},
			opts:   LayoutOptions{TargetRowHeight: 275, ContainerWidth: 1337, Gap: 7, MaxPerRow: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Layout(sequencedFromRatios(tt.ratios), tt.opts)

			if len(rows) == 0 {
				t.Fatal("expected at least one row")
			}

			for i, row := range rows {
				total := tt.opts.Gap * (len(row.Images) - 1)

				for _, img := range row.Images {
					total += img.Width
				}

				if total > tt.opts.ContainerWidth {
					t.Errorf("row %d total width %d exceeds container %d", i, total, tt.opts.ContainerWidth)
				}

				if slack := tt.opts.ContainerWidth - total; slack > len(row.Images) {
					t.Errorf("row %d slack %d exceeds rounding allowance %d", i, slack, len(row.Images))
				}
			}
		})
	}
}

func TestLayoutSevenImageScenario(t *testing.T) {
	ratios := []float64{0.6, 0.6, 1.6, 1.6, 0.6, 1.6, 0.6}

	rows := Layout(sequencedFromRatios(ratios), LayoutOptions{
		TargetRowHeight: 300,
		ContainerWidth:  1200,
		Gap:             10,
		MaxPerRow:       3,
	})

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	wantCounts := []int{3, 3, 1}

	for i, want := range wantCounts {
		if got := len(rows[i].Images); got != want {
			t.Errorf("row %d has %d images, want %d", i, got, want)
		}
	}

	/*
	 * The trailing single-image row scales with its own count: one 1.6
	 * ratio image stretched to the full container.
	 */
	last := rows[2].Images[0]

	if last.Width != 1200 {
		t.Errorf("trailing image width = %d, want 1200", last.Width)
	}

	if last.Height != 300 {
		t.Errorf("trailing image height = %d, want 300", last.Height)
	}
}

func TestLayoutOffsets(t *testing.T) {
	rows := Layout(sequencedFromRatios([]float64{1.0, 1.0, 1.0, 1.0}), LayoutOptions{
		TargetRowHeight: 300,
		ContainerWidth:  1000,
		Gap:             10,
		MaxPerRow:       2,
	})

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	if rows[0].Y != 0 {
		t.Errorf("first row Y = %d, want 0", rows[0].Y)
	}

	if want := rows[0].Height + 10; rows[1].Y != want {
		t.Errorf("second row Y = %d, want %d", rows[1].Y, want)
	}

	first, second := rows[0].Images[0], rows[0].Images[1]

	if first.X != 0 {
		t.Errorf("first image X = %d, want 0", first.X)
	}

	if want := first.Width + 10; second.X != want {
		t.Errorf("second image X = %d, want %d", second.X, want)
	}
}

func TestLayoutEmptySequence(t *testing.T) {
	rows := Layout(nil, LayoutOptions{TargetRowHeight: 300, ContainerWidth: 1200, Gap: 10, MaxPerRow: 3})

	if rows != nil {
		t.Errorf("expected nil rows for empty sequence, got %d", len(rows))
	}
}

func sequencedFromRatios(ratios []float64) []SequencedImage {
	result := make([]SequencedImage, 0, len(ratios))

	for i, ratio := range ratios {
		result = append(result, SequencedImage{ID: imageID(i), Ratio: ratio})
	}

	return result
}

func imageID(i int) string {
	return string(rune('a' + i))
}
