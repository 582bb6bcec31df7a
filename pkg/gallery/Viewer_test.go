package gallery

import (
	"testing"
)

func newTestViewer(count int) (*Viewer, *[]int) {
	images := make([]Image, 0, count)

	for i := range count {
		images = append(images, Image{ID: imageID(i), Width: 1600, Height: 1000})
	}

	session := NewSession(images, nil)

	var preloads []int

	viewer := NewViewer(session, func(index int, _ string) {
		preloads = append(preloads, index)
	})

	return viewer, &preloads
}

func TestViewerPrevClampsAtStart(t *testing.T) {
	viewer, _ := newTestViewer(5)

	viewer.Open(2)

	want := []int{2, 1, 0, 0}
	got := []int{viewer.Current()}

	for range 3 {
		viewer.Prev()
		got = append(got, viewer.Current())
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index sequence = %v, want %v", got, want)
		}
	}
}

func TestViewerNextClampsAtEnd(t *testing.T) {
	viewer, _ := newTestViewer(3)

	viewer.Open(2)
	viewer.Next()

	if got := viewer.Current(); got != 2 {
		t.Errorf("next at last index moved to %d, want 2", got)
	}
}

func TestViewerOpenClampsIndex(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  int
	}{
		{name: "negative", index: -3, want: 0},
		{name: "in range", index: 2, want: 2},
		{name: "past end", index: 99, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viewer, _ := newTestViewer(5)
			viewer.Open(tt.index)

			if !viewer.IsOpen() {
				t.Fatal("viewer did not open")
			}

			if got := viewer.Current(); got != tt.want {
				t.Errorf("current = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestViewerOpenEmptySessionStaysClosed(t *testing.T) {
	viewer, _ := newTestViewer(0)

	viewer.Open(0)

	if viewer.IsOpen() {
		t.Error("viewer opened on an empty sequence")
	}
}

func TestViewerKeyboard(t *testing.T) {
	viewer, _ := newTestViewer(5)

	// Keys do nothing while closed.
	viewer.HandleKey(KeyArrowRight)

	if viewer.IsOpen() {
		t.Fatal("key press opened the viewer")
	}

	viewer.Open(1)

	viewer.HandleKey(KeyArrowRight)

	if got := viewer.Current(); got != 2 {
		t.Errorf("after arrow right current = %d, want 2", got)
	}

	viewer.HandleKey(KeyArrowLeft)

	if got := viewer.Current(); got != 1 {
		t.Errorf("after arrow left current = %d, want 1", got)
	}

	viewer.HandleKey(KeyEscape)

	if viewer.IsOpen() {
		t.Error("escape did not close the viewer")
	}
}

func TestViewerPreloadsAdjacentOnce(t *testing.T) {
	viewer, preloads := newTestViewer(6)

	viewer.Open(2)

	if !sameIntSet(*preloads, []int{1, 2, 3}) {
		t.Fatalf("preloads after open = %v, want {1,2,3}", *preloads)
	}

	viewer.Next()

	// Only index 4 is new; 2 and 3 were already requested.
	if !sameIntSet(*preloads, []int{1, 2, 3, 4}) {
		t.Fatalf("preloads after next = %v, want {1,2,3,4}", *preloads)
	}

	viewer.Prev()
	viewer.Prev()

	if !sameIntSet(*preloads, []int{0, 1, 2, 3, 4}) {
		t.Fatalf("preloads after backtracking = %v, want {0,1,2,3,4}", *preloads)
	}

	if len(*preloads) != 5 {
		t.Errorf("issued %d preload requests, want 5 distinct", len(*preloads))
	}
}

func TestViewerDragCompletesNavigation(t *testing.T) {
	viewer, _ := newTestViewer(5)
	viewer.Open(2)

	viewer.DragStart(500, true)

	if got := viewer.DragMove(420); got != -80*dragResistance {
		t.Errorf("translation = %v, want %v", got, -80*dragResistance)
	}

	if outcome := viewer.DragEnd(400, 0); outcome != DragAdvanced {
		t.Fatalf("outcome = %v, want DragAdvanced", outcome)
	}

	if got := viewer.Current(); got != 3 {
		t.Errorf("current after drag = %d, want 3", got)
	}
}

func TestViewerDragVelocityFlick(t *testing.T) {
	viewer, _ := newTestViewer(5)
	viewer.Open(2)

	// Short but fast: distance below threshold, velocity above it.
	viewer.DragStart(500, true)

	if outcome := viewer.DragEnd(530, 0.9); outcome != DragRetreated {
		t.Fatalf("outcome = %v, want DragRetreated", outcome)
	}

	if got := viewer.Current(); got != 1 {
		t.Errorf("current after flick = %d, want 1", got)
	}
}

func TestViewerDragSpringsBackWhenShort(t *testing.T) {
	viewer, _ := newTestViewer(5)
	viewer.Open(2)

	viewer.DragStart(500, true)

	if outcome := viewer.DragEnd(470, 0.1); outcome != DragSpringBack {
		t.Fatalf("outcome = %v, want DragSpringBack", outcome)
	}

	if got := viewer.Current(); got != 2 {
		t.Errorf("current after spring back = %d, want 2", got)
	}
}

func TestViewerDragAtBoundary(t *testing.T) {
	viewer, _ := newTestViewer(3)
	viewer.Open(2)

	viewer.DragStart(500, true)

	/*
	 * Dragging past the last image meets the stiffer edge resistance and
	 * can never complete, no matter how far it travels.
	 */
	if got := viewer.DragMove(300); got != -200*edgeResistance {
		t.Errorf("edge translation = %v, want %v", got, -200*edgeResistance)
	}

	if outcome := viewer.DragEnd(300, 2.0); outcome != DragSpringBack {
		t.Fatalf("outcome = %v, want DragSpringBack", outcome)
	}

	if got := viewer.Current(); got != 2 {
		t.Errorf("current after boundary drag = %d, want 2", got)
	}
}

func TestViewerDragOffImageIgnored(t *testing.T) {
	viewer, _ := newTestViewer(5)
	viewer.Open(2)

	viewer.DragStart(500, false)

	if got := viewer.DragMove(300); got != 0 {
		t.Errorf("off-image drag produced translation %v", got)
	}

	if outcome := viewer.DragEnd(300, 2.0); outcome != DragIgnored {
		t.Fatalf("outcome = %v, want DragIgnored", outcome)
	}

	if got := viewer.Current(); got != 2 {
		t.Errorf("current after ignored drag = %d, want 2", got)
	}
}

func sameIntSet(got []int, want []int) bool {
	if len(got) < len(want) {
		return false
	}

	seen := map[int]bool{}

	for _, v := range got {
		seen[v] = true
	}

	if len(seen) != len(want) {
		return false
	}

	for _, v := range want {
		if !seen[v] {
			return false
		}
	}

	return true
}
