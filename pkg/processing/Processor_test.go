package processing

import (
	"bytes"
	"image"
	"image/jpeg"
	"testing"
)

func jpegBytes(t *testing.T, width, height int) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 85}); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}

	return buf
}

func TestMeasure(t *testing.T) {
	width, height, err := Measure(jpegBytes(t, 640, 480))

	if err != nil {
		t.Fatalf("Measure returned error: %v", err)
	}

	if width != 640 || height != 480 {
		t.Errorf("expected 640x480, got %dx%d", width, height)
	}
}

func TestMeasureRejectsGarbage(t *testing.T) {
	if _, _, err := Measure(bytes.NewBufferString("not an image")); err == nil {
		t.Error("expected an error for non-image data")
	}
}

func TestResizeToWidth(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		height     int
		maxWidth   int
		wantWidth  int
		wantHeight int
	}{
		{name: "landscape scaled", width: 1200, height: 800, maxWidth: 400, wantWidth: 400, wantHeight: 266},
		{name: "portrait scaled", width: 600, height: 900, maxWidth: 300, wantWidth: 300, wantHeight: 450},
		{name: "no upscale", width: 200, height: 100, maxWidth: 400, wantWidth: 200, wantHeight: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, tt.width, tt.height))
			resized := ResizeToWidth(img, tt.maxWidth)
			bounds := resized.Bounds()

			if bounds.Dx() != tt.wantWidth || bounds.Dy() != tt.wantHeight {
				t.Errorf("expected %dx%d, got %dx%d", tt.wantWidth, tt.wantHeight, bounds.Dx(), bounds.Dy())
			}
		})
	}
}

func TestMakeVariant(t *testing.T) {
	buf, err := MakeVariant(jpegBytes(t, 1600, 1000), 400, 85)

	if err != nil {
		t.Fatalf("MakeVariant returned error: %v", err)
	}

	width, height, err := Measure(bytes.NewReader(buf.Bytes()))

	if err != nil {
		t.Fatalf("result is not a decodable image: %v", err)
	}

	if width != 400 || height != 250 {
		t.Errorf("expected 400x250 variant, got %dx%d", width, height)
	}
}
