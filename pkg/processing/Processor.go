/*
Package processing turns original photos into the resolution variants the
gallery serves. It only understands pixels: key schemes and storage belong
to the services that call it.
*/
package processing

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	_ "image/png"

	"github.com/nfnt/resize"
)

/*
Measure reads just enough of an image stream to report its natural
dimensions without decoding pixel data.
*/
func Measure(r io.Reader) (int, int, error) {
	config, _, err := image.DecodeConfig(r)

	if err != nil {
		return 0, 0, fmt.Errorf("error reading image dimensions: %w", err)
	}

	return config.Width, config.Height, nil
}

/*
Decode fully decodes an image stream. JPEG and PNG are accepted; anything
else is rejected at import time.
*/
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)

	if err != nil {
		return nil, fmt.Errorf("error decoding image: %w", err)
	}

	return img, nil
}

/*
ResizeToWidth scales an image down so its width is at most maxWidth,
preserving aspect ratio. Images already at or under the cap come back
unchanged; variants never upscale.
*/
func ResizeToWidth(img image.Image, maxWidth int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= maxWidth || width <= 0 || height <= 0 {
		return img
	}

	newHeight := uint(float64(height) * (float64(maxWidth) / float64(width)))
	return resize.Resize(uint(maxWidth), newHeight, img, resize.Lanczos3)
}

/*
EncodeJPEG renders an image to an in-memory JPEG at the given quality,
ready to stream to storage.
*/
func EncodeJPEG(img image.Image, quality int) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}

	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("error encoding image: %w", err)
	}

	return buf, nil
}

/*
MakeVariant decodes an original, scales it to maxWidth, and encodes the
result as JPEG in one step.
*/
func MakeVariant(r io.Reader, maxWidth, quality int) (*bytes.Buffer, error) {
	img, err := Decode(r)

	if err != nil {
		return nil, err
	}

	return EncodeJPEG(ResizeToWidth(img, maxWidth), quality)
}
