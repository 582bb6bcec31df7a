package models

import (
	"fmt"
)

var (
	ErrImageNotFound = fmt.Errorf("image not found")
)

/*
Image is one photo's database record. Width and height are the natural
dimensions captured at import time; the gallery derives aspect ratios from
them so the browser never has to probe image bytes for layout.
*/
type Image struct {
	BaseModel

	AlbumID  uint
	Filename string
	Width    int
	Height   int
}

func (i Image) Ratio() float64 {
	if i.Width <= 0 || i.Height <= 0 {
		return 0
	}

	return float64(i.Width) / float64(i.Height)
}
