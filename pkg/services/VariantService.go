package services

import (
	"fmt"
	"path/filepath"

	"github.com/rachelharding/rachelhardingphotography/pkg/gallery"
	"github.com/rachelharding/rachelhardingphotography/pkg/models"
)

/*
Resolution variant classes, widest edge in pixels. The thumbnail class is
the grid fallback: it always exists for an imported image, so the gallery
can render any card even when larger renditions are missing. The large
class feeds the modal viewer.
*/
const (
	ClassThumbnail = "thumbnail"
	ClassSmall     = "small"
	ClassMedium    = "medium"
	ClassLarge     = "large"
)

type VariantSize struct {
	Class    string
	MaxWidth int
	Quality  int
}

var VariantSizes = []VariantSize{
	{Class: ClassThumbnail, MaxWidth: 400, Quality: 85},
	{Class: ClassSmall, MaxWidth: 800, Quality: 85},
	{Class: ClassMedium, MaxWidth: 1200, Quality: 85},
	{Class: ClassLarge, MaxWidth: 1600, Quality: 85},
}

type VariantServicer interface {
	OriginalKey(albumID uint, filename string) string
	VariantKey(albumID uint, class, filename string) string
	VariantFolder(albumID uint, class string) string
	ClassForWidth(viewportWidth int) string
	BuildGalleryImages(album *models.Album) []gallery.Image
}

type VariantServiceConfig struct {
	AlbumsFolder string
	URLPrefix    string
}

/*
VariantService owns the S3 key scheme for originals and their resolution
variants, and converts database image rows into the gallery engine's image
type. URLs it emits go through the website's image proxy, so they are plain
keys under a path prefix rather than presigned links.
*/
type VariantService struct {
	albumsFolder string
	urlPrefix    string
}

func NewVariantService(config VariantServiceConfig) VariantService {
	return VariantService{
		albumsFolder: config.AlbumsFolder,
		urlPrefix:    config.URLPrefix,
	}
}

func (s VariantService) OriginalKey(albumID uint, filename string) string {
	return filepath.Join(s.albumsFolder, fmt.Sprint(albumID), "originals", filename)
}

func (s VariantService) VariantKey(albumID uint, class, filename string) string {
	return filepath.Join(s.albumsFolder, fmt.Sprint(albumID), class, filename)
}

func (s VariantService) VariantFolder(albumID uint, class string) string {
	return filepath.Join(s.albumsFolder, fmt.Sprint(albumID), class)
}

/*
ClassForWidth picks the smallest class that still covers the viewport, so
narrow screens never pull medium or large renditions for grid cells.
*/
func (s VariantService) ClassForWidth(viewportWidth int) string {
	for _, size := range VariantSizes {
		if size.MaxWidth >= viewportWidth {
			return size.Class
		}
	}

	return ClassLarge
}

/*
BuildGalleryImages converts an album's image rows into gallery images with
the full variant ladder attached. Variants never upscale: a class wider
than the original reports the original's dimensions, matching what the
processor uploaded for that class.
*/
func (s VariantService) BuildGalleryImages(album *models.Album) []gallery.Image {
	result := make([]gallery.Image, 0, len(album.Images))

	for _, img := range album.Images {
		entry := gallery.Image{
			ID:       img.Filename,
			Width:    img.Width,
			Height:   img.Height,
			Variants: make(map[string]gallery.Variant, len(VariantSizes)),
		}

		for _, size := range VariantSizes {
			width, height := FitToWidth(img.Width, img.Height, size.MaxWidth)

			entry.Variants[size.Class] = gallery.Variant{
				Class:  size.Class,
				Path:   s.urlPrefix + s.VariantKey(album.ID, size.Class, img.Filename),
				Width:  width,
				Height: height,
			}
		}

		result = append(result, entry)
	}

	return result
}

/*
FitToWidth scales natural dimensions down to maxWidth preserving aspect
ratio. Dimensions at or under the target pass through unchanged.
*/
func FitToWidth(width, height, maxWidth int) (int, int) {
	if width <= maxWidth || width <= 0 || height <= 0 {
		return width, height
	}

	scaled := int(float64(height) * (float64(maxWidth) / float64(width)))
	return maxWidth, scaled
}
