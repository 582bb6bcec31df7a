package gallerypage

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/rendering"
	"github.com/adampresley/adamgokit/s3"
	"github.com/adampresley/adamgokit/s3/getoptions"
	internalmodels "github.com/rachelharding/rachelhardingphotography/cmd/website/internal/models"
	"github.com/rachelharding/rachelhardingphotography/cmd/website/internal/viewmodels"
	"github.com/rachelharding/rachelhardingphotography/pkg/gallery"
	"github.com/rachelharding/rachelhardingphotography/pkg/models"
	"github.com/rachelharding/rachelhardingphotography/pkg/processing"
	"github.com/rachelharding/rachelhardingphotography/pkg/services"
)

type GalleryControllerConfig struct {
	AlbumService     services.AlbumServicer
	AlbumsFolder     string
	ArchiveService   services.ArchiveServicer
	VariantService   services.VariantServicer
	Bucket           string
	ContactEmail     string
	ContactFromEmail string
	DownloadBaseURL  string
	EmailApiKey      string
	Gap              int
	Renderer         rendering.TemplateRenderer
	RowHeight        int
	S3Client         s3.S3Client
}

/*
GalleryController serves the public portfolio: the album list, individual
album pages, the layout API the gallery script calls on load and resize,
the image proxy, album downloads, and the contact form.
*/
type GalleryController struct {
	albumService     services.AlbumServicer
	albumsFolder     string
	archiveService   services.ArchiveServicer
	variantService   services.VariantServicer
	bucket           string
	contactEmail     string
	contactFromEmail string
	downloadBaseURL  string
	emailApiKey      string
	gap              int
	renderer         rendering.TemplateRenderer
	rowHeight        int
	s3Client         s3.S3Client
}

func NewGalleryController(config GalleryControllerConfig) GalleryController {
	return GalleryController{
		albumService:     config.AlbumService,
		albumsFolder:     config.AlbumsFolder,
		archiveService:   config.ArchiveService,
		variantService:   config.VariantService,
		bucket:           config.Bucket,
		contactEmail:     config.ContactEmail,
		contactFromEmail: config.ContactFromEmail,
		downloadBaseURL:  config.DownloadBaseURL,
		emailApiKey:      config.EmailApiKey,
		gap:              config.Gap,
		renderer:         config.Renderer,
		rowHeight:        config.RowHeight,
		s3Client:         config.S3Client,
	}
}

/*
GET /
*/
func (c GalleryController) HomePage(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		albums []*models.Album
	)

	pageName := "pages/home"

	viewData := viewmodels.HomePage{
		BaseViewModel: viewmodels.BaseViewModel{
			IsHtmx: httphelpers.IsHtmx(r),
		},
		Albums: []internalmodels.Album{},
	}

	if albums, err = c.albumService.GetAlbumList(); err != nil {
		slog.Error("error getting album list", "error", err)
		viewData.IsError = true
		viewData.Message = "There was a problem getting albums for this page."

		c.renderer.Render(pageName, viewData, w)
		return
	}

	for _, album := range albums {
		viewData.Albums = append(viewData.Albums, c.convertAlbumToViewModel(album, false))
	}

	c.renderer.Render(pageName, viewData, w)
}

/*
GET /albums/{slug}
*/
func (c GalleryController) ViewAlbumPage(w http.ResponseWriter, r *http.Request) {
	var (
		err   error
		album *models.Album
	)

	pageName := "pages/view-album"
	slug := httphelpers.GetFromRequest[string](r, "slug")

	viewData := viewmodels.ViewAlbum{
		BaseViewModel: viewmodels.BaseViewModel{
			IsHtmx: httphelpers.IsHtmx(r),
			JavascriptIncludes: []rendering.JavascriptInclude{
				{Type: "module", Src: "/static/js/pages/view-album.js"},
			},
		},
		RowHeight: c.rowHeight,
		Gap:       c.gap,
	}

	if album, err = c.albumService.GetAlbumBySlug(slug); err != nil {
		if err == models.ErrAlbumNotFound {
			httphelpers.WriteText(w, http.StatusNotFound, "album not found")
			return
		}

		slog.Error("an error occurred querying album in ViewAlbumPage", "error", err, "slug", slug)
		viewData.IsError = true
		viewData.Message = "An unexpected error occurred. Please reach out for assistance."

		c.renderer.Render(pageName, viewData, w)
		return
	}

	viewData.Album = c.convertAlbumToViewModel(album, true)
	c.renderer.Render(pageName, viewData, w)
}

type layoutResponse struct {
	Width        int           `json:"width"`
	Seed         uint64        `json:"seed"`
	VariantClass string        `json:"variantClass"`
	TotalHeight  int           `json:"totalHeight"`
	Skipped      []string      `json:"skipped,omitempty"`
	Rows         []gallery.Row `json:"rows"`
}

/*
GET /api/albums/{slug}/layout

The gallery script calls this on initial load and after each debounced
resize. Width drives the column breakpoints; the same seed always yields
the same arrangement so reflows only change geometry, never order.
*/
func (c GalleryController) AlbumLayout(w http.ResponseWriter, r *http.Request) {
	var (
		err   error
		album *models.Album
	)

	slug := httphelpers.GetFromRequest[string](r, "slug")
	width := httphelpers.GetFromRequest[int](r, "width")

	if width <= 0 {
		httphelpers.WriteText(w, http.StatusBadRequest, "width is required")
		return
	}

	seed := uint64(1)

	if rawSeed := r.URL.Query().Get("seed"); rawSeed != "" {
		if seed, err = strconv.ParseUint(rawSeed, 10, 64); err != nil {
			httphelpers.WriteText(w, http.StatusBadRequest, "invalid seed")
			return
		}
	}

	if album, err = c.albumService.GetAlbumBySlug(slug); err != nil {
		if err == models.ErrAlbumNotFound {
			httphelpers.WriteText(w, http.StatusNotFound, "album not found")
			return
		}

		slog.Error("error querying album in AlbumLayout", "error", err, "slug", slug)
		httphelpers.TextInternalServerError(w, "error building layout")
		return
	}

	session := gallery.NewSession(
		c.variantService.BuildGalleryImages(album),
		c.measureFromStorage(album.ID),
	)

	session.Arrange(gallery.MaxPerRowFor(width), seed)

	rows := gallery.Layout(session.SequencedImages(), gallery.LayoutOptions{
		TargetRowHeight: c.rowHeight,
		ContainerWidth:  width,
		Gap:             c.gap,
		MaxPerRow:       gallery.MaxPerRowFor(width),
	})

	totalHeight := 0

	if len(rows) > 0 {
		last := rows[len(rows)-1]
		totalHeight = last.Y + last.Height
	}

	response := layoutResponse{
		Width:        width,
		Seed:         seed,
		VariantClass: c.variantService.ClassForWidth(width),
		TotalHeight:  totalHeight,
		Skipped:      session.Skipped(),
		Rows:         rows,
	}

	w.Header().Set("Content-Type", "application/json")

	if err = json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("error encoding layout response", "error", err, "slug", slug)
	}
}

/*
GET /images/{key...}

Streams variants from S3 so the browser never sees presigned URLs. Keys
are immutable once written, so responses cache aggressively.
*/
func (c GalleryController) ServeImage(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		object s3.GetObjectResponse
	)

	key := httphelpers.GetFromRequest[string](r, "key")

	if strings.Contains(key, "..") {
		httphelpers.WriteText(w, http.StatusBadRequest, "invalid image key")
		return
	}

	object, err = c.s3Client.Get(
		c.bucket,
		key,
		getoptions.WithContext(r.Context()),
		getoptions.WithTimeout(time.Minute*5),
	)

	if err != nil {
		slog.Error("error getting image object from S3", "error", err, "bucket", c.bucket, "key", key)
		httphelpers.WriteText(w, http.StatusNotFound, "image not found")
		return
	}

	defer object.Body.Close()

	w.Header().Set("Content-Type", object.ContentType)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", object.Size))
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")

	_, _ = io.Copy(w, object.Body)
}

/*
GET /albums/{slug}/download
*/
func (c GalleryController) DownloadAlbum(w http.ResponseWriter, r *http.Request) {
	var (
		err   error
		album *models.Album
	)

	slug := httphelpers.GetFromRequest[string](r, "slug")

	if album, err = c.albumService.GetAlbumBySlug(slug); err != nil {
		httphelpers.WriteText(w, http.StatusNotFound, "album not found")
		return
	}

	if _, err = c.archiveService.CreateArchiveAsync(album); err != nil {
		slog.Error("failed to start archive creation", "error", err, "slug", slug)
		httphelpers.TextInternalServerError(w, "Failed to start download preparation")
		return
	}

	viewData := viewmodels.DownloadStarted{
		BaseViewModel: viewmodels.BaseViewModel{
			IsHtmx: httphelpers.IsHtmx(r),
		},
		Album:       c.convertAlbumToViewModel(album, false),
		DownloadURL: c.downloadURL(album.Slug),
	}

	c.renderer.Render("pages/download-started", viewData, w)
}

/*
GET /downloads/{filename}
*/
func (c GalleryController) DownloadZip(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		album  *models.Album
		object s3.GetObjectResponse
	)

	filename := filepath.Base(httphelpers.GetFromRequest[string](r, "filename"))
	slug := strings.TrimSuffix(filename, ".zip")

	if album, err = c.albumService.GetAlbumBySlug(slug); err != nil {
		httphelpers.WriteText(w, http.StatusNotFound, "Download file not found")
		return
	}

	zipKey := c.archiveService.ArchiveKey(album)
	slog.Info("serving zip download from S3", "filename", filename, "key", zipKey)

	object, err = c.s3Client.Get(
		c.bucket,
		zipKey,
		getoptions.WithContext(r.Context()),
	)

	if err != nil {
		slog.Error("error getting zip object from S3", "error", err, "bucket", c.bucket, "key", zipKey)
		httphelpers.WriteText(w, http.StatusNotFound, "Download file not found")
		return
	}

	defer object.Body.Close()

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", object.Size))

	if _, err = io.Copy(w, object.Body); err != nil {
		slog.Error("error streaming zip file", "error", err, "key", zipKey)
		return
	}

	slog.Info("zip file download completed", "filename", filename)
}

/*
GET /contact
*/
func (c GalleryController) ContactPage(w http.ResponseWriter, r *http.Request) {
	viewData := viewmodels.Contact{
		BaseViewModel: viewmodels.BaseViewModel{
			IsHtmx: httphelpers.IsHtmx(r),
		},
	}

	c.renderer.Render("pages/contact", viewData, w)
}

/*
POST /contact
*/
func (c GalleryController) ContactAction(w http.ResponseWriter, r *http.Request) {
	var (
		err error
	)

	pageName := "pages/contact"

	viewData := viewmodels.Contact{
		BaseViewModel: viewmodels.BaseViewModel{
			IsHtmx: httphelpers.IsHtmx(r),
		},
		Name:      httphelpers.GetFromRequest[string](r, "name"),
		Email:     httphelpers.GetFromRequest[string](r, "email"),
		ShootType: httphelpers.GetFromRequest[string](r, "shootType"),
		Body:      httphelpers.GetFromRequest[string](r, "message"),
	}

	if viewData.Name == "" || viewData.Email == "" || viewData.Body == "" {
		viewData.IsWarning = true
		viewData.Message = "Please fill in your name, email, and message."

		c.renderer.Render(pageName, viewData, w)
		return
	}

	err = services.SendContactEmail(c.emailApiKey, c.contactEmail, "Rachel Harding", c.contactFromEmail, map[string]any{
		"name":      viewData.Name,
		"email":     viewData.Email,
		"shootType": viewData.ShootType,
		"message":   viewData.Body,
	})

	if err != nil {
		slog.Error("error sending contact email", "error", err)
		viewData.IsError = true
		viewData.Message = "An unexpected error occurred. Please try again later."

		c.renderer.Render(pageName, viewData, w)
		return
	}

	viewData.Sent = true
	c.renderer.Render(pageName, viewData, w)
}

/*
downloadURL builds the absolute link shown on the download-started page.
Emails and shared links need the configured public base, not a relative
path.
*/
func (c GalleryController) downloadURL(slug string) string {
	return strings.TrimSuffix(c.downloadBaseURL, "/") + "/downloads/" + slug + ".zip"
}

/*
measureFromStorage decodes an original's header from S3 to recover
dimensions when the database row is missing them. The verify tooling
backfills these, so this path is rare.
*/
func (c GalleryController) measureFromStorage(albumID uint) gallery.MeasureFunc {
	return func(id string) (int, int, error) {
		key := c.variantService.OriginalKey(albumID, id)

		object, err := c.s3Client.Get(c.bucket, key)

		if err != nil {
			return 0, 0, fmt.Errorf("error getting original image %s: %w", key, err)
		}

		defer object.Body.Close()
		return processing.Measure(object.Body)
	}
}

func (c GalleryController) convertAlbumToViewModel(album *models.Album, withImages bool) internalmodels.Album {
	result := internalmodels.Album{
		ID:          album.ID,
		Slug:        album.Slug,
		Title:       album.Title,
		Description: album.Description,
		ShootDate:   album.ShootDate.Format("Jan _2, 2006"),
		CoverYPos:   album.CoverYPos,
		IsFavorite:  album.IsFavorite,
		Images:      []internalmodels.Image{},
	}

	if album.CoverImage != "" {
		result.CoverURL = "/images/" + c.variantService.VariantKey(album.ID, services.ClassMedium, album.CoverImage)
		result.HeroURL = "/images/" + filepath.Join(c.albumsFolder, fmt.Sprint(album.ID), "hero-banner", album.CoverImage)
	}

	if !withImages {
		return result
	}

	for _, img := range album.Images {
		ratio := img.Ratio()

		result.Images = append(result.Images, internalmodels.Image{
			Filename:     img.Filename,
			Width:        img.Width,
			Height:       img.Height,
			Ratio:        ratio,
			IsPortrait:   ratio > 0 && ratio < 1,
			ThumbnailURL: "/images/" + c.variantService.VariantKey(album.ID, services.ClassThumbnail, img.Filename),
			SmallURL:     "/images/" + c.variantService.VariantKey(album.ID, services.ClassSmall, img.Filename),
			MediumURL:    "/images/" + c.variantService.VariantKey(album.ID, services.ClassMedium, img.Filename),
			LargeURL:     "/images/" + c.variantService.VariantKey(album.ID, services.ClassLarge, img.Filename),
		})
	}

	return result
}
