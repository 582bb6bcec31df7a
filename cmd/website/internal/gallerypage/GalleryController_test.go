package gallerypage

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rachelharding/rachelhardingphotography/pkg/models"
	"github.com/rachelharding/rachelhardingphotography/pkg/services"
)

type stubAlbumService struct {
	album *models.Album
}

func (s stubAlbumService) GetAlbumBySlug(slug string) (*models.Album, error) {
	if s.album == nil || s.album.Slug != slug {
		return nil, models.ErrAlbumNotFound
	}

	return s.album, nil
}

func (s stubAlbumService) GetAlbumList() ([]*models.Album, error) {
	if s.album == nil {
		return []*models.Album{}, nil
	}

	return []*models.Album{s.album}, nil
}

func (s stubAlbumService) GetImages(albumID uint) ([]models.Image, error) {
	return s.album.Images, nil
}

func (s stubAlbumService) CreateAlbum(album *models.Album) error { return nil }
func (s stubAlbumService) UpdateAlbum(album *models.Album) error { return nil }
func (s stubAlbumService) DeleteAlbum(slug string) error { return nil }
func (s stubAlbumService) AddImage(img *models.Image) error { return nil }
func (s stubAlbumService) RemoveImage(albumID uint, filename string) error { return nil }
func (s stubAlbumService) UpdateImageDimensions(id uint, w, h int) error { return nil }
func (s stubAlbumService) SetCoverImage(albumID uint, filename string) error { return nil }

func newTestServer(album *models.Album) *httptest.Server {
	controller := NewGalleryController(GalleryControllerConfig{
		AlbumService: stubAlbumService{album: album},
		VariantService: services.NewVariantService(services.VariantServiceConfig{
			AlbumsFolder: "albums",
			URLPrefix:    "/images/",
		}),
		RowHeight: 300,
		Gap:       10,
	})

	m := http.NewServeMux()
	m.HandleFunc("GET /api/albums/{slug}/layout", controller.AlbumLayout)

	return httptest.NewServer(m)
}

func testAlbum() *models.Album {
	return &models.Album{
		BaseModel: models.BaseModel{ID: 9, CreatedAt: time.Now()},
		Slug:      "harbor",
		Title:     "Harbor",
		ShootDate: time.Now(),
		Images: []models.Image{
			{Filename: "a.jpg", Width: 1200, Height: 2000},
			{Filename: "b.jpg", Width: 1200, Height: 2000},
			{Filename: "c.jpg", Width: 3200, Height: 2000},
			{Filename: "d.jpg", Width: 3200, Height: 2000},
			{Filename: "e.jpg", Width: 1200, Height: 2000},
			{Filename: "f.jpg", Width: 3200, Height: 2000},
			{Filename: "g.jpg", Width: 1200, Height: 2000},
		},
	}
}

func TestAlbumLayoutEndpoint(t *testing.T) {
	server := newTestServer(testAlbum())
	defer server.Close()

	response, err := http.Get(server.URL + "/api/albums/harbor/layout?width=1200&seed=9")

	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}

	result := layoutResponse{}

	if err = json.NewDecoder(response.Body).Decode(&result); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}

	if result.Width != 1200 || result.Seed != 9 {
		t.Errorf("expected width 1200 seed 9, got %d/%d", result.Width, result.Seed)
	}

	if result.VariantClass != services.ClassMedium {
		t.Errorf("expected variant class %s, got %s", services.ClassMedium, result.VariantClass)
	}

	total := 0

	for _, row := range result.Rows {
		total += len(row.Images)

		rowWidth := 0

		for _, img := range row.Images {
			rowWidth += img.Width
		}

		rowWidth += (len(row.Images) - 1) * 10

		if rowWidth > 1200 {
			t.Errorf("row exceeds container: %d", rowWidth)
		}
	}

	if total != 7 {
		t.Errorf("expected all 7 images in rows, got %d", total)
	}

	if result.TotalHeight <= 0 {
		t.Error("expected a positive total height")
	}
}

func TestAlbumLayoutSameSeedIsStable(t *testing.T) {
	server := newTestServer(testAlbum())
	defer server.Close()

	fetch := func() layoutResponse {
		t.Helper()

		response, err := http.Get(server.URL + "/api/albums/harbor/layout?width=1200&seed=4")

		if err != nil {
			t.Fatalf("request failed: %v", err)
		}

		defer response.Body.Close()

		result := layoutResponse{}

		if err = json.NewDecoder(response.Body).Decode(&result); err != nil {
			t.Fatalf("response is not valid JSON: %v", err)
		}

		return result
	}

	first := fetch()
	second := fetch()

	for i, row := range first.Rows {
		for j, img := range row.Images {
			if second.Rows[i].Images[j].ID != img.ID {
				t.Fatalf("arrangement changed between identical requests at row %d slot %d", i, j)
			}
		}
	}
}

func TestDownloadURLUsesConfiguredBase(t *testing.T) {
	tests := []struct {
		name string
		base string
		want string
	}{
		{
			name: "plain base",
			base: "https://rachelhardingphotography.com",
			want: "https://rachelhardingphotography.com/downloads/harbor.zip",
		},
		{
			name: "trailing slash",
			base: "https://rachelhardingphotography.com/",
			want: "https://rachelhardingphotography.com/downloads/harbor.zip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := NewGalleryController(GalleryControllerConfig{
				DownloadBaseURL: tt.base,
			})

			if got := controller.downloadURL("harbor"); got != tt.want {
				t.Errorf("download URL = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAlbumLayoutRejectsBadRequests(t *testing.T) {
	server := newTestServer(testAlbum())
	defer server.Close()

	tests := []struct {
		name string
		url  string
		want int
	}{
		{name: "missing width", url: "/api/albums/harbor/layout", want: http.StatusBadRequest},
		{name: "bad seed", url: "/api/albums/harbor/layout?width=900&seed=banana", want: http.StatusBadRequest},
		{name: "unknown album", url: "/api/albums/nope/layout?width=900", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response, err := http.Get(server.URL + tt.url)

			if err != nil {
				t.Fatalf("request failed: %v", err)
			}

			response.Body.Close()

			if response.StatusCode != tt.want {
				t.Errorf("expected %d, got %d", tt.want, response.StatusCode)
			}
		})
	}
}
