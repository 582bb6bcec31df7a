package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rachelharding/rachelhardingphotography/pkg/models"
	"github.com/rfberaldo/sqlz"
)

type AlbumServicer interface {
	GetAlbumBySlug(slug string) (*models.Album, error)
	GetAlbumList() ([]*models.Album, error)
	GetImages(albumID uint) ([]models.Image, error)
	CreateAlbum(album *models.Album) error
	UpdateAlbum(album *models.Album) error
	DeleteAlbum(slug string) error
	AddImage(img *models.Image) error
	RemoveImage(albumID uint, filename string) error
	UpdateImageDimensions(imageID uint, width, height int) error
	SetCoverImage(albumID uint, filename string) error
}

type AlbumServiceConfig struct {
	DB *sqlz.DB
}

type AlbumService struct {
	db *sqlz.DB
}

func NewAlbumService(config AlbumServiceConfig) AlbumService {
	return AlbumService{
		db: config.DB,
	}
}

func (s AlbumService) GetAlbumBySlug(slug string) (*models.Album, error) {
	var (
		err error
	)

	result := &models.Album{}

	sql := `
SELECT
   a.id
   , a.created_at
   , a.updated_at
   , a.deleted_at
   , a.slug
   , a.title
   , COALESCE(a.description, '') AS description
   , a.shoot_date
   , a.cover_image
   , COALESCE(a.cover_y_pos, '') AS cover_y_pos
   , a.is_favorite
FROM albums AS a
WHERE 1=1
   AND a.deleted_at IS NULL
   AND a.slug=?
   `

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = s.db.QueryRow(ctx, result, sql, slug); err != nil {
		if sqlz.IsNotFound(err) {
			return nil, models.ErrAlbumNotFound
		}

		return nil, fmt.Errorf("error querying for album '%s': %w", slug, err)
	}

	if result.Images, err = s.GetImages(result.ID); err != nil {
		return nil, err
	}

	return result, nil
}

/*
GetAlbumList returns all live albums, favorites first, then newest shoots
first. Images are not attached; list views only need cover data.
*/
func (s AlbumService) GetAlbumList() ([]*models.Album, error) {
	var (
		err error
	)

	result := []*models.Album{}

	sql := `
SELECT
   a.id
   , a.created_at
   , a.updated_at
   , a.deleted_at
   , a.slug
   , a.title
   , COALESCE(a.description, '') AS description
   , a.shoot_date
   , a.cover_image
   , COALESCE(a.cover_y_pos, '') AS cover_y_pos
   , a.is_favorite
FROM albums AS a
WHERE 1=1
   AND a.deleted_at IS NULL
ORDER BY a.is_favorite DESC, a.shoot_date DESC
   `

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = s.db.Query(ctx, &result, sql); err != nil {
		return result, fmt.Errorf("error querying for album list: %w", err)
	}

	return result, nil
}

func (s AlbumService) GetImages(albumID uint) ([]models.Image, error) {
	var (
		err error
	)

	result := []models.Image{}

	sql := `
SELECT
   i.id
   , i.created_at
   , i.updated_at
   , i.deleted_at
   , i.album_id
   , i.filename
   , i.width
   , i.height
FROM images AS i
WHERE 1=1
   AND i.deleted_at IS NULL
   AND i.album_id=?
ORDER BY i.filename
   `

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = s.db.Query(ctx, &result, sql, albumID); err != nil {
		return result, fmt.Errorf("error querying for images in album %d: %w", albumID, err)
	}

	return result, nil
}

func (s AlbumService) CreateAlbum(album *models.Album) error {
	sql := `
INSERT INTO albums (
   created_at
   , updated_at
   , slug
   , title
   , description
   , shoot_date
   , cover_image
   , cover_y_pos
   , is_favorite
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
   `

	now := time.Now()

	params := []any{
		now,
		now,
		album.Slug,
		album.Title,
		album.Description,
		album.ShootDate,
		album.CoverImage,
		album.CoverYPos,
		album.IsFavorite,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	result, err := s.db.Exec(ctx, sql, params...)

	if err != nil {
		return fmt.Errorf("error creating album '%s': %w", album.Slug, err)
	}

	id, err := result.LastInsertId()

	if err != nil {
		return fmt.Errorf("error reading new album ID for '%s': %w", album.Slug, err)
	}

	album.ID = uint(id)
	return nil
}

func (s AlbumService) UpdateAlbum(album *models.Album) error {
	sql := `
UPDATE albums SET
   updated_at=?
   , title=?
   , description=?
   , shoot_date=?
   , cover_image=?
   , cover_y_pos=?
   , is_favorite=?
WHERE 1=1
   AND deleted_at IS NULL
   AND id=?
   `

	params := []any{
		time.Now(),
		album.Title,
		album.Description,
		album.ShootDate,
		album.CoverImage,
		album.CoverYPos,
		album.IsFavorite,
		album.ID,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if _, err := s.db.Exec(ctx, sql, params...); err != nil {
		return fmt.Errorf("error updating album %d: %w", album.ID, err)
	}

	return nil
}

/*
DeleteAlbum soft-deletes the album and its images. Variants stay in S3
until the verify tooling prunes them; a deleted album must never break an
in-flight page load.
*/
func (s AlbumService) DeleteAlbum(slug string) error {
	album, err := s.GetAlbumBySlug(slug)

	if err != nil {
		return err
	}

	now := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if _, err = s.db.Exec(ctx, `UPDATE albums SET deleted_at=? WHERE id=?`, now, album.ID); err != nil {
		return fmt.Errorf("error deleting album '%s': %w", slug, err)
	}

	ctx, cancel = context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if _, err = s.db.Exec(ctx, `UPDATE images SET deleted_at=? WHERE album_id=?`, now, album.ID); err != nil {
		return fmt.Errorf("error deleting images for album '%s': %w", slug, err)
	}

	return nil
}

func (s AlbumService) AddImage(img *models.Image) error {
	sql := `
INSERT INTO images (
   created_at
   , updated_at
   , album_id
   , filename
   , width
   , height
) VALUES (?, ?, ?, ?, ?, ?)
   `

	now := time.Now()

	params := []any{
		now,
		now,
		img.AlbumID,
		img.Filename,
		img.Width,
		img.Height,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	result, err := s.db.Exec(ctx, sql, params...)

	if err != nil {
		return fmt.Errorf("error adding image '%s' to album %d: %w", img.Filename, img.AlbumID, err)
	}

	id, err := result.LastInsertId()

	if err != nil {
		return fmt.Errorf("error reading new image ID for '%s': %w", img.Filename, err)
	}

	img.ID = uint(id)
	return nil
}

func (s AlbumService) RemoveImage(albumID uint, filename string) error {
	sql := `
UPDATE images SET deleted_at=?
WHERE 1=1
   AND album_id=?
   AND filename=?
   `

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if _, err := s.db.Exec(ctx, sql, time.Now(), albumID, filename); err != nil {
		return fmt.Errorf("error removing image '%s' from album %d: %w", filename, albumID, err)
	}

	return nil
}

func (s AlbumService) UpdateImageDimensions(imageID uint, width, height int) error {
	sql := `
UPDATE images SET
   updated_at=?
   , width=?
   , height=?
WHERE 1=1
   AND deleted_at IS NULL
   AND id=?
   `

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if _, err := s.db.Exec(ctx, sql, time.Now(), width, height, imageID); err != nil {
		return fmt.Errorf("error updating dimensions for image %d: %w", imageID, err)
	}

	return nil
}

func (s AlbumService) SetCoverImage(albumID uint, filename string) error {
	sql := `
UPDATE albums SET
   updated_at=?
   , cover_image=?
WHERE 1=1
   AND deleted_at IS NULL
   AND id=?
   `

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if _, err := s.db.Exec(ctx, sql, time.Now(), filename, albumID); err != nil {
		return fmt.Errorf("error setting cover image for album %d: %w", albumID, err)
	}

	return nil
}
