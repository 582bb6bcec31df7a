package cache

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adampresley/adamgokit/s3"
	"github.com/adampresley/adamgokit/s3/createbucketoptions"
	"github.com/adampresley/adamgokit/s3/geturloptions"
	"github.com/adampresley/adamgokit/s3/listoptions"
	"github.com/adampresley/adamgokit/slices"
	"github.com/alitto/pond/v2"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rachelharding/rachelhardingphotography/pkg/models"
	"github.com/rachelharding/rachelhardingphotography/pkg/processing"
	"github.com/rachelharding/rachelhardingphotography/pkg/services"
)

const heroBannerWidth = 1920

type VariantCreator interface {
	CreateVariants()
}

type VariantCreatorConfig struct {
	AlbumService      services.AlbumServicer
	VariantService    services.VariantServicer
	AwsBucket         string
	AwsRegion         string
	AlbumsFolder      string
	MaxVariantWorkers int
	S3Client          s3.S3Client
	ShutdownCtx       context.Context
}

/*
VariantCreatorService walks every album and fills in missing or stale
resolution variants for each original, plus the hero banner used on the
album's header. Originals are the source of truth: re-uploading one marks
all of its variants stale by timestamp.
*/
type VariantCreatorService struct {
	albumService      services.AlbumServicer
	variantService    services.VariantServicer
	awsBucket         string
	awsRegion         string
	albumsFolder      string
	maxVariantWorkers int
	s3Client          s3.S3Client
	shutdownCtx       context.Context
}

func NewVariantCreatorService(config VariantCreatorConfig) VariantCreatorService {
	return VariantCreatorService{
		albumService:      config.AlbumService,
		variantService:    config.VariantService,
		awsBucket:         config.AwsBucket,
		awsRegion:         config.AwsRegion,
		albumsFolder:      config.AlbumsFolder,
		maxVariantWorkers: config.MaxVariantWorkers,
		s3Client:          config.S3Client,
		shutdownCtx:       config.ShutdownCtx,
	}
}

func (c VariantCreatorService) CreateVariants() {
	var (
		err         error
		albums      []*models.Album
		albumImages []s3.Object
	)

	slog.Info("starting variant creation...")

	if err = c.ensureBucketExists(c.awsBucket); err != nil {
		slog.Error("error ensuring bucket exists. aborting", "bucket", c.awsBucket, "error", err)
		os.Exit(1)
	}

	if albums, err = c.albumService.GetAlbumList(); err != nil {
		slog.Error("error retrieving albums from database", "error", err)
		return
	}

	slog.Info("creating variants for albums...", "numAlbums", len(albums))

	pool := pond.NewPool(c.maxVariantWorkers, pond.WithContext(c.shutdownCtx))

	for _, album := range albums {
		pool.Submit(func() {
			if !c.doesHeroExist(album) {
				slog.Info("creating hero banner for album...", "albumID", album.ID)

				if err := c.createHeroBanner(album); err != nil {
					slog.Error("error creating hero banner for album", "albumID", album.ID, "error", err)
				}
			}
		})

		if albumImages, err = c.getAlbumImageListing(album); err != nil {
			slog.Error("error retrieving image listing for album", "albumID", album.ID, "error", err)
			return
		}

		for _, imageObj := range albumImages {
			for _, size := range services.VariantSizes {
				if c.doesVariantExist(album, imageObj, size.Class) {
					continue
				}

				pool.Submit(func() {
					slog.Info("creating variant for album image...", "key", imageObj.Key, "class", size.Class)

					if err := c.createVariant(album, imageObj.Key, size); err != nil {
						slog.Error("error creating variant", "albumID", album.ID, "image", imageObj.Key, "class", size.Class, "error", err)
					}
				})
			}
		}
	}

	_ = pool.Stop().Wait()
	slog.Info("finished variant creation")
}

func (c VariantCreatorService) ensureBucketExists(bucketName string) error {
	var (
		err    error
		exists bool
	)

	exists, err = c.s3Client.BucketExists(bucketName)

	if err != nil {
		return fmt.Errorf("error ensuring bucket '%s' exists: %w", bucketName, err)
	}

	if exists {
		return nil
	}

	slog.Info("creating bucket", "bucketName", bucketName)

	err = c.s3Client.CreateBucket(
		bucketName,
		createbucketoptions.WithRegion(c.awsRegion),
	)

	if err != nil {
		return fmt.Errorf("error creating bucket '%s': %w", bucketName, err)
	}

	return nil
}

func (c VariantCreatorService) getAlbumImageListing(album *models.Album) ([]s3.Object, error) {
	var (
		err      error
		response s3.ListResponse
		validExt = []string{".jpg", ".jpeg", ".png"}
	)

	key := filepath.Join(
		c.albumsFolder,
		fmt.Sprint(album.ID),
		"originals",
	)

	response, err = c.s3Client.List(
		c.awsBucket,
		key,
		listoptions.WithGetUrls(),
		listoptions.WithGetAll(),
		listoptions.WithFilter(func(obj types.Object) bool {
			ext := strings.ToLower(filepath.Ext(aws.ToString(obj.Key)))
			result := slices.IsInSlice(ext, validExt)
			return result
		}),
		listoptions.WithGetUrlOptions(
			geturloptions.WithExpiration(time.Minute*30),
		),
	)

	if err != nil {
		return nil, fmt.Errorf("error listing album images: %w", err)
	}

	return response.Objects, nil
}

func (c VariantCreatorService) doesVariantExist(album *models.Album, original s3.Object, class string) bool {
	var (
		err  error
		stat *s3.ObjectMetadata
	)

	key := c.variantService.VariantKey(album.ID, class, filepath.Base(original.Key))

	if stat, err = c.s3Client.StatObject(c.awsBucket, key); err != nil {
		slog.Error("error retrieving metadata for variant", "key", key, "error", err)
		return false
	}

	if stat == nil {
		return false
	}

	if stat.LastModified.Before(original.LastModified) {
		return false
	}

	return true
}

func (c VariantCreatorService) doesHeroExist(album *models.Album) bool {
	var (
		err          error
		originalStat *s3.ObjectMetadata
		heroStat     *s3.ObjectMetadata
	)

	if album.CoverImage == "" {
		return true
	}

	heroKey := filepath.Join(
		c.albumsFolder,
		fmt.Sprint(album.ID),
		"hero-banner",
		album.CoverImage,
	)

	if heroStat, err = c.s3Client.StatObject(c.awsBucket, heroKey); err != nil {
		slog.Error("error retrieving metadata for hero banner", "key", heroKey, "error", err)
		return false
	}

	originalKey := c.variantService.OriginalKey(album.ID, album.CoverImage)

	if originalStat, err = c.s3Client.StatObject(c.awsBucket, originalKey); err != nil {
		slog.Error("error retrieving metadata for original cover image", "key", originalKey, "error", err)
		return false
	}

	if originalStat == nil || heroStat == nil || heroStat.LastModified.Before(originalStat.LastModified) {
		return false
	}

	return true
}

func (c VariantCreatorService) createVariant(album *models.Album, originalKey string, size services.VariantSize) error {
	original, err := c.s3Client.Get(c.awsBucket, originalKey)

	if err != nil {
		return fmt.Errorf("error retrieving original image %s: %w", originalKey, err)
	}

	defer original.Body.Close()

	buf, err := processing.MakeVariant(original.Body, size.MaxWidth, size.Quality)

	if err != nil {
		return fmt.Errorf("error processing variant for %s: %w", originalKey, err)
	}

	putKey := c.variantService.VariantKey(album.ID, size.Class, filepath.Base(originalKey))

	if _, err = c.s3Client.Put(c.awsBucket, putKey, buf); err != nil {
		return fmt.Errorf("error uploading variant to S3: %w", err)
	}

	return nil
}

func (c VariantCreatorService) createHeroBanner(album *models.Album) error {
	originalKey := c.variantService.OriginalKey(album.ID, album.CoverImage)
	original, err := c.s3Client.Get(c.awsBucket, originalKey)

	if err != nil {
		return fmt.Errorf("error retrieving original image %s: %w", originalKey, err)
	}

	defer original.Body.Close()

	buf, err := processing.MakeVariant(original.Body, heroBannerWidth, 85)

	if err != nil {
		return fmt.Errorf("error processing hero banner for %s: %w", originalKey, err)
	}

	putKey := filepath.Join(
		c.albumsFolder,
		fmt.Sprint(album.ID),
		"hero-banner",
		album.CoverImage,
	)

	if _, err = c.s3Client.Put(c.awsBucket, putKey, buf); err != nil {
		return fmt.Errorf("error uploading hero banner to S3: %w", err)
	}

	return nil
}
