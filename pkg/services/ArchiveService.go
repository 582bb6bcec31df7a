package services

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adampresley/adamgokit/s3"
	"github.com/adampresley/adamgokit/s3/listoptions"
	"github.com/adampresley/adamgokit/s3/putoptions"
	"github.com/rachelharding/rachelhardingphotography/pkg/models"
)

type ArchiveServiceConfig struct {
	AlbumService   AlbumServicer
	VariantService VariantServicer
	Bucket         string
	AlbumsFolder   string
	ExpirationDays int
	S3Client       s3.S3Client
}

type ArchiveServicer interface {
	CreateArchiveAsync(album *models.Album) (string, error)
	ArchiveKey(album *models.Album) string
	StartCleanupRoutine(interval time.Duration)
	StopCleanupRoutine()
}

/*
ArchiveService builds downloadable zip files of an album's large-class
variants and expires old ones. Archives are assembled in the background and
streamed straight into S3, so a request only kicks the job off.
*/
type ArchiveService struct {
	config        ArchiveServiceConfig
	cleanupTicker *time.Ticker
	stopCleanup   chan struct{}
	wg            *sync.WaitGroup
}

func NewArchiveService(config ArchiveServiceConfig) *ArchiveService {
	// Default expiration to 7 days if not specified
	if config.ExpirationDays <= 0 {
		config.ExpirationDays = 7
	}

	return &ArchiveService{
		config:      config,
		stopCleanup: make(chan struct{}),
		wg:          &sync.WaitGroup{},
	}
}

func (s *ArchiveService) ArchiveKey(album *models.Album) string {
	return filepath.Join(
		s.config.AlbumsFolder,
		fmt.Sprint(album.ID),
		"downloads",
		fmt.Sprintf("%s.zip", album.Slug),
	)
}

/*
CreateArchiveAsync returns the archive's S3 key immediately. If the zip
already exists nothing is rebuilt; otherwise a background job assembles it.
*/
func (s *ArchiveService) CreateArchiveAsync(album *models.Album) (string, error) {
	var (
		err        error
		objectData *s3.ObjectMetadata
	)

	archiveKey := s.ArchiveKey(album)

	if objectData, err = s.config.S3Client.StatObject(s.config.Bucket, archiveKey); err == nil && objectData != nil {
		slog.Info("album archive already exists", "archiveKey", archiveKey, "albumID", album.ID)
		return archiveKey, nil
	}

	go s.processArchive(archiveKey, album)

	return archiveKey, nil
}

func (s *ArchiveService) processArchive(archiveKey string, album *models.Album) {
	l := slog.With("albumID", album.ID, "archiveKey", archiveKey)
	l.Info("starting album archive build")

	sourceFolder := s.config.VariantService.VariantFolder(album.ID, ClassLarge)

	addFile := func(zipWriter *zip.Writer, key string) error {
		imageName := filepath.Base(key)

		src, err := s.config.S3Client.Get(s.config.Bucket, key)

		if err != nil {
			return fmt.Errorf("failed to get source file from '%s' S3: %w", key, err)
		}

		dest, err := zipWriter.Create(imageName)

		if err != nil {
			return fmt.Errorf("failed to create file '%s' in zip: %w", imageName, err)
		}

		defer src.Body.Close()

		if _, err := io.Copy(dest, src.Body); err != nil {
			return fmt.Errorf("failed to copy file '%s' to zip: %w", imageName, err)
		}

		return nil
	}

	stream, err := s.config.S3Client.PutStream(s.config.Bucket, archiveKey, putoptions.WithContentType("application/zip"))

	if err != nil {
		l.Error("failed to setup s3 stream", "error", err)
		return
	}

	zipWriter := zip.NewWriter(stream.Writer)
	listResponse, err := s.config.S3Client.List(s.config.Bucket, sourceFolder, listoptions.WithGetAll())

	if err != nil {
		l.Error("error listing album variants", "error", err)
		return
	}

	for _, img := range listResponse.Objects {
		if err = addFile(zipWriter, img.Key); err != nil {
			l.Error("failed to add image to archive", "error", err, "image", img.Key)
			continue
		}
	}

	if err = zipWriter.Close(); err != nil {
		l.Error("failed to close zip writer", "error", err)
		return
	}

	if err = stream.Writer.Close(); err != nil {
		l.Error("failed to close s3 stream writer", "error", err)
		return
	}

	if _, err = stream.Wait(); err != nil {
		l.Error("failed to wait for s3 stream", "error", err)
		return
	}

	l.Info("finished uploading album archive to S3")
}

// StartCleanupRoutine starts a periodic routine to clean up expired archives
func (s *ArchiveService) StartCleanupRoutine(interval time.Duration) {
	s.cleanupTicker = time.NewTicker(interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		for {
			select {
			case <-s.cleanupTicker.C:
				s.cleanupExpiredArchives()
			case <-s.stopCleanup:
				s.cleanupTicker.Stop()
				return
			}
		}
	}()

	slog.Info("archive cleanup routine started", "interval", interval)
}

// StopCleanupRoutine stops the cleanup routine
func (s *ArchiveService) StopCleanupRoutine() {
	if s.cleanupTicker != nil {
		close(s.stopCleanup)
		s.wg.Wait()
		slog.Info("archive cleanup routine stopped")
	}
}

// cleanupExpiredArchives removes zip files older than the expiration period
func (s *ArchiveService) cleanupExpiredArchives() {
	var (
		err    error
		albums []*models.Album
	)

	l := slog.With("function", "cleanupExpiredArchives")
	l.Info("starting cleanup of expired album archives")

	cutoffTime := time.Now().AddDate(0, 0, -s.config.ExpirationDays)
	var removedCount int

	if albums, err = s.config.AlbumService.GetAlbumList(); err != nil {
		l.Error("error retrieving albums from database", "error", err)
		return
	}

	for _, album := range albums {
		downloadsKey := filepath.Join(
			s.config.AlbumsFolder,
			fmt.Sprint(album.ID),
			"downloads",
		)

		listResponse, err := s.config.S3Client.List(s.config.Bucket, downloadsKey)
		if err != nil {
			l.Error("failed to list S3 directory", "error", err, "path", downloadsKey)
			continue
		}

		for _, file := range listResponse.Objects {
			if !strings.HasSuffix(strings.ToLower(file.Key), ".zip") {
				continue
			}

			if file.LastModified.Before(cutoffTime) {
				l.Info("removing expired archive from S3", "path", file.Key, "modTime", file.LastModified)

				if _, err := s.config.S3Client.Delete(s.config.Bucket, []string{file.Key}); err != nil {
					l.Error("failed to remove expired archive from S3", "error", err, "path", file.Key)
				} else {
					removedCount++
				}
			}
		}
	}

	l.Info("completed cleanup of expired album archives", "removed", removedCount)
}
