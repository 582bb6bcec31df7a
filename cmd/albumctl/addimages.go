package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alitto/pond/v2"
	"github.com/rachelharding/rachelhardingphotography/pkg/models"
	"github.com/rachelharding/rachelhardingphotography/pkg/processing"
	"github.com/rachelharding/rachelhardingphotography/pkg/services"
	"github.com/spf13/cobra"
)

var addImagesCmd = &cobra.Command{
	Use:   "add-images [slug] [files...]",
	Short: "Import photos into an album",
	Long: `Import photos into an album. Each file's dimensions are recorded in the
database, the original is uploaded to S3, and the full set of resolution
variants is generated immediately so the gallery can serve the photos
without waiting for the background variant job.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setupStorage(); err != nil {
			return err
		}

		album, err := albumService.GetAlbumBySlug(args[0])

		if err != nil {
			return err
		}

		pool := pond.NewPool(envIntOrDefault("MAX_VARIANT_WORKERS", 20))

		for _, path := range args[1:] {
			if err = importImage(album, path, pool); err != nil {
				return err
			}
		}

		pool.Stop().Wait()

		/*
		 * New albums get the first imported photo as their cover until the
		 * photographer picks one.
		 */
		if album.CoverImage == "" && len(args) > 1 {
			if err = albumService.SetCoverImage(album.ID, filepath.Base(args[1])); err != nil {
				return err
			}
		}

		fmt.Printf("imported %d photo(s) into '%s'\n", len(args)-1, album.Slug)
		return nil
	},
}

func importImage(album *models.Album, path string, pool pond.Pool) error {
	var (
		err    error
		file   *os.File
		width  int
		height int
	)

	filename := filepath.Base(path)

	if file, err = os.Open(path); err != nil {
		return fmt.Errorf("error opening '%s': %w", path, err)
	}

	width, height, err = processing.Measure(file)
	file.Close()

	if err != nil {
		return fmt.Errorf("error measuring '%s': %w", path, err)
	}

	/*
	 * Upload the original.
	 */
	if file, err = os.Open(path); err != nil {
		return fmt.Errorf("error opening '%s': %w", path, err)
	}

	originalKey := variantService.OriginalKey(album.ID, filename)
	_, err = s3Client.Put(awsBucket, originalKey, file)
	file.Close()

	if err != nil {
		return fmt.Errorf("error uploading original '%s': %w", path, err)
	}

	/*
	 * Generate every variant concurrently.
	 */
	for _, size := range services.VariantSizes {
		pool.Submit(func() {
			variantFile, err := os.Open(path)

			if err != nil {
				fmt.Fprintf(os.Stderr, "error opening '%s': %v\n", path, err)
				return
			}

			defer variantFile.Close()

			buf, err := processing.MakeVariant(variantFile, size.MaxWidth, size.Quality)

			if err != nil {
				fmt.Fprintf(os.Stderr, "error processing %s variant of '%s': %v\n", size.Class, path, err)
				return
			}

			variantKey := variantService.VariantKey(album.ID, size.Class, filename)

			if _, err = s3Client.Put(awsBucket, variantKey, buf); err != nil {
				fmt.Fprintf(os.Stderr, "error uploading %s variant of '%s': %v\n", size.Class, path, err)
			}
		})
	}

	img := &models.Image{
		AlbumID:  album.ID,
		Filename: filename,
		Width:    width,
		Height:   height,
	}

	if err = albumService.AddImage(img); err != nil {
		return err
	}

	fmt.Printf("  %s (%dx%d)\n", filename, width, height)
	return nil
}
