package main

import (
	"fmt"
	"path/filepath"

	"github.com/adampresley/adamgokit/s3/listoptions"
	"github.com/rachelharding/rachelhardingphotography/pkg/processing"
	"github.com/rachelharding/rachelhardingphotography/pkg/services"
	"github.com/spf13/cobra"
)

var verifyFix bool

var verifyCmd = &cobra.Command{
	Use:   "verify [slug]",
	Short: "Check that the database and S3 agree for an album",
	Long: `Check that the database and S3 agree for an album: every database row has
an original in S3, every original has a database row, every variant class
exists, and every row has recorded dimensions. With --fix, missing
dimensions are backfilled by measuring the original in S3.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setupStorage(); err != nil {
			return err
		}

		album, err := albumService.GetAlbumBySlug(args[0])

		if err != nil {
			return err
		}

		problems := 0

		listResponse, err := s3Client.List(
			awsBucket,
			filepath.Join(albumsFolder, fmt.Sprint(album.ID), "originals"),
			listoptions.WithGetAll(),
		)

		if err != nil {
			return fmt.Errorf("error listing originals: %w", err)
		}

		inStorage := map[string]bool{}

		for _, obj := range listResponse.Objects {
			inStorage[filepath.Base(obj.Key)] = true
		}

		inDatabase := map[string]bool{}

		for _, img := range album.Images {
			inDatabase[img.Filename] = true

			if !inStorage[img.Filename] {
				fmt.Printf("MISSING ORIGINAL: %s is in the database but not in S3\n", img.Filename)
				problems++
				continue
			}

			if img.Width <= 0 || img.Height <= 0 {
				problems++

				if !verifyFix {
					fmt.Printf("MISSING DIMENSIONS: %s has no recorded width/height\n", img.Filename)
					continue
				}

				object, err := s3Client.Get(awsBucket, variantService.OriginalKey(album.ID, img.Filename))

				if err != nil {
					fmt.Printf("MISSING DIMENSIONS: %s could not be measured: %v\n", img.Filename, err)
					continue
				}

				width, height, err := processing.Measure(object.Body)
				object.Body.Close()

				if err != nil {
					fmt.Printf("MISSING DIMENSIONS: %s could not be measured: %v\n", img.Filename, err)
					continue
				}

				img.Width = width
				img.Height = height

				if err = albumService.UpdateImageDimensions(img.ID, width, height); err != nil {
					return err
				}

				fmt.Printf("FIXED: %s measured as %dx%d\n", img.Filename, width, height)
			}

			for _, size := range services.VariantSizes {
				variantKey := variantService.VariantKey(album.ID, size.Class, img.Filename)
				stat, err := s3Client.StatObject(awsBucket, variantKey)

				if err != nil || stat == nil {
					fmt.Printf("MISSING VARIANT: %s has no %s rendition\n", img.Filename, size.Class)
					problems++
				}
			}
		}

		for filename := range inStorage {
			if !inDatabase[filename] {
				fmt.Printf("ORPHANED ORIGINAL: %s is in S3 but not in the database\n", filename)
				problems++
			}
		}

		if problems == 0 {
			fmt.Printf("album '%s' is consistent: %d photo(s)\n", album.Slug, len(album.Images))
			return nil
		}

		return fmt.Errorf("found %d problem(s) in album '%s'", problems, album.Slug)
	},
}

func init() {
	verifyCmd.Flags().BoolVar(&verifyFix, "fix", false, "Backfill missing dimensions by measuring originals in S3")
}
