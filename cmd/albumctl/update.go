package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	updateTitle       string
	updateDescription string
	updateShootDate   string
	updateCover       string
	updateCoverYPos   string
	updateFavorite    bool
	updateNoFavorite  bool
)

var updateCmd = &cobra.Command{
	Use:   "update [slug]",
	Short: "Update an album's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		album, err := albumService.GetAlbumBySlug(args[0])

		if err != nil {
			return err
		}

		if cmd.Flags().Changed("title") {
			album.Title = updateTitle
		}

		if cmd.Flags().Changed("description") {
			album.Description = updateDescription
		}

		if cmd.Flags().Changed("shoot-date") {
			parsed, err := time.Parse("2006-01-02", updateShootDate)

			if err != nil {
				return fmt.Errorf("invalid shoot date '%s', expected YYYY-MM-DD: %w", updateShootDate, err)
			}

			album.ShootDate = parsed
		}

		if cmd.Flags().Changed("cover") {
			album.CoverImage = updateCover
		}

		if cmd.Flags().Changed("cover-y-pos") {
			album.CoverYPos = updateCoverYPos
		}

		if updateFavorite {
			album.IsFavorite = true
		}

		if updateNoFavorite {
			album.IsFavorite = false
		}

		if err = albumService.UpdateAlbum(album); err != nil {
			return err
		}

		fmt.Printf("updated album '%s'\n", album.Slug)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "Album title")
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "Album description")
	updateCmd.Flags().StringVar(&updateShootDate, "shoot-date", "", "Shoot date as YYYY-MM-DD")
	updateCmd.Flags().StringVar(&updateCover, "cover", "", "Filename of the cover image")
	updateCmd.Flags().StringVar(&updateCoverYPos, "cover-y-pos", "", "Vertical position of the cover crop, e.g. '30%'")
	updateCmd.Flags().BoolVar(&updateFavorite, "favorite", false, "Pin this album to the top of the home page")
	updateCmd.Flags().BoolVar(&updateNoFavorite, "no-favorite", false, "Unpin this album")
}
