package main

import (
	"fmt"
	"time"

	"github.com/rachelharding/rachelhardingphotography/pkg/models"
	"github.com/spf13/cobra"
)

var (
	createTitle       string
	createDescription string
	createShootDate   string
	createFavorite    bool
)

var createCmd = &cobra.Command{
	Use:   "create [slug]",
	Short: "Create a new album",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slug := args[0]

		shootDate := time.Now()

		if createShootDate != "" {
			parsed, err := time.Parse("2006-01-02", createShootDate)

			if err != nil {
				return fmt.Errorf("invalid shoot date '%s', expected YYYY-MM-DD: %w", createShootDate, err)
			}

			shootDate = parsed
		}

		album := &models.Album{
			Slug:        slug,
			Title:       createTitle,
			Description: createDescription,
			ShootDate:   shootDate,
			IsFavorite:  createFavorite,
		}

		if album.Title == "" {
			album.Title = slug
		}

		if err := albumService.CreateAlbum(album); err != nil {
			return err
		}

		fmt.Printf("created album '%s' (id %d)\n", album.Slug, album.ID)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createTitle, "title", "", "Album title (defaults to the slug)")
	createCmd.Flags().StringVar(&createDescription, "description", "", "Album description")
	createCmd.Flags().StringVar(&createShootDate, "shoot-date", "", "Shoot date as YYYY-MM-DD (defaults to today)")
	createCmd.Flags().BoolVar(&createFavorite, "favorite", false, "Pin this album to the top of the home page")
}
