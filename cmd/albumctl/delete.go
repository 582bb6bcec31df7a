package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [slug]",
	Short: "Soft-delete an album and its images",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := albumService.DeleteAlbum(args[0]); err != nil {
			return err
		}

		fmt.Printf("deleted album '%s'\n", args[0])
		return nil
	},
}
