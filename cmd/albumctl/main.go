package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/adampresley/adamgokit/awsconfig"
	"github.com/adampresley/adamgokit/s3"
	_ "github.com/glebarez/sqlite"
	"github.com/rachelharding/rachelhardingphotography/pkg/services"
	"github.com/rfberaldo/sqlz"
	"github.com/rfberaldo/sqlz/binds"
	"github.com/spf13/cobra"
)

/*
albumctl manages the portfolio from the command line: creating albums,
importing photos, and verifying that the database and S3 agree. It shares
the website's services and talks to the same database and bucket, so
configuration comes from the same environment variables.
*/

var (
	db             *sqlz.DB
	s3Client       s3.S3Client
	albumService   services.AlbumServicer
	variantService services.VariantServicer

	awsBucket    string
	albumsFolder string
)

var rootCmd = &cobra.Command{
	Use:   "albumctl",
	Short: "Manage photography albums",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(addImagesCmd)
	rootCmd.AddCommand(verifyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup() error {
	var (
		err error
	)

	binds.Register("sqlite", binds.BindByDriver("sqlite3"))

	if db, err = sqlz.Connect("sqlite", envOrDefault("DSN", "file:./data/rachelhardingphotography.db")); err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}

	awsBucket = envOrDefault("AWS_BUCKET", "rachelhardingphotography.com")
	albumsFolder = envOrDefault("ALBUMS_FOLDER", "albums")

	albumService = services.NewAlbumService(services.AlbumServiceConfig{
		DB: db,
	})

	variantService = services.NewVariantService(services.VariantServiceConfig{
		AlbumsFolder: albumsFolder,
		URLPrefix:    "/images/",
	})

	return nil
}

/*
setupStorage connects to S3. Only commands that touch photos need it, so
it is called by those commands rather than in the root setup.
*/
func setupStorage() error {
	var (
		err error
	)

	awsConfig := &awsconfig.Config{
		Endpoint:        envOrDefault("AWS_ENDPOINT_URL", "http://localhost:4566"),
		Region:          envOrDefault("AWS_REGION", "us-central-1"),
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
	}

	if err = awsConfig.Load(); err != nil {
		return fmt.Errorf("error loading AWS config: %w", err)
	}

	if s3Client, err = s3.NewClient(awsConfig); err != nil {
		return fmt.Errorf("error creating S3 client: %w", err)
	}

	return nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}

	return fallback
}
