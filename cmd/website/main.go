package main

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adampresley/adamgokit/awsconfig"
	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/mux"
	"github.com/adampresley/adamgokit/rendering"
	"github.com/adampresley/adamgokit/retrier"
	"github.com/adampresley/adamgokit/s3"
	_ "github.com/glebarez/sqlite"
	"github.com/rachelharding/rachelhardingphotography/cmd/website/internal/cache"
	"github.com/rachelharding/rachelhardingphotography/cmd/website/internal/configuration"
	"github.com/rachelharding/rachelhardingphotography/cmd/website/internal/gallerypage"
	"github.com/rachelharding/rachelhardingphotography/pkg/services"
	"github.com/rfberaldo/sqlz"
	"github.com/rfberaldo/sqlz/binds"
)

var (
	Version string = "development"
	appName string = "rachelhardingphotography"

	//go:embed app
	appFS embed.FS

	//go:embed sql-migrations
	sqlMigrationsFs embed.FS

	config configuration.Config

	/* Services */
	albumService          services.AlbumServicer
	archiveService        services.ArchiveServicer
	variantService        services.VariantServicer
	variantCreatorService cache.VariantCreator
	db                    *sqlz.DB
	renderer              rendering.TemplateRenderer

	/* Controllers */
	galleryController gallerypage.GalleryController
)

func main() {
	var (
		err error
	)

	config = configuration.LoadConfig()
	setupLogger(&config, Version)

	slog.Info("configuration loaded",
		slog.String("app", appName),
		slog.String("version", Version),
		slog.String("loglevel", config.LogLevel),
		slog.String("host", config.Host),
		slog.String("awsEndpointUrl", config.AwsEndpointUrl),
		slog.String("awsRegion", config.AwsRegion),
	)

	slog.Debug("setting up...")

	shutdownCtx, cancel := context.WithCancel(context.Background())

	/*
	 * Setup services
	 */
	binds.Register("sqlite", binds.BindByDriver("sqlite3"))
	if db, err = sqlz.Connect("sqlite", config.DSN); err != nil {
		panic(err)
	}

	migrateDatabase()

	awsConfig := &awsconfig.Config{
		Endpoint:        config.AwsEndpointUrl,
		Region:          config.AwsRegion,
		AccessKeyID:     config.AwsAccessKeyId,
		SecretAccessKey: config.AwsSecretAccessKey,
	}

	retrier.Retry(func() error {
		if err = awsConfig.Load(); err != nil {
			slog.Error("failed to load AWS config. trying again", "error", err)
			return err
		}

		return nil
	})

	if err != nil {
		panic(err)
	}

	s3Client, err := s3.NewClient(awsConfig)

	if err != nil {
		panic(err)
	}

	renderer, err = rendering.NewGoTemplateRenderer(rendering.GoTemplateRendererConfig{
		TemplateDir:       "app",
		TemplateExtension: ".html",
		TemplateFS:        appFS,
		PagesDir:          "pages",
	})

	if err != nil {
		panic(err)
	}

	albumService = services.NewAlbumService(services.AlbumServiceConfig{
		DB: db,
	})

	variantService = services.NewVariantService(services.VariantServiceConfig{
		AlbumsFolder: config.AlbumsFolder,
		URLPrefix:    "/images/",
	})

	archiveService = services.NewArchiveService(services.ArchiveServiceConfig{
		AlbumService:   albumService,
		VariantService: variantService,
		Bucket:         config.AwsBucket,
		AlbumsFolder:   config.AlbumsFolder,
		ExpirationDays: config.DownloadExpirationDays,
		S3Client:       s3Client,
	})

	variantCreatorService = cache.NewVariantCreatorService(cache.VariantCreatorConfig{
		AlbumService:      albumService,
		VariantService:    variantService,
		AwsBucket:         config.AwsBucket,
		AwsRegion:         config.AwsRegion,
		AlbumsFolder:      config.AlbumsFolder,
		MaxVariantWorkers: config.MaxVariantWorkers,
		S3Client:          s3Client,
		ShutdownCtx:       shutdownCtx,
	})

	/*
	 * Setup controllers
	 */
	galleryController = gallerypage.NewGalleryController(gallerypage.GalleryControllerConfig{
		AlbumService:     albumService,
		AlbumsFolder:     config.AlbumsFolder,
		ArchiveService:   archiveService,
		VariantService:   variantService,
		Bucket:           config.AwsBucket,
		ContactEmail:     config.ContactEmail,
		ContactFromEmail: config.ContactFromEmail,
		DownloadBaseURL:  config.DownloadBaseURL,
		EmailApiKey:      config.EmailApiKey,
		Gap:              config.GridGap,
		Renderer:         renderer,
		RowHeight:        config.RowHeight,
		S3Client:         s3Client,
	})

	/*
	 * Setup router and http server
	 */
	slog.Debug("setting up routes...")

	requestLogger := newRequestLoggerMiddleware([]string{
		"/static",
		"/images",
		"/heartbeat",
	})

	routes := []mux.Route{
		{Path: "GET /heartbeat", HandlerFunc: heartbeat},
		{Path: "GET /", HandlerFunc: galleryController.HomePage, Middlewares: []mux.MiddlewareFunc{requestLogger}},
		{Path: "GET /albums/{slug}", HandlerFunc: galleryController.ViewAlbumPage, Middlewares: []mux.MiddlewareFunc{requestLogger}},
		{Path: "GET /albums/{slug}/download", HandlerFunc: galleryController.DownloadAlbum, Middlewares: []mux.MiddlewareFunc{requestLogger}},
		{Path: "GET /api/albums/{slug}/layout", HandlerFunc: galleryController.AlbumLayout, Middlewares: []mux.MiddlewareFunc{requestLogger}},
		{Path: "GET /images/{key...}", HandlerFunc: galleryController.ServeImage},
		{Path: "GET /downloads/{filename}", HandlerFunc: galleryController.DownloadZip, Middlewares: []mux.MiddlewareFunc{requestLogger}},
		{Path: "GET /contact", HandlerFunc: galleryController.ContactPage, Middlewares: []mux.MiddlewareFunc{requestLogger}},
		{Path: "POST /contact", HandlerFunc: galleryController.ContactAction, Middlewares: []mux.MiddlewareFunc{requestLogger}},
	}

	routerConfig := mux.RouterConfig{
		Address:              config.Host,
		Debug:                Version == "development",
		ServeStaticContent:   true,
		StaticContentRootDir: "app",
		StaticContentPrefix:  "/static/",
		StaticFS:             appFS,
		HttpWriteTimeout:     60,
	}

	m := mux.SetupRouter(routerConfig, routes)
	httpServer, quit := mux.SetupServer(routerConfig, m)

	/*
	 * Start the archive cleanup job
	 */
	archiveService.StartCleanupRoutine(24 * time.Hour)
	defer archiveService.StopCleanupRoutine()

	/*
	 * Start the variant creator job
	 */
	setupVariantCreator(quit)

	/*
	 * Wait for graceful shutdown
	 */
	slog.Info("server started")

	<-quit

	cancel()
	mux.Shutdown(httpServer)
	slog.Info("server stopped")
}

func heartbeat(w http.ResponseWriter, r *http.Request) {
	httphelpers.TextOK(w, "OK")
}

func setupLogger(config *configuration.Config, version string) {
	level := slog.LevelDebug

	switch strings.ToLower(config.LogLevel) {
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	if version == "development" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})))

		return
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})))
}

func migrateDatabase() {
	var (
		err  error
		dirs []fs.DirEntry
		b    []byte
	)

	if dirs, err = sqlMigrationsFs.ReadDir("sql-migrations"); err != nil {
		panic(err)
	}

	for _, d := range dirs {
		if d.IsDir() {
			continue
		}

		if strings.HasPrefix(d.Name(), "commit") {
			if b, err = fs.ReadFile(sqlMigrationsFs, filepath.Join("sql-migrations", d.Name())); err != nil {
				panic(err)
			}

			if err = runSqlScript(b); err != nil {
				if !isIgnorableError(err) {
					panic(err)
				}
			}
		}
	}
}

func runSqlScript(script []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	_, err := db.Exec(ctx, string(script))
	return err
}

func isIgnorableError(err error) bool {
	if strings.Contains(err.Error(), "duplicate column") {
		return true
	}

	return false
}

func setupVariantCreator(quit chan os.Signal) {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		running := true

		runner := func() {
			defer func() {
				running = false
			}()

			variantCreatorService.CreateVariants()
			slog.Info("variant creator finished.")
		}

		runner()

		for {
			select {
			case <-quit:
				return

			case <-ticker.C:
				if running {
					slog.Info("variant creator already running. skipping...")
					continue
				}

				runner()
			}
		}
	}()
}
