// @title Geodata Service API
// @version 1.0
// @description Shapefile layer management for administrators and public health facility lookup.
// @BasePath /api
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Access token from /auth/login, sent as "Bearer <token>".
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	_ "geodata-service/docs"
	"geodata-service/internal/auth"
	"geodata-service/internal/config"
	"geodata-service/internal/handlers"
	"geodata-service/internal/logger"
	"geodata-service/internal/metrics"
	"geodata-service/internal/models"
	"geodata-service/internal/repository"
	"geodata-service/internal/services"
	"geodata-service/internal/storage"
)

func main() {
	root := &cobra.Command{
		Use:           "geodata",
		Short:         "Shapefile layer management and health facility lookup service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Enable PostGIS and migrate the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lg := InitConfig()
			db := ConnectDatabase(cfg, lg)
			MigrateDatabase(db, lg)
			lg.Info().Msg("migrations applied")
			return nil
		},
	})

	var adminUser, adminEmail, adminPassword string
	createAdmin := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a staff superuser unless it already exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lg := InitConfig()
			db := ConnectDatabase(cfg, lg)
			MigrateDatabase(db, lg)

			if cfg.StorageBackend == config.StorageBackendDisk {
				if err := os.MkdirAll(cfg.MediaRoot, 0o755); err != nil {
					return err
				}
			}

			svc := services.NewAuthService(repository.NewUserRepository(db), nil, nil, nil)
			created, err := svc.EnsureAdmin(cmd.Context(), adminUser, adminEmail, adminPassword)
			if err != nil {
				return err
			}
			if created {
				lg.Info().Str("username", adminUser).Msg("admin user created")
			} else {
				lg.Info().Str("username", adminUser).Msg("admin user already exists")
			}
			return nil
		},
	}
	createAdmin.Flags().StringVar(&adminUser, "username", "admin", "admin username")
	createAdmin.Flags().StringVar(&adminEmail, "email", "admin@example.com", "admin email")
	createAdmin.Flags().StringVar(&adminPassword, "password", "admin123", "admin password")
	root.AddCommand(createAdmin)

	var facilitiesFile string
	var clearFacilities bool
	loadFacilities := &cobra.Command{
		Use:   "load-facilities",
		Short: "Import health facilities from a GeoJSON FeatureCollection",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lg := InitConfig()
			db := ConnectDatabase(cfg, lg)

			f, err := os.Open(facilitiesFile)
			if err != nil {
				return err
			}
			defer f.Close()

			ctx := logger.WithLogger(cmd.Context(), lg)
			importer := services.NewFacilityImporter(repository.NewFacilityRepository(db))
			summary, err := importer.Import(ctx, f, clearFacilities)
			if err != nil {
				return err
			}
			lg.Info().
				Int("total", summary.Total).
				Int("created", summary.Created).
				Int("updated", summary.Updated).
				Int("skipped", summary.Skipped).
				Msg("facilities loaded")
			return nil
		},
	}
	loadFacilities.Flags().StringVar(&facilitiesFile, "file", "", "path to the GeoJSON file")
	loadFacilities.Flags().BoolVar(&clearFacilities, "clear", false, "delete existing facilities first")
	_ = loadFacilities.MarkFlagRequired("file")
	root.AddCommand(loadFacilities)

	if err := root.ExecuteContext(context.Background()); err != nil {
		logger.L().Fatal().Err(err).Msg("command failed")
	}
}

func serve(parent context.Context) error {
	cfg, lg := InitConfig()
	db := ConnectDatabase(cfg, lg)
	MigrateDatabase(db, lg)

	ctx, stop := signal.NotifyContext(logger.WithLogger(parent, lg), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.NewMetrics(prometheus.DefaultRegisterer)
	store := storage.NewInstrumentedStore(InitFileStore(ctx, cfg, lg), m)
	revoked := InitRevocationStore(ctx, cfg, lg)

	tokens, err := auth.NewJWTManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		return err
	}

	authService := services.NewAuthService(repository.NewUserRepository(db), tokens, revoked, m)
	layerService := services.NewLayerService(repository.NewLayerRepository(db), store, m)
	facilityService := services.NewFacilityService(repository.NewFacilityRepository(db), m)

	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.MaxUploadMB * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Use(func(c *fiber.Ctx) error {
		c.SetUserContext(logger.WithLogger(c.UserContext(), lg))
		return c.Next()
	})
	handlers.Register(app, handlers.Services{
		Auth:       authService,
		Layers:     layerService,
		Facilities: facilityService,
		Metrics:    m,
		Gatherer:   prometheus.DefaultGatherer,
	})

	for _, r := range app.GetRoutes(true) {
		lg.Debug().Str("method", r.Method).Str("path", r.Path).Msg("route registered")
	}

	go func() {
		<-ctx.Done()
		lg.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			lg.Error().Err(err).Msg("shutdown failed")
		}
	}()

	lg.Info().Str("port", cfg.AppPort).Str("storage", cfg.StorageBackend).Msg("server listening")
	return app.Listen(":" + cfg.AppPort)
}

func InitConfig() (*config.Config, zerolog.Logger) {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.L().Fatal().Err(err).Msg("config error")
	}
	lg := logger.Build(logger.Config{Level: cfg.LogLevel, Console: cfg.LogConsole, Component: "geodata"}, os.Stdout)
	return cfg, lg
}

func ConnectDatabase(cfg *config.Config, lg zerolog.Logger) *gorm.DB {
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		lg.Fatal().Err(err).Msg("database connection failed")
	}
	return db
}

func MigrateDatabase(db *gorm.DB, lg zerolog.Logger) {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS postgis").Error; err != nil {
		lg.Fatal().Err(err).Msg("enabling postgis failed")
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		lg.Fatal().Err(err).Msg("database migration failed")
	}
}

func InitFileStore(ctx context.Context, cfg *config.Config, lg zerolog.Logger) storage.FileStore {
	if cfg.StorageBackend == config.StorageBackendMinio {
		client, err := storage.NewMinioClient(ctx, cfg)
		if err != nil {
			lg.Fatal().Err(err).Msg("MinIO client initialization failed")
		}
		return storage.NewMinioStore(client, cfg.MinioBucket)
	}
	store, err := storage.NewDiskStore(cfg.MediaRoot)
	if err != nil {
		lg.Fatal().Err(err).Msg("media root initialization failed")
	}
	return store
}

func InitRevocationStore(ctx context.Context, cfg *config.Config, lg zerolog.Logger) auth.RevocationStore {
	addr := cfg.RedisAddr()
	if addr == "" {
		lg.Warn().Msg("REDIS_HOST not set, refresh token revocations are kept in memory")
		return auth.NewMemoryRevocationStore(time.Minute)
	}
	client, err := storage.NewRedisClient(ctx, addr, cfg.RedisPassword)
	if err != nil {
		lg.Fatal().Err(err).Msg("redis connection failed")
	}
	return auth.NewRedisRevocationStore(client)
}
