package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hydauction-listing-service/internal/adapters/db"
	"hydauction-listing-service/internal/adapters/httpserver"
	"hydauction-listing-service/internal/adapters/redis"
	"hydauction-listing-service/internal/adapters/session"
	"hydauction-listing-service/internal/adapters/uploads"
	"hydauction-listing-service/internal/app"
	"hydauction-listing-service/internal/config"
	"hydauction-listing-service/internal/ports/outbound"
)

func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	initLogging(cfg)

	log.Info().Msg("Starting HydAuction Listing Service...")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection
	dbConn, err := db.NewConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbConn.Close()

	log.Info().Msg("Database connection established")

	// Create repositories
	repoFactory := db.NewRepositoryFactory(dbConn)
	userRepo := repoFactory.GetUserRepository()
	itemRepo := repoFactory.GetItemRepository()
	imageRepo := repoFactory.GetImageRepository()

	log.Info().Msg("Database repositories initialized")

	// Create session store. The in-memory store is the single-process
	// default; the redis store shares sessions across instances.
	var sessions outbound.SessionStore
	var sweeper *session.Sweeper

	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		redisClient := redis.NewClient(cfg)
		if err := redis.PingRedis(redisClient); err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		log.Info().Msg("Redis connection established")

		sessions = session.NewRedisStore(session.RedisStoreParams{
			Client: redisClient,
			MaxAge: cfg.Session.MaxAge,
			Logger: log.Logger,
		})
	default:
		memoryStore := session.NewMemoryStore()
		sessions = memoryStore

		sweeper = session.NewSweeper(session.SweeperParams{
			Store:    memoryStore,
			Interval: cfg.Session.SweepInterval,
			MaxAge:   cfg.Session.MaxAge,
			Logger:   log.Logger,
		})
		sweeper.Start()
		log.Info().Msg("Session sweeper started")
	}

	// Create upload store
	fileStore, err := uploads.NewLocalStore(uploads.LocalStoreParams{
		Dir:        cfg.Uploads.Dir,
		PublicPath: "public/uploads",
		Logger:     log.Logger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize upload store")
	}

	// Create business services
	authService := app.NewAuthService(app.AuthServiceParams{
		UserRepo: userRepo,
		Sessions: sessions,
		Logger:   log.Logger,
	})
	listingService := app.NewListingService(app.ListingServiceParams{
		ItemRepo:  itemRepo,
		ImageRepo: imageRepo,
		Files:     fileStore,
		Logger:    log.Logger,
	})

	log.Info().Msg("Business services initialized")

	server := httpserver.NewServer(httpserver.ServerParams{
		Config:         cfg,
		AuthService:    authService,
		ListingService: listingService,
		Sessions:       sessions,
		Logger:         log.Logger,
	})

	log.Info().Msg("HTTP server initialized")

	// Start HTTP server
	go func() {
		if err := server.Start(); err != nil {
			log.Error().Err(err).Msg("Failed to start HTTP server")
			cancel()
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case <-ctx.Done():
		log.Info().Msg("Context cancelled")
	}

	// Graceful shutdown
	log.Info().Msg("Starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if sweeper != nil {
		sweeper.Stop()
		log.Info().Msg("Session sweeper stopped")
	}

	fileStore.Stop()
	log.Info().Msg("Upload store drained")

	if err := server.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping HTTP server")
	}

	log.Info().Msg("Graceful shutdown completed")
}

func initLogging(cfg *config.Config) {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set log format
	if cfg.Logging.Format == "json" {
		// JSON format (default)
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		// Console format for development
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	// Set global logger
	zerolog.DefaultContextLogger = &log.Logger
}
