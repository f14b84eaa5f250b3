package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Almas2004/led/internal/cache"
	"github.com/Almas2004/led/internal/config"
	"github.com/Almas2004/led/internal/database"
	"github.com/Almas2004/led/internal/handler"
	"github.com/Almas2004/led/internal/middleware"
	"github.com/Almas2004/led/internal/models"
	"github.com/Almas2004/led/internal/repository"
	"github.com/Almas2004/led/internal/repository/memory"
	"github.com/Almas2004/led/internal/service"
	"github.com/Almas2004/led/internal/sse"
	"github.com/Almas2004/led/pkg/telegram"
)

// stores bundles the persistence chosen by STORAGE.
type stores struct {
	products  service.ContentStore[models.Product]
	solutions service.ContentStore[models.Solution]
	cases     service.ContentStore[models.Case]
	leads     service.LeadStore
	db        handler.Pinger
}

// main is the entrypoint for the LED content API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Str("storage", cfg.Storage).Msg("starting led content api")

	// 3. Open storage
	st, closeStorage, err := openStorage(cfg)
	if err != nil {
		log.Error().Err(err).Msg("storage initialization failed")
		fmt.Fprintf(os.Stderr, "storage initialization failed: %v\n", err)
		os.Exit(1)
	}
	defer closeStorage()

	// 3a. Connect to Redis when enabled
	var collections service.CollectionCache = service.NopCache{}
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable - collection cache disabled")
		} else {
			defer redisClient.Close()
			collections = cache.NewCollectionCache(redisClient, cfg.Redis.TTL)
			log.Info().Msg("redis connected successfully")
		}
	}

	// 4. Lead notifiers
	hub := sse.NewHub()
	notifiers := []service.LeadNotifier{sse.NewHubNotifier(hub)}
	if cfg.Telegram.Enabled() {
		tg := telegram.NewClient(telegram.Config{
			BaseURL:  cfg.Telegram.APIURL,
			BotToken: cfg.Telegram.BotToken,
			ChatID:   cfg.Telegram.ChatID,
			Debug:    cfg.Env != "production",
		})
		notifiers = append(notifiers, telegram.NewLeadNotifier(tg))
		log.Info().Msg("telegram lead notifications enabled")
	}

	// 5. Initialize services
	productSvc := service.NewContentService[models.Product]("products", st.products, collections)
	solutionSvc := service.NewContentService[models.Solution]("solutions", st.solutions, collections)
	caseSvc := service.NewContentService[models.Case]("cases", st.cases, collections)
	leadSvc := service.NewLeadService(st.leads, notifiers...)

	// 6. Initialize handlers
	handlers := &handler.Handlers{
		Health:    handler.NewHealthHandler(cfg.Storage, st.db, cfg.Health.Timeout),
		Products:  handler.NewContentHandler(productSvc),
		Solutions: handler.NewContentHandler(solutionSvc),
		Cases:     handler.NewContentHandler(caseSvc),
		Leads:     handler.NewLeadHandler(leadSvc),
		Events:    handler.NewSSEHandler(hub),
	}

	// 7. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORSAllowedHosts...))
	router.Use(middleware.LoggingMiddleware())
	handler.RegisterRoutes(router, handlers)

	// 8. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 9. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 10. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// openStorage connects the configured backend and runs migrations for
// PostgreSQL. The returned func releases it.
func openStorage(cfg *config.Config) (*stores, func(), error) {
	if cfg.Storage == config.StorageMemory {
		log.Warn().Msg("using in-memory storage - data is lost on restart")
		return &stores{
			products:  memory.NewProductRepository(),
			solutions: memory.NewSolutionRepository(),
			cases:     memory.NewCaseRepository(),
			leads:     memory.NewLeadRepository(),
		}, func() {}, nil
	}

	db, err := database.Connect(&cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := database.Migrate(db.DB, cfg.DB.MigrationsDir); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migration failed: %w", err)
	}
	log.Info().Msg("migrations completed successfully")

	return postgresStores(db), func() { db.Close() }, nil
}

func postgresStores(db *sqlx.DB) *stores {
	return &stores{
		products:  repository.NewProductRepository(db),
		solutions: repository.NewSolutionRepository(db),
		cases:     repository.NewCaseRepository(db),
		leads:     repository.NewLeadRepository(db),
		db:        db,
	}
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
