package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"gracefm/config"
	"gracefm/core/wordpress"
	"gracefm/db"
	"gracefm/logger"
	"gracefm/repository"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(os.Getenv("LOG_LEVEL")),
		OutputPath: os.Getenv("LOG_FILE"),
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Redis only speeds up content listings; run without it if unreachable.
	if err := db.ConnectRedis(cfg); err != nil {
		logger.Warn("Redis unavailable, content cache disabled", logger.ErrorField(err))
	} else {
		defer db.CloseRedis()
	}

	aggregates, err := buildAggregateStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize aggregate store: %v", err)
	}

	cms := wordpress.NewClient(cfg.WPBaseURL)
	apiHandler := NewAPIHandler(aggregates, cms, cfg)

	router := mux.NewRouter()

	// CORS middleware.
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// Per-user sync endpoints.
	router.HandleFunc("/api/user/{identity}", apiHandler.IdentityMiddleware(apiHandler.GetUserHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/user/{identity}/sync", apiHandler.IdentityMiddleware(apiHandler.SyncUserHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/user/{identity}/listen", apiHandler.IdentityMiddleware(apiHandler.ListenUserHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/user/{identity}/wrapped", apiHandler.IdentityMiddleware(apiHandler.WrappedUserHandler)).Methods(http.MethodGet)

	// Normalized content endpoints.
	router.HandleFunc("/api/sermons", apiHandler.GetSermonsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/sermons/{id}", apiHandler.GetSermonHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/search", apiHandler.SearchSermonsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists", apiHandler.GetPlaylistsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/quotes", apiHandler.GetQuotesHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/quotes/daily", apiHandler.GetDailyQuoteHandler).Methods(http.MethodGet)

	server.Handler = router

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server listening", logger.String("addr", cfg.ServerAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-stop
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", logger.ErrorField(err))
	}
}

// buildAggregateStore selects the store backend: the single-document file
// store by default, MySQL when configured.
func buildAggregateStore(cfg *config.Config) (repository.AggregateRepository, error) {
	if cfg.StoreBackend == "mysql" {
		if err := db.ConnectGormDB(cfg); err != nil {
			return nil, err
		}
		return repository.NewGormStore(db.GormDB)
	}
	return repository.NewFileStore(cfg.UserDataFile)
}
