package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsquie/eighty-six/internal/auth"
	"github.com/jsquie/eighty-six/internal/config"
	"github.com/jsquie/eighty-six/internal/handler"
	"github.com/jsquie/eighty-six/internal/middleware"
	"github.com/jsquie/eighty-six/internal/repository"
	"github.com/jsquie/eighty-six/internal/router"
	"github.com/jsquie/eighty-six/internal/service"
	"github.com/jsquie/eighty-six/internal/session"
	"github.com/jsquie/eighty-six/internal/supabase"
	"github.com/jsquie/eighty-six/internal/web"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting 86 board...")

	// Load configuration. Missing connection secrets halt startup here,
	// before any query is attempted.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	log.Printf("Environment: %s", cfg.App.Environment)

	// Auth strategy
	mode, err := auth.ParseMode(cfg.Board.AuthMode)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	strategy := auth.ForMode(mode)
	log.Printf("Auth mode: %s", mode)

	// Backend client: one handle per process lifetime, shared by the item
	// repository and the auth reconciler.
	var backend *supabase.Client
	if cfg.NeedsSupabase() {
		backend, err = supabase.New(cfg.Supabase.URL, cfg.Supabase.Key)
		if err != nil {
			log.Fatalf("Failed to initialize backend client: %v", err)
		}
		log.Println("Backend client initialized")
	}

	// Initialize item repository based on config
	var itemRepo repository.ItemRepository
	switch cfg.Board.DBType {
	case "sqlite":
		sqliteRepo, err := repository.NewSQLiteItemRepository(cfg.Board.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite: %v", err)
		}
		itemRepo = sqliteRepo
		log.Println("SQLite item repository initialized")
	case "mysql":
		mysqlDB, err := sql.Open("mysql", cfg.Database.DSN())
		if err != nil {
			log.Fatalf("Failed to initialize MySQL: %v", err)
		}
		mysqlDB.SetMaxOpenConns(10)
		mysqlDB.SetMaxIdleConns(5)
		mysqlDB.SetConnMaxLifetime(5 * time.Minute)
		if err := mysqlDB.Ping(); err != nil {
			log.Fatalf("Failed to ping MySQL: %v", err)
		}
		itemRepo = repository.NewMySQLItemRepository(mysqlDB)
		log.Println("MySQL item repository initialized")
	default: // supabase
		itemRepo = repository.NewSupabaseItemRepository(backend, cfg.Supabase.Table)
		log.Println("Supabase item repository initialized")
	}
	defer itemRepo.Close()

	// Session store: memory for a single instance, Redis when configured.
	var sessionStore session.Store
	switch cfg.Session.StoreType {
	case "redis":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Session.RedisAddress(),
			Password: cfg.Session.RedisPassword,
			DB:       cfg.Session.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(ctx).Err()
		cancel()
		if err != nil {
			log.Fatalf("Failed to ping Redis: %v", err)
		}
		sessionStore = session.NewRedisStore(redisClient)
		log.Println("Redis session store initialized")
	default:
		sessionStore = session.NewMemoryStore()
		log.Println("Memory session store initialized")
	}
	defer sessionStore.Close()

	sessions := session.NewManager(sessionStore, cfg.Session.TTL, cfg.Board.CookieSecure)

	// Auth reconciler
	cookies := auth.NewCookieJar(cfg.Board.CookieTTL, cfg.Board.CookieSecure)
	reconciler := auth.NewReconciler(strategy, backend, cookies)

	// Services and renderer
	boardService := service.NewBoardService(itemRepo)

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to initialize renderer: %v", err)
	}

	var oauthURL string
	if strategy.AcceptsCode() {
		oauthURL = backend.AuthorizeURL(cfg.Board.OAuthProvider, cfg.Board.OAuthRedirectURL)
	}

	// Handlers
	healthHandler := handler.New(boardService, cfg.App.Version)
	boardHandler := handler.NewBoardHandler(boardService, reconciler, sessions, renderer, oauthURL)
	itemHandler := handler.NewItemHandler(boardService)

	// Middleware with injected dependencies (no globals)
	sessionMiddleware := middleware.Session(sessions)
	authMiddleware := middleware.NewAuthMiddleware(middleware.AuthConfig{
		Strategy: strategy,
	})

	// Create router
	r := router.New(router.Config{
		Handler:           healthHandler,
		BoardHandler:      boardHandler,
		ItemHandler:       itemHandler,
		SessionMiddleware: sessionMiddleware,
		AuthMiddleware:    authMiddleware,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
	fmt.Println("Goodbye!")
}
