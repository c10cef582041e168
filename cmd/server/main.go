package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/studyscope/studyscope/internal/apperr"
	"github.com/studyscope/studyscope/internal/blocklist"
	"github.com/studyscope/studyscope/internal/config"
	"github.com/studyscope/studyscope/internal/db"
	"github.com/studyscope/studyscope/internal/events"
	"github.com/studyscope/studyscope/internal/httpserver"
	"github.com/studyscope/studyscope/internal/logging"
	"github.com/studyscope/studyscope/internal/middleware"
	"github.com/studyscope/studyscope/internal/models"
	"github.com/studyscope/studyscope/internal/repo"
	"github.com/studyscope/studyscope/internal/search"
	"github.com/studyscope/studyscope/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.ServiceName)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := gdb.AutoMigrate(&models.User{}, &models.Book{}, &models.Tag{}, &models.Review{}); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		cancel()
		log.Fatalf("redis init error: %v", err)
	}
	cancel()
	store := blocklist.NewRedisStore(redisClient)

	producer := events.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	var bookIndex *search.BookIndex
	if cfg.ESURL != "" {
		esClient, err := search.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		bookIndex = search.NewBookIndex(esClient)
	}

	gormRepo := &repo.GormRepo{DB: gdb}

	authSvc := &service.AuthService{
		Repo:       gormRepo,
		Blocklist:  store,
		Producer:   producer,
		Secret:     cfg.JWTSecret,
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	}
	bookSvc := &service.BookService{Repo: gormRepo, Index: bookIndex, Producer: producer}
	tagSvc := &service.TagService{Repo: gormRepo}
	reviewSvc := &service.ReviewService{Repo: gormRepo}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.HTTPErrorHandler = apperr.HTTPErrorHandler
	e.Use(middleware.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		Auth:     &httpserver.AuthHTTP{Svc: authSvc},
		Books:    &httpserver.BookHTTP{Svc: bookSvc},
		Tags:     &httpserver.TagHTTP{Svc: tagSvc},
		Reviews:  &httpserver.ReviewHTTP{Svc: reviewSvc},
		Guard:    middleware.NewTokenGuard(cfg.JWTSecret, store),
		Resolver: &middleware.IdentityResolver{Repo: gormRepo},
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("echo shutdown: %v", err)
	}
}
