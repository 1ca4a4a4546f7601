package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/arzan03/BookNook/internal/config"
	"github.com/arzan03/BookNook/internal/db"
	"github.com/arzan03/BookNook/internal/db/memdb"
	"github.com/arzan03/BookNook/internal/handlers"
	"github.com/arzan03/BookNook/internal/mailer"
	"github.com/arzan03/BookNook/internal/middleware"
	"github.com/arzan03/BookNook/internal/ratelimit"
	"github.com/arzan03/BookNook/internal/services"
	"github.com/arzan03/BookNook/internal/storage"
	"github.com/arzan03/BookNook/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it, using environment variables")
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := utils.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	store, err := openStore(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("Failed to open database", zap.Error(err))
	}
	defer store.Close(context.Background())

	tokens := services.NewTokenIssuer(cfg.JWTSecret)

	var resetMailer services.ResetMailer = mailer.NewLogMailer(zlog)
	if cfg.MailEnabled() {
		resetMailer = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.EmailUser,
			Password: cfg.EmailPass,
		}, zlog)
	}

	var snapshots services.SnapshotStore
	if cfg.MinioEndpoint != "" {
		exportStore, err := storage.NewExportStore(ctx, storage.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		}, zlog)
		if err != nil {
			zlog.Warn("MinIO unavailable, collection export disabled", zap.Error(err))
		} else {
			snapshots = exportStore
		}
	}

	var limiter middleware.Limiter
	if cfg.RedisAddr != "" {
		fixedWindow, err := ratelimit.New(ratelimit.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			Prefix:   "booknook:ratelimit",
			Limit:    cfg.RateLimitPerMinute,
			Window:   time.Minute,
		})
		if err != nil {
			zlog.Fatal("Failed to configure rate limiter", zap.Error(err))
		}
		defer fixedWindow.Close()
		limiter = fixedWindow
	}

	// Initialize Fiber
	app := fiber.New(fiber.Config{AppName: "BookNook", Immutable: true})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: strings.Join([]string{fiber.HeaderOrigin, fiber.HeaderContentType, fiber.HeaderAccept, fiber.HeaderAuthorization}, ","),
	}))

	handlers.RegisterRoutes(app, handlers.Deps{
		Auth:     services.NewAuthService(store, store, tokens, resetMailer, cfg.FrontendURL, zlog),
		Books:    services.NewBookService(store, store),
		Comments: services.NewCommentService(store),
		Contacts: services.NewContactService(store),
		Exports:  services.NewExportService(store, snapshots),
		Tokens:   tokens,
		Limiter:  limiter,
		Ping:     store.Ping,
		Logger:   zlog,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		zlog.Info("Shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			zlog.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	zlog.Info("Server is running", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Error("Server stopped", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg *config.Config, zlog *zap.Logger) (db.Store, error) {
	if cfg.UseMemoryDB {
		zlog.Warn("Using in-memory database, data is lost on restart")
		return memdb.New(), nil
	}
	mongoStore, err := db.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDatabase, zlog)
	if err != nil {
		return nil, err
	}
	return mongoStore, nil
}
