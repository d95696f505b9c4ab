package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/attthulll/Learnsphere---Backend/backend/cache"
	"github.com/attthulll/Learnsphere---Backend/backend/config"
	"github.com/attthulll/Learnsphere---Backend/backend/database"
	"github.com/attthulll/Learnsphere---Backend/backend/middleware"
	"github.com/attthulll/Learnsphere---Backend/backend/repository/memory"
	"github.com/attthulll/Learnsphere---Backend/backend/repository/postgres"
	"github.com/attthulll/Learnsphere---Backend/backend/routes"
	"github.com/attthulll/Learnsphere---Backend/backend/services"
	"github.com/attthulll/Learnsphere---Backend/backend/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("load config: " + err.Error())
	}

	// Initialize logger
	logger := utils.InitLogger(cfg.Env)
	defer func() { _ = logger.Sync() }()

	// Initialize storage
	var (
		store services.Store
		db    *gorm.DB
	)
	switch cfg.Storage {
	case config.StorageMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		store = memory.New().Store()
	default:
		db, err = database.InitDB(cfg, logger)
		if err != nil {
			logger.Fatal("database init failed", zap.Error(err))
		}
		migrator, err := database.NewMigrator(db, logger)
		if err != nil {
			logger.Fatal("migrator init failed", zap.Error(err))
		}
		if err := migrator.Run(context.Background()); err != nil {
			logger.Fatal("migrations failed", zap.Error(err))
		}
		store = postgres.NewStore(db)
	}

	jwt := utils.NewJWTIssuer(cfg.JWTSecret, cfg.JWTTTL)
	opts := services.Options{
		Tokens:   jwt,
		CacheTTL: cfg.ReviewCacheTTL,
		Logger:   logger,
	}

	// Redis is optional; without it review summaries are read from storage every time.
	var redisCache *cache.Cache
	if cfg.RedisAddr != "" {
		redisCache, err = cache.NewCache(cache.DefaultConfig(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB))
		if err != nil {
			logger.Warn("redis unavailable, review cache disabled", zap.Error(err))
		} else {
			opts.Cache = redisCache
		}
	}

	svc := services.New(store, opts)

	created, err := svc.Auth.EnsureAdmin(context.Background(), cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		logger.Fatal("admin bootstrap failed", zap.Error(err))
	}
	if created {
		logger.Info("admin account created", zap.String("email", cfg.AdminEmail))
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "learnsphere",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  90 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			} else {
				logger.Error("unhandled error", zap.Error(err))
				err = fiber.ErrInternalServerError
			}
			return utils.Error(c, code, err)
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, svc, jwt)

	go func() {
		logger.Info("server starting", zap.String("port", cfg.ServerPort), zap.String("storage", cfg.Storage))
		if err := app.Listen(":" + cfg.ServerPort); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			logger.Error("redis close", zap.Error(err))
		}
	}
	if db != nil {
		if err := database.Close(db); err != nil {
			logger.Error("database close", zap.Error(err))
		}
	}
}
