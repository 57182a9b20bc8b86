// @title IQ Admin API
// @version 1.0
// @description Admin API for managing IQ tests and bulk-importing their questions from CSV files.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"iq-admin/internal/adapter"
	"iq-admin/internal/adapter/iqbackend"
	"iq-admin/internal/cache"
	"iq-admin/internal/config"
	"iq-admin/internal/domain"
	"iq-admin/internal/handler"
	"iq-admin/internal/logger"
	"iq-admin/internal/middleware"
	"iq-admin/internal/service"
	"iq-admin/internal/validation"

	_ "iq-admin/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// The test-list cache is optional; without Redis every read goes to the backend.
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("RedisCacheAdapter initialized", zap.String("address", cfg.Redis.Address))
	} else {
		appLogger.Info("Redis address not set, test list cache disabled")
	}

	backend, err := iqbackend.NewClient(cfg.Backend)
	if err != nil {
		appLogger.Fatal("Failed to create backend client", zap.Error(err))
	}
	appLogger.Info("Backend client initialized",
		zap.String("base_url", cfg.Backend.BaseURL),
		zap.Duration("timeout", cfg.Backend.Timeout))

	validator := validation.NewValidator()
	testListTTL := cfg.ParseTTLStringOrDefault(cfg.CacheTTLs.TestList, service.DefaultTestListTTL)
	catalog := service.NewTestCatalog(backend, cacheAdapter, testListTTL)
	questionService := service.NewQuestionService(backend, backend, validator)
	sessions := service.NewSessionManager(catalog, backend, validator, cfg.Import, cfg.Backend.Timeout)

	authService := service.NewAuthService(cfg.Auth.JWTSecret)
	if authService == nil {
		appLogger.Warn("auth.jwt_secret is empty, operator authentication is disabled")
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", handler.NewHealthHandler(cacheAdapter).Health)

	handler.RegisterRoutes(app, handler.Handlers{
		Imports:   handler.NewImportHandler(sessions),
		Tests:     handler.NewTestHandler(catalog, questionService, validator),
		Questions: handler.NewQuestionHandler(questionService),
	}, authService)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		return app.Listen(":" + strconv.Itoa(cfg.Server.Port))
	})
	g.Go(func() error {
		return sessions.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Fatal("Server stopped with error", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
