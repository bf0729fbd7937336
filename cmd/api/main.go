package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"surveyapi/docs"
	"surveyapi/internal/cache"
	"surveyapi/internal/config"
	"surveyapi/internal/database"
	"surveyapi/internal/database/migration"
	handlers "surveyapi/internal/http/handler"
	"surveyapi/internal/http/middleware"
	"surveyapi/internal/license"
	"surveyapi/internal/logger"
	tracing "surveyapi/internal/otel"
	"surveyapi/internal/recaptcha"
	"surveyapi/internal/repository"
	"surveyapi/internal/repository/postgres"
	"surveyapi/internal/service"
	"surveyapi/internal/storage"
)

// @title Survey API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Error().Err(err).Msg("tracing shutdown failed")
		}
	}()

	db, err := database.NewPostgres(cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	objStore, err := storage.NewMinIO(cfg.MinIO, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize object storage")
	}

	// Repositories
	surveyRepo := postgres.NewSurveyPostgres(db)
	segmentRepo := postgres.NewSegmentPostgres(db)
	environmentRepo := postgres.NewEnvironmentPostgres(db)
	responseRepo := postgres.NewResponsePostgres(db)

	var orgRepo repository.OrganizationRepository = postgres.NewOrganizationPostgres(db)
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		orgRepo = cache.NewBillingCache(cache.NewRedisStore(rdb), orgRepo, cfg.Billing.CacheTTL, log)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("billing cache enabled")
	}

	// Services
	validity := service.NewResponseValidator(
		orgRepo,
		license.NewChecker(cfg.Recaptcha, cfg.Billing),
		recaptcha.New(cfg.Recaptcha, log),
		cfg.EncryptionKey,
		log,
	)
	svcs := handlers.Services{
		Surveys: service.NewSurveyService(surveyRepo, segmentRepo, environmentRepo, service.SurveyOptions{
			PublicURL:     cfg.PublicURL,
			EncryptionKey: cfg.EncryptionKey,
		}, log),
		Responses: service.NewResponseService(surveyRepo, responseRepo, validity, log),
		Segments:  service.NewSegmentService(surveyRepo, segmentRepo, log),
		Uploads: service.NewUploadService(objStore, surveyRepo, service.UploadOptions{
			MaxSizeBytes: cfg.Upload.MaxSizeBytes,
			URLExpiry:    cfg.Upload.URLExpiry,
		}, log),
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit)
	go limiter.Run(ctx, 10*time.Minute)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(log),
		// Multipart overhead on top of the largest accepted upload.
		BodyLimit: int(cfg.Upload.MaxSizeBytes) + 1<<20,
	})

	// Register global middleware. Prometheus wraps Logger so both see the rendered status.
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(promMiddleware.Handler())
	app.Use(middleware.Logger(log))

	handlers.RegisterRoutes(app, db, svcs, handlers.RouteOptions{
		Auth:        cfg.Auth,
		RateLimiter: limiter,
		Metrics:     reg,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("server listening")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
