package router

import (
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/reloc/community-backend/internal/fanout"
	"github.com/reloc/community-backend/internal/handlers"
	"github.com/reloc/community-backend/internal/metrics"
	"github.com/reloc/community-backend/internal/middleware"
	"github.com/reloc/community-backend/internal/models"
	"github.com/reloc/community-backend/internal/repositories"
	"github.com/reloc/community-backend/internal/services"
	"github.com/reloc/community-backend/pkg/config"
)

// Dependencies are the process-wide handles the routes are built from.
type Dependencies struct {
	Config *config.Config
	DB     *config.DB
	Auth   middleware.TokenVerifier // nil disables ID-token verification
	Logger zerolog.Logger
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, logger zerolog.Logger) {
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			metrics.HTTPRequestDuration.
				WithLabelValues(v.Method, c.Path(), strconv.Itoa(v.Status)).
				Observe(v.Latency.Seconds())

			event := logger.Info()
			if v.Error != nil {
				event = logger.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// userRepository wraps base with the Redis cache when a client is configured
// and ttl is positive. Redis treats a zero expiration as "keep forever".
func userRepository(base repositories.UserRepository, client *redis.Client, ttl time.Duration, logger zerolog.Logger) repositories.UserRepository {
	if client == nil {
		return base
	}
	if ttl <= 0 {
		logger.Info().Msg("USER_CACHE_TTL is zero, Redis user cache disabled")
		return base
	}
	logger.Info().Dur("ttl", ttl).Msg("user lookups cached in Redis")
	return repositories.NewCachedUserRepository(base, client, ttl, logger)
}

// SetupRoutes migrates the schema, wires repositories, services and handlers,
// and returns the fan-out queue the caller must Run. The queue is nil when
// fan-out runs inline (FANOUT_WORKERS=0).
func SetupRoutes(e *echo.Echo, deps Dependencies) (*fanout.Queue, error) {
	pgdb := deps.DB.Postgres
	logger := deps.Logger

	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.Notification{},
		&models.NotificationSettings{},
		&models.Comment{},
		&models.Like{},
		&models.SavedPost{},
	)
	if err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	logger.Info().Msg("PostgreSQL auto-migrations completed")

	// --- Repositories ---
	userRepo := userRepository(repositories.NewPostgresUserRepository(pgdb), deps.DB.Redis, deps.Config.UserCacheTTL, logger)
	postRepo := repositories.NewMongoPostRepository(deps.DB.MongoDB)
	messageRepo := repositories.NewPostgresMessageRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	settingsRepo := repositories.NewPostgresNotificationSettingsRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	savedPostRepo := repositories.NewPostgresSavedPostRepository(pgdb)

	// --- Fan-out ---
	fanoutLogger := logger.With().Str("component", "fanout").Logger()
	dispatcher := fanout.NewDispatcher(notificationRepo, userRepo, postRepo, fanoutLogger)
	var (
		publisher fanout.Publisher
		queue     *fanout.Queue
	)
	if deps.Config.FanoutWorkers > 0 {
		queue = fanout.NewQueue(dispatcher, deps.Config.FanoutQueueSize, fanoutLogger)
		publisher = queue
	} else {
		publisher = fanout.NewInline(dispatcher, fanoutLogger)
	}

	// --- Services ---
	messageService := services.NewMessageService(messageRepo, userRepo, postRepo, publisher, logger)
	notificationService := services.NewNotificationService(notificationRepo, settingsRepo)
	userService := services.NewUserService(userRepo)
	postService := services.NewPostService(postRepo, likeRepo, savedPostRepo, publisher)
	commentService := services.NewCommentService(commentRepo, postRepo, publisher, logger)

	e.GET("/health", handlers.NewHealthHandler(deps.DB).HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	if deps.Auth != nil {
		api.Use(middleware.FirebaseAuthMiddleware(deps.Auth, logger))
		logger.Info().Msg("Firebase authentication applied to /api")
	} else {
		logger.Warn().Msg("FIREBASE_CREDENTIALS_PATH not set, /api is unauthenticated")
	}

	handlers.NewUserHandler(userService).RegisterUserRoutes(api)
	handlers.NewPostHandler(postService).RegisterPostRoutes(api)
	handlers.NewCommentHandler(commentService).RegisterCommentRoutes(api)
	handlers.NewMessageHandler(messageService).RegisterMessageRoutes(api)
	handlers.NewNotificationHandler(notificationService).RegisterNotificationRoutes(api)

	logger.Info().Int("routes", len(e.Routes())).Msg("all routes configured")
	return queue, nil
}
