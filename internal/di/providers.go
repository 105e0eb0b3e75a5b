package di

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/osama171998/minna-app/internal/app"
	"github.com/osama171998/minna-app/internal/config"
	"github.com/osama171998/minna-app/internal/database"
	"github.com/osama171998/minna-app/internal/health"
	"github.com/osama171998/minna-app/internal/http/handler"
	"github.com/osama171998/minna-app/internal/http/middleware"
	"github.com/osama171998/minna-app/internal/http/router"
	"github.com/osama171998/minna-app/internal/observability"
	"github.com/osama171998/minna-app/internal/repository"
	"github.com/osama171998/minna-app/internal/security"
	"github.com/osama171998/minna-app/internal/service"
)

var ConfigSet = wire.NewSet(config.Load)

var ObservabilitySet = wire.NewSet(
	provideObservabilityRuntime,
	provideAppLogger,
)

var RuntimeInfraSet = wire.NewSet(
	provideMongoClient,
	provideMongoDatabase,
	provideRedisClient,
	provideReadinessProbeRunner,
)

var RepositorySet = wire.NewSet(
	repository.NewUserRepository,
)

var SecuritySet = wire.NewSet(
	provideJWTManager,
	providePasswordHasher,
)

var ServiceSet = wire.NewSet(
	provideAuthService,
	service.NewUserService,
	service.NewInstagramService,
	service.NewAnalysisService,
	wire.Bind(new(service.AuthServiceInterface), new(*service.AuthService)),
	wire.Bind(new(service.UserServiceInterface), new(*service.UserService)),
	wire.Bind(new(service.InstagramServiceInterface), new(*service.InstagramService)),
	wire.Bind(new(service.AnalysisServiceInterface), new(*service.AnalysisService)),
)

var HTTPSet = wire.NewSet(
	handler.NewAuthHandler,
	handler.NewUserHandler,
	handler.NewInstagramHandler,
	handler.NewAnalysisHandler,
	provideRouterDependencies,
	router.New,
	provideHTTPServer,
)

var AppSet = wire.NewSet(provideApp)

func provideObservabilityRuntime(cfg *config.Config) (*observability.Runtime, error) {
	bootstrapLogger := observability.NewBootstrapLogger(cfg)
	return observability.InitRuntime(context.Background(), cfg, bootstrapLogger)
}

func provideAppLogger(cfg *config.Config, runtime *observability.Runtime) *slog.Logger {
	return observability.InitLogger(cfg, runtime.LoggerProvider)
}

func provideMongoClient(cfg *config.Config, logger *slog.Logger) (*mongo.Client, error) {
	return database.Connect(context.Background(), cfg, logger)
}

func provideMongoDatabase(client *mongo.Client, cfg *config.Config, logger *slog.Logger) *mongo.Database {
	db := database.Database(client, cfg)
	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		logger.Error("failed to ensure mongodb indexes", "error", err)
	}
	return db
}

func provideRedisClient(cfg *config.Config) redis.UniversalClient {
	if !cfg.RateLimitRedisEnabled {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

func provideJWTManager(cfg *config.Config) (*security.JWTManager, error) {
	return security.NewJWTManager(cfg.JWTSecret, cfg.JWTAlgorithm)
}

func providePasswordHasher(cfg *config.Config) (*security.PasswordHasher, error) {
	return security.NewPasswordHasher(cfg.BcryptCost)
}

func provideAuthService(
	userRepo repository.UserRepository,
	hasher *security.PasswordHasher,
	jwtMgr *security.JWTManager,
	cfg *config.Config,
) *service.AuthService {
	return service.NewAuthService(userRepo, hasher, jwtMgr, cfg.AccessTokenTTL)
}

func provideAuthRateLimiter(cfg *config.Config, redisClient redis.UniversalClient) *middleware.RateLimiter {
	if cfg.RateLimitRedisEnabled && redisClient != nil {
		redisLimiter := middleware.NewRedisFixedWindowLimiter(redisClient, cfg.RateLimitRedisPrefix+":auth")
		return middleware.NewDistributedRateLimiter(redisLimiter, cfg.AuthRateLimitPerMin, time.Minute, middleware.FailClosed, "auth")
	}
	return middleware.NewDistributedRateLimiter(middleware.NewLocalFixedWindowLimiter(), cfg.AuthRateLimitPerMin, time.Minute, middleware.FailClosed, "auth")
}

func provideAPIRateLimiter(cfg *config.Config, redisClient redis.UniversalClient) *middleware.RateLimiter {
	if cfg.RateLimitRedisEnabled && redisClient != nil {
		redisLimiter := middleware.NewRedisFixedWindowLimiter(redisClient, cfg.RateLimitRedisPrefix+":api")
		return middleware.NewDistributedRateLimiter(redisLimiter, cfg.APIRateLimitPerMin, time.Minute, middleware.FailOpen, "api")
	}
	return middleware.NewDistributedRateLimiter(middleware.NewLocalFixedWindowLimiter(), cfg.APIRateLimitPerMin, time.Minute, middleware.FailOpen, "api")
}

func provideRouterDependencies(
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	instagramHandler *handler.InstagramHandler,
	analysisHandler *handler.AnalysisHandler,
	authSvc service.AuthServiceInterface,
	redisClient redis.UniversalClient,
	readiness *health.ProbeRunner,
) router.Dependencies {
	return router.Dependencies{
		Config:           cfg,
		AuthHandler:      authHandler,
		UserHandler:      userHandler,
		InstagramHandler: instagramHandler,
		AnalysisHandler:  analysisHandler,
		AuthService:      authSvc,
		AuthRateLimiter:  provideAuthRateLimiter(cfg, redisClient),
		APIRateLimiter:   provideAPIRateLimiter(cfg, redisClient),
		Readiness:        readiness,
	}
}

func provideHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           h,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func provideReadinessProbeRunner(cfg *config.Config, client *mongo.Client, redisClient redis.UniversalClient) *health.ProbeRunner {
	checkers := make([]health.Checker, 0, 2)
	if c := health.NewMongoChecker(client); c != nil {
		checkers = append(checkers, c)
	}
	if cfg.RateLimitRedisEnabled {
		if c := health.NewRedisChecker(redisClient); c != nil {
			checkers = append(checkers, c)
		}
	}
	return health.NewProbeRunner(cfg.ReadinessProbeTimeout, cfg.ServerStartGracePeriod, checkers...)
}

func provideApp(
	cfg *config.Config,
	logger *slog.Logger,
	server *http.Server,
	runtime *observability.Runtime,
	mongoClient *mongo.Client,
	redisClient redis.UniversalClient,
	readiness *health.ProbeRunner,
) *app.App {
	return app.New(cfg, logger, server, runtime, mongoClient, redisClient, readiness)
}
