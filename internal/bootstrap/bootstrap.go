package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/campuslink/internal/app/controllers"
	appMigrations "github.com/yigit/campuslink/internal/app/migrations"
	appRepos "github.com/yigit/campuslink/internal/app/repositories"
	appRoutes "github.com/yigit/campuslink/internal/app/routes"
	appServices "github.com/yigit/campuslink/internal/app/services"
	"github.com/yigit/campuslink/internal/config"
	"github.com/yigit/campuslink/internal/db"
	appMiddleware "github.com/yigit/campuslink/internal/middleware"
	"github.com/yigit/campuslink/internal/pkg/filestorage"
	"github.com/yigit/campuslink/internal/pkg/logger"
	"github.com/yigit/campuslink/internal/pkg/realtime"
	"github.com/yigit/campuslink/internal/pkg/socketio"
	"github.com/yigit/campuslink/internal/pkg/websocket"
)

const (
	configPath = "configs/config.yaml"
	envFile    = ".env"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos             *appRepos.Repositories
	FileStorage       *filestorage.LocalStorage
	Hub               *realtime.Hub
	Gateway           *realtime.Gateway
	AuthService       appServices.AuthService
	UserService       appServices.UserService
	MessageService    appServices.MessageService
	PostService       appServices.PostService
	AuthController    *appControllers.AuthController
	UserController    *appControllers.UserController
	MessageController *appControllers.MessageController
	PostController    *appControllers.PostController
	WebSocketHandler  *websocket.Handler
	SocketIOServer    *socketio.Server
	RateLimiter       appMiddleware.Limiter
	Logger            zerolog.Logger

	redisClient *redis.Client
	stopCleanup context.CancelFunc
}

// Close releases background resources owned by the dependencies.
func (d *Dependencies) Close() {
	if d.stopCleanup != nil {
		d.stopCleanup()
	}
	if d.SocketIOServer != nil {
		if err := d.SocketIOServer.Close(); err != nil {
			d.Logger.Error().Err(err).Msg("socket.io server close error")
		}
	}
	if d.redisClient != nil {
		if err := d.redisClient.Close(); err != nil {
			d.Logger.Error().Err(err).Msg("Redis client close error")
		}
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath, envFile)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.ConfigFromStrings(cfg.Logging.Level, cfg.Logging.Format))
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsPath
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// BuildDependencies initializes application repositories, services, controllers and
// the real-time transports.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.UploadsURL())
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	// Services
	deps.Hub = realtime.NewHub(lgr)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, lgr)
	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, lgr)
	deps.MessageService = appServices.NewMessageService(deps.Repos.MessageRepository, deps.Hub, lgr)
	deps.PostService = appServices.NewPostService(
		deps.Repos.CollaborationPostRepository,
		deps.Repos.AlumniPostRepository,
		deps.FileStorage,
		cfg.Server.MaxUploadSize,
		lgr,
	)

	// Real-time transports share one gateway and hub.
	deps.Gateway = realtime.NewGateway(deps.Hub, deps.UserService, deps.MessageService, lgr)
	if cfg.Realtime.WebSocketEnabled {
		deps.WebSocketHandler = websocket.NewHandler(deps.Gateway, cfg.CORS.AllowedOrigins, lgr)
	}
	if cfg.Realtime.SocketIOEnabled {
		deps.SocketIOServer = socketio.NewServer(deps.Gateway, websocket.CheckOrigin(cfg.CORS.AllowedOrigins), lgr)
		deps.SocketIOServer.Start()
	}

	// Controllers
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.UserController = appControllers.NewUserController(deps.UserService, lgr)
	deps.MessageController = appControllers.NewMessageController(deps.MessageService, lgr)
	deps.PostController = appControllers.NewPostController(deps.PostService, lgr)

	if cfg.RateLimit.Enabled {
		deps.RateLimiter = deps.buildRateLimiter(cfg)
	}

	return deps, nil
}

// buildRateLimiter prefers a shared Redis counter and falls back to per-process buckets
// when Redis is not configured or unreachable.
func (d *Dependencies) buildRateLimiter(cfg *config.Config) appMiddleware.Limiter {
	rl := cfg.RateLimit

	if rl.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     rl.RedisAddr,
			Password: rl.RedisPassword,
			DB:       rl.RedisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			d.Logger.Warn().Err(err).Str("addr", rl.RedisAddr).Msg("Redis unavailable, using in-process rate limiter")
			_ = client.Close()
		} else {
			d.Logger.Info().Str("addr", rl.RedisAddr).Msg("Using Redis rate limiter")
			d.redisClient = client
			return appMiddleware.NewRedisRateLimiter(client, rl.RequestsPerMinute, time.Minute)
		}
	}

	limiter := appMiddleware.NewIPRateLimiter(rl.RequestsPerMinute, rl.Burst, rl.IdleTTL)
	ctx, cancel := context.WithCancel(context.Background())
	d.stopCleanup = cancel
	go limiter.RunCleanup(ctx, time.Minute)
	return limiter
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(appMiddleware.CORS(cfg.CORS.AllowedOrigins))
	router.MaxMultipartMemory = cfg.Server.MaxUploadSize

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.MessageController,
		deps.PostController,
		deps.RateLimiter,
	)

	if deps.WebSocketHandler != nil {
		router.GET("/ws", deps.WebSocketHandler.HandleConnection)
	}
	if deps.SocketIOServer != nil {
		deps.SocketIOServer.Register(router)
	}

	// Serve stored images
	router.Static("/uploads", cfg.Server.StoragePath)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
