package container

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/villagehs/village-backend/internal/config"
	"github.com/villagehs/village-backend/internal/delivery/http"
	"github.com/villagehs/village-backend/internal/delivery/http/handler"
	"github.com/villagehs/village-backend/internal/delivery/http/middleware"
	"github.com/villagehs/village-backend/internal/infrastructure/database"
	"github.com/villagehs/village-backend/internal/infrastructure/gemini"
	"github.com/villagehs/village-backend/internal/infrastructure/poller"
	"github.com/villagehs/village-backend/internal/infrastructure/server"
	"github.com/villagehs/village-backend/internal/repository/postgres"
	"github.com/villagehs/village-backend/internal/repository/redisstore"
	"github.com/villagehs/village-backend/internal/usecase/auth"
	"github.com/villagehs/village-backend/internal/usecase/connection"
	"github.com/villagehs/village-backend/internal/usecase/discovery"
	"github.com/villagehs/village-backend/internal/usecase/event"
	"github.com/villagehs/village-backend/internal/usecase/message"
	"github.com/villagehs/village-backend/internal/usecase/prefs"
	"github.com/villagehs/village-backend/internal/usecase/profile"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Poller *poller.Poller
	Gemini *gemini.GeminiClient
	Log    *slog.Logger
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, log *slog.Logger) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize Gemini Client
	geminiClient, err := gemini.NewGeminiClient(cfg.GeminiAPIKey)
	if err != nil {
		log.Warn("failed to initialize gemini client, bio suggestions use fallbacks", "error", err)
		// Don't fail, just continue without AI features
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	connectionRepo := postgres.NewConnectionRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	rsvpRepo := postgres.NewRSVPRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	prefsRepo := redisstore.NewPrefsStore(redisClient, log)

	// Initialize use cases
	authUseCase := auth.NewAuthUseCase(
		userRepo,
		profileRepo,
		sessionRepo,
		cfg.JWT.Secret,
	)

	profileUseCase := profile.NewProfileUseCase(
		profileRepo,
		userRepo,
		geminiClient,
		log,
	)

	discoveryUseCase := discovery.NewDiscoveryUseCase(
		profileRepo,
		connectionRepo,
		userRepo,
		prefsRepo,
		log,
	)

	prefsUseCase := prefs.NewPrefsUseCase(
		prefsRepo,
		profileRepo,
	)

	connectionUseCase := connection.NewConnectionUseCase(
		connectionRepo,
		profileRepo,
		prefsRepo,
		log,
	)

	eventUseCase := event.NewEventUseCase(
		eventRepo,
		rsvpRepo,
		log,
	)

	messageUseCase := message.NewMessageUseCase(
		messageRepo,
		connectionRepo,
		profileRepo,
		log,
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase)
	discoveryHandler := handler.NewDiscoveryHandler(discoveryUseCase)
	prefsHandler := handler.NewPrefsHandler(prefsUseCase)
	connectionHandler := handler.NewConnectionHandler(connectionUseCase)
	eventHandler := handler.NewEventHandler(eventUseCase)
	messageHandler := handler.NewMessageHandler(messageUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	// Initialize router
	router := http.NewRouter(
		authHandler,
		profileHandler,
		discoveryHandler,
		prefsHandler,
		connectionHandler,
		eventHandler,
		messageHandler,
		authMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter, log)

	// Initialize background poller
	pendingPoller := poller.New(userRepo, connectionRepo, prefsRepo, log)
	pendingPoller.SetTickInterval(cfg.Poller.Interval)
	pendingPoller.SetActiveWindow(cfg.Poller.ActiveWindow)

	return &Container{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
		Poller: pendingPoller,
		Gemini: geminiClient,
		Log:    log,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	// Close Redis
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Error("error closing redis", "error", err)
		}
	}

	// Close database
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
