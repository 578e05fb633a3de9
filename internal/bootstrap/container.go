package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"niv-scholar-be/internal/config"
	"niv-scholar-be/internal/controller"
	"niv-scholar-be/internal/handler"
	"niv-scholar-be/internal/pkg/logger"
	"niv-scholar-be/internal/repository/memory"
	"niv-scholar-be/internal/service"
	"niv-scholar-be/internal/websocket"
	"niv-scholar-be/pkg/database"
	"niv-scholar-be/pkg/llm/factory"
	pktNats "niv-scholar-be/pkg/nats"
	"niv-scholar-be/pkg/scholar/gateway"
	"niv-scholar-be/pkg/storage"
	memoryStorage "niv-scholar-be/pkg/storage/memory"
	postgresStorage "niv-scholar-be/pkg/storage/postgres"
	redisStorage "niv-scholar-be/pkg/storage/redis"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

const insightTopic = "insight_saved"

type Container struct {
	// Controllers
	ChatController       controller.IChatController
	InsightController    controller.IInsightController
	PreferenceController controller.IPreferenceController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	SessionHandler *handler.SessionHandler
	WebSocketHub   *websocket.Hub

	Logger logger.ILogger

	closers []func()
}

func NewContainer(cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Infrastructure
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to connect to Redis", map[string]interface{}{"error": err.Error()})
		}
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	var forwarder service.EventForwarder
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
		} else {
			forwarder = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	store, err := newStorage(cfg, rdb)
	if err != nil {
		return nil, err
	}

	// 4. Completion
	llmProvider, err := factory.NewLLMProvider(factory.Params{
		Provider:    cfg.Ai.LLMProvider,
		APIKey:      cfg.Ai.OpenAIKey,
		BaseURL:     cfg.Ai.OpenAIBaseURL,
		Model:       cfg.Ai.OpenAIModel,
		MaxTokens:   cfg.Ai.MaxTokens,
		Temperature: cfg.Ai.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
	}
	completer := gateway.New(llmProvider, sysLogger)
	sysLogger.Info("BOOTSTRAP", "Using LLM Provider", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.OpenAIModel,
	})

	// 5. WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/websocket.log")
	c.WebSocketHub = websocket.NewHub(rdb, wsLogger)

	// 6. Services
	publisherService := service.NewPublisherService(insightTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, insightTopic, c.WebSocketHub, forwarder, sysLogger)

	chatService := service.NewChatService(completer)
	insightService := service.NewInsightService(store, publisherService, sysLogger)
	preferenceService := service.NewPreferenceService(store)
	sessionService := service.NewSessionService(
		completer,
		insightService,
		memory.NewSessionRepository(cfg.Scholar.SessionTTL),
		service.SessionOptions{
			RevealInterval: cfg.Scholar.RevealInterval,
			WelcomeDelay:   cfg.Scholar.WelcomeDelay,
		},
		sysLogger,
	)

	// 7. Controllers
	c.ChatController = controller.NewChatController(chatService)
	c.InsightController = controller.NewInsightController(insightService)
	c.PreferenceController = controller.NewPreferenceController(preferenceService)
	c.SessionHandler = handler.NewSessionHandler(sessionService, c.WebSocketHub, wsLogger)

	return c, nil
}

func newStorage(cfg *config.Config, rdb *redis.Client) (storage.Storage, error) {
	switch cfg.Scholar.InsightStorage {
	case "", "memory":
		return memoryStorage.NewStorage(), nil
	case "redis":
		if rdb == nil {
			return nil, errors.New("INSIGHT_STORAGE=redis requires REDIS_URL")
		}
		return redisStorage.NewStorage(rdb), nil
	case "postgres":
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, !cfg.IsProduction())
		if err != nil {
			return nil, fmt.Errorf("unable to connect to GORM DB: %w", err)
		}
		if err := postgresStorage.Migrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate storage table: %w", err)
		}
		return postgresStorage.NewStorage(db), nil
	default:
		return nil, fmt.Errorf("unsupported INSIGHT_STORAGE: %s", cfg.Scholar.InsightStorage)
	}
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
