package bootstrap

import (
	"context"
	"log"
	"time"

	"mindwel-be/internal/config"
	"mindwel-be/internal/controller"
	"mindwel-be/internal/handler"
	"mindwel-be/internal/pkg/logger"
	"mindwel-be/internal/pkg/mailer"
	"mindwel-be/internal/pkg/securedata"
	"mindwel-be/internal/repository/memory"
	"mindwel-be/internal/repository/unitofwork"
	"mindwel-be/internal/service"
	"mindwel-be/internal/websocket"
	"mindwel-be/pkg/analyzer"
	"mindwel-be/pkg/classifier"
	"mindwel-be/pkg/conversation"
	"mindwel-be/pkg/escalation"
	"mindwel-be/pkg/quality"
	"mindwel-be/pkg/responder"

	pktNats "mindwel-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController    controller.IChatController
	InsightController controller.IInsightController
	HandoffController controller.IHandoffController

	// Background Services (Exposed for main.go to run)
	DispatchService service.IDispatchService

	// WebSockets
	HandoffFeedHandler *handler.HandoffFeedHandler
	WebSocketHub       *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	codec, err := securedata.NewCodec(cfg.App.DataSecret)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize content codec: %v", err)
	}

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Analysis Pipeline
	// Initialize Classifier Provider based on Config
	var provider classifier.Provider
	if cfg.Classifier.Provider == "http" {
		provider = classifier.NewHTTPProvider(
			cfg.Classifier.BaseURL,
			cfg.Classifier.Model,
			cfg.Classifier.Timeout,
		)
		log.Printf("[INFO] Using Classifier Provider: HTTP (%s)", cfg.Classifier.Model)
	} else {
		provider = classifier.NewLexicalProvider()
		log.Printf("[INFO] Using Classifier Provider: LEXICAL")
	}

	sentimentAnalyzer := analyzer.New(provider, analyzer.Thresholds{
		Positive:         cfg.Engine.PositiveThreshold,
		Negative:         cfg.Engine.NegativeThreshold,
		MinEmotionWeight: cfg.Engine.MinEmotionWeight,
	}, cfg.Classifier.Timeout)

	escalationManager := escalation.NewManager(cfg.Engine.HandoffCooldown)

	var directory escalation.Directory
	if cfg.Engine.ResourceEndpoint != "" {
		directory = escalation.NewHTTPDirectory(cfg.Engine.ResourceEndpoint, "", cfg.Engine.ResourceTimeout)
		log.Printf("[INFO] Using Crisis Resource Directory: HTTP (%s)", cfg.Engine.ResourceEndpoint)
	} else {
		directory = escalation.NewStaticDirectory()
		log.Printf("[INFO] Using Crisis Resource Directory: STATIC")
	}

	// Initialize In-Memory Conversation Storage
	sessionRepo := memory.NewSessionRepository(cfg.Engine.SessionTTL, cfg.Engine.SessionSweep)
	profileRepo := memory.NewProfileRepository(0)
	convoManager := conversation.NewManager(sessionRepo, profileRepo, conversation.Options{
		HistoryLimit:   cfg.Engine.HistoryLimit,
		DedupRingSize:  cfg.Engine.DedupRingSize,
		RecentReplies:  cfg.Engine.RecentReplies,
		SimilarityMax:  cfg.Engine.SimilarityMax,
		ProfileTopicsN: cfg.Engine.ProfileTopics,
	})

	validator := quality.NewValidator(convoManager, quality.Bounds{
		MinLength:      cfg.Engine.ReplyMinLength,
		MaxLength:      cfg.Engine.ReplyMaxLength,
		ShortMaxLength: cfg.Engine.ReplyShortMax,
		ScoreFloor:     cfg.Engine.QualityFloor,
	})
	generator := responder.NewGenerator(directory, time.Now().UnixNano())

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub (counselor feed)
	handoffLogger := logger.NewIsolatedLogger(cfg.App.HandoffLogFilePath)
	wsHub := websocket.NewHub(rdb, handoffLogger)
	go wsHub.Run()

	// 4. Services
	handoffService := service.NewHandoffService(uowFactory, pubSub, sysLogger)
	insightService := service.NewInsightService(uowFactory, sentimentAnalyzer, codec, cfg.Engine.InsightWindow, cfg.Engine.MoodDeadBand, sysLogger)

	chatService := service.NewChatService(
		sentimentAnalyzer,
		escalationManager,
		convoManager,
		generator,
		validator,
		insightService,
		handoffService,
		uowFactory,
		codec,
		sysLogger,
		service.ChatServiceOptions{
			RepairAttempts: cfg.Engine.RepairAttempts,
			HistoryContext: cfg.Engine.HistoryContext,
			DefaultRegion:  cfg.Engine.DefaultRegion,
		},
	)

	dispatchService := service.NewDispatchService(
		pubSub,
		natsPub,
		wsHub,
		emailService,
		cfg.SMTP.CounselorEmail,
		handoffLogger,
	)

	feedHandler := handler.NewHandoffFeedHandler(wsHub, cfg.App.JWTSecret, handoffLogger)

	// 5. Controllers
	return &Container{
		ChatController:    controller.NewChatController(chatService),
		InsightController: controller.NewInsightController(insightService),
		HandoffController: controller.NewHandoffController(handoffService),

		DispatchService: dispatchService,

		HandoffFeedHandler: feedHandler,
		WebSocketHub:       wsHub,
	}
}
