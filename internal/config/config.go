package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	SMTP       SMTPConfig
	Engine     EngineConfig
	Classifier ClassifierConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	HandoffLogFilePath string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JWTSecret          string
	DataSecret         string // key material for sealed content at rest
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host           string
	Port           int
	Email          string
	Password       string
	SenderName     string
	CounselorEmail string // alert recipient for urgent handoffs
}

// EngineConfig tunes the analysis and safety pipeline. Every threshold the
// pipeline uses comes from here, not from literals in the code.
type EngineConfig struct {
	PositiveThreshold float64
	NegativeThreshold float64
	MinEmotionWeight  float64

	InsightWindow  time.Duration // lookback for mood pattern analysis
	HistoryContext int           // turns of context fed into analysis
	MoodDeadBand   float64       // minimum mood movement that counts as a trend

	HandoffCooldown time.Duration
	RepairAttempts  int

	// Conversation memory limits.
	HistoryLimit  int     // max turns kept per session
	DedupRingSize int     // recent assistant reply fingerprints kept
	RecentReplies int     // raw replies kept on the profile
	SimilarityMax float64 // near-duplicate similarity threshold
	ProfileTopics int

	// Response validator bounds.
	ReplyMinLength int
	ReplyMaxLength int
	ReplyShortMax  int     // cap when the profile prefers short replies
	QualityFloor   float64 // replies scoring below this are rejected

	SessionTTL       time.Duration
	SessionSweep     time.Duration
	DefaultRegion    string
	ResourceTimeout  time.Duration
	ResourceEndpoint string // optional external crisis-resource directory
}

type ClassifierConfig struct {
	Provider string // "lexical" or "http"
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			HandoffLogFilePath: getEnv("HANDOFF_LOG_FILE_PATH", "handoff.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JWTSecret:          getEnv("JWT_SECRET", ""),
			DataSecret:         getEnv("DATA_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:           getEnv("SMTP_HOST", ""),
			Port:           getEnvAsInt("SMTP_PORT", 587),
			Email:          getEnv("SMTP_EMAIL", ""),
			Password:       getEnv("SMTP_PASSWORD", ""),
			SenderName:     getEnv("SMTP_SENDER_NAME", "Mindwel"),
			CounselorEmail: getEnv("COUNSELOR_ALERT_EMAIL", ""),
		},
		Engine: EngineConfig{
			PositiveThreshold: getEnvAsFloat("SENTIMENT_POSITIVE_THRESHOLD", 0.05),
			NegativeThreshold: getEnvAsFloat("SENTIMENT_NEGATIVE_THRESHOLD", -0.05),
			MinEmotionWeight:  getEnvAsFloat("MIN_EMOTION_WEIGHT", 0.15),
			InsightWindow:     getEnvAsDuration("INSIGHT_WINDOW", 7*24*time.Hour),
			HistoryContext:    getEnvAsInt("HISTORY_CONTEXT_TURNS", 10),
			MoodDeadBand:      getEnvAsFloat("MOOD_TREND_DEAD_BAND", 0.5),
			HandoffCooldown:   getEnvAsDuration("HANDOFF_COOLDOWN", 15*time.Minute),
			RepairAttempts:    getEnvAsInt("RESPONSE_REPAIR_ATTEMPTS", 1),
			HistoryLimit:      getEnvAsInt("SESSION_HISTORY_LIMIT", 40),
			DedupRingSize:     getEnvAsInt("REPLY_DEDUP_RING_SIZE", 5),
			RecentReplies:     getEnvAsInt("PROFILE_RECENT_REPLIES", 5),
			SimilarityMax:     getEnvAsFloat("REPLY_SIMILARITY_MAX", 0.85),
			ProfileTopics:     getEnvAsInt("PROFILE_TOPIC_LIMIT", 10),
			ReplyMinLength:    getEnvAsInt("REPLY_MIN_LENGTH", 20),
			ReplyMaxLength:    getEnvAsInt("REPLY_MAX_LENGTH", 600),
			ReplyShortMax:     getEnvAsInt("REPLY_SHORT_MAX_LENGTH", 200),
			QualityFloor:      getEnvAsFloat("QUALITY_SCORE_FLOOR", 0.7),
			SessionTTL:        getEnvAsDuration("SESSION_TTL", 1*time.Hour),
			SessionSweep:      getEnvAsDuration("SESSION_SWEEP_INTERVAL", 10*time.Minute),
			DefaultRegion:     getEnv("DEFAULT_REGION", "US"),
			ResourceTimeout:   getEnvAsDuration("RESOURCE_LOOKUP_TIMEOUT", 2*time.Second),
			ResourceEndpoint:  getEnv("RESOURCE_DIRECTORY_URL", ""),
		},
		Classifier: ClassifierConfig{
			Provider: getEnv("CLASSIFIER_PROVIDER", "lexical"),
			BaseURL:  getEnv("CLASSIFIER_BASE_URL", "http://localhost:8080"),
			Model:    getEnv("CLASSIFIER_MODEL", "sentiment-base"),
			Timeout:  getEnvAsDuration("CLASSIFIER_TIMEOUT", 2*time.Second),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
