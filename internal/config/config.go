package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Gemini      GeminiConfig
	Recommender RecommenderConfig
	Storage     StorageConfig
	Warmer      WarmerConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type GeminiConfig struct {
	APIKey     string
	EmbedModel string
}

// RecommenderConfig carries the scoring weights and limits.
// SimilarityWeight/AccessibilityWeight must sum to 1, as must
// StructuredWeight/SemanticWeight; Validate enforces this at startup.
type RecommenderConfig struct {
	SimilarityWeight    float64
	AccessibilityWeight float64
	StructuredWeight    float64
	SemanticWeight      float64
	InclusiveBonus      float64
	DefaultLimit        int
	ScoringConcurrency  int
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type WarmerConfig struct {
	Concurrency int
	QueueSize   int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "job_recommender"),
		},
		Gemini: GeminiConfig{
			APIKey:     getEnv("GEMINI_API_KEY", ""),
			EmbedModel: getEnv("GEMINI_EMBED_MODEL", "text-embedding-004"),
		},
		Recommender: RecommenderConfig{
			SimilarityWeight:    getEnvAsFloat("SIMILARITY_WEIGHT", 0.6),
			AccessibilityWeight: getEnvAsFloat("ACCESSIBILITY_WEIGHT", 0.4),
			StructuredWeight:    getEnvAsFloat("STRUCTURED_WEIGHT", 0.5),
			SemanticWeight:      getEnvAsFloat("SEMANTIC_WEIGHT", 0.5),
			InclusiveBonus:      getEnvAsFloat("INCLUSIVE_BONUS", 0.1),
			DefaultLimit:        getEnvAsInt("DEFAULT_LIMIT", 10),
			ScoringConcurrency:  getEnvAsInt("SCORING_CONCURRENCY", 4),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Warmer: WarmerConfig{
			Concurrency: getEnvAsInt("WARMER_CONCURRENCY", 2),
			QueueSize:   getEnvAsInt("WARMER_QUEUE_SIZE", 100),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

const weightEpsilon = 1e-9

// Validate checks the recommender weight constraints so a misconfigured
// deployment fails fast instead of producing skewed rankings.
func (r RecommenderConfig) Validate() error {
	if r.SimilarityWeight < 0 || r.AccessibilityWeight < 0 {
		return fmt.Errorf("ranking weights must be non-negative")
	}
	if diff := r.SimilarityWeight + r.AccessibilityWeight - 1; diff > weightEpsilon || diff < -weightEpsilon {
		return fmt.Errorf("similarity and accessibility weights must sum to 1, got %.3f", r.SimilarityWeight+r.AccessibilityWeight)
	}
	if r.StructuredWeight < 0 || r.SemanticWeight < 0 {
		return fmt.Errorf("accessibility weights must be non-negative")
	}
	if diff := r.StructuredWeight + r.SemanticWeight - 1; diff > weightEpsilon || diff < -weightEpsilon {
		return fmt.Errorf("structured and semantic weights must sum to 1, got %.3f", r.StructuredWeight+r.SemanticWeight)
	}
	if r.InclusiveBonus < 0 || r.InclusiveBonus > 1 {
		return fmt.Errorf("inclusive bonus must be in [0,1], got %.3f", r.InclusiveBonus)
	}
	if r.DefaultLimit <= 0 {
		return fmt.Errorf("default limit must be positive, got %d", r.DefaultLimit)
	}
	if r.ScoringConcurrency <= 0 {
		return fmt.Errorf("scoring concurrency must be positive, got %d", r.ScoringConcurrency)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}
