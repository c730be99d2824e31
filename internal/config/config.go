package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Qdrant    QdrantConfig
	Redis     RedisConfig
	Embedding EmbeddingConfig
	Cache     CacheConfig
	Catalog   CatalogConfig
	Storage   StorageConfig
}

type ServerConfig struct {
	Port     string
	Env      string
	LogJSON  bool
	LogDebug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheKey string
}

type EmbeddingConfig struct {
	Provider     string
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string
	Dimension    int
	MaxTokens    int
}

type CacheConfig struct {
	Backend       string
	Path          string
	AutoSave      bool
	FlushInterval time.Duration
}

type CatalogConfig struct {
	Source string
	Path   string
}

type StorageConfig struct {
	MaxFileSize int64
}

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	CacheBackendFile   = "file"
	CacheBackendRedis  = "redis"
	CacheBackendQdrant = "qdrant"

	CatalogSourceBuiltin  = "builtin"
	CatalogSourceFile     = "file"
	CatalogSourcePostgres = "postgres"
)

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	provider := strings.ToLower(getEnv("EMBEDDING_PROVIDER", ProviderGemini))

	return &Config{
		Server: ServerConfig{
			Port:     getEnv("PORT", "8000"),
			Env:      getEnv("ENV", "development"),
			LogJSON:  getEnvAsBool("LOG_JSON", false),
			LogDebug: getEnvAsBool("LOG_DEBUG", false),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "resume_screener"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", "http://localhost:6334"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "skill_embeddings"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			CacheKey: getEnv("REDIS_CACHE_KEY", "resume_screener:skill_embeddings"),
		},
		Embedding: EmbeddingConfig{
			Provider:     provider,
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			GeminiModel:  getEnv("GEMINI_EMBED_MODEL", "text-embedding-004"),
			OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:  getEnv("OPENAI_EMBED_MODEL", "text-embedding-3-small"),
			Dimension:    getEnvAsInt("EMBEDDING_DIMENSION", defaultDimension(provider)),
			MaxTokens:    getEnvAsInt("EMBEDDING_MAX_TOKENS", 512),
		},
		Cache: CacheConfig{
			Backend:  strings.ToLower(getEnv("EMBEDDING_CACHE_BACKEND", CacheBackendFile)),
			Path:     getEnv("EMBEDDING_CACHE_PATH", "./data/skill_embeddings.json"),
			AutoSave: getEnvAsBool("EMBEDDING_CACHE_AUTOSAVE", false),

			// 0 disables the background flusher.
			FlushInterval: time.Duration(getEnvAsInt("EMBEDDING_CACHE_FLUSH_INTERVAL", 0)) * time.Second,
		},
		Catalog: CatalogConfig{
			Source: strings.ToLower(getEnv("CATALOG_SOURCE", CatalogSourceBuiltin)),
			Path:   getEnv("CATALOG_PATH", "./data/catalog.yaml"),
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
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

// defaultDimension is the output size of the default model for each provider.
func defaultDimension(provider string) int {
	if provider == ProviderOpenAI {
		return 1536
	}
	return 768
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

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
