package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	App       AppConfig
	Firebase  FirebaseConfig
	Store     StoreConfig
	LLM       LLMConfig
	RateLimit RateLimitConfig
	Export    ExportConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

type AppConfig struct {
	Name        string
	Environment string
	LogLevel    string
	Version     string
}

type FirebaseConfig struct {
	CredentialsPath string
	ProjectID       string
	// AuthDisabled swaps token verification for the X-User-Id header. Development only.
	AuthDisabled bool
}

// Store drivers understood by bootstrap.OpenStore.
const (
	StoreFirestore = "firestore"
	StoreRedis     = "redis"
	StorePostgres  = "postgres"
	StoreMongo     = "mongo"
	StoreMemory    = "memory"
)

type StoreConfig struct {
	Driver        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PostgresDSN   string
	MongoURI      string
	MongoDatabase string
}

type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	TopP        float64
	TopK        int
	MaxTokens   int
}

type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

type ExportConfig struct {
	S3Bucket string
	S3Prefix string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8000"),
			CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"http://localhost:5173"}),
		},
		App: AppConfig{
			Name:        getEnv("APP_NAME", "AI Document Generator"),
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			AuthDisabled:    getEnvAsBool("AUTH_DISABLED", false),
		},
		Store: StoreConfig{
			Driver:        strings.ToLower(getEnv("STORE_DRIVER", StoreFirestore)),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
			PostgresDSN:   getEnv("DB_DSN", ""),
			MongoURI:      getEnv("MONGODB_URI", ""),
			MongoDatabase: getEnv("MONGODB_DATABASE", "docgen"),
		},
		LLM: LLMConfig{
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			BaseURL:     getEnv("LLM_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai/"),
			Model:       getEnv("LLM_MODEL", "gemini-2.5-flash"),
			Temperature: getEnvAsFloat("LLM_TEMPERATURE", 0.7),
			TopP:        getEnvAsFloat("LLM_TOP_P", 0.95),
			TopK:        getEnvAsInt("LLM_TOP_K", 40),
			MaxTokens:   getEnvAsInt("LLM_MAX_TOKENS", 2048),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvAsInt("GENERATION_RATE_PER_MINUTE", 20),
			Burst:             getEnvAsInt("GENERATION_RATE_BURST", 5),
		},
		Export: ExportConfig{
			S3Bucket: getEnv("EXPORT_S3_BUCKET", ""),
			S3Prefix: getEnv("EXPORT_S3_PREFIX", "exports"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Store.Driver {
	case StoreFirestore:
		if c.Firebase.CredentialsPath == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required for the firestore store")
		}
	case StoreRedis:
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis store")
		}
	case StorePostgres:
		if c.Store.PostgresDSN == "" {
			return fmt.Errorf("DB_DSN is required for the postgres store")
		}
	case StoreMongo:
		if c.Store.MongoURI == "" {
			return fmt.Errorf("MONGODB_URI is required for the mongo store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	if !c.Firebase.AuthDisabled && c.Firebase.CredentialsPath == "" {
		return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required unless AUTH_DISABLED=true")
	}

	if c.RateLimit.RequestsPerMinute < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limit values must not be negative")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvAsList accepts either a JSON array (`["a","b"]`) or a comma separated list.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}

	if strings.HasPrefix(valueStr, "[") {
		var out []string
		if err := json.Unmarshal([]byte(valueStr), &out); err == nil {
			return out
		}
		log.Printf("Warning: Invalid JSON list for %s, falling back to comma split", key)
		valueStr = strings.Trim(valueStr, "[]")
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		part = strings.Trim(strings.TrimSpace(part), `"`)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
