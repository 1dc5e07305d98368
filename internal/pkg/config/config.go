package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo      MongoConfig
	Redis      RedisConfig
	S3         S3Config
	Classifier ClassifierConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=calorie_tracker"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type S3Config struct {
	Bucket        string `env:"S3_BUCKET"`
	Region        string `env:"S3_REGION, default=us-east-1"`
	PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`
}

type ClassifierConfig struct {
	// Workers <= 0 selects one worker per CPU core.
	Workers    int           `env:"CLASSIFIER_WORKERS,        default=0"`
	QueueDepth int           `env:"CLASSIFIER_QUEUE_DEPTH,    default=32"`
	Timeout    time.Duration `env:"CLASSIFIER_TIMEOUT,        default=10s"`
	Region     string        `env:"CLASSIFIER_REGION,         default=us-east-1"`
	// MinConfidence is a percentage; 0 logs predictions unconditionally.
	MinConfidence float64 `env:"CLASSIFIER_MIN_CONFIDENCE, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
