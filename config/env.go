package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppEnv         string        `envconfig:"APP_ENV" default:"development"`
	Port           string        `envconfig:"APP_PORT" default:"8082"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	DatabaseURL    string        `envconfig:"DATABASE_URL"`
	DBHost         string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort         string        `envconfig:"DB_PORT" default:"5432"`
	DBUser         string        `envconfig:"DB_USER" default:"postgres"`
	DBPassword     string        `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName         string        `envconfig:"DB_NAME" default:"electronics_store"`
	DBSSLMode      string        `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns     int32         `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns     int32         `envconfig:"DB_MIN_CONNS" default:"5"`
	MigrationsPath string        `envconfig:"MIGRATIONS_PATH" default:"database/migration"`
	RedisURL       string        `envconfig:"REDIS_URL"`
	RedisAddr      string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword  string        `envconfig:"REDIS_PASSWORD"`
	JWTSecret      string        `envconfig:"JWT_SECRET" default:"secret"`
	JWTExpiry      time.Duration `envconfig:"JWT_EXPIRY" default:"24h"`
	UploadDir      string        `envconfig:"UPLOAD_DIR" default:"./uploads"`
	MaxUploadSize  int64         `envconfig:"MAX_UPLOAD_SIZE" default:"5242880"`
	OriginURL      string        `envconfig:"ORIGIN_URL"`
	Cloudinary     CloudinaryConfig
	SMTP           SMTPConfig
	Kafka          KafkaConfig
}

type CloudinaryConfig struct {
	URL       string `envconfig:"CLOUDINARY_URL"`
	CloudName string `envconfig:"CLOUDINARY_CLOUD_NAME"`
	APIKey    string `envconfig:"CLOUDINARY_API_KEY"`
	APISecret string `envconfig:"CLOUDINARY_API_SECRET"`
}

func (c CloudinaryConfig) Enabled() bool {
	return c.URL != "" || (c.CloudName != "" && c.APIKey != "" && c.APISecret != "")
}

type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	User     string `envconfig:"SMTP_USER"`
	Password string `envconfig:"SMTP_PASS"`
	From     string `envconfig:"SMTP_FROM"`
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.User != "" && c.Password != ""
}

type KafkaConfig struct {
	Brokers    string `envconfig:"KAFKA_BROKERS"`
	OrderTopic string `envconfig:"KAFKA_ORDER_TOPIC" default:"order-events"`
}

func (c KafkaConfig) Enabled() bool {
	return c.Brokers != ""
}

var AppConfig *Config

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// LoadConfig populates AppConfig from the environment, reading .env first when present.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	AppConfig = cfg
	return cfg
}
