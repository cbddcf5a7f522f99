package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	RabbitMQ RabbitMQConfig `json:"rabbitmq"`
	JWT      JWTConfig      `json:"jwt"`
	Mongo    MongoConfig    `json:"mongo"`
	Redis    RedisConfig    `json:"redis"`
	Uploads  UploadConfig   `json:"uploads"`
}

type ServerConfig struct {
	Port        string   `json:"port" env:"PORTAL_SERVER_PORT"`
	CORSOrigins []string `json:"cors_origins" env:"PORTAL_CORS_ORIGINS" envSeparator:","`
}

type DatabaseConfig struct {
	Host     string `json:"host" env:"PORTAL_DB_HOST"`
	Port     string `json:"port" env:"PORTAL_DB_PORT"`
	User     string `json:"user" env:"PORTAL_DB_USER"`
	Password string `json:"password" env:"PORTAL_DB_PASSWORD"`
	DBName   string `json:"dbname" env:"PORTAL_DB_NAME"`
}

type RabbitMQConfig struct {
	Host     string `json:"host" env:"PORTAL_RABBITMQ_HOST"`
	Port     string `json:"port" env:"PORTAL_RABBITMQ_PORT"`
	User     string `json:"user" env:"PORTAL_RABBITMQ_USER"`
	Password string `json:"password" env:"PORTAL_RABBITMQ_PASSWORD"`
}

// JWTConfig holds the signing secret handed to the token issuer. Zero
// ExpirationHours issues tokens without an exp claim.
type JWTConfig struct {
	Secret          string `json:"secret" env:"PORTAL_JWT_SECRET"`
	ExpirationHours int    `json:"expiration_hours" env:"PORTAL_JWT_EXPIRATION_HOURS"`
}

type MongoConfig struct {
	URI      string `json:"uri" env:"PORTAL_MONGO_URI"`
	Database string `json:"database" env:"PORTAL_MONGO_DATABASE"`
}

type RedisConfig struct {
	Addr     string `json:"addr" env:"PORTAL_REDIS_ADDR"`
	Password string `json:"password" env:"PORTAL_REDIS_PASSWORD"`
	DB       int    `json:"db" env:"PORTAL_REDIS_DB"`
}

type UploadConfig struct {
	Dir              string `json:"dir" env:"PORTAL_UPLOAD_DIR"`
	MaxBytes         int64  `json:"max_bytes" env:"PORTAL_UPLOAD_MAX_BYTES"`
	TicketTTLMinutes int    `json:"ticket_ttl_minutes" env:"PORTAL_UPLOAD_TICKET_TTL_MINUTES"`
	PublicBaseURL    string `json:"public_base_url" env:"PORTAL_PUBLIC_BASE_URL"`
}

// LoadConfig reads the JSON file at path, then lets a .env file and PORTAL_*
// environment variables override individual values.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := env.Parse(&config); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	config.applyDefaults()
	if config.JWT.Secret == "" {
		return nil, errors.New("jwt secret is required")
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "5000"
	}
	if c.Database.Port == "" {
		c.Database.Port = "5432"
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "complaint_portal"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Uploads.Dir == "" {
		c.Uploads.Dir = "uploads"
	}
	if c.Uploads.MaxBytes <= 0 {
		c.Uploads.MaxBytes = 10 << 20
	}
	if c.Uploads.TicketTTLMinutes <= 0 {
		c.Uploads.TicketTTLMinutes = 10
	}
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.DBName,
	)
}

func (r RabbitMQConfig) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", r.User, r.Password, r.Host, r.Port)
}

func (u UploadConfig) TicketTTL() time.Duration {
	return time.Duration(u.TicketTTLMinutes) * time.Minute
}
