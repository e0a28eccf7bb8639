package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig `json:"server"`

	// Database Configuration
	Database DatabaseConfig `json:"database"`

	MongoDB MongoDBConfig `json:"mongodb"`

	// Firebase Configuration
	Firebase FirebaseConfig `json:"firebase"`

	// Notification Configuration
	Notification NotificationConfig `json:"notification"`

	Auth AuthConfig `json:"auth"`

	// Logging Configuration
	Logging LoggingConfig `json:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	HTTPPort         string `json:"http_port"`
	NotifServicePort string `json:"notif_service_port"` // gRPC health
	WorkerPort       string `json:"worker_port"`
	Environment      string `json:"environment"` // development, staging, production
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DatabaseName string `json:"database_name"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

// MongoDBConfig points at the delivery log. Host empty disables it.
type MongoDBConfig struct {
	Host       string `json:"host"`
	Port       string `json:"port"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	Database   string `json:"database"`
	Collection string `json:"collection"`
}

// FirebaseConfig is the messaging platform configuration. The main
// application and the background worker each load their own copy.
type FirebaseConfig struct {
	ProjectID           string `json:"project_id"`
	APIKey              string `json:"api_key"`
	SenderID            string `json:"messaging_sender_id"`
	AppID               string `json:"app_id"`
	VAPIDKey            string `json:"vapid_key"`
	CredentialsFilePath string `json:"-"`
	Enabled             bool   `json:"enabled"`
}

// Valid reports whether the client-side keys needed for token minting are present.
func (f FirebaseConfig) Valid() bool {
	return f.APIKey != "" && f.SenderID != "" && f.AppID != "" && f.VAPIDKey != ""
}

// NotificationConfig contains notification system configuration
type NotificationConfig struct {
	DeviceType   string `json:"device_type"`
	DefaultTitle string `json:"default_title"`
	DefaultIcon  string `json:"default_icon"`
	FeedCapacity int    `json:"feed_capacity"`
	Enabled      bool   `json:"enabled"`
}

type AuthConfig struct {
	JWTSecret string `json:"-"`
	Issuer    string `json:"issuer"`
	// shared secret the push relay sends in X-Ingress-Secret
	IngressSecret string `json:"-"`
}

var (
	ErrMissingJWTSecret     = errors.New("JWT_SECRET must be set")
	ErrMissingIngressSecret = errors.New("INGRESS_SECRET must be set")
)

// ValidateServer checks the secrets the main service can't run without.
// jwt accepts an empty hmac key, so an unset secret would let anyone mint logins.
func (cfg *Config) ValidateServer() error {
	if cfg.Auth.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	if cfg.Auth.IngressSecret == "" {
		return ErrMissingIngressSecret
	}
	return nil
}

// ValidateWorker checks the worker's own config, it only needs the ingress secret.
func (cfg *Config) ValidateWorker() error {
	if cfg.Auth.IngressSecret == "" {
		return ErrMissingIngressSecret
	}
	return nil
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `json:"level"` // debug, info, warn, error
}

// Debug reports whether debug lines should be written.
func (l LoggingConfig) Debug() bool {
	return strings.EqualFold(l.Level, "debug")
}

// LoadConfig builds the main application configuration from .env and the environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using system env variables")
	}
	return build()
}

// LoadWorkerConfig builds the background worker configuration. The worker
// runs as its own process and never sees the main application's config,
// so it reads worker.env (falling back to the environment) on its own.
func LoadWorkerConfig() *Config {
	if err := godotenv.Load("worker.env"); err != nil {
		log.Println("worker.env file not found, using system env variables")
	}
	return build()
}

func build() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:         getEnv("HTTP_PORT", "8080"),
			NotifServicePort: getEnv("NOTIF_SERVICE_PORT", "7004"),
			WorkerPort:       getEnv("WORKER_PORT", "8090"),
			Environment:      getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:         getEnv("MYSQL_HOST", "localhost"),
			Port:         getEnv("MYSQL_PORT", "3306"),
			Username:     getEnv("MYSQL_USERNAME", "dashboard"),
			Password:     getEnv("MYSQL_PASSWORD", "dashboard123"),
			DatabaseName: getEnv("MYSQL_DATABASE", "restaurant"),
			MaxOpenConns: getEnvAsInt("MYSQL_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("MYSQL_MAX_IDLE_CONNS", 5),
		},
		MongoDB: MongoDBConfig{
			Host:       getEnv("MONGO_HOST", ""),
			Port:       getEnv("MONGO_PORT", "27017"),
			Username:   getEnv("MONGO_USERNAME", ""),
			Password:   getEnv("MONGO_PASSWORD", ""),
			Database:   getEnv("MONGO_DATABASE", "restaurant"),
			Collection: getEnv("MONGO_DELIVERY_COLLECTION", "push_deliveries"),
		},
		Firebase: FirebaseConfig{
			ProjectID:           getEnv("FIREBASE_PROJECT_ID", ""),
			APIKey:              getEnv("FIREBASE_API_KEY", ""),
			SenderID:            getEnv("FIREBASE_MESSAGING_SENDER_ID", ""),
			AppID:               getEnv("FIREBASE_APP_ID", ""),
			VAPIDKey:            getEnv("FIREBASE_VAPID_KEY", ""),
			CredentialsFilePath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			Enabled:             getEnvAsBool("FIREBASE_ENABLED", false),
		},
		Notification: NotificationConfig{
			DeviceType:   getEnv("PUSH_DEVICE_TYPE", "web"),
			DefaultTitle: getEnv("PUSH_DEFAULT_TITLE", "New Message"),
			DefaultIcon:  getEnv("PUSH_DEFAULT_ICON", "/icon-192.png"),
			FeedCapacity: getEnvAsInt("FEED_CAPACITY", 100),
			Enabled:      getEnvAsBool("PUSH_ENABLED", true),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			Issuer:    getEnv("JWT_ISSUER", "restaurant-dashboard"),

			IngressSecret: getEnv("INGRESS_SECRET", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

func (cfg *Config) DSN() string {
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "3306"
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DatabaseName,
	)
}

func (cfg *Config) GetMongoURI() string {
	m := cfg.MongoDB
	if m.Username == "" || m.Password == "" {
		return fmt.Sprintf("mongodb://%s:%s/%s", m.Host, m.Port, m.Database)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s?authSource=admin",
		m.Username, m.Password, m.Host, m.Port, m.Database)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
