package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Triage        TriageConfig
	Offers        OffersConfig
	Notifications NotificationsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// TriageConfig holds verification triage thresholds
type TriageConfig struct {
	RiskThreshold    float64
	QualityThreshold int
}

// OffersConfig holds offer expiry windows and the sweep interval
type OffersConfig struct {
	FullPaymentWindowDays int
	DefaultWindowDays     int
	MaxWindowDays         int
	SweepInterval         time.Duration
	SweepBatchSize        int
}

// NotificationsConfig holds notification dispatch configuration
type NotificationsConfig struct {
	Enabled   bool
	AWSRegion string
	Sender    string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "estatehub"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "change-this-in-production"),
			Expiry: getEnvAsDuration("JWT_EXPIRY", 15*time.Minute),
		},
		Triage: TriageConfig{
			RiskThreshold:    getEnvAsFloat("TRIAGE_RISK_THRESHOLD", 0.5),
			QualityThreshold: getEnvAsInt("TRIAGE_QUALITY_THRESHOLD", 50),
		},
		Offers: OffersConfig{
			FullPaymentWindowDays: getEnvAsInt("OFFER_EXPIRY_FULL_PAYMENT_DAYS", 3),
			DefaultWindowDays:     getEnvAsInt("OFFER_EXPIRY_DEFAULT_DAYS", 7),
			MaxWindowDays:         getEnvAsInt("OFFER_EXPIRY_MAX_DAYS", 30),
			SweepInterval:         getEnvAsDuration("OFFER_SWEEP_INTERVAL", time.Minute),
			SweepBatchSize:        getEnvAsInt("OFFER_SWEEP_BATCH_SIZE", 100),
		},
		Notifications: NotificationsConfig{
			Enabled:   getEnvAsBool("NOTIFICATIONS_ENABLED", false),
			AWSRegion: getEnv("AWS_REGION", "eu-west-1"),
			Sender:    getEnv("NOTIFICATIONS_SENDER", "no-reply@estate-hub.local"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
