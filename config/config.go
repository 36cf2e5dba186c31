package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Activation ActivationConfig
	Paystack   PaystackConfig
	SMS        SMSConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

// ActivationConfig for the BioLite code API. The private key is an EC (P-256)
// key in PEM form; the public key is the key identifier registered with BioLite.
type ActivationConfig struct {
	BaseURL       string
	ClientKey     string
	PublicKey     string
	PrivateKeyPEM string
	Timeout       time.Duration
}

type PaystackConfig struct {
	BaseURL   string
	SecretKey string
}

// SMSConfig for Africa's Talking.
type SMSConfig struct {
	BaseURL  string
	Username string
	APIKey   string
	SenderID string
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Env:          getEnv("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             getEnv("DATABASE_DSN", "paygo:paygo@tcp(localhost:3306)/paygo?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret:  getEnv("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: getEnv("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 168 * time.Hour,
			Issuer:        "paygo",
		},
		Activation: ActivationConfig{
			BaseURL:       getEnv("BIOLITE_API_URL", "https://api.bioliteconnect.com/v1"),
			ClientKey:     getEnv("BIOLITE_CLIENT_KEY", ""),
			PublicKey:     getEnv("BIOLITE_PUBLIC_KEY", ""),
			PrivateKeyPEM: getEnv("BIOLITE_PRIVATE_KEY", ""),
			Timeout:       15 * time.Second,
		},
		Paystack: PaystackConfig{
			BaseURL:   getEnv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
			SecretKey: getEnv("PAYSTACK_SECRET_KEY", ""),
		},
		SMS: SMSConfig{
			BaseURL:  getEnv("AFRICASTALKING_BASE_URL", "https://api.sandbox.africastalking.com"),
			Username: getEnv("AFRICASTALKING_USERNAME", "sandbox"),
			APIKey:   getEnv("AFRICASTALKING_API_KEY", ""),
			SenderID: getEnv("AFRICASTALKING_SENDER_ID", "PAYGO"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
