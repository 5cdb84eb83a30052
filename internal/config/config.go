package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const (
	defaultShippingFee    = "2000"
	defaultMemberPlan     = "plus"
	defaultRequestTimeout = 30 * time.Second
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string
	JWTSecret  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers []string

	// Flat fee charged once per checkout unless the buyer holds MemberPlan.
	ShippingFee decimal.Decimal
	MemberPlan  string

	EntitlementURL string
	RequestTimeout time.Duration
	AllowedOrigin  string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:         os.Getenv("DB_HOST"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBPort:         os.Getenv("DB_PORT"),
		AppPort:        getEnv("APP_PORT", "8080"),
		AppEnv:         os.Getenv("APP_ENV"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		KafkaBrokers:   splitList(os.Getenv("KAFKA_BROKERS")),
		MemberPlan:     getEnv("MEMBER_PLAN", defaultMemberPlan),
		EntitlementURL: os.Getenv("ENTITLEMENT_URL"),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", defaultRequestTimeout),
		AllowedOrigin:  getEnv("CORS_ORIGIN", "*"),
	}

	fee, err := decimal.NewFromString(getEnv("SHIPPING_FEE", defaultShippingFee))
	if err != nil || fee.IsNegative() {
		log.Printf("invalid SHIPPING_FEE, falling back to %s", defaultShippingFee)
		fee = decimal.RequireFromString(defaultShippingFee)
	}
	cfg.ShippingFee = fee

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
