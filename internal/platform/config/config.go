package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr        string
	LogLevel    string
	DatabaseURL string
	Redis       RedisConfig
	Kafka       KafkaConfig
	Decision    Decision
}

// RedisConfig configures the optional account lookup cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CacheTTL     time.Duration
}

// KafkaConfig configures the optional audit sink and the audit pipeline
// in front of it.
type KafkaConfig struct {
	Brokers         []string
	AuditTopic      string
	AuditBuffer     int
	DeliveryTimeout time.Duration
	RecordRetries   int
	MirrorTimeout   time.Duration
	RetryInterval   time.Duration
	DrainTimeout    time.Duration
	MemoryCapacity  int
}

// Decision holds the tunables of the evaluators.
type Decision struct {
	AmountMin     decimal.Decimal
	AmountMax     decimal.Decimal
	MinNameLength int
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	addr := os.Getenv("BANKAPI_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	cfg := Server{
		Addr:        addr,
		LogLevel:    envOr("LOG_LEVEL", "info"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			CacheTTL:     time.Minute,
		},
		Kafka: KafkaConfig{
			AuditTopic:      envOr("AUDIT_TOPIC", "bankapi.outcomes"),
			AuditBuffer:     256,
			DeliveryTimeout: 5 * time.Second,
			RecordRetries:   3,
			MirrorTimeout:   2 * time.Second,
			RetryInterval:   10 * time.Second,
			DrainTimeout:    10 * time.Second,
			MemoryCapacity:  10_000,
		},
		Decision: Decision{
			AmountMin:     decimal.RequireFromString("0.01"),
			AmountMax:     decimal.RequireFromString("1000000.00"),
			MinNameLength: 3,
		},
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.Kafka.Brokers = append(cfg.Kafka.Brokers, b)
			}
		}
	}

	var err error
	if cfg.Redis.PoolSize, err = envInt("REDIS_POOL_SIZE", cfg.Redis.PoolSize); err != nil {
		return Server{}, err
	}
	if cfg.Redis.MinIdleConns, err = envInt("REDIS_MIN_IDLE_CONNS", cfg.Redis.MinIdleConns); err != nil {
		return Server{}, err
	}
	if cfg.Redis.CacheTTL, err = envDuration("ACCOUNT_CACHE_TTL", cfg.Redis.CacheTTL); err != nil {
		return Server{}, err
	}
	if cfg.Kafka.AuditBuffer, err = envInt("AUDIT_BUFFER", cfg.Kafka.AuditBuffer); err != nil {
		return Server{}, err
	}
	if cfg.Kafka.DeliveryTimeout, err = envDuration("KAFKA_DELIVERY_TIMEOUT", cfg.Kafka.DeliveryTimeout); err != nil {
		return Server{}, err
	}
	if cfg.Kafka.RecordRetries, err = envInt("KAFKA_RECORD_RETRIES", cfg.Kafka.RecordRetries); err != nil {
		return Server{}, err
	}
	if cfg.Kafka.MirrorTimeout, err = envDuration("AUDIT_MIRROR_TIMEOUT", cfg.Kafka.MirrorTimeout); err != nil {
		return Server{}, err
	}
	if cfg.Kafka.RetryInterval, err = envDuration("AUDIT_MIRROR_RETRY_INTERVAL", cfg.Kafka.RetryInterval); err != nil {
		return Server{}, err
	}
	if cfg.Kafka.DrainTimeout, err = envDuration("AUDIT_DRAIN_TIMEOUT", cfg.Kafka.DrainTimeout); err != nil {
		return Server{}, err
	}
	if cfg.Kafka.MemoryCapacity, err = envInt("AUDIT_MEMORY_CAPACITY", cfg.Kafka.MemoryCapacity); err != nil {
		return Server{}, err
	}
	if cfg.Kafka.DeliveryTimeout <= 0 || cfg.Kafka.MirrorTimeout <= 0 || cfg.Kafka.DrainTimeout <= 0 {
		return Server{}, fmt.Errorf("audit timeouts must be positive")
	}
	if cfg.Kafka.MemoryCapacity <= 0 {
		return Server{}, fmt.Errorf("AUDIT_MEMORY_CAPACITY must be positive, got %d", cfg.Kafka.MemoryCapacity)
	}
	if cfg.Decision.MinNameLength, err = envInt("MIN_NAME_LENGTH", cfg.Decision.MinNameLength); err != nil {
		return Server{}, err
	}
	if cfg.Decision.MinNameLength <= 0 {
		return Server{}, fmt.Errorf("MIN_NAME_LENGTH must be positive, got %d", cfg.Decision.MinNameLength)
	}
	if cfg.Decision.AmountMin, err = envDecimal("AMOUNT_MIN", cfg.Decision.AmountMin); err != nil {
		return Server{}, err
	}
	if cfg.Decision.AmountMax, err = envDecimal("AMOUNT_MAX", cfg.Decision.AmountMax); err != nil {
		return Server{}, err
	}
	if !cfg.Decision.AmountMin.IsPositive() || cfg.Decision.AmountMin.GreaterThan(cfg.Decision.AmountMax) {
		return Server{}, fmt.Errorf("invalid amount bounds: min %s, max %s", cfg.Decision.AmountMin, cfg.Decision.AmountMax)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}

func envDecimal(key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}
