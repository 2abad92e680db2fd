package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	PublicBaseURL  string
	RendererURL    string
	RenderTimeout  time.Duration
	ArchiveTimeout time.Duration

	DeliveryFee           decimal.Decimal
	FreeDeliveryThreshold decimal.Decimal

	KafkaHost              string
	KafkaOrderChangedTopic string

	RedisAddr      string
	IdempotencyTTL time.Duration

	OrphanGracePeriod    time.Duration
	StatusUpdateAttempts int
}

// LoadConfig reads the configuration through getenv, usually os.Getenv.
// Unset optional values fall back to defaults; malformed values are errors.
func LoadConfig(getenv func(string) string) (Config, error) {
	r := envReader{getenv: getenv}

	cfg := Config{
		HTTPPort:               r.str("HTTP_PORT", "8080"),
		DBHost:                 r.str("DB_HOST", "localhost"),
		DBPort:                 r.str("DB_PORT", "5432"),
		DBUser:                 r.str("DB_USER", ""),
		DBPassword:             r.str("DB_PASSWORD", ""),
		DBName:                 r.str("DB_NAME", ""),
		DBSslMode:              r.str("DB_SSLMODE", "disable"),
		RendererURL:            r.str("RENDERER_URL", ""),
		RenderTimeout:          r.duration("RENDER_TIMEOUT", commands.DefaultRenderTimeout),
		ArchiveTimeout:         r.duration("ARCHIVE_TIMEOUT", commands.DefaultArchiveTimeout),
		DeliveryFee:            r.amount("DELIVERY_FEE", decimal.Zero),
		FreeDeliveryThreshold:  r.amount("FREE_DELIVERY_THRESHOLD", decimal.Zero),
		KafkaHost:              r.str("KAFKA_HOST", ""),
		KafkaOrderChangedTopic: r.str("KAFKA_ORDER_CHANGED_TOPIC", "order.changed"),
		RedisAddr:              r.str("REDIS_ADDR", ""),
		IdempotencyTTL:         r.duration("IDEMPOTENCY_TTL", 24*time.Hour),
		OrphanGracePeriod:      r.duration("ORPHAN_GRACE_PERIOD", commands.DefaultOrphanGracePeriod),
		StatusUpdateAttempts:   r.integer("STATUS_UPDATE_ATTEMPTS", commands.DefaultStatusUpdateAttempts),
	}
	cfg.PublicBaseURL = strings.TrimRight(r.str("PUBLIC_BASE_URL", "http://localhost:"+cfg.HTTPPort), "/")

	if cfg.DBName == "" {
		r.errs = append(r.errs, errs.NewValueIsRequiredError("DB_NAME"))
	}
	if cfg.StatusUpdateAttempts < 1 {
		r.errs = append(r.errs, errs.NewValueIsOutOfRangeError("STATUS_UPDATE_ATTEMPTS", cfg.StatusUpdateAttempts, 1, "unbounded"))
	}

	if err := errors.Join(r.errs...); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// DSN is the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

type envReader struct {
	getenv func(string) string
	errs   []error
}

func (r *envReader) str(key, fallback string) string {
	if v := strings.TrimSpace(r.getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (r *envReader) duration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(r.getenv(key))
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		r.errs = append(r.errs, errs.NewValueIsInvalidErrorWithCause(key, fmt.Errorf("%q is not a positive duration", raw)))
		return fallback
	}
	return d
}

func (r *envReader) integer(key string, fallback int) int {
	raw := strings.TrimSpace(r.getenv(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		r.errs = append(r.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
		return fallback
	}
	return n
}

func (r *envReader) amount(key string, fallback decimal.Decimal) decimal.Decimal {
	raw := strings.TrimSpace(r.getenv(key))
	if raw == "" {
		return fallback
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		r.errs = append(r.errs, errs.NewValueIsInvalidErrorWithCause(key, fmt.Errorf("%q is not a non-negative amount", raw)))
		return fallback
	}
	return d
}
