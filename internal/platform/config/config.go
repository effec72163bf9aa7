// Package config reads the client settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/srgjo27/seat_hold/internal/core/domain"
)

type Config struct {
	InventoryURL string        `validate:"required,url"`
	HTTPTimeout  time.Duration `validate:"gt=0"`
	EventID      string        `validate:"required"`
	UserID       domain.UserID `validate:"required"`
	AccessToken  string

	SeatPrice       decimal.Decimal
	MaxSeatsPerUser int `validate:"gte=1"`
	Rows            int `validate:"gte=1,lte=26"`
	Cols            int `validate:"gte=1"`

	TickInterval       time.Duration `validate:"gt=0"`
	GraceDelay         time.Duration `validate:"gt=0"`
	ReleaseReloadDelay time.Duration `validate:"gt=0"`

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=text json"`

	Redis     RedisConfig
	LedgerDSN string
	AMQP      AMQPConfig
}

// RedisConfig enables the seat map cache when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int           `validate:"gte=0"`
	TTL      time.Duration `validate:"gt=0"`
}

// AMQPConfig enables outcome publishing when URL is set.
type AMQPConfig struct {
	URL   string
	Queue string `validate:"required"`
}

// LoadDotEnv loads the given files (default .env) into the process
// environment without overriding variables already set. It reports whether a
// file was found.
func LoadDotEnv(files ...string) (bool, error) {
	if err := godotenv.Load(files...); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func Load() (*Config, error) {
	p := &parser{}

	cfg := &Config{
		InventoryURL: strings.TrimRight(getenv("SEATHOLD_INVENTORY_URL", "http://localhost:5000"), "/"),
		AccessToken:  os.Getenv("SEATHOLD_ACCESS_TOKEN"),
		HTTPTimeout:  p.duration("SEATHOLD_HTTP_TIMEOUT", 10*time.Second),
		EventID:      os.Getenv("SEATHOLD_EVENT_ID"),
		UserID:       domain.UserID(os.Getenv("SEATHOLD_USER_ID")),

		SeatPrice:       p.decimal("SEATHOLD_SEAT_PRICE", decimal.Zero),
		MaxSeatsPerUser: p.int("SEATHOLD_MAX_SEATS", 4),
		Rows:            p.int("SEATHOLD_ROWS", 10),
		Cols:            p.int("SEATHOLD_COLS", 10),

		TickInterval:       p.duration("SEATHOLD_TICK_INTERVAL", time.Second),
		GraceDelay:         p.duration("SEATHOLD_GRACE_DELAY", 3*time.Second),
		ReleaseReloadDelay: p.duration("SEATHOLD_RELEASE_RELOAD_DELAY", 500*time.Millisecond),

		LogLevel:  strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getenv("LOG_FORMAT", "text")),

		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       p.int("REDIS_DB", 0),
			TTL:      p.duration("SEATHOLD_CACHE_TTL", 2*time.Second),
		},
		LedgerDSN: os.Getenv("SEATHOLD_LEDGER_DSN"),
		AMQP: AMQPConfig{
			URL:   getenv("AMQP_URL", os.Getenv("RABBITMQ_URL")),
			Queue: getenv("SEATHOLD_OUTCOME_QUEUE", "seathold.outcomes"),
		},
	}

	if err := p.err(); err != nil {
		return nil, err
	}

	if cfg.UserID.IsZero() && cfg.AccessToken != "" {
		id, err := UserIDFromToken(cfg.AccessToken)
		if err != nil {
			return nil, err
		}
		cfg.UserID = id
	}

	if cfg.SeatPrice.IsNegative() {
		return nil, fmt.Errorf("SEATHOLD_SEAT_PRICE must not be negative, got %s", cfg.SeatPrice)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// UserIDFromToken reads the user_id (or sub) claim without verifying the
// signature; the inventory does the verification.
func UserIDFromToken(token string) (domain.UserID, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("failed to parse access token: %w", err)
	}

	for _, name := range []string{"user_id", "sub"} {
		switch v := claims[name].(type) {
		case string:
			if v != "" {
				return domain.UserID(v), nil
			}
		case float64:
			return domain.UserID(strconv.FormatFloat(v, 'f', -1, 64)), nil
		}
	}

	return "", errors.New("access token carries no user_id claim")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

type parser struct {
	errs []error
}

func (p *parser) int(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

func (p *parser) decimal(key string, def decimal.Decimal) decimal.Decimal {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

func (p *parser) err() error {
	return errors.Join(p.errs...)
}
