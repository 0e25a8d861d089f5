package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Payments      PaymentsConfig      `toml:"payments"`
	Ledger        LedgerConfig        `toml:"ledger"`
	Notifications NotificationsConfig `toml:"notifications"`
	Geocoding     GeocodingConfig     `toml:"geocoding"`
	Auth          AuthConfig          `toml:"auth"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" env:"DB_HOST"`
	Port            int    `toml:"port" env:"DB_PORT"`
	User            string `toml:"user" env:"DB_USER"`
	Password        string `toml:"password" env:"DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level" env:"LOG_LEVEL"`
	File  string `toml:"file" env:"LOG_FILE"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"METRICS_ENABLED"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type PaymentsConfig struct {
	SecretKey     string `toml:"secret_key" env:"STRIPE_SECRET_KEY"`
	WebhookSecret string `toml:"webhook_secret" env:"STRIPE_WEBHOOK_SECRET"`
	Timeout       int    `toml:"timeout"`
}

type LedgerConfig struct {
	PlatformFeeRate string `toml:"platform_fee_rate"`
	HoldDays        int    `toml:"hold_days"`
}

// FeeRate ставка комиссии платформы
func (c LedgerConfig) FeeRate() decimal.Decimal {
	return decimal.RequireFromString(c.PlatformFeeRate)
}

// HoldPeriod время удержания средств после оплаты
func (c LedgerConfig) HoldPeriod() time.Duration {
	return time.Duration(c.HoldDays) * 24 * time.Hour
}

type NotificationsConfig struct {
	AMQPURL      string `toml:"amqp_url" env:"AMQP_URL"`
	Exchange     string `toml:"exchange"`
	Workers      int    `toml:"workers"`
	QueueSize    int    `toml:"queue_size"`
	Timeout      int    `toml:"timeout"`
	OperatorRoom string `toml:"operator_room"`
}

type GeocodingConfig struct {
	URL     string `toml:"url" env:"GEOCODING_URL"`
	APIKey  string `toml:"api_key" env:"GEOCODING_API_KEY"`
	Timeout int    `toml:"timeout"`
}

type AuthConfig struct {
	// OperatorAccountIDs аккаунты, которым доступны операции оператора (завершение выплат)
	OperatorAccountIDs []string `toml:"operator_account_ids" env:"OPERATOR_ACCOUNT_IDS" envSeparator:","`
}

// Operators разобранный список операторов
func (c AuthConfig) Operators() ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(c.OperatorAccountIDs))
	for _, raw := range c.OperatorAccountIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid operator account id %q: %w", raw, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Load читает TOML файл, затем .env (если есть) и переменные окружения
// Переменные окружения имеют приоритет над файлом
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 {
		return errors.New("config: server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return errors.New("config: database.host and database.dbname are required")
	}
	if _, err := decimal.NewFromString(c.Ledger.PlatformFeeRate); err != nil {
		return fmt.Errorf("config: invalid ledger.platform_fee_rate: %w", err)
	}
	rate := c.Ledger.FeeRate()
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return errors.New("config: ledger.platform_fee_rate must be in [0, 1)")
	}
	if c.Ledger.HoldDays < 0 {
		return errors.New("config: ledger.hold_days must not be negative")
	}
	if c.Notifications.Workers <= 0 || c.Notifications.QueueSize <= 0 {
		return errors.New("config: notifications.workers and notifications.queue_size must be positive")
	}
	if _, err := c.Auth.Operators(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "reservation_service"},
		Payments: PaymentsConfig{
			Timeout: 10,
		},
		Ledger: LedgerConfig{
			PlatformFeeRate: "0.08",
			HoldDays:        2,
		},
		Notifications: NotificationsConfig{
			Exchange:     "reservations.notifications",
			Workers:      4,
			QueueSize:    256,
			Timeout:      5,
			OperatorRoom: "operators",
		},
		Geocoding: GeocodingConfig{Timeout: 5},
	}
}
