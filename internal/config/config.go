package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Драйверы хранилища бронирований
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMongo    = "mongo"
	StorageDriverMemory   = "memory"
)

// Хранилища сессий мастера
const (
	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Storage   StorageConfig   `toml:"storage"`
	Database  DatabaseConfig  `toml:"database"`
	Mongo     MongoConfig     `toml:"mongo"`
	Redis     RedisConfig     `toml:"redis"`
	Sessions  SessionsConfig  `toml:"sessions"`
	Wizard    WizardConfig    `toml:"wizard"`
	Catalog   CatalogConfig   `toml:"catalog"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Queue     QueueConfig     `toml:"queue"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// StorageConfig выбор хранилища бронирований
type StorageConfig struct {
	Driver string `toml:"driver"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// MongoConfig настройки MongoDB
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
	Timeout  int    `toml:"timeout"`
}

// RedisConfig настройки Redis
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// SessionsConfig настройки хранения сессий мастера
type SessionsConfig struct {
	Store             string `toml:"store"`
	TTLMinutes        int    `toml:"ttl_minutes"`
	SubmitLockSeconds int    `toml:"submit_lock_seconds"`
}

// TTL время жизни сессии
func (c SessionsConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// SubmitLock время удержания блокировки отправки
func (c SessionsConfig) SubmitLock() time.Duration {
	return time.Duration(c.SubmitLockSeconds) * time.Second
}

// WizardConfig настройки мастера бронирования
type WizardConfig struct {
	SubmitTimeoutSeconds int `toml:"submit_timeout_seconds"`

	// Переопределяет список слотов каталога, если не пуст
	TimeSlots []string `toml:"time_slots"`
}

// SubmitTimeout таймаут на сохранение бронирования
func (c WizardConfig) SubmitTimeout() time.Duration {
	return time.Duration(c.SubmitTimeoutSeconds) * time.Second
}

// CatalogConfig источник каталога; пустой путь - встроенный каталог
type CatalogConfig struct {
	Path string `toml:"path"`
}

// RateLimitConfig ограничение частоты отправки бронирований
type RateLimitConfig struct {
	RPS   float64 `toml:"rps"`
	Burst int     `toml:"burst"`
}

// QueueConfig настройки фоновой очереди asynq для карточек клиентов.
// Выключенная очередь означает синхронную запись карточки после бронирования.
type QueueConfig struct {
	Enabled        bool   `toml:"enabled"`
	RedisDB        int    `toml:"redis_db"`
	Name           string `toml:"name"`
	Concurrency    int    `toml:"concurrency"`
	MaxRetry       int    `toml:"max_retry"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout таймаут обработки одной задачи
func (c QueueConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load читает конфигурацию из TOML файла, заполняет значения по умолчанию и валидирует
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default конфигурация по умолчанию: память вместо БД, метрики включены
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "spa-booking",
		},
		Storage: StorageConfig{
			Driver: StorageDriverMemory,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "spa",
			Timeout:  10,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Sessions: SessionsConfig{
			Store:             SessionStoreMemory,
			TTLMinutes:        30,
			SubmitLockSeconds: 15,
		},
		Wizard: WizardConfig{
			SubmitTimeoutSeconds: 10,
		},
		RateLimit: RateLimitConfig{
			RPS:   5,
			Burst: 10,
		},
		Queue: QueueConfig{
			RedisDB:        1,
			Name:           "customers",
			Concurrency:    5,
			MaxRetry:       5,
			TimeoutSeconds: 30,
		},
	}
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres", ErrInvalidConfig)
		}
	case StorageDriverMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return fmt.Errorf("%w: mongo.uri and mongo.database are required for mongo", ErrInvalidConfig)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	switch c.Sessions.Store {
	case SessionStoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis.addr is required for redis session store", ErrInvalidConfig)
		}
	case SessionStoreMemory:
	default:
		return fmt.Errorf("%w: unknown sessions.store %q", ErrInvalidConfig, c.Sessions.Store)
	}

	if c.Sessions.TTLMinutes <= 0 {
		return fmt.Errorf("%w: sessions.ttl_minutes must be positive", ErrInvalidConfig)
	}
	if c.Sessions.SubmitLockSeconds <= 0 {
		return fmt.Errorf("%w: sessions.submit_lock_seconds must be positive", ErrInvalidConfig)
	}
	if c.Wizard.SubmitTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: wizard.submit_timeout_seconds must be positive", ErrInvalidConfig)
	}
	// Блокировка не должна истечь раньше, чем завершится отправка
	if c.Sessions.SubmitLock() <= c.Wizard.SubmitTimeout() {
		return fmt.Errorf("%w: sessions.submit_lock_seconds must exceed wizard.submit_timeout_seconds", ErrInvalidConfig)
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("%w: rate_limit values must not be negative", ErrInvalidConfig)
	}
	if c.Queue.Enabled {
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis.addr is required when queue is enabled", ErrInvalidConfig)
		}
		if c.Queue.Name == "" || c.Queue.Concurrency <= 0 {
			return fmt.Errorf("%w: queue.name and positive queue.concurrency are required", ErrInvalidConfig)
		}
		if c.Queue.MaxRetry < 0 {
			return fmt.Errorf("%w: queue.max_retry must not be negative", ErrInvalidConfig)
		}
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}

	return nil
}
