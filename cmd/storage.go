package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/m04kA/SMC-SpaBooking/internal/catalog"
	"github.com/m04kA/SMC-SpaBooking/internal/config"
	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	sessionStore "github.com/m04kA/SMC-SpaBooking/internal/infra/sessions"
	bookingRepo "github.com/m04kA/SMC-SpaBooking/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-SpaBooking/internal/infra/storage/customer"
	"github.com/m04kA/SMC-SpaBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SpaBooking/internal/infra/storage/mongostore"
	"github.com/m04kA/SMC-SpaBooking/internal/service/sessions"
	"github.com/m04kA/SMC-SpaBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaBooking/pkg/logger"
	"github.com/m04kA/SMC-SpaBooking/pkg/metrics"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// bookingStorage хранилище бронирований, общее для всех драйверов
type bookingStorage interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id string) (*domain.Booking, error)
	Ping(ctx context.Context) error
}

// customerStorage хранилище карточек клиентов
type customerStorage interface {
	Upsert(ctx context.Context, record *domain.CustomerRecord) error
}

// sessionStorage хранилище сессий мастера с проверкой доступности
type sessionStorage interface {
	sessions.SessionStore
	Ping(ctx context.Context) error
}

type storage struct {
	bookings  bookingStorage
	customers customerStorage
	close     func()
}

// openStorage подключает хранилище бронирований по storage.driver
func openStorage(cfg *config.Config, log *logger.Logger, m *metrics.Metrics, stopMetrics <-chan struct{}) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		return openPostgres(cfg, log, m, stopMetrics)
	case config.StorageDriverMongo:
		return openMongo(cfg, log)
	default:
		log.Info("Using in-memory booking storage")
		return &storage{
			bookings:  memory.NewBookingRepository(nil),
			customers: memory.NewCustomerRepository(),
			close:     func() {},
		}, nil
	}
}

func openPostgres(cfg *config.Config, log *logger.Logger, m *metrics.Metrics, stopMetrics <-chan struct{}) (*storage, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Репозитории с обёрткой метрик или без
	var executor dbmetrics.DBExecutor = db
	if m != nil {
		executor = dbmetrics.WrapWithDefault(db, m, stopMetrics)
		log.Info("Database metrics collection started")
	}

	return &storage{
		bookings:  bookingRepo.NewRepository(executor),
		customers: customerRepo.NewRepository(executor),
		close: func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close database: %v", err)
			}
		},
	}, nil
}

func openMongo(cfg *config.Config, log *logger.Logger) (*storage, error) {
	timeout := time.Duration(cfg.Mongo.Timeout) * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	bookings := mongostore.NewBookingRepository(client, cfg.Mongo.Database, timeout)
	if err := bookings.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	if err := bookings.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ensure mongo indexes: %w", err)
	}
	log.Info("Successfully connected to mongo (db=%s)", cfg.Mongo.Database)

	return &storage{
		bookings:  bookings,
		customers: mongostore.NewCustomerRepository(client, cfg.Mongo.Database, timeout),
		close: func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error("Failed to disconnect mongo: %v", err)
			}
		},
	}, nil
}

// openSessionStore подключает хранилище сессий по sessions.store
func openSessionStore(cfg *config.Config, log *logger.Logger) (sessionStorage, func(), error) {
	if cfg.Sessions.Store != config.SessionStoreRedis {
		log.Info("Using in-memory session store (ttl=%s)", cfg.Sessions.TTL())
		return sessionStore.NewMemoryStore(cfg.Sessions.TTL(), cfg.Sessions.SubmitLock(), nil), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	store := sessionStore.NewRedisStore(client, cfg.Sessions.TTL(), cfg.Sessions.SubmitLock())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	return store, func() {
		if err := client.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}, nil
}

// loadCatalog читает каталог из файла или берет встроенный
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	cat := catalog.Default()
	if cfg.Catalog.Path != "" {
		loaded, err := catalog.Load(cfg.Catalog.Path)
		if err != nil {
			return nil, err
		}
		cat = loaded
	}

	if len(cfg.Wizard.TimeSlots) == 0 {
		return cat, nil
	}

	slots := make([]types.TimeString, len(cfg.Wizard.TimeSlots))
	for i, s := range cfg.Wizard.TimeSlots {
		slots[i] = types.TimeString(s)
	}
	return cat.WithTimeSlots(slots)
}
