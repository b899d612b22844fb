package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

const (
	defaultMaxRetries = 5

	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
)

// sleep is replaced in tests
var sleep = time.Sleep

// InitDatabase opens the catalog database described by cfg. SQLite and PostgreSQL
// are supported. Failed attempts are retried with exponential backoff.
func InitDatabase(cfg DatabaseConfig) (*gorm.DB, error) {
	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	log.WithFields(logrus.Fields{
		"db_driver":   cfg.driver(),
		"db_host":     cfg.Host,
		"db_name":     cfg.Name,
		"db_path":     cfg.Path,
		"max_retries": maxRetries,
	}).Info("Initializing database connection")

	for attempt := 1; ; attempt++ {
		db, err := connect(dialector)
		if err == nil {
			configureConnectionPool(db, cfg.InMemory())
			log.WithFields(logrus.Fields{
				"db_driver": cfg.driver(),
				"attempt":   attempt,
			}).Info("Database initialized successfully")
			return db, nil
		}

		log.WithError(err).WithField("attempt", attempt).Warn("Database connection attempt failed")
		if attempt == maxRetries {
			return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
		}
		delay := backoff(attempt)
		log.WithField("delay", delay).Info("Retrying database connection")
		sleep(delay)
	}
}

// openDialector picks the gorm driver for cfg
func openDialector(cfg DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.driver() {
	case "postgres":
		return postgres.Open(cfg.DSN()), nil
	case "sqlite":
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s (supported: postgres, sqlite)", cfg.Driver)
	}
}

// connect opens a session and pings it
func connect(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting database instance: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return db, nil
}

// backoff returns the wait after the given failed attempt: 1s, 2s, 4s...
func backoff(attempt int) time.Duration {
	return time.Duration(1<<(attempt-1)) * time.Second
}

func configureConnectionPool(db *gorm.DB, inMemory bool) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	// every connection to ":memory:" is a separate database
	if inMemory {
		sqlDB.SetMaxOpenConns(1)
		log.Debug("In-memory database, connection pool pinned to one connection")
		return
	}
	setPool(sqlDB)
}

func setPool(sqlDB *sql.DB) {
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	log.WithFields(logrus.Fields{
		"max_open_conns":    maxOpenConns,
		"max_idle_conns":    maxIdleConns,
		"conn_max_lifetime": connMaxLifetime.String(),
	}).Debug("Connection pool configured")
}
