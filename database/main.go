package database

import (
	"context"
	"fmt"
	log2 "log"
	"os"
	"time"

	"github.com/dhawton/log4g"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var MaxAttempts = 5
var DelayBetweenAttempts = time.Second * 10
var log = log4g.Category("db")

// Config holds the connection settings, normally read from DB_* environment
// variables.
type Config struct {
	Driver   string
	Username string
	Password string
	Hostname string
	Port     string
	Database string
}

// DSN returns the driver specific data source name.
func (c Config) DSN() (string, error) {
	switch c.Driver {
	case "mysql", "":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True", c.Username, c.Password, c.Hostname, c.Port, c.Database), nil
	case "postgres":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable", c.Hostname, c.Username, c.Password, c.Database, c.Port), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

func (c Config) dialector() (gorm.Dialector, error) {
	dsn, err := c.DSN()
	if err != nil {
		return nil, err
	}
	if c.Driver == "postgres" {
		return postgres.Open(dsn), nil
	}
	return mysql.Open(dsn), nil
}

// Connect opens the database, retrying up to MaxAttempts times, and migrates
// the crossings table.
func Connect(ctx context.Context, cfg Config) (*gorm.DB, error) {
	dialector, err := cfg.dialector()
	if err != nil {
		return nil, err
	}

	newLogger := logger.New(
		log2.New(os.Stdout, "\r\n", log2.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second,   // Slow SQL threshold
			LogLevel:                  logger.Silent, // Log level
			IgnoreRecordNotFoundError: true,          // Ignore ErrRecordNotFound error for logger
			Colorful:                  false,         // Disable color
		},
	)

	var db *gorm.DB
	for attempt := 1; ; attempt++ {
		db, err = gorm.Open(dialector, &gorm.Config{
			Logger: newLogger,
		})
		if err == nil {
			break
		}

		log.Error("Error connecting to database: " + err.Error())
		if attempt >= MaxAttempts {
			return nil, fmt.Errorf("connecting to %s database on %s: giving up after %d attempts: %w", cfg.Driver, cfg.Hostname, attempt, err)
		}
		log.Info(fmt.Sprintf("Attempt %d/%d Failed. Waiting %s before trying again...", attempt, MaxAttempts, DelayBetweenAttempts.String()))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(DelayBetweenAttempts):
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(10)

	if err := db.WithContext(ctx).AutoMigrate(&Crossing{}); err != nil {
		return nil, fmt.Errorf("migrating crossings table: %w", err)
	}

	return db, nil
}
