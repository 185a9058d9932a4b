package database

import (
	"fmt"
	"log/slog"

	"github.com/yukikurage/twitter-clone-api/internal/config"
	"github.com/yukikurage/twitter-clone-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Models lists every persisted entity in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Tweet{},
		&models.Reply{},
		&models.Favorite{},
		&models.Follower{},
	}
}

func Connect(cfg *config.Config) error {
	dialector, err := Dialector(cfg)
	if err != nil {
		return err
	}

	logLevel := logger.Warn
	if cfg.GinMode == "debug" {
		logLevel = logger.Info
	}

	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established", "driver", cfg.DBDriver, "host", cfg.DBHost)
	return nil
}

// Dialector builds the gorm dialector for the configured driver.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBName,
		)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
			cfg.DBSSLMode,
		)
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

func Migrate() error {
	slog.Info("running database migrations")
	if err := DB.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := AddIndexes(DB); err != nil {
		return err
	}
	slog.Info("database migrations completed")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (used for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
