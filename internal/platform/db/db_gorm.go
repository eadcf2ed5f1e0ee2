// Package db はGORMによるデータベース接続の初期化を提供します。
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	authadapters "library_backend/internal/feature/auth/adapters"
	authentity "library_backend/internal/feature/auth/domain/entity"
	libraryentity "library_backend/internal/feature/library/domain/entity"
	membershipentity "library_backend/internal/feature/membership/domain/entity"
)

// connectTimeout はDB接続リトライの打ち切りまでの時間です。
const connectTimeout = 60 * time.Second

// Config holds the MySQL connection settings read from the environment.
type Config struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string

	// InstanceName is the Cloud SQL instance connection name.
	// When set, it takes precedence over Host/Port.
	InstanceName string
}

// LoadConfig reads the connection settings from environment variables.
func LoadConfig() Config {
	return Config{
		User:         os.Getenv("DB_USER"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         os.Getenv("DB_NAME"),
		Host:         os.Getenv("DB_HOST"),
		Port:         os.Getenv("DB_PORT"),
		InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
	}
}

// BuildDSN builds the MySQL DSN string for the given config.
// Cloud SQL Unix sockets are used when InstanceName is set.
func BuildDSN(cfg Config) string {
	if cfg.InstanceName != "" {
		return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			cfg.User, cfg.Password, cfg.InstanceName, cfg.Name)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
}

// Opener opens a GORM connection for the given DSN.
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry tries to open the connection until timeout elapses.
// コンテナ起動直後はDBがまだ受け付けていないことがあるため、3秒間隔でリトライします。
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %v: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// OpenDB opens the MySQL connection, retrying until connectTimeout elapses.
// When RUN_MIGRATIONS=true, it also runs GORM AutoMigrate for all tables.
func OpenDB() *gorm.DB {
	dsn := BuildDSN(LoadConfig())

	db, err := ConnectWithRetry(dsn, connectTimeout, func(dsn string) (*gorm.DB, error) {
		return gorm.Open(gmysql.Open(dsn), &gorm.Config{})
	})
	if err != nil {
		log.Fatal(err)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（User, Session, Library, Membership）
		if err := db.AutoMigrate(
			&authentity.User{},
			&authadapters.SessionModel{},
			&libraryentity.Library{},
			&membershipentity.Membership{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
