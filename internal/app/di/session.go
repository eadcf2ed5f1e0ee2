// Package di はアプリケーション起動時の依存関係の組み立てを行います。
package di

import (
	"log/slog"

	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "library_backend/internal/feature/auth/adapters"
	authusecase "library_backend/internal/feature/auth/usecase"
	"library_backend/internal/platform/session"
)

// NewSessionRepository はセッションストアを選択します。
// Redisが利用可能な場合はRedisを、そうでない場合はMySQLをフォールバックとして使用します。
func NewSessionRepository(rdb *redisv9.Client, db *gorm.DB) authusecase.SessionRepository {
	if rdb != nil {
		slog.Info("session store: redis")
		return session.NewSessionRedis(rdb, "session")
	}
	slog.Info("session store: mysql")
	return authadapters.NewSessionMySQL(db)
}
