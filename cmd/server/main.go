package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"library_backend/internal/app/di"
	"library_backend/internal/app/router"
	authadapters "library_backend/internal/feature/auth/adapters"
	authhandler "library_backend/internal/feature/auth/transport/handler"
	authusecase "library_backend/internal/feature/auth/usecase"
	libraryadapters "library_backend/internal/feature/library/adapters"
	libraryhandler "library_backend/internal/feature/library/transport/handler"
	libraryusecase "library_backend/internal/feature/library/usecase"
	membershipadapters "library_backend/internal/feature/membership/adapters"
	membershiphandler "library_backend/internal/feature/membership/transport/handler"
	membershipusecase "library_backend/internal/feature/membership/usecase"
	"library_backend/internal/platform/cache"
	platformdb "library_backend/internal/platform/db"
	jwtmw "library_backend/internal/platform/jwt"
	platformredis "library_backend/internal/platform/redis"
	"library_backend/internal/shared/ratelimiter"
)

func main() {
	// .env（存在すれば）を読み込む
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found. Using environment variables.")
	}

	// db
	db := platformdb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserMySQL(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	libraryRepo := libraryadapters.NewLibraryMySQL(db)
	membershipRepo := membershipadapters.NewMembershipMySQL(db)

	// 図書館カタログをRedisキャッシュでラップ（夜間同期に合わせて失効）
	ttl := cache.TimeUntilNext3AM()
	cachedLibraryRepo := cache.NewCachingLibraryRepository(rdb, ttl, libraryRepo, "libraries")

	// 起動時に期限切れセッションを掃除
	{
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if n, err := sessionRepo.DeleteExpired(ctx); err != nil {
			log.Println("[WARN] Failed to sweep expired sessions:", err)
		} else if n > 0 {
			log.Printf("[INFO] Deleted %d expired sessions", n)
		}
		cancel()
	}

	// Usecase
	tokens := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), 7*24*time.Hour)
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, tokens)
	libraryUC := libraryusecase.NewLibraryUsecase(cachedLibraryRepo)
	membershipUC := membershipusecase.NewMembershipUsecase(membershipRepo, userRepo, cachedLibraryRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	libraryH := libraryhandler.NewLibraryHandler(libraryUC)
	membershipH := membershiphandler.NewMembershipHandler(membershipUC)

	// 認証エンドポイント用レートリミッター（IPごとに毎分10回）
	loginLimiter := ratelimiter.NewRateLimiter(10, time.Minute)

	// ルータ生成
	router := router.NewRouter(authH, libraryH, membershipH, authUC, loginLimiter)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
