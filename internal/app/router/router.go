package router

import (
	authhandler "library_backend/internal/feature/auth/transport/handler"
	libraryhandler "library_backend/internal/feature/library/transport/handler"
	membershiphandler "library_backend/internal/feature/membership/transport/handler"
	"library_backend/internal/platform/http/handler"
	jwtmw "library_backend/internal/platform/jwt"
	"library_backend/internal/shared/ratelimiter"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(authHandler *authhandler.AuthHandler, libraries *libraryhandler.LibraryHandler,
	memberships *membershiphandler.MembershipHandler, resolver jwtmw.SessionResolver,
	loginLimiter ratelimiter.RateLimiterInterface) *gin.Engine {
	r := gin.Default()

	// CORS追加 ブラウザクライアント向け
	r.Use(cors.Default())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)

	// 認証エンドポイントはIPごとにレート制限
	public := r.Group("/")
	public.Use(ratelimiter.Middleware(loginLimiter))
	{
		// 新規ユーザー登録
		public.POST("/signup", authHandler.Signup)
		// ログイン（セッション発行）
		public.POST("/login", authHandler.Login)
	}

	// 認証必須のルート
	// r.Group("/") でルートグループを作成
	auth := r.Group("/")
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → セッショントークン（Authorizationヘッダーまたはクッキー）が必要になる
	auth.Use(jwtmw.AuthRequired(resolver))
	{
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", authHandler.Me)
		auth.GET("/me/libraries", memberships.ListMine)

		auth.GET("/libraries", libraries.List)
		auth.POST("/libraries", libraries.Create)
		auth.GET("/libraries/:id", libraries.Get)
		auth.DELETE("/libraries/:id", libraries.Delete)

		auth.POST("/libraries/:id/join", memberships.Join)
		auth.DELETE("/libraries/:id/join", memberships.Leave)
		auth.GET("/libraries/:id/members", memberships.ListMembers)
	}

	return r
}
