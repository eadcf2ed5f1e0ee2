// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"library_backend/internal/feature/auth/domain/entity"
	"library_backend/internal/feature/auth/transport/http/dto"
	jwtmw "library_backend/internal/platform/jwt"
)

// sessionCookieMaxAge はセッションCookieの有効期間（秒）です。
// usecase側のセッション有効期間（7日）と揃えています。
const sessionCookieMaxAge = 7 * 24 * 60 * 60

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Signup は指定されたメールアドレスとパスワードで新規ユーザーを登録します。
	Signup(ctx context.Context, email, password, firstName, lastName string) error
	// Login はユーザーを認証し、成功時に署名済みセッショントークンを返します。
	Login(ctx context.Context, email, password, userAgent, ipAddress string) (string, error)
	// Logout は指定されたセッションを失効させます。
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、JSONリクエスト/レスポンスを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup はユーザー登録APIエンドポイントを処理します。
// - リクエストJSONをSignupReqにバインド
// - バリデーションエラー時は400を返却
// - ユーザー作成失敗時（メール重複等）は409を返却
// - 成功時は201を返却
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.auth.Signup(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName); err != nil {
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("signup failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusConflict, gin.H{"error": "signup failed"})
		return
	}
	slog.Info("user signup successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, gin.H{"message": "ok"})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - リクエストJSONをLoginReqにバインド
// - バリデーションエラー時は400を返却
// - 認証失敗時は401を返却
// - 認証成功時はセッションCookieを設定し、トークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	// ブラウザクライアント向けにHttpOnly Cookieも設定する
	// （APIクライアントはAuthorizationヘッダーでトークンを送信できる）
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(jwtmw.SessionCookieName, token, sessionCookieMaxAge, "/", "", false, true)

	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.LoginRes{Token: token})
}

// Logout は現在のセッションを失効させ、セッションCookieを削除します。
// AuthRequiredミドルウェアの背後に配置される前提です。
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := c.GetString(jwtmw.ContextSessionID)
	if err := h.auth.Logout(c.Request.Context(), sessionID); err != nil {
		slog.Warn("logout failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(jwtmw.SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// Me は現在ログイン中のユーザーのプロフィールを返します。
// ユーザーはAuthRequiredミドルウェアがコンテキストに設定したものを利用します。
func (h *AuthHandler) Me(c *gin.Context) {
	v, ok := c.Get(jwtmw.ContextUser)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	user, ok := v.(*entity.User)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, dto.UserRes{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}
