// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"library_backend/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// sessionTTL はセッションの有効期間を定義します。
	sessionTTL = 7 * 24 * time.Hour
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、エラーを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、エラーを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、エラーを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// TokenGenerator はセッショントークンの署名付きラッパー生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenGenerator interface {
	// GenerateToken は指定されたセッションIDとユーザーIDの署名済みトークンを生成します。
	GenerateToken(sessionID string, userID uint) (string, error)
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users    UserRepository
	sessions SessionRepository
	tokens   TokenGenerator
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, sessions SessionRepository, tokens TokenGenerator) *authUsecase {
	return &authUsecase{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// normalizeEmail はメールアドレスを小文字に正規化します。
// メールアドレスの一意性判定を大文字小文字を区別せずに行うためです。
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// newSessionID は暗号論的乱数から64文字の16進セッショントークンを生成します。
func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Signup はハッシュ化されたパスワードで新規ユーザーを登録します。
func (u *authUsecase) Signup(ctx context.Context, email, password, firstName, lastName string) error {
	// パスワード強度を検証
	if err := validatePassword(password); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{
		Email:     normalizeEmail(email),
		Password:  string(hashed),
		FirstName: firstName,
		LastName:  lastName,
	}
	return u.users.Create(ctx, user)
}

// Login はユーザーを認証し、成功時にサーバー側セッションを作成して署名済みトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password, userAgent, ipAddress string) (string, error) {
	// メールアドレスでユーザーを検索
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // ダミーハッシュ
	if err == nil {
		passwordHash = user.Password
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	// 第1引数はハッシュ化パスワード、第2引数は平文パスワード
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || compareErr != nil {
		return "", ErrInvalidCredentials
	}

	// サーバー側セッションを作成
	sid, err := newSessionID()
	if err != nil {
		return "", err
	}
	now := time.Now()
	session := &entity.Session{
		ID:        sid,
		UserID:    user.ID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	// 注入されたジェネレーターを使用して署名済みトークンを生成
	token, tokenErr := u.tokens.GenerateToken(sid, user.ID)
	if tokenErr != nil {
		return "", fmt.Errorf("failed to generate token: %w", tokenErr)
	}

	return token, nil
}

// CurrentUser はセッションIDから現在のユーザーを解決します。
// セッションが存在しない・失効済み・期限切れの場合、およびユーザーが
// 既に削除されている場合は「未ログイン」としてエラーを返します。
func (u *authUsecase) CurrentUser(ctx context.Context, sessionID string) (*entity.User, error) {
	session, err := u.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsRevoked() {
		return nil, ErrSessionRevoked
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	// 削除済みユーザーのセッションは「未ログイン」として扱う
	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Logout は指定されたセッションを失効させます。
func (u *authUsecase) Logout(ctx context.Context, sessionID string) error {
	return u.sessions.Revoke(ctx, sessionID)
}
