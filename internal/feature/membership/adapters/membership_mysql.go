// Package adapters はmembershipフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	authentity "library_backend/internal/feature/auth/domain/entity"
	libraryentity "library_backend/internal/feature/library/domain/entity"
	"library_backend/internal/feature/membership/domain/entity"
	"library_backend/internal/feature/membership/usecase"
)

// membershipMySQL はMembershipRepositoryインターフェースのMySQL実装です。
type membershipMySQL struct {
	db *gorm.DB
}

// membershipMySQLがMembershipRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MembershipRepository = (*membershipMySQL)(nil)

// NewMembershipMySQL は指定されたDB接続でmembershipMySQLリポジトリの新しいインスタンスを生成します。
func NewMembershipMySQL(db *gorm.DB) *membershipMySQL {
	return &membershipMySQL{db: db}
}

// Create はメンバーシップをデータベースに追加します。
// 複合ユニークインデックスに違反した場合、usecase.ErrAlreadyJoinedを返します。
func (r *membershipMySQL) Create(ctx context.Context, m *entity.Membership) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		// MySQLエラー1062: ユニークキーの重複エントリ（同時Joinの競合時）
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return usecase.ErrAlreadyJoined
		}
		return err
	}
	return nil
}

// Delete は(user, library)ペアのメンバーシップを削除します。
// 該当行がない場合、usecase.ErrMembershipNotFoundを返します。
func (r *membershipMySQL) Delete(ctx context.Context, userID, libraryID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND library_id = ?", userID, libraryID).
		Delete(&entity.Membership{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrMembershipNotFound
	}
	return nil
}

// Exists は(user, library)ペアのメンバーシップが存在するかを返します。
func (r *membershipMySQL) Exists(ctx context.Context, userID, libraryID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Membership{}).
		Where("user_id = ? AND library_id = ?", userID, libraryID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListLibrariesByUserID はユーザーが参加しているすべての図書館を参加順に返します。
// 暗黙の関連トラバーサルではなく、明示的なJOINクエリで取得します。
func (r *membershipMySQL) ListLibrariesByUserID(ctx context.Context, userID uint) ([]libraryentity.Library, error) {
	var libraries []libraryentity.Library
	if err := r.db.WithContext(ctx).
		Model(&libraryentity.Library{}).
		Joins("JOIN memberships ON memberships.library_id = libraries.id").
		Where("memberships.user_id = ?", userID).
		Order("memberships.id ASC").
		Find(&libraries).Error; err != nil {
		return nil, err
	}
	return libraries, nil
}

// ListUsersByLibraryID は図書館に参加しているすべてのユーザーを参加順に返します。
func (r *membershipMySQL) ListUsersByLibraryID(ctx context.Context, libraryID uint) ([]authentity.User, error) {
	var users []authentity.User
	if err := r.db.WithContext(ctx).
		Model(&authentity.User{}).
		Joins("JOIN memberships ON memberships.user_id = users.id").
		Where("memberships.library_id = ?", libraryID).
		Order("memberships.id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
