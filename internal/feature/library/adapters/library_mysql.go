// Package adapters はlibraryフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"library_backend/internal/feature/library/domain/entity"
	"library_backend/internal/feature/library/usecase"
)

// libraryMySQL はLibraryRepositoryインターフェースのMySQL実装です。
type libraryMySQL struct {
	db *gorm.DB
}

// libraryMySQLがLibraryRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.LibraryRepository = (*libraryMySQL)(nil)

// NewLibraryMySQL は指定されたDB接続でlibraryMySQLリポジトリの新しいインスタンスを生成します。
func NewLibraryMySQL(db *gorm.DB) *libraryMySQL {
	return &libraryMySQL{db: db}
}

// Create は図書館をデータベースに追加します。
func (r *libraryMySQL) Create(ctx context.Context, library *entity.Library) error {
	return r.db.WithContext(ctx).Create(library).Error
}

// List はすべての図書館を登録順に返します。
func (r *libraryMySQL) List(ctx context.Context) ([]entity.Library, error) {
	var libraries []entity.Library
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&libraries).Error; err != nil {
		return nil, err
	}
	return libraries, nil
}

// FindByID はIDで図書館を取得します。
// 図書館が存在しない場合、usecase.ErrLibraryNotFoundを返します。
func (r *libraryMySQL) FindByID(ctx context.Context, id uint) (*entity.Library, error) {
	var library entity.Library
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&library).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrLibraryNotFound
		}
		return nil, err
	}
	return &library, nil
}

// Delete は図書館と、それを参照するメンバーシップを同一トランザクションで削除します。
// SQLiteではFK制約のカスケードがデフォルト無効のため、アプリ側で明示的に削除します。
func (r *libraryMySQL) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&entity.Library{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return usecase.ErrLibraryNotFound
		}
		// 親の削除に合わせてメンバーシップをカスケード削除する
		return tx.Exec("DELETE FROM memberships WHERE library_id = ?", id).Error
	})
}
