// Package handler はlibraryフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"library_backend/internal/feature/library/domain/entity"
	"library_backend/internal/feature/library/transport/http/dto"
	"library_backend/internal/feature/library/usecase"
)

// LibraryUsecase は図書館操作のユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type LibraryUsecase interface {
	CreateLibrary(ctx context.Context, name string, floorCount, floorArea int) (*entity.Library, error)
	ListLibraries(ctx context.Context) ([]entity.Library, error)
	GetLibrary(ctx context.Context, id uint) (*entity.Library, error)
	DeleteLibrary(ctx context.Context, id uint) error
}

// LibraryHandler は図書館に関するHTTPリクエストを処理します。
type LibraryHandler struct {
	uc LibraryUsecase
}

// NewLibraryHandler は新しい LibraryHandler を作成します。
func NewLibraryHandler(uc LibraryUsecase) *LibraryHandler {
	return &LibraryHandler{uc: uc}
}

// Create は図書館を新規登録する管理用APIです。
// バリデーションエラー時は400、成功時は201を返します。
func (h *LibraryHandler) Create(c *gin.Context) {
	var req dto.CreateLibraryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	library, err := h.uc.CreateLibrary(c.Request.Context(), req.Name, *req.FloorCount, *req.FloorArea)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidLibrary) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.Error("library create failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	slog.Info("library created", "library_id", library.ID, "name", library.Name)
	c.JSON(http.StatusCreated, toLibraryRes(library))
}

// List はすべての図書館の一覧を取得するAPIです。
func (h *LibraryHandler) List(c *gin.Context) {
	libraries, err := h.uc.ListLibraries(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	out := make([]dto.LibraryRes, 0, len(libraries))
	for i := range libraries {
		out = append(out, toLibraryRes(&libraries[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get は単一の図書館を取得するAPIです。存在しない場合は404を返します。
func (h *LibraryHandler) Get(c *gin.Context) {
	id, ok := libraryIDParam(c)
	if !ok {
		return
	}

	library, err := h.uc.GetLibrary(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrLibraryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "library not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, toLibraryRes(library))
}

// Delete は図書館を削除する管理用APIです。
// 参照するメンバーシップもカスケード削除されます。
func (h *LibraryHandler) Delete(c *gin.Context) {
	id, ok := libraryIDParam(c)
	if !ok {
		return
	}

	if err := h.uc.DeleteLibrary(c.Request.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrLibraryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "library not found"})
			return
		}
		slog.Error("library delete failed", "error", err, "library_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	slog.Info("library deleted", "library_id", id)
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// libraryIDParam は:idパスパラメータを解析します。不正な場合は400を返します。
func libraryIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid library id"})
		return 0, false
	}
	return uint(id), true
}

// toLibraryRes はエンティティをAPIレスポンスDTOに変換します。
func toLibraryRes(l *entity.Library) dto.LibraryRes {
	return dto.LibraryRes{
		ID:         l.ID,
		Name:       l.Name,
		FloorCount: l.FloorCount,
		FloorArea:  l.FloorArea,
	}
}
