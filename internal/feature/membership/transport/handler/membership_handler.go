// Package handler はmembershipフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	authentity "library_backend/internal/feature/auth/domain/entity"
	authusecase "library_backend/internal/feature/auth/usecase"
	libraryentity "library_backend/internal/feature/library/domain/entity"
	libraryusecase "library_backend/internal/feature/library/usecase"
	"library_backend/internal/feature/membership/domain/entity"
	"library_backend/internal/feature/membership/transport/http/dto"
	"library_backend/internal/feature/membership/usecase"
	jwtmw "library_backend/internal/platform/jwt"
)

// MembershipUsecase はメンバーシップ操作のユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type MembershipUsecase interface {
	Join(ctx context.Context, userID, libraryID uint) (*entity.Membership, error)
	Leave(ctx context.Context, userID, libraryID uint) error
	ListLibraries(ctx context.Context, userID uint) ([]libraryentity.Library, error)
	ListMembers(ctx context.Context, libraryID uint) ([]authentity.User, error)
}

// MembershipHandler はメンバーシップに関するHTTPリクエストを処理します。
// 対象ユーザーは常にAuthRequiredミドルウェアが解決したログイン中のユーザーです。
type MembershipHandler struct {
	uc MembershipUsecase
}

// NewMembershipHandler は新しい MembershipHandler を作成します。
func NewMembershipHandler(uc MembershipUsecase) *MembershipHandler {
	return &MembershipHandler{uc: uc}
}

// Join は現在のユーザーを図書館に参加させるAPIです。
// - 図書館が存在しない場合は404
// - 既に参加済みの場合は409
// - 成功時は201を返します
func (h *MembershipHandler) Join(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)
	libraryID, ok := libraryIDParam(c)
	if !ok {
		return
	}

	membership, err := h.uc.Join(c.Request.Context(), userID, libraryID)
	if err != nil {
		switch {
		case errors.Is(err, authusecase.ErrUserNotFound), errors.Is(err, libraryusecase.ErrLibraryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrAlreadyJoined):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			slog.Error("join failed", "error", err, "user_id", userID, "library_id", libraryID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		}
		return
	}

	slog.Info("user joined library", "user_id", userID, "library_id", libraryID)
	c.JSON(http.StatusCreated, dto.MembershipRes{
		ID:        membership.ID,
		UserID:    membership.UserID,
		LibraryID: membership.LibraryID,
	})
}

// Leave は現在のユーザーを図書館から脱退させるAPIです。
// メンバーシップが存在しない場合は404を返します。
func (h *MembershipHandler) Leave(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)
	libraryID, ok := libraryIDParam(c)
	if !ok {
		return
	}

	if err := h.uc.Leave(c.Request.Context(), userID, libraryID); err != nil {
		if errors.Is(err, usecase.ErrMembershipNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		slog.Error("leave failed", "error", err, "user_id", userID, "library_id", libraryID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	slog.Info("user left library", "user_id", userID, "library_id", libraryID)
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// ListMine は現在のユーザーが参加している図書館の一覧を取得するAPIです。
func (h *MembershipHandler) ListMine(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	libraries, err := h.uc.ListLibraries(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, authusecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	out := make([]dto.LibraryItem, 0, len(libraries))
	for _, l := range libraries {
		out = append(out, dto.LibraryItem{
			ID:         l.ID,
			Name:       l.Name,
			FloorCount: l.FloorCount,
			FloorArea:  l.FloorArea,
		})
	}
	c.JSON(http.StatusOK, out)
}

// ListMembers は図書館の参加者一覧を取得するAPIです。
// 図書館が存在しない場合は404を返します。
func (h *MembershipHandler) ListMembers(c *gin.Context) {
	libraryID, ok := libraryIDParam(c)
	if !ok {
		return
	}

	users, err := h.uc.ListMembers(c.Request.Context(), libraryID)
	if err != nil {
		if errors.Is(err, libraryusecase.ErrLibraryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	out := make([]dto.MemberItem, 0, len(users))
	for _, u := range users {
		out = append(out, dto.MemberItem{
			ID:        u.ID,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
		})
	}
	c.JSON(http.StatusOK, out)
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
