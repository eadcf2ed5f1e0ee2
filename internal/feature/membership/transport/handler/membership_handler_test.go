package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	authentity "library_backend/internal/feature/auth/domain/entity"
	authusecase "library_backend/internal/feature/auth/usecase"
	libraryentity "library_backend/internal/feature/library/domain/entity"
	libraryusecase "library_backend/internal/feature/library/usecase"
	"library_backend/internal/feature/membership/domain/entity"
	"library_backend/internal/feature/membership/usecase"
	jwtmw "library_backend/internal/platform/jwt"
)

// mockMembershipUsecase is a mock implementation of the MembershipUsecase interface.
type mockMembershipUsecase struct {
	JoinFunc          func(ctx context.Context, userID, libraryID uint) (*entity.Membership, error)
	LeaveFunc         func(ctx context.Context, userID, libraryID uint) error
	ListLibrariesFunc func(ctx context.Context, userID uint) ([]libraryentity.Library, error)
	ListMembersFunc   func(ctx context.Context, libraryID uint) ([]authentity.User, error)
}

func (m *mockMembershipUsecase) Join(ctx context.Context, userID, libraryID uint) (*entity.Membership, error) {
	if m.JoinFunc != nil {
		return m.JoinFunc(ctx, userID, libraryID)
	}
	return &entity.Membership{ID: 1, UserID: userID, LibraryID: libraryID}, nil
}

func (m *mockMembershipUsecase) Leave(ctx context.Context, userID, libraryID uint) error {
	if m.LeaveFunc != nil {
		return m.LeaveFunc(ctx, userID, libraryID)
	}
	return nil
}

func (m *mockMembershipUsecase) ListLibraries(ctx context.Context, userID uint) ([]libraryentity.Library, error) {
	if m.ListLibrariesFunc != nil {
		return m.ListLibrariesFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockMembershipUsecase) ListMembers(ctx context.Context, libraryID uint) ([]authentity.User, error) {
	if m.ListMembersFunc != nil {
		return m.ListMembersFunc(ctx, libraryID)
	}
	return nil, nil
}

// newTestRouter wires the handler behind a stub that injects the current user,
// the way AuthRequired does in production.
func newTestRouter(uc MembershipUsecase, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewMembershipHandler(uc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, userID)
	})
	r.POST("/libraries/:id/join", handler.Join)
	r.DELETE("/libraries/:id/join", handler.Leave)
	r.GET("/me/libraries", handler.ListMine)
	r.GET("/libraries/:id/members", handler.ListMembers)
	return r
}

func TestMembershipHandler_Join(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		mockJoinFunc   func(ctx context.Context, userID, libraryID uint) (*entity.Membership, error)
		expectedStatus int
	}{
		{
			name: "success: joined library",
			path: "/libraries/2/join",
			mockJoinFunc: func(ctx context.Context, userID, libraryID uint) (*entity.Membership, error) {
				return &entity.Membership{ID: 10, UserID: userID, LibraryID: libraryID}, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "failure: library not found",
			path: "/libraries/999/join",
			mockJoinFunc: func(ctx context.Context, userID, libraryID uint) (*entity.Membership, error) {
				return nil, libraryusecase.ErrLibraryNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "failure: user not found",
			path: "/libraries/2/join",
			mockJoinFunc: func(ctx context.Context, userID, libraryID uint) (*entity.Membership, error) {
				return nil, authusecase.ErrUserNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "failure: already joined",
			path: "/libraries/2/join",
			mockJoinFunc: func(ctx context.Context, userID, libraryID uint) (*entity.Membership, error) {
				return nil, usecase.ErrAlreadyJoined
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "failure: invalid library id",
			path:           "/libraries/abc/join",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "failure: repository error",
			path: "/libraries/2/join",
			mockJoinFunc: func(ctx context.Context, userID, libraryID uint) (*entity.Membership, error) {
				return nil, errors.New("database error")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockMembershipUsecase{JoinFunc: tt.mockJoinFunc}, 1)

			req, _ := http.NewRequest(http.MethodPost, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusCreated {
				var res gin.H
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
				assert.Equal(t, float64(1), res["user_id"])
				assert.Equal(t, float64(2), res["library_id"])
			}
		})
	}
}

func TestMembershipHandler_Join_UsesAuthenticatedUser(t *testing.T) {
	var gotUserID uint
	router := newTestRouter(&mockMembershipUsecase{
		JoinFunc: func(ctx context.Context, userID, libraryID uint) (*entity.Membership, error) {
			gotUserID = userID
			return &entity.Membership{ID: 1, UserID: userID, LibraryID: libraryID}, nil
		},
	}, 42)

	req, _ := http.NewRequest(http.MethodPost, "/libraries/2/join", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(42), gotUserID, "join should target the logged-in user")
}

func TestMembershipHandler_Leave(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		mockLeaveFunc  func(ctx context.Context, userID, libraryID uint) error
		expectedStatus int
	}{
		{
			name:           "success: left library",
			path:           "/libraries/2/join",
			mockLeaveFunc:  func(ctx context.Context, userID, libraryID uint) error { return nil },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "failure: membership not found",
			path:           "/libraries/2/join",
			mockLeaveFunc:  func(ctx context.Context, userID, libraryID uint) error { return usecase.ErrMembershipNotFound },
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "failure: invalid library id",
			path:           "/libraries/abc/join",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockMembershipUsecase{LeaveFunc: tt.mockLeaveFunc}, 1)

			req, _ := http.NewRequest(http.MethodDelete, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestMembershipHandler_ListMine(t *testing.T) {
	t.Run("success: returns joined libraries", func(t *testing.T) {
		router := newTestRouter(&mockMembershipUsecase{
			ListLibrariesFunc: func(ctx context.Context, userID uint) ([]libraryentity.Library, error) {
				return []libraryentity.Library{
					{ID: 1, Name: "Central Library", FloorCount: 3, FloorArea: 4500},
				}, nil
			},
		}, 1)

		req, _ := http.NewRequest(http.MethodGet, "/me/libraries", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var res []gin.H
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Len(t, res, 1)
		assert.Equal(t, "Central Library", res[0]["name"])
	})

	t.Run("success: empty list is a JSON array", func(t *testing.T) {
		router := newTestRouter(&mockMembershipUsecase{}, 1)

		req, _ := http.NewRequest(http.MethodGet, "/me/libraries", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})
}

func TestMembershipHandler_ListMembers(t *testing.T) {
	t.Run("success: returns library members without passwords", func(t *testing.T) {
		router := newTestRouter(&mockMembershipUsecase{
			ListMembersFunc: func(ctx context.Context, libraryID uint) ([]authentity.User, error) {
				return []authentity.User{
					{ID: 1, Email: "a@example.com", Password: "secret-hash", FirstName: "Taro", LastName: "Yamada"},
				}, nil
			},
		}, 1)

		req, _ := http.NewRequest(http.MethodGet, "/libraries/5/members", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var res []gin.H
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Len(t, res, 1)
		assert.Equal(t, "a@example.com", res[0]["email"])
		// Password hash must never appear in the response
		assert.NotContains(t, res[0], "password")
		assert.NotContains(t, w.Body.String(), "secret-hash")
	})

	t.Run("failure: library not found", func(t *testing.T) {
		router := newTestRouter(&mockMembershipUsecase{
			ListMembersFunc: func(ctx context.Context, libraryID uint) ([]authentity.User, error) {
				return nil, libraryusecase.ErrLibraryNotFound
			},
		}, 1)

		req, _ := http.NewRequest(http.MethodGet, "/libraries/999/members", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
