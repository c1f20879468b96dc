package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/greenkart/greenkart-api/internal/domain/entity"
	repo "github.com/greenkart/greenkart-api/internal/domain/repository"
	"github.com/greenkart/greenkart-api/internal/interface/middleware"
	"github.com/greenkart/greenkart-api/pkg/helpers"
)

type staticUserRepo struct {
	user *entity.User
}

func (s *staticUserRepo) Create(context.Context, *entity.User) error { return nil }

func (s *staticUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, repo.ErrNotFound
	}
	cp := *s.user
	return &cp, nil
}

func (s *staticUserRepo) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, repo.ErrNotFound
}

func (s *staticUserRepo) Update(context.Context, *entity.User) error { return nil }

func (s *staticUserRepo) List(context.Context) ([]entity.User, error) { return nil, nil }

func (s *staticUserRepo) SetRole(context.Context, primitive.ObjectID, string) (*entity.User, error) {
	return nil, repo.ErrNotFound
}

func (s *staticUserRepo) SetBlocked(context.Context, primitive.ObjectID, bool) (*entity.User, error) {
	return nil, repo.ErrNotFound
}

func newAuthRig(user *entity.User) (*gin.Engine, *helpers.JWTManager) {
	gin.SetMode(gin.TestMode)
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	r := gin.New()
	users := &staticUserRepo{user: user}
	r.GET("/me", middleware.RequireAuth(users, jwt), func(c *gin.Context) {
		u, ok := middleware.UserFromCtx(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":    c.GetString(middleware.CtxUserID),
			"role":  c.GetString(middleware.CtxUserRole),
			"email": u.Email,
		})
	})
	r.GET("/admin", middleware.RequireAuth(users, jwt), middleware.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, jwt
}

func testUser(role string) *entity.User {
	return &entity.User{
		ID:    primitive.NewObjectID(),
		Name:  "Asha",
		Email: "asha@example.com",
		Role:  role,
	}
}

func TestRequireAuthMissingToken(t *testing.T) {
	r, _ := newAuthRig(testUser(entity.RoleUser))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Unauthorized")
}

func TestRequireAuthCookie(t *testing.T) {
	u := testUser(entity.RoleUser)
	r, jwt := newAuthRig(u)
	token, _, err := jwt.GenerateAccessToken(u.ID.Hex(), u.Role, u.Email)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), u.ID.Hex())
	require.Contains(t, w.Body.String(), "asha@example.com")
}

func TestRequireAuthBearerHeader(t *testing.T) {
	u := testUser(entity.RoleUser)
	r, jwt := newAuthRig(u)
	token, _, err := jwt.GenerateAccessToken(u.ID.Hex(), u.Role, u.Email)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthRejectsBadToken(t *testing.T) {
	r, _ := newAuthRig(testUser(entity.RoleUser))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Invalid or expired token")
}

func TestRequireAuthRejectsUnknownUser(t *testing.T) {
	u := testUser(entity.RoleUser)
	r, jwt := newAuthRig(u)
	// Token for a user the store no longer has.
	token, _, err := jwt.GenerateAccessToken(primitive.NewObjectID().Hex(), u.Role, u.Email)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthBlockedUser(t *testing.T) {
	u := testUser(entity.RoleUser)
	u.IsBlocked = true
	r, jwt := newAuthRig(u)
	token, _, err := jwt.GenerateAccessToken(u.ID.Hex(), u.Role, u.Email)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "Your account has been blocked")
}

func TestRequireAdmin(t *testing.T) {
	u := testUser(entity.RoleUser)
	r, jwt := newAuthRig(u)
	token, _, err := jwt.GenerateAccessToken(u.ID.Hex(), u.Role, u.Email)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "Admin access required")
}

func TestRequireAdminPassesAdmin(t *testing.T) {
	u := testUser(entity.RoleAdmin)
	r, jwt := newAuthRig(u)
	token, _, err := jwt.GenerateAccessToken(u.ID.Hex(), u.Role, u.Email)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
