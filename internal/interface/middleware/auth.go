package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/greenkart/greenkart-api/internal/domain/entity"
	repo "github.com/greenkart/greenkart-api/internal/domain/repository"
	"github.com/greenkart/greenkart-api/pkg/helpers"
	"github.com/greenkart/greenkart-api/pkg/response"
)

// Context keys set by RequireAuth.
const (
	CtxUserID    = "userID"
	CtxUserRole  = "userRole"
	CtxUserEmail = "userEmail"
	CtxUser      = "user"
)

// tokenFromRequest prefers the accessToken cookie over the Authorization
// header.
func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie("accessToken"); err == nil && cookie != "" {
		return cookie
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

// RequireAuth verifies the access token and loads the live user, so role
// changes and blocks take effect on the next request rather than at token
// expiry.
func RequireAuth(users repo.UserRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "Unauthorized", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "Invalid or expired token", nil)
			return
		}
		id, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "Invalid or expired token", nil)
			return
		}
		u, err := users.GetByID(c.Request.Context(), id)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "Invalid or expired token", nil)
			return
		}
		if u.IsBlocked {
			response.AbortError(c, http.StatusForbidden, "Your account has been blocked", nil)
			return
		}
		c.Set(CtxUserID, u.ID.Hex())
		c.Set(CtxUserRole, u.Role)
		c.Set(CtxUserEmail, u.Email)
		c.Set(CtxUser, u)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxUserRole) != entity.RoleAdmin {
			response.AbortError(c, http.StatusForbidden, "Admin access required", nil)
			return
		}
		c.Next()
	}
}

// UserFromCtx returns the authenticated user attached by RequireAuth.
func UserFromCtx(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*entity.User)
	return u, ok
}

// UserIDFromCtx returns the authenticated user's ObjectID.
func UserIDFromCtx(c *gin.Context) (primitive.ObjectID, bool) {
	u, ok := UserFromCtx(c)
	if !ok {
		return primitive.NilObjectID, false
	}
	return u.ID, true
}
