package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/greenkart/greenkart-api/internal/application"
	"github.com/greenkart/greenkart-api/internal/interface/middleware"
	"github.com/greenkart/greenkart-api/pkg/helpers"
	"github.com/greenkart/greenkart-api/pkg/response"
	"github.com/greenkart/greenkart-api/pkg/validation"
)

type AuthHandler struct {
	Svc     *app.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewAuthHandler(svc *app.AuthService, logger *logrus.Logger, cookies *helpers.CookieManager) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: cookies}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type emailOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,otp"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type resetPasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	OTP      string `json:"otp" binding:"required,otp"`
	Password string `json:"password" binding:"required,pwd"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Invalid input data", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, u, "User registered successfully. Please verify your email.")
}

func (h *AuthHandler) VerifyEmailOTP(c *gin.Context) {
	var req emailOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Invalid input data", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.VerifyEmailOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "Email verified successfully")
}

func (h *AuthHandler) ResendEmailOTP(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Invalid input data", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ResendEmailOTP(c.Request.Context(), req.Email); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "OTP sent successfully")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Invalid input data", validation.ToDetails(err))
		return
	}
	u, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{"user": u, "accessToken": pair.AccessToken, "refreshToken": pair.RefreshToken}, "Login successful")
}

func (h *AuthHandler) LoginWithOTP(c *gin.Context) {
	var req emailOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Invalid input data", validation.ToDetails(err))
		return
	}
	u, pair, err := h.Svc.LoginWithOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{"user": u, "accessToken": pair.AccessToken, "refreshToken": pair.RefreshToken}, "Login successful")
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Invalid input data", validation.ToDetails(err))
		return
	}
	if err := h.Svc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Password reset OTP sent successfully")
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "Invalid input data", validation.ToDetails(err))
		return
	}
	u, pair, err := h.Svc.ResetPasswordWithOTP(c.Request.Context(), req.Email, req.OTP, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{"user": u, "accessToken": pair.AccessToken, "refreshToken": pair.RefreshToken}, "Password reset successfully")
}

// Refresh rotates the cookie pair. The token is read from the refreshToken
// cookie, falling back to the request body for non-browser clients.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, _ := c.Cookie("refreshToken")
	if token == "" {
		var req struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.ShouldBindJSON(&req); err == nil {
			token = req.RefreshToken
		}
	}
	if token == "" {
		response.Error[any](c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	u, pair, err := h.Svc.Refresh(c.Request.Context(), token)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{"user": u, "accessToken": pair.AccessToken, "refreshToken": pair.RefreshToken}, "Token refreshed successfully")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if uid, ok := middleware.UserIDFromCtx(c); ok {
		if err := h.Svc.Logout(c.Request.Context(), uid); err != nil && h.Logger != nil {
			h.Logger.WithError(err).Warn("logout refresh slot clear failed")
		}
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, nil, "Logged out successfully")
}

func (h *AuthHandler) Me(c *gin.Context) {
	u, ok := middleware.UserFromCtx(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	response.Success(c, http.StatusOK, u.Sanitize(), "Current user fetched")
}
