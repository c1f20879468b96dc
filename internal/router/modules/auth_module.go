package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/greenkart/greenkart-api/internal/container"
	handlers "github.com/greenkart/greenkart-api/internal/interface/http"
	"github.com/greenkart/greenkart-api/internal/interface/middleware"
)

// AuthModule mounts the /auth routes. OTP issuing endpoints get tight
// per-IP-and-path limits so a single address cannot farm codes.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Auth    gin.HandlerFunc
}

func NewAuthModule(h *handlers.AuthHandler, auth gin.HandlerFunc) *AuthModule {
	return &AuthModule{Handler: h, Auth: auth}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	otpIssueLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	otpConfirmLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIP(), nil)

	auth := rg.Group("/auth")
	auth.POST("/register", otpIssueLimiter, m.Handler.Register)
	auth.POST("/verify-email-otp", otpConfirmLimiter, m.Handler.VerifyEmailOTP)
	auth.POST("/resend-email-otp", otpIssueLimiter, m.Handler.ResendEmailOTP)
	auth.POST("/login", loginLimiter, m.Handler.Login)
	auth.POST("/login-otp", otpConfirmLimiter, m.Handler.LoginWithOTP)
	auth.POST("/forgot-password", otpIssueLimiter, m.Handler.ForgotPassword)
	auth.POST("/reset-password", otpConfirmLimiter, m.Handler.ResetPassword)
	auth.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	protected := auth.Group("/")
	protected.Use(m.Auth)
	{
		protected.POST("/logout", m.Handler.Logout)
		protected.GET("/me", m.Handler.Me)
	}
}
