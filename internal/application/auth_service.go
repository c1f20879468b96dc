package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/greenkart/greenkart-api/internal/domain/entity"
	repo "github.com/greenkart/greenkart-api/internal/domain/repository"
	"github.com/greenkart/greenkart-api/pkg/apperr"
	"github.com/greenkart/greenkart-api/pkg/helpers"
	"github.com/greenkart/greenkart-api/pkg/mailer"
)

// OTPCache is the transient one-code-per-email store. Get returns an empty
// string when no code is cached.
type OTPCache interface {
	Set(ctx context.Context, email, code string, ttl time.Duration) error
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

// EmailPublisher enqueues outbound email jobs.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type TokenPair struct {
	AccessToken        string    `json:"accessToken"`
	AccessTokenExpiry  time.Time `json:"-"`
	RefreshToken       string    `json:"refreshToken"`
	RefreshTokenExpiry time.Time `json:"-"`
}

// AuthService orchestrates registration, OTP verification, the three login
// paths and token issuance.
type AuthService struct {
	Users       repo.UserRepository
	OTP         OTPCache
	JWT         *helpers.JWTManager
	Pub         EmailPublisher // nil disables email side effects
	Logger      *logrus.Logger
	OTPTTL      time.Duration
	MailEnabled bool
}

func NewAuthService(users repo.UserRepository, otp OTPCache, jwt *helpers.JWTManager, pub EmailPublisher, logger *logrus.Logger, otpTTL time.Duration, mailEnabled bool) *AuthService {
	return &AuthService{
		Users:       users,
		OTP:         otp,
		JWT:         jwt,
		Pub:         pub,
		Logger:      logger,
		OTPTTL:      otpTTL,
		MailEnabled: mailEnabled,
	}
}

// sendOTP generates a fresh code, enqueues the email and then writes the
// cache slot, overwriting any previous code for the address. The email is
// fire-and-forget; the cache write is not.
func (s *AuthService) sendOTP(ctx context.Context, email, name string) error {
	code, err := helpers.GenOTPCode()
	if err != nil {
		return apperr.Internal("Failed to generate OTP")
	}
	if s.Pub != nil && s.MailEnabled {
		if err := s.Pub.PublishJSON(ctx, mailer.OTPEmail(email, name, code)); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("email", email).Warn("enqueue otp email failed")
		}
	}
	if err := s.OTP.Set(ctx, email, code, s.OTPTTL); err != nil {
		return apperr.Internal("Failed to issue OTP")
	}
	return nil
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*entity.Sanitized, error) {
	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("User already exists with this email")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, apperr.Internal("Failed to hash password")
	}
	u := &entity.User{
		Name:      name,
		Email:     email,
		Password:  hash,
		Role:      entity.RoleUser,
		LoginType: entity.LoginTypePassword,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateKey) {
			return nil, apperr.Conflict("User already exists with this email")
		}
		return nil, err
	}
	if err := s.sendOTP(ctx, u.Email, u.Name); err != nil {
		return nil, err
	}
	sanitized := u.Sanitize()
	return &sanitized, nil
}

// checkOTP loads the user and compares the cached code. badRequestMsg is the
// flow-specific mismatch message.
func (s *AuthService) checkOTP(ctx context.Context, email, otp, badRequestMsg string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}
	stored, err := s.OTP.Get(ctx, email)
	if err != nil {
		return nil, apperr.Internal("Failed to read OTP")
	}
	if stored == "" || stored != otp {
		return nil, apperr.BadRequest(badRequestMsg)
	}
	return u, nil
}

func (s *AuthService) VerifyEmailOTP(ctx context.Context, email, otp string) (*entity.Sanitized, error) {
	u, err := s.checkOTP(ctx, email, otp, "Invalid or expired OTP")
	if err != nil {
		return nil, err
	}
	u.IsEmailVerified = true
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	if err := s.OTP.Delete(ctx, email); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", email).Warn("delete otp failed")
	}
	sanitized := u.Sanitize()
	return &sanitized, nil
}

func (s *AuthService) ResendEmailOTP(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.NotFound("User not found")
		}
		return err
	}
	return s.sendOTP(ctx, u.Email, u.Name)
}

// RequestPasswordReset issues a reset OTP through the same cache slot as
// verification, so a pending verify code is overwritten.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	return s.ResendEmailOTP(ctx, email)
}

func (s *AuthService) issueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID.Hex(), u.Role, u.Email)
	if err != nil {
		return TokenPair{}, apperr.Internal("Failed to issue tokens")
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID.Hex(), u.Role, u.Email)
	if err != nil {
		return TokenPair{}, apperr.Internal("Failed to issue tokens")
	}
	// Single refresh slot: persisting the new token invalidates the old one.
	u.RefreshToken = refresh
	if err := s.Users.Update(ctx, u); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:        access,
		AccessTokenExpiry:  aexp,
		RefreshToken:       refresh,
		RefreshTokenExpiry: rexp,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.Sanitized, TokenPair, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, TokenPair{}, apperr.NotFound("User does not exist")
		}
		return nil, TokenPair{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, TokenPair{}, apperr.Unauthorized("Invalid credentials")
	}
	if !u.IsEmailVerified {
		return nil, TokenPair{}, apperr.Forbidden("Email not verified. Please verify using OTP.")
	}
	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	sanitized := u.Sanitize()
	return &sanitized, pair, nil
}

func (s *AuthService) LoginWithOTP(ctx context.Context, email, otp string) (*entity.Sanitized, TokenPair, error) {
	u, err := s.checkOTP(ctx, email, otp, "Invalid or expired OTP")
	if err != nil {
		return nil, TokenPair{}, err
	}
	u.IsEmailVerified = true
	u.LoginType = entity.LoginTypeOTP
	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	if err := s.OTP.Delete(ctx, email); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", email).Warn("delete otp failed")
	}
	sanitized := u.Sanitize()
	return &sanitized, pair, nil
}

func (s *AuthService) ResetPasswordWithOTP(ctx context.Context, email, otp, newPassword string) (*entity.Sanitized, TokenPair, error) {
	u, err := s.checkOTP(ctx, email, otp, "Incorrect OTP. Please enter the correct OTP")
	if err != nil {
		return nil, TokenPair{}, err
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return nil, TokenPair{}, apperr.Internal("Failed to hash password")
	}
	u.Password = hash
	u.IsEmailVerified = true
	u.LoginType = entity.LoginTypePasswordReset
	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	if err := s.OTP.Delete(ctx, email); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", email).Warn("delete otp failed")
	}
	sanitized := u.Sanitize()
	return &sanitized, pair, nil
}

// Refresh rotates the token pair. The presented refresh token must verify
// and match the stored single slot.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*entity.Sanitized, TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, TokenPair{}, apperr.Unauthorized("Invalid or expired token")
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, TokenPair{}, apperr.Unauthorized("Invalid or expired token")
	}
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return nil, TokenPair{}, apperr.Unauthorized("Invalid or expired token")
	}
	if u.RefreshToken == "" || u.RefreshToken != refreshToken {
		return nil, TokenPair{}, apperr.Unauthorized("Invalid or expired token")
	}
	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	sanitized := u.Sanitize()
	return &sanitized, pair, nil
}

// Logout empties the refresh slot so the presented refresh token can no
// longer be rotated.
func (s *AuthService) Logout(ctx context.Context, userID primitive.ObjectID) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.NotFound("User not found")
		}
		return err
	}
	u.RefreshToken = ""
	return s.Users.Update(ctx, u)
}
