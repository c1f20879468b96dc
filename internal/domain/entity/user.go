package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles form a closed set; dispatch is by value, never by subtype.
const (
	RoleUser     = "user"
	RoleAdmin    = "admin"
	RoleDelivery = "delivery"
)

// Login types record how the user last authenticated.
const (
	LoginTypePassword      = "EMAIL_PASSWORD"
	LoginTypeOTP           = "EMAIL_OTP"
	LoginTypePasswordReset = "EMAIL_PASSWORD_RESET"
)

func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleDelivery:
		return true
	}
	return false
}

// User is the aggregate root for identity. Password holds a bcrypt hash;
// RefreshToken is a single slot, so issuing a new refresh token invalidates
// the previous one.
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Email           string             `bson:"email" json:"email"`
	Mobile          string             `bson:"mobile,omitempty" json:"mobile,omitempty"`
	Password        string             `bson:"password" json:"-"`
	Role            string             `bson:"role" json:"role"`
	IsEmailVerified bool               `bson:"isEmailVerified" json:"isEmailVerified"`
	IsBlocked       bool               `bson:"isBlocked" json:"isBlocked"`
	RefreshToken    string             `bson:"refreshToken,omitempty" json:"-"`
	LoginType       string             `bson:"loginType,omitempty" json:"loginType,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Sanitized is the client-facing user shape: no password hash, no refresh
// token.
type Sanitized struct {
	ID              primitive.ObjectID `json:"id"`
	Name            string             `json:"name"`
	Email           string             `json:"email"`
	Mobile          string             `json:"mobile,omitempty"`
	Role            string             `json:"role"`
	IsEmailVerified bool               `json:"isEmailVerified"`
	IsBlocked       bool               `json:"isBlocked"`
	LoginType       string             `json:"loginType,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

func (u *User) Sanitize() Sanitized {
	return Sanitized{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Mobile:          u.Mobile,
		Role:            u.Role,
		IsEmailVerified: u.IsEmailVerified,
		IsBlocked:       u.IsBlocked,
		LoginType:       u.LoginType,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
