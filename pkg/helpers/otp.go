package helpers

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// OTP helpers

// KeyEmailOTP is the Redis key holding the active OTP for an email address.
// Verification, OTP login and password reset share this key: one active code
// per email, last write wins.
func KeyEmailOTP(email string) string {
	return "otp:" + email
}

// GenOTPCode generates a secure random 6-digit OTP code as a zero-padded string
func GenOTPCode() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	// 6 digits: map random bytes to 000000-999999
	code := binary.BigEndian.Uint32(b) % 1000000
	return fmt.Sprintf("%06d", code), nil
}
