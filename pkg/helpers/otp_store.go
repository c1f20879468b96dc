package helpers

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTPStore keeps one OTP code per email in redis under KeyEmailOTP.
type OTPStore struct {
	RDB *redis.Client
}

func NewOTPStore(rdb *redis.Client) *OTPStore {
	return &OTPStore{RDB: rdb}
}

func (s *OTPStore) Set(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.RDB.Set(ctx, KeyEmailOTP(email), code, ttl).Err()
}

// Get returns the cached code, or an empty string when none is stored.
func (s *OTPStore) Get(ctx context.Context, email string) (string, error) {
	code, err := s.RDB.Get(ctx, KeyEmailOTP(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return code, nil
}

func (s *OTPStore) Delete(ctx context.Context, email string) error {
	return s.RDB.Del(ctx, KeyEmailOTP(email)).Err()
}
