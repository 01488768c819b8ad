package utils

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const loginCodeTTL = 10 * time.Minute

// generateSecureCode generates a secure random code of the specified length,
// base32 encoded without padding and truncated to the desired length.
func generateSecureCode(length int) (string, error) {
	numBytes := (length*5 + 7) / 8
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	code := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	if len(code) > length {
		code = code[:length]
	}
	return code, nil
}

// IssueLoginCode generates a one-time login code for the given email and
// stores it in Redis with a 10-minute TTL. Delivery (email) is the
// caller's concern; the code is returned for hand-off.
func IssueLoginCode(email string) (string, error) {
	code, err := generateSecureCode(6)
	if err != nil {
		return "", fmt.Errorf("failed to generate login code: %w", err)
	}

	ctx := context.Background()
	client := GetCodeCacheClient()
	key := "logincode:" + email
	if err := client.Set(ctx, key, code, loginCodeTTL).Err(); err != nil {
		GetLogger().Error("Failed to cache login code", zap.Error(err))
		return "", fmt.Errorf("failed to issue login code")
	}

	return code, nil
}

// VerifyLoginCode compares the provided code against the stored one and
// consumes it on success.
func VerifyLoginCode(email, provided string) error {
	ctx := context.Background()
	client := GetCodeCacheClient()
	key := "logincode:" + email

	stored, err := client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("login code not found or expired")
		}
		return fmt.Errorf("failed to retrieve login code: %w", err)
	}

	if stored != provided {
		return fmt.Errorf("login code does not match")
	}

	if err := client.Del(ctx, key).Err(); err != nil {
		GetLogger().Error("Failed to delete login code after verification", zap.Error(err))
	}
	return nil
}
