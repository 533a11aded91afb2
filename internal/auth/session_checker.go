package auth

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// SessionChecker resolves session tokens to user ids, checking the TTL.
type SessionChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewSessionChecker(ttl time.Duration, redisClient *redis.Client) *SessionChecker {
	return &SessionChecker{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

// UserID returns the id of the session user, or ErrSessionNotFound for
// unknown or expired tokens.
func (c *SessionChecker) UserID(ctx context.Context, token string) (int, error) {
	userID, createdAt, err := parseSession(ctx, c.redisClient, token)
	if err != nil {
		return 0, err
	}

	if time.Since(createdAt) > c.ttl {
		return 0, ErrSessionNotFound
	}

	return userID, nil
}
