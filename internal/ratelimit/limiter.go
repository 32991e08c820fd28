package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SubmissionLimiter caps contact submissions per client IP using a fixed
// one-minute window on Redis. The public form must stay usable when Redis
// is down, so any Redis failure fails open.
type SubmissionLimiter struct {
	client *redis.Client
	limit  int
	logger *zap.Logger
}

// NewSubmissionLimiter creates the limiter. A nil client or non-positive
// limit disables it.
func NewSubmissionLimiter(client *redis.Client, limit int, logger *zap.Logger) *SubmissionLimiter {
	return &SubmissionLimiter{client: client, limit: limit, logger: logger}
}

// Allow reports whether the given client IP may submit.
func (l *SubmissionLimiter) Allow(ctx context.Context, ip string) bool {
	if l == nil || l.client == nil || l.limit <= 0 {
		return true
	}

	key := fmt.Sprintf("ratelimit:contact:%s:%s", ip, time.Now().Format("200601021504"))

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("rate limiter unavailable, allowing request", zap.Error(err))
		return true
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, time.Minute).Err(); err != nil {
			l.logger.Warn("rate limiter expire failed", zap.Error(err))
		}
	}
	return count <= int64(l.limit)
}
