package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	loginFailurePrefix = "login:failures:"
	lastLoginPrefix    = "login:last:"
)

// LoginAudit keeps advisory login metadata in Redis: failed-attempt counters
// with a TTL and the last successful login time. It is never consulted
// during token verification and the service works without it; a nil client
// turns every call into a no-op.
type LoginAudit struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewLoginAudit builds the audit helper.
func NewLoginAudit(client *redis.Client, logger *zap.Logger, ttl time.Duration) *LoginAudit {
	return &LoginAudit{client: client, logger: logger, ttl: ttl}
}

// RecordFailure bumps the failure counter for the username.
func (a *LoginAudit) RecordFailure(ctx context.Context, username string) {
	if a == nil || a.client == nil {
		return
	}
	key := loginFailurePrefix + username
	count, err := a.client.Incr(ctx, key).Result()
	if err != nil {
		a.logger.Warn("login audit write failed", zap.Error(err))
		return
	}
	if count == 1 {
		a.client.Expire(ctx, key, a.ttl)
	}
}

// RecordSuccess clears the failure counter and stores the login time.
func (a *LoginAudit) RecordSuccess(ctx context.Context, username string, now time.Time) {
	if a == nil || a.client == nil {
		return
	}
	pipe := a.client.Pipeline()
	pipe.Del(ctx, loginFailurePrefix+username)
	pipe.Set(ctx, lastLoginPrefix+username, now.UTC().Format(time.RFC3339), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		a.logger.Warn("login audit write failed", zap.Error(err))
	}
}

// FailureCount returns the current failed-attempt count for the username.
func (a *LoginAudit) FailureCount(ctx context.Context, username string) (int64, error) {
	if a == nil || a.client == nil {
		return 0, nil
	}
	count, err := a.client.Get(ctx, loginFailurePrefix+username).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return count, err
}

// LastLogin returns the most recent successful login time, zero when none
// is recorded.
func (a *LoginAudit) LastLogin(ctx context.Context, username string) (time.Time, error) {
	if a == nil || a.client == nil {
		return time.Time{}, nil
	}
	val, err := a.client.Get(ctx, lastLoginPrefix+username).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, val)
}
