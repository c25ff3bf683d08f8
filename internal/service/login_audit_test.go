package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func newTestLoginAudit(t *testing.T) (*LoginAudit, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewLoginAudit(client, zap.NewNop(), 15*time.Minute), mr
}

func TestLoginAuditFailureCounter(t *testing.T) {
	audit, mr := newTestLoginAudit(t)
	ctx := context.Background()

	count, err := audit.FailureCount(ctx, "alice")
	if err != nil {
		t.Fatalf("FailureCount: %v", err)
	}
	if count != 0 {
		t.Fatalf("initial count = %d", count)
	}

	audit.RecordFailure(ctx, "alice")
	audit.RecordFailure(ctx, "alice")

	count, err = audit.FailureCount(ctx, "alice")
	if err != nil {
		t.Fatalf("FailureCount: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	if ttl := mr.TTL("login:failures:alice"); ttl != 15*time.Minute {
		t.Errorf("counter TTL = %v, want 15m", ttl)
	}

	// The counter expires on its own.
	mr.FastForward(16 * time.Minute)
	count, err = audit.FailureCount(ctx, "alice")
	if err != nil {
		t.Fatalf("FailureCount after expiry: %v", err)
	}
	if count != 0 {
		t.Errorf("count after expiry = %d, want 0", count)
	}
}

func TestLoginAuditSuccessClearsFailures(t *testing.T) {
	audit, _ := newTestLoginAudit(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	audit.RecordFailure(ctx, "alice")
	audit.RecordSuccess(ctx, "alice", now)

	count, err := audit.FailureCount(ctx, "alice")
	if err != nil {
		t.Fatalf("FailureCount: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0 after success", count)
	}

	last, err := audit.LastLogin(ctx, "alice")
	if err != nil {
		t.Fatalf("LastLogin: %v", err)
	}
	if !last.Equal(now) {
		t.Errorf("LastLogin = %v, want %v", last, now)
	}
}

func TestLoginAuditNilClientNoOps(t *testing.T) {
	audit := NewLoginAudit(nil, zap.NewNop(), time.Minute)
	ctx := context.Background()

	audit.RecordFailure(ctx, "alice")
	audit.RecordSuccess(ctx, "alice", time.Now())

	if count, err := audit.FailureCount(ctx, "alice"); err != nil || count != 0 {
		t.Errorf("FailureCount = (%d, %v), want (0, nil)", count, err)
	}
	if last, err := audit.LastLogin(ctx, "alice"); err != nil || !last.IsZero() {
		t.Errorf("LastLogin = (%v, %v), want zero time", last, err)
	}
}
