package auth

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spec-kit/cms-service/internal/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestCodec(t *testing.T, ttl time.Duration) *TokenCodec {
	t.Helper()
	codec, err := NewTokenCodec(testSecret, ttl)
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}
	return codec
}

func testUser() *domain.User {
	return &domain.User{
		ID:       42,
		Username: "alice",
		Email:    "alice@example.com",
		Roles:    []string{domain.RoleReporter},
	}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	codec := newTestCodec(t, time.Hour)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	token, expiresAt, err := codec.Issue(testUser(), []string{domain.RoleReporter}, now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if want := now.Add(time.Hour); !expiresAt.Equal(want) {
		t.Fatalf("expiresAt = %v, want %v", expiresAt, want)
	}

	claims, err := codec.Verify(token, now)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID() != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID())
	}
	if claims.Username != "alice" {
		t.Errorf("Username = %q, want alice", claims.Username)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != domain.RoleReporter {
		t.Errorf("Roles = %v, want [%s]", claims.Roles, domain.RoleReporter)
	}
	if !claims.IssuedAt.Time.Equal(now) {
		t.Errorf("IssuedAt = %v, want %v", claims.IssuedAt.Time, now)
	}
}

func TestIssueDiffersByInstant(t *testing.T) {
	codec := newTestCodec(t, time.Hour)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	first, _, err := codec.Issue(testUser(), []string{domain.RoleReporter}, now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	second, _, err := codec.Issue(testUser(), []string{domain.RoleReporter}, now.Add(time.Second))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if first == second {
		t.Error("tokens issued at different instants must differ")
	}
}

func TestVerifyExpiryBoundary(t *testing.T) {
	codec := newTestCodec(t, time.Minute)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	token, _, err := codec.Issue(testUser(), []string{domain.RoleReporter}, now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := codec.Verify(token, now.Add(time.Minute-time.Second)); err != nil {
		t.Errorf("just before expiry: %v", err)
	}
	if _, err := codec.Verify(token, now.Add(time.Minute)); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("at expiry: got %v, want ErrTokenExpired", err)
	}
	if _, err := codec.Verify(token, now.Add(time.Hour)); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("past expiry: got %v, want ErrTokenExpired", err)
	}
}

func TestVerifyShortTTL(t *testing.T) {
	codec := newTestCodec(t, time.Second)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	token, _, err := codec.Issue(testUser(), []string{domain.RoleReporter}, now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := codec.Verify(token, now.Add(2*time.Second)); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("got %v, want ErrTokenExpired", err)
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	codec := newTestCodec(t, time.Hour)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	token, _, err := codec.Issue(testUser(), []string{domain.RoleReporter}, now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments", len(parts))
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		t.Fatalf("decode signature: %v", err)
	}

	// Flipping any single bit of the signature must fail verification.
	for i := 0; i < len(sig)*8; i += 7 {
		flipped := make([]byte, len(sig))
		copy(flipped, sig)
		flipped[i/8] ^= 1 << (i % 8)
		tampered := parts[0] + "." + parts[1] + "." + base64.RawURLEncoding.EncodeToString(flipped)

		if _, err := codec.Verify(tampered, now); !errors.Is(err, ErrBadSignature) {
			t.Fatalf("bit %d: got %v, want ErrBadSignature", i, err)
		}
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	codec := newTestCodec(t, time.Hour)
	other, err := NewTokenCodec("ffffffffffffffffffffffffffffffff", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	token, _, err := codec.Issue(testUser(), []string{domain.RoleReporter}, now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := other.Verify(token, now); !errors.Is(err, ErrBadSignature) {
		t.Errorf("got %v, want ErrBadSignature", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	codec := newTestCodec(t, time.Hour)
	now := time.Now()

	for _, tokenStr := range []string{"", "garbage", "a.b", "a.b.c.d", "!!!.###.$$$"} {
		if _, err := codec.Verify(tokenStr, now); !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("Verify(%q): got %v, want ErrTokenMalformed", tokenStr, err)
		}
	}
}

func TestIssueRequiresRoles(t *testing.T) {
	codec := newTestCodec(t, time.Hour)

	if _, _, err := codec.Issue(testUser(), nil, time.Now()); !errors.Is(err, ErrRolesEmpty) {
		t.Errorf("got %v, want ErrRolesEmpty", err)
	}
}

func TestNewTokenCodecRejectsWeakConfig(t *testing.T) {
	if _, err := NewTokenCodec("short", time.Hour); !errors.Is(err, ErrSecretTooShort) {
		t.Errorf("short secret: got %v, want ErrSecretTooShort", err)
	}
	if _, err := NewTokenCodec(testSecret, 0); err == nil {
		t.Error("zero ttl accepted")
	}
}
