package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/records-service/internal/domain"
)

func TestGenerateAndParse(t *testing.T) {
	tm := NewTokenManager("test-secret", 24)

	token, expiresAt, err := tm.Generate("alice", domain.RoleOperator)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, domain.RoleOperator, claims.Role)
}

func TestGenerateDistinctTokens(t *testing.T) {
	tm := NewTokenManager("test-secret", 24)

	first, _, err := tm.Generate("alice", domain.RoleOperator)
	require.NoError(t, err)
	second, _, err := tm.Generate("alice", domain.RoleOperator)
	require.NoError(t, err)

	// Identical inputs in immediate succession still differ via the jti.
	assert.NotEqual(t, first, second)
}

func TestParseExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tm := NewTokenManager("test-secret", 24).WithClock(func() time.Time { return issuedAt })

	token, expiresAt, err := tm.Generate("alice", domain.RoleAdmin)
	require.NoError(t, err)

	t.Run("valid one second before expiry", func(t *testing.T) {
		at := tm.WithClock(func() time.Time { return expiresAt.Add(-time.Second) })
		_, err := at.Parse(token)
		assert.NoError(t, err)
	})

	t.Run("expired exactly at expiry", func(t *testing.T) {
		at := tm.WithClock(func() time.Time { return expiresAt })
		_, err := at.Parse(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("expired after expiry", func(t *testing.T) {
		at := tm.WithClock(func() time.Time { return expiresAt.Add(time.Hour) })
		_, err := at.Parse(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})
}

func TestParseTamperedSignature(t *testing.T) {
	tm := NewTokenManager("test-secret", 24)

	token, _, err := tm.Generate("alice", domain.RoleOperator)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	sig := []byte(parts[2])
	for i := range sig {
		original := sig[i]
		if sig[i] == 'A' {
			sig[i] = 'B'
		} else {
			sig[i] = 'A'
		}
		tampered := parts[0] + "." + parts[1] + "." + string(sig)

		_, err := tm.Parse(tampered)
		assert.Error(t, err, "byte %d", i)
		assert.NotErrorIs(t, err, ErrTokenExpired, "byte %d", i)

		sig[i] = original
	}
}

// An HS256 signature is 32 bytes, so its base64url form leaves two unused
// trailing bits in the final character. Lenient decoding ignores those bits,
// which would let a byte-different token verify. Every sibling character
// that differs only in the trailing bits must be rejected.
func TestParseTrailingSignatureBitsRejected(t *testing.T) {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

	tm := NewTokenManager("test-secret", 24)

	token, _, err := tm.Generate("alice", domain.RoleOperator)
	require.NoError(t, err)

	last := token[len(token)-1]
	idx := strings.IndexByte(alphabet, last)
	require.NotEqual(t, -1, idx)

	group := idx &^ 0x03
	for off := 0; off < 4; off++ {
		sibling := alphabet[group+off]
		if sibling == last {
			continue
		}
		tampered := token[:len(token)-1] + string(sibling)

		_, err := tm.Parse(tampered)
		assert.Error(t, err, "last char %q -> %q", last, sibling)
	}
}

func TestParseWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 24)
	other := NewTokenManager("other-secret", 24)

	token, _, err := tm.Generate("alice", domain.RoleOperator)
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrTokenSignature)
}

func TestParseMalformed(t *testing.T) {
	tm := NewTokenManager("test-secret", 24)

	for _, token := range []string{"", "garbage", "a.b", "a.b.c.d", "not.a.jwt"} {
		_, err := tm.Parse(token)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", token)
	}
}
